package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

var ErrBadScript = errors.New("invalid input script")

// ScriptEvent is one scripted device event at a point in time (seconds).
type ScriptEvent struct {
	At    float32   `yaml:"at" json:"at"`
	Move  []float32 `yaml:"move,omitempty" json:"move,omitempty"`
	Boost string    `yaml:"boost,omitempty" json:"boost,omitempty"`
	Pause bool      `yaml:"pause,omitempty" json:"pause,omitempty"`
}

// Script is a recorded or hand-written input sequence for headless runs.
type Script struct {
	Events []ScriptEvent `yaml:"events" json:"events"`
}

func (s Script) Validate() error {
	for i, e := range s.Events {
		if e.At < 0 {
			return fmt.Errorf("%w: event %d has negative time", ErrBadScript, i)
		}
		if e.Move != nil && len(e.Move) != 2 {
			return fmt.Errorf("%w: event %d move needs two components", ErrBadScript, i)
		}
		switch e.Boost {
		case "", "press", "release":
		default:
			return fmt.Errorf("%w: event %d boost %q", ErrBadScript, i, e.Boost)
		}
	}
	return nil
}

// ParseScript decodes YAML, or JSON when format is "json".
func ParseScript(data []byte, format string) (Script, error) {
	var s Script
	var err error
	if format == "json" {
		err = json.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return Script{}, fmt.Errorf("%w: %w", ErrBadScript, err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// LoadScript reads a script file, choosing the decoder by extension.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read input script: %w", err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return ParseScript(data, format)
}

// Timeline replays a Script into an Aggregator as simulated time advances.
type Timeline struct {
	events  []ScriptEvent
	agg     *Aggregator
	elapsed float32
	next    int
}

func NewTimeline(s Script, agg *Aggregator) *Timeline {
	events := append([]ScriptEvent(nil), s.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })
	return &Timeline{events: events, agg: agg}
}

// Advance moves time forward and dispatches every event that became due.
// It returns the number of events dispatched.
func (t *Timeline) Advance(dt float32) int {
	t.elapsed += dt
	n := 0
	for t.next < len(t.events) && t.events[t.next].At <= t.elapsed {
		t.dispatch(t.events[t.next])
		t.next++
		n++
	}
	return n
}

func (t *Timeline) Done() bool { return t.next >= len(t.events) }

func (t *Timeline) Elapsed() float32 { return t.elapsed }

func (t *Timeline) dispatch(e ScriptEvent) {
	if len(e.Move) == 2 {
		t.agg.Move(rl.Vector2{X: e.Move[0], Y: e.Move[1]})
	}
	switch e.Boost {
	case "press":
		t.agg.Boost(PhaseStarted)
	case "release":
		t.agg.Boost(PhaseCanceled)
	}
	if e.Pause {
		t.agg.TogglePause()
	}
}
