package game

import "strings"

// StateID names a game state. StateNone is the absence of a state.
type StateID int

const (
	StateNone StateID = iota
	StateStart
	StatePlay
	StatePause
	StateLevelComplete
	StateLevelEnd
	StateTitle
)

// States lists every real state in declaration order.
var States = []StateID{StateStart, StatePlay, StatePause, StateLevelComplete, StateLevelEnd, StateTitle}

var stateNames = map[StateID]string{
	StateNone:          "none",
	StateStart:         "start",
	StatePlay:          "play",
	StatePause:         "pause",
	StateLevelComplete: "level_complete",
	StateLevelEnd:      "level_end",
	StateTitle:         "title",
}

func (s StateID) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseState maps a state name back to its ID.
func ParseState(name string) (StateID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, n := range stateNames {
		if n == name {
			return id, true
		}
	}
	return StateNone, false
}

// Capabilities is the set of states a participant takes part in.
type Capabilities uint16

func Caps(states ...StateID) Capabilities {
	var c Capabilities
	for _, s := range states {
		if s > StateNone {
			c |= 1 << uint(s)
		}
	}
	return c
}

func (c Capabilities) Has(s StateID) bool {
	return s > StateNone && c&(1<<uint(s)) != 0
}

// state is created once per ID and reused for the lifetime of the game. Its
// participant set is rebuilt on every enter.
type state struct {
	id           StateID
	participants []Participant
}

func (s *state) enter(g *Game, previous StateID) {
	s.participants = g.registry.Participants(s.id)
	for _, p := range s.participants {
		p.OnEnter(g, s.id, previous)
	}
}

func (s *state) exit(g *Game, next StateID) {
	for _, p := range s.participants {
		p.OnExit(g, s.id, next)
	}
	s.participants = nil
}

// tick stops early if a handler switched state.
func (s *state) tick(g *Game, dt float32) {
	gen := g.generation
	for _, p := range s.participants {
		p.OnTick(g, s.id, dt)
		if g.generation != gen {
			return
		}
	}
}

func (s *state) fixedTick(g *Game, dt float32) {
	gen := g.generation
	for _, p := range s.participants {
		p.OnFixedTick(g, s.id, dt)
		if g.generation != gen {
			return
		}
	}
}

func (s *state) remove(p Participant) {
	for i, o := range s.participants {
		if o == p {
			s.participants = append(s.participants[:i:i], s.participants[i+1:]...)
			return
		}
	}
}
