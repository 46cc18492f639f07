// Package curve provides the response curves used to shape control, boost and
// falloff values. A curve maps a normalized input to a normalized output,
// either through a named easing function or through linear keyframes.
package curve

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/gen2brain/raylib-go/easings"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

var ErrUnknownEase = errors.New("unknown ease")

// Key is a keyframe of a curve.
type Key struct {
	T float32 `yaml:"t" json:"t"`
	V float32 `yaml:"v" json:"v"`
}

// Curve is the zero-value friendly response curve. With no keys and no ease
// it is the identity on [0,1].
type Curve struct {
	Ease    string  `yaml:"ease,omitempty" json:"ease,omitempty"`
	Reverse bool    `yaml:"reverse,omitempty" json:"reverse,omitempty"`
	Keys    []Key   `yaml:"keys,omitempty" json:"keys,omitempty"`
	Scale   float32 `yaml:"scale,omitempty" json:"scale,omitempty"`
}

type easeFunc func(t, b, c, d float32) float32

var eases = map[string]easeFunc{
	"":               easings.LinearNone,
	"linear":         easings.LinearNone,
	"sine_in":        easings.SineIn,
	"sine_out":       easings.SineOut,
	"sine_in_out":    easings.SineInOut,
	"quad_in":        easings.QuadIn,
	"quad_out":       easings.QuadOut,
	"quad_in_out":    easings.QuadInOut,
	"cubic_in":       easings.CubicIn,
	"cubic_out":      easings.CubicOut,
	"cubic_in_out":   easings.CubicInOut,
	"circ_in":        easings.CircIn,
	"circ_out":       easings.CircOut,
	"circ_in_out":    easings.CircInOut,
	"expo_in":        easings.ExpoIn,
	"expo_out":       easings.ExpoOut,
	"expo_in_out":    easings.ExpoInOut,
	"back_in":        easings.BackIn,
	"back_out":       easings.BackOut,
	"back_in_out":    easings.BackInOut,
	"bounce_in":      easings.BounceIn,
	"bounce_out":     easings.BounceOut,
	"bounce_in_out":  easings.BounceInOut,
	"elastic_in":     easings.ElasticIn,
	"elastic_out":    easings.ElasticOut,
	"elastic_in_out": easings.ElasticInOut,
}

// Names lists the supported ease names.
func Names() []string {
	out := make([]string, 0, len(eases))
	for n := range eases {
		if n != "" {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

func Linear() Curve { return Curve{Ease: "linear"} }

// Falloff is the default decay curve: 1 at t=0 down to 0 at t=1.
func Falloff() Curve { return Curve{Ease: "linear", Reverse: true} }

func Ease(name string) Curve { return Curve{Ease: name} }

// Evaluate samples the curve. Input outside the curve's domain is clamped.
func (c Curve) Evaluate(t float32) float32 {
	var v float32
	if len(c.Keys) > 0 {
		v = c.sampleKeys(t)
	} else {
		x := rl.Clamp(t, 0, 1)
		if c.Reverse {
			x = 1 - x
		}
		fn, ok := eases[c.Ease]
		if !ok {
			fn = easings.LinearNone
		}
		v = fn(x, 0, 1, 1)
	}
	if c.Scale != 0 {
		v *= c.Scale
	}
	return v
}

func (c Curve) sampleKeys(t float32) float32 {
	keys := c.Keys
	if t <= keys[0].T {
		return keys[0].V
	}
	last := keys[len(keys)-1]
	if t >= last.T {
		return last.V
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].T > t })
	a, b := keys[i-1], keys[i]
	if b.T == a.T {
		return b.V
	}
	return rl.Lerp(a.V, b.V, (t-a.T)/(b.T-a.T))
}

// Validate reports an unknown ease or unsorted keys.
func (c Curve) Validate() error {
	if _, ok := eases[c.Ease]; !ok && len(c.Keys) == 0 {
		return fmt.Errorf("%w %q", ErrUnknownEase, c.Ease)
	}
	if !slices.IsSortedFunc(c.Keys, func(a, b Key) int {
		switch {
		case a.T < b.T:
			return -1
		case a.T > b.T:
			return 1
		}
		return 0
	}) {
		return errors.New("curve keys must be sorted by t")
	}
	return nil
}

// UnmarshalYAML accepts either a bare ease name or the full mapping.
func (c *Curve) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = Curve{Ease: value.Value}
		return nil
	}
	type plain Curve
	return value.Decode((*plain)(c))
}

// UnmarshalJSON accepts either a bare ease name or the full object.
func (c *Curve) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*c = Curve{Ease: name}
		return nil
	}
	type plain Curve
	return json.Unmarshal(data, (*plain)(c))
}
