// Package input turns device events into immutable snapshots and broadcasts
// them to subscribers.
package input

import (
	"reflect"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type BoostState int

const (
	BoostNone BoostState = iota
	BoostPressed
	BoostReleased
)

func (b BoostState) String() string {
	switch b {
	case BoostPressed:
		return "pressed"
	case BoostReleased:
		return "released"
	}
	return "none"
}

// Snapshot is the input state handed to listeners. It is a value; listeners
// may keep it.
type Snapshot struct {
	Movement rl.Vector2
	Boost    BoostState
	Paused   bool
}

// Listener receives a snapshot after every device event.
type Listener interface {
	Notify(s Snapshot)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Snapshot)

func (f ListenerFunc) Notify(s Snapshot) { f(s) }

// Phase is the lifecycle of a button action.
type Phase int

const (
	PhaseStarted Phase = iota
	PhasePerformed
	PhaseCanceled
)

// Aggregator caches the latest snapshot and broadcasts it on every event.
type Aggregator struct {
	current   Snapshot
	listeners []Listener
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Subscribe adds l. Subscribing the same listener twice has no effect.
func (a *Aggregator) Subscribe(l Listener) {
	if l == nil || slices.ContainsFunc(a.listeners, func(o Listener) bool { return sameListener(o, l) }) {
		return
	}
	a.listeners = append(a.listeners, l)
}

// Unsubscribe removes l. Listeners of uncomparable types, such as
// ListenerFunc, cannot be removed.
func (a *Aggregator) Unsubscribe(l Listener) {
	a.listeners = slices.DeleteFunc(a.listeners, func(o Listener) bool { return sameListener(o, l) })
}

func sameListener(a, b Listener) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func (a *Aggregator) Latest() Snapshot {
	return a.current
}

// Move records a new movement vector.
func (a *Aggregator) Move(v rl.Vector2) {
	a.current.Movement = v
	a.broadcast()
}

// Boost records a boost button phase. A release is broadcast once and then
// collapses to BoostNone.
func (a *Aggregator) Boost(phase Phase) {
	switch phase {
	case PhaseStarted, PhasePerformed:
		a.current.Boost = BoostPressed
	case PhaseCanceled:
		a.current.Boost = BoostReleased
	}
	a.broadcast()
	if a.current.Boost != BoostPressed {
		a.current.Boost = BoostNone
	}
}

func (a *Aggregator) TogglePause() {
	a.SetPaused(!a.current.Paused)
}

func (a *Aggregator) SetPaused(paused bool) {
	a.current.Paused = paused
	a.broadcast()
}

func (a *Aggregator) broadcast() {
	snap := a.current
	for _, l := range slices.Clone(a.listeners) {
		l.Notify(snap)
	}
}
