package game

import "slices"

// Participant receives the lifecycle of every state it registered for.
type Participant interface {
	OnEnter(g *Game, state, previous StateID)
	OnExit(g *Game, state, next StateID)
	OnTick(g *Game, state StateID, dt float32)
	OnFixedTick(g *Game, state StateID, dt float32)
}

// BaseParticipant provides no-op handlers for embedding.
type BaseParticipant struct{}

func (BaseParticipant) OnEnter(*Game, StateID, StateID)     {}
func (BaseParticipant) OnExit(*Game, StateID, StateID)      {}
func (BaseParticipant) OnTick(*Game, StateID, float32)      {}
func (BaseParticipant) OnFixedTick(*Game, StateID, float32) {}

// Initializer is implemented by participants that need two-phase setup.
// EarlyInitialize runs for everyone before any LateInitialize.
type Initializer interface {
	EarlyInitialize(g *Game) error
	LateInitialize(g *Game) error
}

type registration struct {
	participant Participant
	caps        Capabilities
}

// Registry holds participants in registration order.
type Registry struct {
	entries []registration
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds p for the given states. Registering p again replaces its
// capabilities and keeps its position.
func (r *Registry) Register(p Participant, caps Capabilities) {
	for i := range r.entries {
		if r.entries[i].participant == p {
			r.entries[i].caps = caps
			return
		}
	}
	r.entries = append(r.entries, registration{participant: p, caps: caps})
}

func (r *Registry) Deregister(p Participant) bool {
	n := len(r.entries)
	r.entries = slices.DeleteFunc(r.entries, func(e registration) bool { return e.participant == p })
	return len(r.entries) != n
}

// Participants returns a fresh slice of participants for s.
func (r *Registry) Participants(s StateID) []Participant {
	var out []Participant
	for _, e := range r.entries {
		if e.caps.Has(s) {
			out = append(out, e.participant)
		}
	}
	return out
}

func (r *Registry) Capabilities(p Participant) (Capabilities, bool) {
	for _, e := range r.entries {
		if e.participant == p {
			return e.caps, true
		}
	}
	return 0, false
}

func (r *Registry) Len() int {
	return len(r.entries)
}
