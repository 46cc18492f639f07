// Package game runs the top-level state machine. States fan their lifecycle
// out to participants registered for them, and physics bodies are stepped on
// every fixed tick.
package game

import (
	"fmt"

	"lander/internal/engine"
	"lander/internal/input"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Transition describes a completed state change.
type Transition struct {
	From StateID
	To   StateID
}

type Game struct {
	log      *zap.Logger
	scene    *engine.Scene
	input    *input.Aggregator
	session  *Session
	registry *Registry

	states  map[StateID]*state
	current StateID

	transitioning bool
	pending       []StateID
	generation    uint64

	physicsFactor float32
	stateFactor   float32
	bodies        []engine.FixedStepper

	initializers []Initializer
	earlyDone    map[Initializer]bool
	lateDone     map[Initializer]bool

	// Transitioned fires after every completed transition.
	Transitioned engine.EventWithArg[Transition]
}

type Option func(*Game)

func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.log = l }
}

func WithSession(s *Session) Option {
	return func(g *Game) { g.session = s }
}

func New(scene *engine.Scene, in *input.Aggregator, opts ...Option) *Game {
	g := &Game{
		log:           zap.NewNop(),
		scene:         scene,
		input:         in,
		registry:      NewRegistry(),
		states:        make(map[StateID]*state, len(States)),
		physicsFactor: 1,
		stateFactor:   1,
		earlyDone:     make(map[Initializer]bool),
		lateDone:      make(map[Initializer]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.session == nil {
		g.session = NewSession()
	}
	if g.input == nil {
		g.input = input.NewAggregator()
	}
	for _, id := range States {
		g.states[id] = &state{id: id}
	}
	g.log = g.log.With(zap.String("session", g.session.ID.String()))
	return g
}

func (g *Game) Scene() *engine.Scene       { return g.scene }
func (g *Game) Input() *input.Aggregator   { return g.input }
func (g *Game) Session() *Session          { return g.session }
func (g *Game) Log() *zap.Logger           { return g.log }
func (g *Game) Registry() *Registry        { return g.registry }
func (g *Game) State() StateID             { return g.current }
func (g *Game) PhysicsTickFactor() float32 { return g.physicsFactor }
func (g *Game) StateTickFactor() float32   { return g.stateFactor }

func clampFactor(f float32) float32 {
	return min(max(f, 0), 1)
}

func (g *Game) SetPhysicsTickFactor(f float32) { g.physicsFactor = clampFactor(f) }
func (g *Game) SetStateTickFactor(f float32)   { g.stateFactor = clampFactor(f) }

// Register adds p to the given states. Participants that implement
// Initializer also join bootstrap.
func (g *Game) Register(p Participant, states ...StateID) {
	g.registry.Register(p, Caps(states...))
	if in, ok := p.(Initializer); ok {
		g.AddInitializer(in)
	}
}

// Deregister removes p from the registry and from the active state's set.
func (g *Game) Deregister(p Participant) {
	g.registry.Deregister(p)
	if s, ok := g.states[g.current]; ok {
		s.remove(p)
	}
}

func (g *Game) AddInitializer(in Initializer) {
	for _, o := range g.initializers {
		if o == in {
			return
		}
	}
	g.initializers = append(g.initializers, in)
}

// RegisterBody adds a physics body stepped on every fixed tick.
func (g *Game) RegisterBody(b engine.FixedStepper) {
	for _, o := range g.bodies {
		if o == b {
			return
		}
	}
	g.bodies = append(g.bodies, b)
}

func (g *Game) DeregisterBody(b engine.FixedStepper) {
	for i, o := range g.bodies {
		if o == b {
			g.bodies = append(g.bodies[:i:i], g.bodies[i+1:]...)
			return
		}
	}
}

func (g *Game) BodyCount() int { return len(g.bodies) }

// Bootstrap runs EarlyInitialize on every initializer, then LateInitialize.
// Each phase runs at most once per initializer, so calling Bootstrap again
// only initializes newcomers. Failures are collected, not short-circuited.
func (g *Game) Bootstrap() error {
	var errs error
	for _, in := range append([]Initializer(nil), g.initializers...) {
		if g.earlyDone[in] {
			continue
		}
		g.earlyDone[in] = true
		if err := in.EarlyInitialize(g); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("early initialize %T: %w", in, err))
		}
	}
	for _, in := range append([]Initializer(nil), g.initializers...) {
		if g.lateDone[in] {
			continue
		}
		g.lateDone[in] = true
		if err := in.LateInitialize(g); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("late initialize %T: %w", in, err))
		}
	}
	if errs != nil {
		g.log.Error("bootstrap failed", zap.Error(errs))
		return errs
	}
	g.log.Info("bootstrap complete", zap.Int("initializers", len(g.initializers)))
	return nil
}

// SetState exits the current state and enters next. A request made while a
// transition is running is queued and applied as soon as that transition
// finishes, before SetState returns to its outermost caller.
func (g *Game) SetState(next StateID) {
	if g.transitioning {
		g.pending = append(g.pending, next)
		return
	}
	g.transitioning = true
	defer func() { g.transitioning = false }()

	g.apply(next)
	for len(g.pending) > 0 {
		n := g.pending[0]
		g.pending = g.pending[1:]
		g.apply(n)
	}
}

func (g *Game) apply(next StateID) {
	previous := g.current
	if s, ok := g.states[previous]; ok {
		s.exit(g, next)
	}
	g.current = next
	g.generation++
	if s, ok := g.states[next]; ok {
		s.enter(g, previous)
	}
	g.log.Debug("state transition",
		zap.Stringer("from", previous),
		zap.Stringer("to", next))
	g.Transitioned.Invoke(Transition{From: previous, To: next})
}

// Tick dispatches a frame tick to the current state.
func (g *Game) Tick(dt float32) {
	if s, ok := g.states[g.current]; ok {
		s.tick(g, dt*g.stateFactor)
	}
}

// FixedTick dispatches a fixed tick to the current state, then steps every
// registered body. Bodies are not stepped while the physics factor is zero.
func (g *Game) FixedTick(dt float32) {
	if s, ok := g.states[g.current]; ok {
		s.fixedTick(g, dt*g.stateFactor)
	}
	pdt := dt * g.physicsFactor
	if pdt <= 0 {
		return
	}
	for _, b := range append([]engine.FixedStepper(nil), g.bodies...) {
		b.FixedStep(pdt)
	}
}
