package obstacles

import (
	"slices"

	"lander/internal/engine"
	"lander/internal/game"
	"lander/internal/pool"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Splash is a short-lived effect left where a droplet burst.
type Splash struct {
	Object    *engine.GameObject
	Remaining float32
}

// Particles owns the splash pool and expires splashes during Play.
type Particles struct {
	game.BaseParticipant
	cfg      SplashConfig
	pool     *pool.Pool[*Splash]
	splashes []*Splash
	scene    *engine.Scene
}

// NewParticles creates the splash emitter. Its pool is built in EarlyInitialize.
func NewParticles(cfg SplashConfig) *Particles {
	return &Particles{cfg: cfg}
}

func (p *Particles) EarlyInitialize(g *game.Game) error {
	p.scene = g.Scene()
	p.pool = pool.New(p.cfg.PoolSize, pool.Hooks[*Splash]{
		Create: func() *Splash {
			return &Splash{Object: engine.NewGameObject("Splash")}
		},
		OnTake: func(s *Splash) {
			s.Object.Active = true
			p.scene.AddGameObject(s.Object)
		},
		OnReturn:  p.detach,
		OnDestroy: p.detach,
	}, pool.WithName("splashes"), pool.WithLogger(g.Log()))
	p.pool.Prewarm(p.cfg.PoolSize)
	return nil
}

func (p *Particles) LateInitialize(*game.Game) error { return nil }

func (p *Particles) detach(s *Splash) {
	s.Object.Active = false
	s.Remaining = 0
	if p.scene != nil {
		p.scene.RemoveGameObject(s.Object)
	}
}

func (p *Particles) Pool() *pool.Pool[*Splash] { return p.pool }

// Active returns the live splashes, oldest first.
func (p *Particles) Active() []*Splash {
	return p.pool.ActiveItems()
}

// Spawn places a splash at pos. It is a no-op before initialization.
func (p *Particles) Spawn(pos rl.Vector3) *Splash {
	if p.pool == nil {
		return nil
	}
	s := p.pool.Acquire()
	s.Object.Transform.Position = pos
	s.Remaining = p.cfg.Lifetime
	p.splashes = append(p.splashes, s)
	return s
}

func (p *Particles) OnTick(_ *game.Game, _ game.StateID, dt float32) {
	for _, s := range slices.Clone(p.splashes) {
		s.Remaining -= dt
		if s.Remaining <= 0 {
			p.pool.Release(s)
		}
	}
	p.splashes = slices.DeleteFunc(p.splashes, func(s *Splash) bool { return !s.Object.Active })
}
