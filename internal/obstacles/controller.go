// Package obstacles spawns the level's interactors: falling water droplets
// that knock bodies back and wind gusts that push them. Both are pooled.
package obstacles

import (
	"slices"

	"lander/internal/engine"
	"lander/internal/game"
	"lander/internal/pool"

	"go.uber.org/zap"
)

// Controller owns the interactor pools and ticks every spawner in the scene
// during Play.
type Controller struct {
	game.BaseParticipant
	cfg       Config
	particles *Particles

	game  *game.Game
	pools *pool.Set
	water *pool.Pool[*Droplet]
	wind  *pool.Pool[*Gust]

	waterSpawners []*WaterSpawner
	windSpawners  []*WindSpawner
	discoveries   int
}

// NewController returns a controller whose droplets burst into particles.
func NewController(cfg Config, particles *Particles) *Controller {
	return &Controller{cfg: cfg, particles: particles, pools: pool.NewSet()}
}

func (c *Controller) Pools() *pool.Set { return c.pools }

// Discoveries counts how many times spawners were looked up in the scene.
func (c *Controller) Discoveries() int { return c.discoveries }

func (c *Controller) WaterSpawners() []*WaterSpawner { return c.waterSpawners }
func (c *Controller) WindSpawners() []*WindSpawner   { return c.windSpawners }

func (c *Controller) EarlyInitialize(g *game.Game) error {
	c.game = g
	scene := g.Scene()

	c.water = pool.New(c.cfg.PoolSize, pool.Hooks[*Droplet]{
		Create: func() *Droplet { return newDroplet(c.cfg.Water) },
		OnTake: func(d *Droplet) {
			d.active = true
			d.Object.Active = true
			d.Body.Reset()
			scene.AddGameObject(d.Object)
			g.RegisterBody(d.Body)
		},
		OnReturn:  c.retireDroplet,
		OnDestroy: c.retireDroplet,
	}, pool.WithName("droplets"), pool.WithLogger(g.Log()))

	c.wind = pool.New(c.cfg.PoolSize, pool.Hooks[*Gust]{
		Create: func() *Gust { return newGust(c.cfg.Wind) },
		OnTake: func(gu *Gust) {
			gu.active = true
			gu.Object.Active = true
			scene.AddGameObject(gu.Object)
		},
		OnReturn:  c.retireGust,
		OnDestroy: c.retireGust,
	}, pool.WithName("gusts"), pool.WithLogger(g.Log()))

	c.water.Prewarm(c.cfg.PoolSize)
	c.wind.Prewarm(c.cfg.PoolSize)
	pool.Register(c.pools, c.water)
	pool.Register(c.pools, c.wind)
	return nil
}

func (c *Controller) LateInitialize(*game.Game) error { return nil }

func (c *Controller) retireDroplet(d *Droplet) {
	d.active = false
	d.Object.Active = false
	d.Body.Reset()
	d.Trigger.ClearEvents()
	if c.game != nil {
		c.game.DeregisterBody(d.Body)
		c.game.Scene().RemoveGameObject(d.Object)
	}
}

func (c *Controller) retireGust(gu *Gust) {
	gu.active = false
	gu.Object.Active = false
	gu.timer = 0
	gu.Trigger.ClearEvents()
	if c.game != nil {
		c.game.Scene().RemoveGameObject(gu.Object)
	}
}

// OnEnter looks up the spawners of the current level. Resuming from Pause
// keeps the spawners found before.
func (c *Controller) OnEnter(g *game.Game, _, previous game.StateID) {
	if previous == game.StatePause {
		return
	}
	c.discover(g.Scene())
	g.Log().Debug("obstacle spawners discovered",
		zap.Int("water", len(c.waterSpawners)),
		zap.Int("wind", len(c.windSpawners)))
}

func (c *Controller) discover(scene *engine.Scene) {
	c.discoveries++
	c.waterSpawners = engine.FindComponents[*WaterSpawner](scene)
	c.windSpawners = engine.FindComponents[*WindSpawner](scene)
	for _, w := range c.waterSpawners {
		w.attach(c)
	}
	for _, w := range c.windSpawners {
		w.attach(c)
	}
}

// forget drops a destroyed spawner.
func (c *Controller) forget(s any) {
	switch s := s.(type) {
	case *WaterSpawner:
		c.waterSpawners = slices.DeleteFunc(c.waterSpawners, func(w *WaterSpawner) bool { return w == s })
	case *WindSpawner:
		c.windSpawners = slices.DeleteFunc(c.windSpawners, func(w *WindSpawner) bool { return w == s })
	}
}

func (c *Controller) OnTick(_ *game.Game, _ game.StateID, dt float32) {
	for _, w := range slices.Clone(c.waterSpawners) {
		w.Tick(dt)
	}
	for _, w := range slices.Clone(c.windSpawners) {
		w.Tick(dt)
	}
}
