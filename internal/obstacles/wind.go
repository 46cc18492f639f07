package obstacles

import (
	"slices"

	"lander/internal/components"
	"lander/internal/curve"
	"lander/internal/engine"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Gust pushes every body inside its volume along its up axis, weaker with
// distance from its origin.
type Gust struct {
	Object  *engine.GameObject
	Trigger *components.TriggerVolume

	strength float32
	falloff  curve.Curve
	spawner  *WindSpawner
	timer    float32
	dt       float32
	active   bool
}

func newGust(cfg WindConfig) *Gust {
	g := &Gust{
		Object:   engine.NewGameObject("Gust"),
		Trigger:  components.NewTriggerVolume(cfg.Size, cfg.TargetMask),
		strength: cfg.Strength,
		falloff:  cfg.Falloff,
	}
	g.Object.AddComponent(g.Trigger)
	return g
}

func (g *Gust) Active() bool { return g.active }

// Direction is the unit vector the gust blows along.
func (g *Gust) Direction() rl.Vector3 {
	return physics.Rotate2D(rl.Vector3{Y: 1}, g.Object.Transform.Rotation)
}

// Push returns the velocity change for a body at pos over dt.
func (g *Gust) Push(pos rl.Vector3, dt float32) rl.Vector3 {
	dir := g.Direction()
	along := physics.Abs(rl.Vector3DotProduct(rl.Vector3Subtract(pos, g.Object.Transform.Position), dir))
	height := g.Trigger.Size.Y
	s := g.strength
	if height > 0 {
		s *= g.falloff.Evaluate(along / height)
	}
	return rl.Vector3Scale(dir, s*dt)
}

func (g *Gust) apply(hit *engine.GameObject) {
	body := engine.GetComponent[*components.KinematicBody](hit)
	if body == nil {
		return
	}
	body.SetVelocity(rl.Vector3Add(body.Velocity(), g.Push(hit.Transform.Position, g.dt)))
}

func (g *Gust) tick(dt float32) {
	g.timer += dt
	if g.timer > g.spawner.ActiveInterval {
		g.spawner.release(g)
		return
	}
	g.dt = dt
	g.Trigger.Check()
}

// WindSpawner alternates between quiet and gusting periods.
type WindSpawner struct {
	engine.BaseComponent
	InactiveInterval float32
	ActiveInterval   float32
	Offset           rl.Vector3
	Size             rl.Vector3
	Angle            float32

	ctrl  *Controller
	quiet float32
	gusts []*Gust
}

// NewWindSpawner copies the gust timing and shape from cfg.
func NewWindSpawner(cfg WindConfig) *WindSpawner {
	return &WindSpawner{
		InactiveInterval: cfg.InactiveInterval,
		ActiveInterval:   cfg.ActiveInterval,
		Offset:           cfg.Offset,
		Size:             cfg.Size,
		Angle:            cfg.Angle,
	}
}

// Gusts returns the live gusts of this spawner.
func (w *WindSpawner) Gusts() []*Gust {
	return slices.DeleteFunc(slices.Clone(w.gusts), func(g *Gust) bool { return !g.active || g.spawner != w })
}

func (w *WindSpawner) attach(c *Controller) {
	w.ctrl = c
	w.quiet = 0
}

func (w *WindSpawner) Tick(dt float32) {
	if w.ctrl == nil {
		return
	}
	for _, g := range slices.Clone(w.gusts) {
		if g.active && g.spawner == w {
			g.tick(dt)
		}
	}
	w.prune()

	if len(w.gusts) == 0 {
		w.quiet += dt
		if w.quiet > w.InactiveInterval {
			w.Spawn()
			w.quiet = 0
		}
	}
}

// Spawn starts a gust at the spawner.
func (w *WindSpawner) Spawn() *Gust {
	if w.ctrl == nil {
		return nil
	}
	g := w.ctrl.wind.Acquire()
	g.spawner = w
	g.timer = 0
	g.Object.Transform.Position = w.GetGameObject().Transform.Position
	g.Object.Transform.Rotation = w.Angle
	g.Trigger.Offset = w.Offset
	g.Trigger.Size = w.Size
	g.Trigger.OnTrigger.AddListener(g.apply)
	w.gusts = append(w.gusts, g)
	w.prune()
	return g
}

func (w *WindSpawner) release(g *Gust) {
	w.ctrl.wind.Release(g)
}

func (w *WindSpawner) prune() {
	w.gusts = slices.DeleteFunc(w.gusts, func(g *Gust) bool { return !g.active || g.spawner != w })
}

// Destroy returns every gust to the pool.
func (w *WindSpawner) Destroy() {
	if w.ctrl == nil {
		return
	}
	for _, g := range w.gusts {
		if g.active && g.spawner == w {
			w.release(g)
		}
	}
	w.gusts = nil
	w.ctrl.forget(w)
	w.ctrl = nil
}
