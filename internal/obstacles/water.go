package obstacles

import (
	"slices"

	"lander/internal/components"
	"lander/internal/engine"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Droplet falls under its own gravity and knocks back the first body it
// touches, then bursts.
type Droplet struct {
	Object  *engine.GameObject
	Body    *components.KinematicBody
	Trigger *components.TriggerVolume

	strength float32
	spawner  *WaterSpawner
	active   bool
}

func newDroplet(cfg WaterConfig) *Droplet {
	bodyCfg := components.DefaultBodyConfig()
	bodyCfg.Size = cfg.Size
	bodyCfg.Gravity = cfg.Gravity
	bodyCfg.CollisionMask = cfg.CollisionMask
	bodyCfg.SkinWidth = min(bodyCfg.SkinWidth, cfg.Size.Y/4)
	bodyCfg.ContactOffset = min(bodyCfg.ContactOffset, bodyCfg.SkinWidth/2)

	d := &Droplet{
		Object:   engine.NewGameObject("Droplet"),
		Body:     components.NewKinematicBody(bodyCfg),
		Trigger:  components.NewTriggerVolume(cfg.Size, cfg.TargetMask),
		strength: cfg.Strength,
	}
	d.Object.AddComponent(d.Body)
	d.Object.AddComponent(d.Trigger)
	return d
}

func (d *Droplet) Active() bool { return d.active }

// Knockback is the impulse a droplet moving at own applies to a body moving
// at target. A falling target has its direction reflected about the side of
// the droplet it is on.
func Knockback(target, own, targetPos, ownPos rl.Vector3, strength float32) rl.Vector3 {
	dir := physics.SafeNormalize(target)
	if target.Y < 0 {
		side := physics.Sign(targetPos.X - ownPos.X)
		dir = rl.Vector3Reflect(dir, rl.Vector3{Y: side})
	}
	force := rl.Vector3Lerp(rl.Vector3Negate(dir), physics.SafeNormalize(own), 0.5)
	return rl.Vector3Scale(force, strength)
}

func (d *Droplet) burst(hit *engine.GameObject) {
	if !d.active {
		return
	}
	if body := engine.GetComponent[*components.KinematicBody](hit); body != nil {
		body.AddAcceleration(Knockback(
			body.Velocity(), d.Body.Velocity(),
			hit.Transform.Position, d.Object.Transform.Position,
			d.strength))
	}
	d.pop()
}

// pop leaves a splash behind and returns the droplet to its pool.
func (d *Droplet) pop() {
	if d.spawner == nil || d.spawner.ctrl == nil {
		return
	}
	if p := d.spawner.ctrl.particles; p != nil {
		p.Spawn(d.Object.Transform.Position)
	}
	d.spawner.release(d)
}

// WaterSpawner drops a droplet every Interval seconds. Droplets burst on
// the first body they touch or when they land.
type WaterSpawner struct {
	engine.BaseComponent
	Interval float32

	ctrl     *Controller
	timer    float32
	droplets []*Droplet
}

// NewWaterSpawner drops a droplet every interval seconds once attached.
func NewWaterSpawner(interval float32) *WaterSpawner {
	return &WaterSpawner{Interval: interval}
}

// Droplets returns the live droplets of this spawner.
func (w *WaterSpawner) Droplets() []*Droplet {
	return slices.DeleteFunc(slices.Clone(w.droplets), func(d *Droplet) bool { return !d.active || d.spawner != w })
}

func (w *WaterSpawner) attach(c *Controller) {
	w.ctrl = c
	w.timer = 0
}

func (w *WaterSpawner) Tick(dt float32) {
	if w.ctrl == nil {
		return
	}
	w.timer += dt
	if w.timer > w.Interval {
		w.Spawn()
		w.timer = 0
	}
	for _, d := range slices.Clone(w.droplets) {
		if !d.active || d.spawner != w {
			continue
		}
		d.Trigger.Check()
		// Droplets that reach the ground without hitting anything burst too.
		if d.active && d.Body.Grounded() {
			d.pop()
		}
	}
	w.prune()
}

// Spawn takes a droplet from the pool and drops it from the spawner.
func (w *WaterSpawner) Spawn() *Droplet {
	if w.ctrl == nil {
		return nil
	}
	d := w.ctrl.water.Acquire()
	d.spawner = w
	d.Object.Transform.Position = w.GetGameObject().Transform.Position
	d.Trigger.OnEnter.AddListener(d.burst)
	w.droplets = append(w.droplets, d)
	w.prune()
	return d
}

func (w *WaterSpawner) release(d *Droplet) {
	w.ctrl.water.Release(d)
}

func (w *WaterSpawner) prune() {
	w.droplets = slices.DeleteFunc(w.droplets, func(d *Droplet) bool { return !d.active || d.spawner != w })
}

// Destroy returns every droplet to the pool.
func (w *WaterSpawner) Destroy() {
	if w.ctrl == nil {
		return
	}
	for _, d := range w.droplets {
		if d.active && d.spawner == w {
			w.release(d)
		}
	}
	w.droplets = nil
	w.ctrl.forget(w)
	w.ctrl = nil
}
