// Package player drives a kinematic body from input snapshots. The player is
// either Alive, flying and boosting under input, or Dead, spinning in place
// until it respawns at the session checkpoint.
package player

import (
	"errors"

	"lander/internal/components"
	"lander/internal/engine"
	"lander/internal/game"
	"lander/internal/input"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var ErrNoBody = errors.New("player has no kinematic body")

// State is the player's sub-state.
type State int

const (
	Alive State = iota
	Dead
)

func (s State) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

var (
	up    = rl.Vector3{Y: 1}
	right = rl.Vector3{X: 1}
)

// Controller is the player component. It must share its object with a
// KinematicBody.
type Controller struct {
	engine.BaseComponent
	Config Config

	body  *components.KinematicBody
	game  *game.Game
	state State

	movement      rl.Vector2
	facing        float32
	controlRate   float32
	charging      bool
	releaseQueued bool
	boostPower    float32
	lockFrames    int
	boosts        int
	energy        float32
	cooldown      int
	deadFrames    int
	lastVelocity  rl.Vector3

	observers  []Observer
	groundedID engine.ListenerID
	steppedID  engine.ListenerID
}

// NewController starts with full boosts and energy, facing right. The body is
// looked up on the owner during EarlyInitialize, so the object needs a
// KinematicBody.
func NewController(cfg Config) *Controller {
	return &Controller{
		Config: cfg,
		facing: 1,
		boosts: cfg.BoostCount,
		energy: cfg.EnergyMax,
	}
}

// Spawn builds a player object with its collider, body and controller.
func Spawn(cfg Config, bodyCfg components.BodyConfig, pos rl.Vector3) (*engine.GameObject, *Controller) {
	obj := engine.NewGameObject("Player")
	obj.Tags = append(obj.Tags, "player")
	obj.Transform.Position = pos
	obj.AddComponent(components.NewBoxCollider(bodyCfg.Size, components.LayerPlayer))
	obj.AddComponent(components.NewKinematicBody(bodyCfg))
	c := NewController(cfg)
	obj.AddComponent(c)
	return obj, c
}

func (p *Controller) State() State                    { return p.state }
func (p *Controller) Body() *components.KinematicBody { return p.body }
func (p *Controller) Energy() float32                 { return p.energy }
func (p *Controller) Boosts() int                     { return p.boosts }
func (p *Controller) BoostPower() float32             { return p.boostPower }
func (p *Controller) ControlRate() float32            { return p.controlRate }
func (p *Controller) Charging() bool                  { return p.charging }
func (p *Controller) Locked() bool                    { return p.lockFrames > 0 }

func (p *Controller) AddObserver(o Observer) {
	p.observers = append(p.observers, o)
	o.OnBoostAmountChange(p.boosts, p.Config.BoostCount)
	o.OnEnergyChange(p.energy, p.Config.EnergyMax)
	o.OnStateChange(p.state, p.state)
}

func (p *Controller) RemoveObserver(o Observer) {
	for i, x := range p.observers {
		if x == o {
			p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
			return
		}
	}
}

func (p *Controller) EarlyInitialize(g *game.Game) error {
	p.game = g
	p.body = engine.GetComponent[*components.KinematicBody](p.GetGameObject())
	if p.body == nil {
		return ErrNoBody
	}
	g.RegisterBody(p.body)
	p.groundedID = p.body.OnGrounded.AddListener(p.refill)
	p.steppedID = p.body.OnStepped.AddListener(p.notifyVelocity)
	g.Input().Subscribe(p)
	return nil
}

func (p *Controller) LateInitialize(*game.Game) error { return nil }

// Destroy detaches the controller from the game and the input source.
func (p *Controller) Destroy() {
	if p.game == nil {
		return
	}
	p.game.Input().Unsubscribe(p)
	p.game.Deregister(p)
	if p.body != nil {
		p.game.DeregisterBody(p.body)
		p.body.OnGrounded.RemoveListener(p.groundedID)
		p.body.OnStepped.RemoveListener(p.steppedID)
	}
	p.game = nil
}

func (p *Controller) OnEnter(g *game.Game, state, _ game.StateID) {
	if state == game.StateStart {
		p.respawn(g)
	}
}

func (p *Controller) OnExit(_ *game.Game, state, _ game.StateID) {
	if state == game.StatePlay && p.body != nil {
		p.body.SetControlAcceleration(rl.Vector3Zero())
	}
}

func (p *Controller) OnTick(_ *game.Game, state game.StateID, dt float32) {
	if state != game.StatePlay || p.state != Alive {
		return
	}
	if p.lockFrames > 0 {
		p.lockFrames--
	}
	if p.charging {
		if p.energy > 0 {
			p.boostPower = rl.Clamp(p.boostPower+dt*p.Config.BoostAngleSpeed, 0, 1)
			p.setEnergy(p.energy - dt*p.Config.BoostEnergyDrain)
		}
		p.notifyDirection(p.boostDirection())
	}
	if p.releaseQueued {
		p.releaseQueued = false
		p.boost()
	}
}

func (p *Controller) OnFixedTick(g *game.Game, state game.StateID, dt float32) {
	if state != game.StatePlay || p.body == nil {
		return
	}
	switch p.state {
	case Alive:
		p.updateControl(dt)
		p.updateEnergy(dt)
		p.captureCheckpoint(g)
		p.checkDeath(g)
	case Dead:
		p.tickDead(g)
	}
}

// notifyVelocity runs after the body stepped, so observers see the velocity
// of the step just taken.
func (p *Controller) notifyVelocity() {
	if v := p.body.Velocity(); v != p.lastVelocity {
		p.lastVelocity = v
		for _, o := range p.observers {
			o.OnVelocityChange(v)
		}
	}
}

// Notify consumes an input snapshot. Input is ignored while dead and while
// a boost has locked control.
func (p *Controller) Notify(s input.Snapshot) {
	if p.state != Alive || p.lockFrames > 0 {
		return
	}
	if physics.Sign(s.Movement.X) != physics.Sign(p.movement.X) {
		p.controlRate = 0
	}
	p.movement = s.Movement
	if s.Movement.X != 0 {
		p.facing = physics.Sign(s.Movement.X)
	}

	switch s.Boost {
	case input.BoostPressed:
		if !p.charging && p.canBoost() {
			p.charging = true
			p.boostPower = 0
		}
	case input.BoostReleased:
		if p.charging {
			p.charging = false
			p.releaseQueued = true
		}
	}
}

func (p *Controller) canBoost() bool {
	return p.body != nil && (p.body.Grounded() || p.boosts > 0)
}

func (p *Controller) side() float32 {
	if s := physics.Sign(p.movement.X); s != 0 {
		return s
	}
	if p.body != nil {
		if s := physics.Sign(p.body.Velocity().X); s != 0 {
			return s
		}
	}
	return p.facing
}

func (p *Controller) boostDirection() rl.Vector3 {
	c := p.Config
	blend := lerp(c.BoostMinDirection, c.BoostMaxDirection, c.BoostDirectionCurve.Evaluate(p.boostPower))
	return physics.SafeNormalize(rl.Vector3Lerp(up, rl.Vector3Scale(right, p.side()), blend))
}

// boost applies the charged impulse. Only airborne boosts use up a charge.
func (p *Controller) boost() {
	defer func() {
		p.boostPower = 0
		p.notifyDirection(rl.Vector3Zero())
	}()

	if !p.body.Grounded() {
		if p.boosts <= 0 {
			return
		}
		p.setBoosts(p.boosts - 1)
	}
	magnitude := lerp(0, p.Config.BoostMoveSpeed, p.boostPower)
	p.body.AddAcceleration(rl.Vector3Scale(p.boostDirection(), magnitude))
	p.body.SetControlAcceleration(rl.Vector3Zero())

	p.movement = rl.Vector2{}
	p.controlRate = 0
	p.lockFrames = p.Config.BoostLockFrames
}

func (p *Controller) updateControl(dt float32) {
	c := p.Config
	if p.lockFrames > 0 || p.movement.X == 0 || p.energy <= 0 {
		p.body.SetControlAcceleration(rl.Vector3Zero())
		if p.movement.X == 0 {
			p.controlRate = 0
		}
		return
	}

	side := rl.Vector3Scale(right, physics.Sign(p.movement.X))
	target := physics.SafeNormalize(rl.Vector3Lerp(up, side, c.FlightDirectionControl))
	dir := rl.Vector3Lerp(side, target, c.Lift.Evaluate(p.controlRate))
	ca := rl.Vector3Lerp(rl.Vector3Scale(c.ControlAcceleration, 0.1), c.ControlAcceleration, c.Jolt.Evaluate(p.controlRate))
	p.body.SetControlAcceleration(rl.Vector3Multiply(ca, dir))

	p.controlRate = rl.Clamp(p.controlRate+dt, 0, 1)
}

func (p *Controller) updateEnergy(dt float32) {
	switch {
	case p.movement.X != 0 && p.lockFrames == 0 && p.energy > 0:
		p.setEnergy(p.energy - dt*p.Config.EnergyDrain)
	case p.body.Grounded() && !p.charging:
		p.setEnergy(p.energy + dt*p.Config.EnergyRecovery)
	}
}

// contactBox is the body box grown by the skin width, so surfaces the body
// rests against count as touching.
func (p *Controller) contactBox() physics.AABB {
	return p.body.Bounds().Expand(p.body.Config.SkinWidth)
}

// captureCheckpoint stores the spawn point of a checkpoint the grounded
// player is standing on.
func (p *Controller) captureCheckpoint(g *game.Game) {
	w := p.World()
	if w == nil || !p.body.Grounded() {
		return
	}
	owner := p.GetGameObject()
	box := p.contactBox()
	for _, obj := range w.Overlapping(box.Center(), box.Size(), p.Config.CheckpointMask, owner) {
		if cp := engine.GetComponent[*components.Checkpoint](obj); cp != nil {
			g.Session().SetCheckpoint(cp.SpawnPosition())
			return
		}
	}
}

func (p *Controller) checkDeath(g *game.Game) {
	if p.cooldown > 0 {
		p.cooldown--
		return
	}
	speed := rl.Vector3Length(p.body.ProvisionalVelocity())
	if speed <= p.Config.DeathSpeed {
		return
	}
	w := p.World()
	if w == nil {
		return
	}
	owner := p.GetGameObject()
	box := p.contactBox()
	hit, ok := w.OverlapBox(box.Center(), box.Size(), 0, p.Config.ObstacleMask, owner)
	if !ok {
		return
	}
	g.Log().Debug("player died",
		zap.String("obstacle", hit.Name),
		zap.Float32("speed", speed))
	p.die(g)
}

func (p *Controller) die(g *game.Game) {
	p.charging = false
	p.releaseQueued = false
	p.boostPower = 0
	p.deadFrames = 0
	p.body.SetControlAcceleration(rl.Vector3Zero())
	p.body.Freeze(true)
	g.Session().RecordDeath()
	p.setState(Dead)
}

func (p *Controller) tickDead(g *game.Game) {
	owner := p.GetGameObject()
	owner.Transform.Rotation += p.Config.DeathSpin
	p.deadFrames++
	if p.deadFrames >= p.Config.DeathFrames {
		p.respawn(g)
	}
}

// respawn returns the player to the checkpoint, fully restored.
func (p *Controller) respawn(g *game.Game) {
	owner := p.GetGameObject()
	if owner == nil || p.body == nil {
		return
	}
	g.Session().Respawn(owner)
	owner.Transform.Rotation = 0
	p.body.Reset()
	p.body.Freeze(false)
	p.notifyVelocity()

	p.movement = rl.Vector2{}
	p.controlRate = 0
	p.charging = false
	p.releaseQueued = false
	p.boostPower = 0
	p.lockFrames = 0
	p.setEnergy(p.Config.EnergyMax)
	p.setBoosts(p.Config.BoostCount)
	p.setState(Alive)
}

func (p *Controller) refill() {
	p.setBoosts(p.Config.BoostCount)
}

func (p *Controller) setState(to State) {
	from := p.state
	p.state = to
	if to == Alive {
		p.cooldown = p.Config.CooldownFrames
	}
	for _, o := range p.observers {
		o.OnStateChange(from, to)
	}
}

func (p *Controller) setEnergy(e float32) {
	e = min(max(e, 0), p.Config.EnergyMax)
	if e == p.energy {
		return
	}
	p.energy = e
	for _, o := range p.observers {
		o.OnEnergyChange(e, p.Config.EnergyMax)
	}
}

func (p *Controller) setBoosts(n int) {
	if n == p.boosts {
		return
	}
	p.boosts = n
	for _, o := range p.observers {
		o.OnBoostAmountChange(n, p.Config.BoostCount)
	}
}

func (p *Controller) notifyDirection(dir rl.Vector3) {
	for _, o := range p.observers {
		o.OnBoostDirectionChange(dir)
	}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
