package components

import (
	"fmt"

	"lander/internal/curve"
	"lander/internal/engine"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	dragYThreshold      = 0.01
	dragSnapThreshold   = 0.001
	externalCutoff      = 0.01
	velocitySnap        = 0.01
	groundNudge         = 0.1
	castTolerance       = 1e-4
	maxDragRate         = 2.0
	neutralDragRate     = 1.0
	defaultCastCount    = 3
	minimumCastCount    = 2
	depenetrationPasses = 4
)

// BodyConfig is the per-instance tuning of a KinematicBody.
type BodyConfig struct {
	Size          rl.Vector3       `yaml:"size" json:"size"`
	Gravity       rl.Vector3       `yaml:"gravity" json:"gravity"`
	MaxVelocity   float32          `yaml:"max_velocity" json:"maxVelocity"`
	MinDrag       float32          `yaml:"min_drag" json:"minDrag"`
	MaxDrag       float32          `yaml:"max_drag" json:"maxDrag"`
	NumOfCasts    int              `yaml:"num_of_casts" json:"numOfCasts"`
	SkinWidth     float32          `yaml:"skin_width" json:"skinWidth"`
	ContactOffset float32          `yaml:"contact_offset" json:"contactOffset"`
	Falloff       curve.Curve      `yaml:"falloff" json:"falloff"`
	FalloffSpeed  float32          `yaml:"falloff_speed" json:"falloffSpeed"`
	CollisionMask engine.LayerMask `yaml:"collision_mask" json:"collisionMask"`
}

// DefaultBodyConfig is a unit box under earth gravity.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		Size:          rl.Vector3{X: 1, Y: 1},
		Gravity:       rl.Vector3{Y: -9.81},
		MaxVelocity:   20,
		MinDrag:       0.05,
		MaxDrag:       0.1,
		NumOfCasts:    defaultCastCount,
		SkinWidth:     0.1,
		ContactOffset: 0.01,
		Falloff:       curve.Falloff(),
		FalloffSpeed:  2,
		CollisionMask: engine.Layers(LayerDefault, LayerGround, LayerObstacle),
	}
}

// Validate reports the first out-of-range option.
func (c BodyConfig) Validate() error {
	switch {
	case c.Size.X <= 0 || c.Size.Y <= 0:
		return fmt.Errorf("size must be positive, got %v", c.Size)
	case c.NumOfCasts < minimumCastCount:
		return fmt.Errorf("num_of_casts must be at least %d, got %d", minimumCastCount, c.NumOfCasts)
	case c.MaxVelocity <= 0:
		return fmt.Errorf("max_velocity must be positive, got %v", c.MaxVelocity)
	case c.MinDrag < 0 || c.MinDrag > c.MaxDrag:
		return fmt.Errorf("drag range %v..%v is invalid", c.MinDrag, c.MaxDrag)
	case c.SkinWidth <= 0:
		return fmt.Errorf("skin_width must be positive, got %v", c.SkinWidth)
	case c.ContactOffset < 0 || c.ContactOffset >= c.SkinWidth:
		return fmt.Errorf("contact_offset must be in [0, skin_width), got %v", c.ContactOffset)
	case c.FalloffSpeed < 0:
		return fmt.Errorf("falloff_speed must not be negative, got %v", c.FalloffSpeed)
	}
	if err := c.Falloff.Validate(); err != nil {
		return fmt.Errorf("falloff: %w", err)
	}
	return nil
}

// KinematicBody integrates control, external and gravity acceleration into a
// velocity and resolves it against the collision world with per-axis ray fans.
// The transform position is the center of a box of Config.Size.
type KinematicBody struct {
	engine.BaseComponent
	Config BodyConfig

	// OnGrounded and OnUngrounded fire once per grounded edge.
	OnGrounded   engine.Event
	OnUngrounded engine.Event
	// OnStepped fires after every step that moved the body.
	OnStepped engine.Event

	velocity     rl.Vector3
	provisional  rl.Vector3
	impulse      rl.Vector3
	external     rl.Vector3
	control      rl.Vector3
	dragRate     float32
	falloffTime  float32
	grounded     bool
	groundNormal rl.Vector3
	skin         rl.Vector2
	frozen       bool
}

// NewKinematicBody creates a body at rest with neutral drag. Fewer than two
// casts per side are raised to two.
func NewKinematicBody(cfg BodyConfig) *KinematicBody {
	if cfg.NumOfCasts < minimumCastCount {
		cfg.NumOfCasts = minimumCastCount
	}
	b := &KinematicBody{Config: cfg}
	b.dragRate = neutralDragRate
	b.resetSkin()
	return b
}

func (b *KinematicBody) Velocity() rl.Vector3 { return b.velocity }

// ProvisionalVelocity is the velocity produced by the last acceleration phase,
// before collision resolution zeroed any axis.
func (b *KinematicBody) ProvisionalVelocity() rl.Vector3 { return b.provisional }

func (b *KinematicBody) Impulse() rl.Vector3              { return b.impulse }
func (b *KinematicBody) ExternalAcceleration() rl.Vector3 { return b.external }
func (b *KinematicBody) ControlAcceleration() rl.Vector3  { return b.control }
func (b *KinematicBody) DragRate() float32                { return b.dragRate }
func (b *KinematicBody) Grounded() bool                   { return b.grounded }
func (b *KinematicBody) GroundNormal() rl.Vector3         { return b.groundNormal }
func (b *KinematicBody) SkinWidth() rl.Vector2            { return b.skin }
func (b *KinematicBody) Frozen() bool                     { return b.frozen }

func (b *KinematicBody) SetControlAcceleration(a rl.Vector3) { b.control = a }

// SetVelocity overrides the current velocity. Area effects such as wind use
// it. The magnitude is capped at MaxVelocity.
func (b *KinematicBody) SetVelocity(v rl.Vector3) {
	if b.Config.MaxVelocity > 0 {
		v = rl.Vector3ClampValue(v, 0, b.Config.MaxVelocity)
	}
	b.velocity = v
}

// Freeze stops the body from stepping until unfrozen.
func (b *KinematicBody) Freeze(frozen bool) { b.frozen = frozen }

// AddAcceleration queues an external impulse. Residual velocity is discarded
// and drag starts ramping from its minimum again.
func (b *KinematicBody) AddAcceleration(a rl.Vector3) {
	b.impulse = rl.Vector3Add(b.impulse, a)
	b.dragRate = 0
	b.falloffTime = 0
	b.velocity = rl.Vector3Zero()
}

// Reset clears every accumulator. The grounded flag is cleared without
// notifying listeners.
func (b *KinematicBody) Reset() {
	b.velocity = rl.Vector3Zero()
	b.provisional = rl.Vector3Zero()
	b.impulse = rl.Vector3Zero()
	b.external = rl.Vector3Zero()
	b.control = rl.Vector3Zero()
	b.falloffTime = 0
	b.dragRate = neutralDragRate
	b.grounded = false
	b.groundNormal = rl.Vector3Zero()
	b.resetSkin()
}

func (b *KinematicBody) resetSkin() {
	b.skin = rl.Vector2{X: b.Config.SkinWidth, Y: b.Config.SkinWidth}
}

// Bounds returns the body box at its current position.
func (b *KinematicBody) Bounds() physics.AABB {
	g := b.GetGameObject()
	if g == nil {
		return physics.NewAABBFromCenter(rl.Vector3{}, b.Config.Size)
	}
	return physics.NewAABBFromCenter(g.Transform.Position, b.Config.Size)
}

// FixedStep advances the body by dt.
func (b *KinematicBody) FixedStep(dt float32) {
	g := b.GetGameObject()
	if g == nil || b.frozen || dt <= 0 {
		return
	}
	wasGrounded := b.grounded

	b.provisional = b.evaluateAcceleration(dt)
	v, disp := b.evaluateCollision(b.provisional, dt)
	b.velocity = v
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, disp)
	b.depenetrate()

	if b.grounded {
		b.velocity.Y = 0
	}

	switch {
	case b.grounded && !wasGrounded:
		b.OnGrounded.Invoke()
	case !b.grounded && wasGrounded:
		b.OnUngrounded.Invoke()
	}
	b.OnStepped.Invoke()
}

func (b *KinematicBody) evaluateDrag(v rl.Vector3, dt float32) rl.Vector3 {
	speed := rl.Vector3Length(v)
	coefficient := rl.Lerp(b.Config.MinDrag, b.Config.MaxDrag, b.dragRate/maxDragRate)

	drag := rl.Vector3Scale(physics.SafeNormalize(v), 0.5*speed*speed*coefficient)
	if physics.Abs(drag.Y) < dragYThreshold {
		drag.Y = 0
	}
	drag = physics.SnapZero(drag, dragSnapThreshold)

	b.dragRate = rl.Clamp(b.dragRate+dt, 0, maxDragRate)
	return drag
}

func (b *KinematicBody) evaluateExternal(dt float32) rl.Vector3 {
	if b.impulse == (rl.Vector3{}) {
		b.external = rl.Vector3Zero()
		return b.external
	}
	b.external = rl.Vector3Scale(b.impulse, b.Config.Falloff.Evaluate(b.falloffTime))
	b.falloffTime += dt * b.Config.FalloffSpeed
	if rl.Vector3Length(b.external) < externalCutoff {
		b.impulse = rl.Vector3Zero()
		b.external = rl.Vector3Zero()
		b.falloffTime = 0
	}
	return b.external
}

func (b *KinematicBody) evaluateAcceleration(dt float32) rl.Vector3 {
	drag := b.evaluateDrag(b.velocity, dt)
	external := b.evaluateExternal(dt)

	a := rl.Vector3Subtract(rl.Vector3Add(b.control, external), drag)
	if !b.grounded {
		a = rl.Vector3Add(a, b.Config.Gravity)
	}

	next := rl.Vector3Add(b.velocity, rl.Vector3Scale(a, dt))
	limit := b.Config.MaxVelocity
	if limit > 0 && rl.Vector3Length(next) > limit {
		if rl.Vector3Length(b.velocity) <= limit {
			return b.velocity
		}
		// Already past the limit: pull back to it instead of stalling.
		return rl.Vector3ClampValue(next, 0, limit)
	}
	return next
}

type axis int

const (
	axisX axis = iota
	axisY
)

type castHit struct {
	gap    float32 // distance from the body edge to the surface
	normal rl.Vector3
	object *engine.GameObject
}

// cast fires NumOfCasts parallel rays from the body's leading edge on the
// given axis and returns the nearest hit within reach of the edge.
func (b *KinematicBody) cast(world engine.WorldAccess, center rl.Vector3, ax axis, sign, reach float32) (castHit, bool) {
	if world == nil || sign == 0 {
		return castHit{}, false
	}
	cfg := &b.Config
	half := rl.Vector3{X: physics.Abs(cfg.Size.X) / 2, Y: physics.Abs(cfg.Size.Y) / 2}
	n := max(cfg.NumOfCasts, minimumCastCount)

	var main, cross float32
	var dir rl.Vector3
	if ax == axisX {
		main, cross = half.X, half.Y
		dir = rl.Vector3{X: sign}
	} else {
		main, cross = half.Y, half.X
		dir = rl.Vector3{Y: sign}
	}
	inset := min(cfg.SkinWidth, main)
	corner := min(2*cfg.ContactOffset, cross)
	step := (2*cross - 2*corner) / float32(n-1)

	best := castHit{gap: reach + castTolerance}
	found := false
	for i := 0; i < n; i++ {
		offset := -cross + corner + step*float32(i)
		origin := center
		if ax == axisX {
			origin.X += sign * (main - inset)
			origin.Y += offset
		} else {
			origin.Y += sign * (main - inset)
			origin.X += offset
		}
		hit, ok := world.Raycast(origin, dir, inset+reach+castTolerance, cfg.CollisionMask, b.GetGameObject())
		if !ok {
			continue
		}
		gap := hit.Distance - inset
		if !found || gap < best.gap {
			best = castHit{gap: gap, normal: hit.Normal, object: hit.GameObject}
			found = true
		}
	}
	return best, found
}

// evaluateCollision resolves v against the world, horizontal axis first. It
// returns the resolved velocity and the displacement to apply this step.
func (b *KinematicBody) evaluateCollision(v rl.Vector3, dt float32) (rl.Vector3, rl.Vector3) {
	world := b.World()
	pos := b.GetGameObject().Transform.Position
	offset := b.Config.ContactOffset
	disp := rl.Vector3{Z: v.Z * dt}

	if physics.Abs(v.X) <= velocitySnap {
		v.X = 0
	}

	hitX := false
	if v.X != 0 {
		sx := physics.Sign(v.X)
		if hit, ok := b.cast(world, pos, axisX, sx, b.skin.X+physics.Abs(v.X)*dt); ok {
			travel := max(0, hit.gap-offset)
			disp.X = sx * travel
			b.skin.X = max(0, hit.gap-travel)
			v.X = 0
			hitX = true
		} else {
			b.skin.X = b.Config.SkinWidth
		}
	}
	if !hitX {
		disp.X = v.X * dt
	}

	sy := physics.Sign(v.Y)
	if sy == 0 {
		sy = -1
	}
	probe := rl.Vector3{X: pos.X + disp.X, Y: pos.Y, Z: pos.Z}
	if hit, ok := b.cast(world, probe, axisY, sy, b.skin.Y+physics.Abs(v.Y)*dt); ok {
		travel := max(0, hit.gap-offset)
		disp.Y = sy * travel
		b.skin.Y = max(0, hit.gap-travel)
		v.Y = 0
		if sy < 0 {
			b.grounded = true
			b.groundNormal = hit.normal
			v.X = hit.normal.X * groundNudge
			if !hitX {
				disp.X = v.X * dt
			}
		} else {
			b.grounded = false
		}
	} else {
		b.skin.Y = b.Config.SkinWidth
		b.grounded = false
		b.groundNormal = rl.Vector3Zero()
		disp.Y = v.Y * dt
	}

	return v, disp
}

// depenetrate pushes the body out of any collider it still overlaps and
// cancels velocity pointing into the push.
func (b *KinematicBody) depenetrate() {
	world := b.World()
	g := b.GetGameObject()
	if world == nil {
		return
	}
	for pass := 0; pass < depenetrationPasses; pass++ {
		box := b.Bounds()
		overlaps := world.Overlapping(box.Center(), b.Config.Size, b.Config.CollisionMask, g)
		if len(overlaps) == 0 {
			return
		}
		for _, other := range overlaps {
			col := engine.GetComponent[engine.Collider](other)
			if col == nil {
				continue
			}
			c, s := col.Bounds()
			mtv := b.Bounds().Resolve(physics.NewAABBFromCenter(c, s))
			g.Transform.Position = rl.Vector3Add(g.Transform.Position, mtv)
			if mtv.X*b.velocity.X < 0 {
				b.velocity.X = 0
			}
			if mtv.Y*b.velocity.Y < 0 {
				b.velocity.Y = 0
			}
		}
	}
}

var _ engine.FixedStepper = (*KinematicBody)(nil)
