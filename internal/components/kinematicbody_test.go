package components

import (
	"math"
	"testing"

	"lander/internal/engine"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixedDt = float32(0.02)

func newBodyScene(cfg BodyConfig, pos rl.Vector3, withWorld bool) (*engine.Scene, *KinematicBody) {
	scene := engine.NewScene("test")
	if withWorld {
		physics.NewPhysicsWorld(4).Attach(scene)
	}
	g := engine.NewGameObject("body")
	g.Transform.Position = pos
	body := NewKinematicBody(cfg)
	g.AddComponent(body)
	g.AddComponent(NewBoxCollider(cfg.Size, LayerPlayer))
	scene.AddGameObject(g)
	return scene, body
}

func addStatic(scene *engine.Scene, center, size rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject("ground")
	g.Transform.Position = center
	g.AddComponent(NewStaticBoxCollider(size, LayerGround))
	scene.AddGameObject(g)
	return g
}

// groundAt adds a wide slab whose top surface sits at y = top.
func groundAt(scene *engine.Scene, top float32) *engine.GameObject {
	return addStatic(scene, rl.Vector3{Y: top - 0.5}, rl.Vector3{X: 40, Y: 1})
}

func bottom(b *KinematicBody) float32 { return b.Bounds().Min.Y }

func TestFreeFallApproachesTerminalVelocity(t *testing.T) {
	_, body := newBodyScene(DefaultBodyConfig(), rl.Vector3{Y: 100}, false)

	prev := float32(0)
	for i := 0; i < 1000; i++ {
		body.FixedStep(fixedDt)
		vy := body.Velocity().Y
		require.LessOrEqual(t, vy, prev+1e-6, "step %d: vertical velocity must not turn back", i)
		require.LessOrEqual(t, rl.Vector3Length(body.Velocity()), body.Config.MaxVelocity)
		prev = vy
	}

	cfg := body.Config
	terminal := float32(math.Sqrt(float64(2 * -cfg.Gravity.Y / cfg.MaxDrag)))
	assert.InDelta(t, -terminal, body.Velocity().Y, 0.05)
}

func TestMaxVelocityRejectsStep(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.MaxVelocity = 5
	_, body := newBodyScene(cfg, rl.Vector3{Y: 100}, false)

	for i := 0; i < 300; i++ {
		body.FixedStep(fixedDt)
		require.LessOrEqual(t, rl.Vector3Length(body.Velocity()), float32(5))
	}
	assert.Greater(t, rl.Vector3Length(body.Velocity()), float32(4.5))

	capped := body.Velocity()
	body.FixedStep(fixedDt)
	assert.Equal(t, capped, body.Velocity(), "a step past the limit keeps the prior velocity")
}

func TestSetVelocityIsCapped(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.MaxVelocity = 5
	_, body := newBodyScene(cfg, rl.Vector3{Y: 100}, false)

	body.SetVelocity(rl.Vector3{X: 6})
	assert.InDelta(t, 5, body.Velocity().X, 1e-5)
	assert.Zero(t, body.Velocity().Y)
}

func TestOverspeedBodyKeepsIntegrating(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.MaxVelocity = 10
	_, body := newBodyScene(cfg, rl.Vector3{Y: 100}, false)
	body.SetVelocity(rl.Vector3{X: 6})
	body.Config.MaxVelocity = 5

	for i := 0; i < 200; i++ {
		body.FixedStep(fixedDt)
		require.LessOrEqual(t, rl.Vector3Length(body.Velocity()), float32(5)+1e-4, "step %d", i)
	}
	assert.Less(t, body.Velocity().Y, float32(0), "gravity still applies")
	assert.Less(t, body.GetGameObject().Transform.Position.Y, float32(99.5))
}

func TestAddAccelerationDiscardsResidualVelocity(t *testing.T) {
	_, body := newBodyScene(DefaultBodyConfig(), rl.Vector3{Y: 50}, false)
	body.SetVelocity(rl.Vector3{X: 3, Y: -4})

	a := rl.Vector3{X: 10, Y: 20}
	body.AddAcceleration(a)
	assert.Equal(t, rl.Vector3Zero(), body.Velocity())
	assert.Zero(t, body.DragRate())

	body.FixedStep(fixedDt)

	g := body.Config.Gravity
	assert.InDelta(t, (a.X+g.X)*fixedDt, body.Velocity().X, 1e-5)
	assert.InDelta(t, (a.Y+g.Y)*fixedDt, body.Velocity().Y, 1e-5)
	assert.InDelta(t, fixedDt, body.DragRate(), 1e-6)
}

func TestExternalAccelerationDecaysToZero(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.Gravity = rl.Vector3{}
	_, body := newBodyScene(cfg, rl.Vector3{}, false)

	body.AddAcceleration(rl.Vector3{X: 30})
	body.FixedStep(fixedDt)
	first := rl.Vector3Length(body.ExternalAcceleration())
	assert.InDelta(t, 30, first, 1e-4)

	body.FixedStep(fixedDt)
	assert.Less(t, rl.Vector3Length(body.ExternalAcceleration()), first)

	for i := 0; i < 100; i++ {
		body.FixedStep(fixedDt)
	}
	assert.Equal(t, rl.Vector3Zero(), body.ExternalAcceleration())
	assert.Equal(t, rl.Vector3Zero(), body.Impulse())
}

func TestResetReproducesFreshTrajectory(t *testing.T) {
	_, fresh := newBodyScene(DefaultBodyConfig(), rl.Vector3{Y: 10}, false)
	_, used := newBodyScene(DefaultBodyConfig(), rl.Vector3{Y: 10}, false)

	used.AddAcceleration(rl.Vector3{X: 15, Y: 40})
	used.SetControlAcceleration(rl.Vector3{X: 2, Y: 3})
	for i := 0; i < 25; i++ {
		used.FixedStep(fixedDt)
	}
	used.Reset()

	assert.Equal(t, fresh.Snapshot().Velocity, used.Snapshot().Velocity)
	assert.Equal(t, fresh.DragRate(), used.DragRate())
	assert.Equal(t, fresh.SkinWidth(), used.SkinWidth())

	for i := 0; i < 200; i++ {
		fresh.FixedStep(fixedDt)
		used.FixedStep(fixedDt)
		require.Equal(t, fresh.Velocity(), used.Velocity(), "step %d", i)
	}
}

func TestGroundedFiresOncePerEdge(t *testing.T) {
	scene, body := newBodyScene(DefaultBodyConfig(), rl.Vector3{Y: 0.55}, true)
	groundAt(scene, 0)

	grounded, ungrounded := 0, 0
	body.OnGrounded.AddListener(func() { grounded++ })
	body.OnUngrounded.AddListener(func() { ungrounded++ })

	for i := 0; i < 10; i++ {
		body.FixedStep(fixedDt)
		require.True(t, body.Grounded(), "step %d", i)
	}
	assert.Equal(t, 1, grounded)
	assert.Zero(t, ungrounded)
	assert.InDelta(t, body.Config.ContactOffset, bottom(body), 1e-3)

	body.AddAcceleration(rl.Vector3{Y: 400})
	body.FixedStep(fixedDt)
	assert.False(t, body.Grounded())
	assert.Equal(t, 1, ungrounded)
}

func TestLandingResolvesInOneStep(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.NumOfCasts = 3
	scene, body := newBodyScene(cfg, rl.Vector3{Y: 0.55}, true)
	groundAt(scene, 0)
	body.SetVelocity(rl.Vector3{Y: -2})

	body.FixedStep(fixedDt)

	assert.Zero(t, body.Velocity().Y)
	assert.True(t, body.Grounded())
	assert.Less(t, body.ProvisionalVelocity().Y, float32(-2), "provisional velocity keeps the pre-collision value")
	assert.GreaterOrEqual(t, bottom(body), float32(0))
}

func TestGroundedZeroesHorizontalVelocity(t *testing.T) {
	scene, body := newBodyScene(DefaultBodyConfig(), rl.Vector3{Y: 0.55}, true)
	groundAt(scene, 0)
	body.SetVelocity(rl.Vector3{X: 4, Y: -1})

	body.FixedStep(fixedDt)

	assert.True(t, body.Grounded())
	assert.Zero(t, body.Velocity().X, "flat ground normal gives no nudge")
}

func TestWallStopsHorizontalMotion(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.Gravity = rl.Vector3{}
	scene, body := newBodyScene(cfg, rl.Vector3{}, true)
	addStatic(scene, rl.Vector3{X: 2}, rl.Vector3{X: 1, Y: 4})

	for i := 0; i < 30; i++ {
		body.SetVelocity(rl.Vector3{X: 5})
		body.FixedStep(fixedDt)
		require.LessOrEqual(t, body.Bounds().Max.X, float32(1.5), "step %d", i)
	}
	assert.Zero(t, body.Velocity().X)
	assert.InDelta(t, 1.5-cfg.ContactOffset, body.Bounds().Max.X, 1e-3)
	assert.InDelta(t, cfg.ContactOffset, body.SkinWidth().X, 1e-3, "skin shrinks to the contact gap")
}

func TestSkinResetsWithoutHit(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.Gravity = rl.Vector3{}
	scene, body := newBodyScene(cfg, rl.Vector3{}, true)
	addStatic(scene, rl.Vector3{X: 2}, rl.Vector3{X: 1, Y: 4})

	for i := 0; i < 30; i++ {
		body.SetVelocity(rl.Vector3{X: 5})
		body.FixedStep(fixedDt)
	}
	require.Less(t, body.SkinWidth().X, cfg.SkinWidth)

	body.SetVelocity(rl.Vector3{X: -5})
	body.FixedStep(fixedDt)
	assert.Equal(t, cfg.SkinWidth, body.SkinWidth().X)
}

func TestCeilingHitClearsGrounded(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.Gravity = rl.Vector3{}
	scene, body := newBodyScene(cfg, rl.Vector3{}, true)
	addStatic(scene, rl.Vector3{Y: 2}, rl.Vector3{X: 10, Y: 1})

	for i := 0; i < 30; i++ {
		body.SetVelocity(rl.Vector3{Y: 5})
		body.FixedStep(fixedDt)
	}
	assert.Zero(t, body.Velocity().Y)
	assert.False(t, body.Grounded())
	assert.LessOrEqual(t, body.Bounds().Max.Y, float32(1.5))
}

func TestDepenetration(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.Gravity = rl.Vector3{}
	scene, body := newBodyScene(cfg, rl.Vector3{Y: 0.3}, true)
	groundAt(scene, 0)

	body.FixedStep(fixedDt)

	assert.GreaterOrEqual(t, bottom(body), float32(-1e-4))
}

func TestNoWorldMeansFreeMotion(t *testing.T) {
	_, body := newBodyScene(DefaultBodyConfig(), rl.Vector3{}, false)
	for i := 0; i < 20; i++ {
		body.FixedStep(fixedDt)
	}
	assert.False(t, body.Grounded())
	assert.Less(t, body.GetGameObject().Transform.Position.Y, float32(0))
}

func TestSteppedFiresAfterEachMove(t *testing.T) {
	_, body := newBodyScene(DefaultBodyConfig(), rl.Vector3{Y: 10}, false)
	var seen []rl.Vector3
	body.OnStepped.AddListener(func() { seen = append(seen, body.Velocity()) })

	body.FixedStep(fixedDt)
	body.FixedStep(fixedDt)
	require.Len(t, seen, 2)
	assert.Equal(t, body.Velocity(), seen[1])

	body.Freeze(true)
	body.FixedStep(fixedDt)
	assert.Len(t, seen, 2, "frozen bodies do not step")
}

func TestFrozenBodyDoesNotMove(t *testing.T) {
	_, body := newBodyScene(DefaultBodyConfig(), rl.Vector3{Y: 3}, false)
	body.Freeze(true)
	body.FixedStep(fixedDt)
	assert.Equal(t, float32(3), body.GetGameObject().Transform.Position.Y)
	assert.Equal(t, rl.Vector3Zero(), body.Velocity())

	body.Freeze(false)
	body.FixedStep(fixedDt)
	assert.Less(t, body.GetGameObject().Transform.Position.Y, float32(3))
}

func TestMinimumCastCount(t *testing.T) {
	cfg := DefaultBodyConfig()
	cfg.NumOfCasts = 1
	body := NewKinematicBody(cfg)
	assert.Equal(t, 2, body.Config.NumOfCasts)
}

func TestSnapshotRoundTripIsDeterministic(t *testing.T) {
	setup := func() (*engine.Scene, *KinematicBody) {
		scene, body := newBodyScene(DefaultBodyConfig(), rl.Vector3{Y: 3}, true)
		groundAt(scene, 0)
		addStatic(scene, rl.Vector3{X: 6, Y: 2}, rl.Vector3{X: 1, Y: 4})
		return scene, body
	}

	_, a := setup()
	a.AddAcceleration(rl.Vector3{X: 40, Y: 30})
	for i := 0; i < 12; i++ {
		a.FixedStep(fixedDt)
	}

	data, err := EncodeSnapshot(a.Snapshot())
	require.NoError(t, err)

	_, b := setup()
	restored, err := DecodeSnapshot(data)
	require.NoError(t, err)
	b.Restore(restored)
	require.Equal(t, a.Snapshot().Digest(), b.Snapshot().Digest())

	for i := 0; i < 150; i++ {
		a.FixedStep(fixedDt)
		b.FixedStep(fixedDt)
		require.Equal(t, a.Snapshot(), b.Snapshot(), "step %d", i)
	}
	assert.Equal(t, a.Snapshot().Digest(), b.Snapshot().Digest())
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte{0xc1})
	require.ErrorIs(t, err, ErrBadSnapshot)
}
