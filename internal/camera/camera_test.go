package camera

import (
	"testing"

	"lander/internal/engine"
	"lander/internal/game"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollow(t *testing.T) (*game.Game, *Follow, *engine.GameObject) {
	t.Helper()
	target := engine.NewGameObject("target")
	f := NewFollow(DefaultConfig(), target)
	g := game.New(engine.NewScene("camera"), nil)
	g.Register(f, game.StateStart, game.StatePlay)
	require.NoError(t, g.Bootstrap())
	return g, f, target
}

func TestStartSnapsToTarget(t *testing.T) {
	g, f, target := newFollow(t)
	target.Transform.Position = rl.Vector3{X: 10, Y: 3}
	g.SetState(game.StateStart)
	assert.Equal(t, target.Transform.Position, f.Position)
}

func TestStartAdoptsTaggedTarget(t *testing.T) {
	scene := engine.NewScene("camera")
	other := engine.NewGameObject("rock")
	other.Transform.Position = rl.Vector3{X: -4}
	tagged := engine.NewGameObject("lander")
	tagged.Tags = []string{"player"}
	tagged.Transform.Position = rl.Vector3{X: 7, Y: 2}
	scene.AddGameObject(other)
	scene.AddGameObject(tagged)

	f := NewFollow(DefaultConfig(), nil)
	g := game.New(scene, nil)
	g.Register(f, game.StateStart, game.StatePlay)
	require.NoError(t, g.Bootstrap())

	g.SetState(game.StateStart)
	assert.Same(t, tagged, f.Target)
	assert.Equal(t, tagged.Transform.Position, f.Position)
}

func TestPlayFollowsFasterWhenFarther(t *testing.T) {
	g, f, target := newFollow(t)
	g.SetState(game.StatePlay)

	target.Transform.Position = rl.Vector3{X: 1}
	g.FixedTick(0.02)
	near := f.Position.X

	f.Position = rl.Vector3{}
	target.Transform.Position = rl.Vector3{X: 2}
	g.FixedTick(0.02)
	far := f.Position.X

	assert.Greater(t, near, float32(0))
	assert.Greater(t, far, near)
	// 1/4 of max distance at speed 12 for 0.02 s.
	assert.InDelta(t, 0.06, near, 1e-5)
}

func TestStepSnapsWhenClose(t *testing.T) {
	_, f, target := newFollow(t)
	target.Transform.Position = rl.Vector3{X: 0.05}
	f.Step(0.02)
	assert.Equal(t, target.Transform.Position, f.Position)
}

func TestStepNeverOvershoots(t *testing.T) {
	_, f, target := newFollow(t)
	target.Transform.Position = rl.Vector3{Y: 8}
	for i := 0; i < 1000; i++ {
		f.Step(0.5)
		require.LessOrEqual(t, f.Position.Y, float32(8))
	}
	assert.Equal(t, float32(8), f.Position.Y)
}

func TestNoMovementOutsidePlay(t *testing.T) {
	g, f, target := newFollow(t)
	g.SetState(game.StateTitle)
	target.Transform.Position = rl.Vector3{X: 3}
	g.FixedTick(0.1)
	assert.Zero(t, f.Position.X)
}

func TestCamera2DFlipsY(t *testing.T) {
	_, f, _ := newFollow(t)
	f.Position = rl.Vector3{X: 1, Y: 2}
	cam := f.Camera2D()
	assert.Equal(t, float32(40), cam.Target.X)
	assert.Equal(t, float32(-80), cam.Target.Y)
	assert.Equal(t, f.Offset, cam.Offset)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	cfg := DefaultConfig()
	cfg.Zoom = 0
	assert.Error(t, cfg.Validate())
}
