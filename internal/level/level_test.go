package level

import (
	"testing"

	"lander/internal/components"
	"lander/internal/engine"
	"lander/internal/game"
	"lander/internal/input"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayouts() []Layout {
	return []Layout{
		{
			Name:  "one",
			Start: []string{"..S..", "#####"},
			Blocks: [][]string{{
				"|...|",
				"|XX.|",
			}},
			End: []string{"..EE.", "..EE."},
		},
		{
			Name:  "two",
			Start: []string{".....", ".##.."},
			End:   []string{"E...."},
		},
	}
}

type marker struct {
	engine.BaseComponent
	destroyed *int
}

func (m *marker) Destroy() { *m.destroyed++ }

type rig struct {
	game       *game.Game
	scene      *engine.Scene
	input      *input.Aggregator
	controller *Controller
	destroyed  int
}

func newRig(t *testing.T, cfg Config) *rig {
	t.Helper()
	scene := engine.NewScene("level")
	physics.NewPhysicsWorld(physics.DefaultCellSize).Attach(scene)
	agg := input.NewAggregator()
	r := &rig{scene: scene, input: agg}
	r.game = game.New(scene, agg)

	prefabs := engine.NewPrefabRegistry()
	prefabs.Register('S', "sign", func(pos rl.Vector3) *engine.GameObject {
		obj := engine.NewGameObject("Sign")
		obj.Transform.Position = pos
		obj.AddComponent(&marker{destroyed: &r.destroyed})
		return obj
	})
	r.controller = NewController(cfg, prefabs)
	r.game.Register(r.controller, game.StateStart, game.StateLevelEnd)
	require.NoError(t, r.game.Bootstrap())
	return r
}

func (r *rig) named(name string) *engine.GameObject {
	for _, g := range r.scene.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Levels = testLayouts()
	return cfg
}

func TestParseBlock(t *testing.T) {
	cells := ParseBlock([]string{"#.", ".X"}, 1, rl.Vector3{Y: 4})
	assert.Equal(t, []Cell{{Code: '#', X: 0, Y: 5}, {Code: 'X', X: 1, Y: 4}}, cells)
}

func TestMergeRunsAlongX(t *testing.T) {
	cells := []Cell{
		{'#', 3, 0}, {'#', 0, 0}, {'#', 1, 0}, {'#', 1, 0},
		{'#', 0, 2},
	}
	runs := MergeRuns(cells, AxisX, 1)
	require.Len(t, runs, 3)

	assert.Equal(t, rl.Vector3{X: 1, Y: 0.5}, runs[0].Center)
	assert.Equal(t, rl.Vector3{X: 2, Y: 1, Z: 1}, runs[0].Size)
	assert.Equal(t, 2, runs[0].Tiles)
	assert.Equal(t, rl.Vector3{X: 3.5, Y: 0.5}, runs[1].Center)
	assert.Equal(t, float32(3), runs[2].Top())
	assert.Equal(t, rl.Rectangle{X: 0, Y: 0, Width: 2, Height: 1}, runs[0].Rect())
}

func TestMergeRunsAlongY(t *testing.T) {
	cells := []Cell{{'|', 0, 0}, {'|', 0, 1}, {'|', 0, 2}, {'|', 2, 1}}
	runs := MergeRuns(cells, AxisY, 2)
	require.Len(t, runs, 2)
	assert.Equal(t, rl.Vector3{X: 1, Y: 3}, runs[0].Center)
	assert.Equal(t, rl.Vector3{X: 2, Y: 6, Z: 2}, runs[0].Size)
	assert.Empty(t, MergeRuns(nil, AxisX, 1))
}

func TestStartGeneratesLevel(t *testing.T) {
	r := newRig(t, testConfig())
	r.game.SetState(game.StateStart)

	c := r.controller
	require.NotEmpty(t, c.Objects())
	require.Len(t, c.Platforms(), 1)
	assert.Equal(t, rl.Vector3{X: 2.5, Y: 0.5}, c.Platforms()[0].Center)

	spawn, ok := r.game.Session().Checkpoint()
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 2.5, Y: 1.6}, spawn)

	floor := r.named("Platform")
	require.NotNil(t, floor)
	cp := engine.GetComponent[*components.Checkpoint](floor)
	require.NotNil(t, cp)
	assert.Equal(t, spawn, cp.SpawnPosition())

	hazard := r.named("Hazard")
	require.NotNil(t, hazard)
	assert.Equal(t, components.LayerObstacle, engine.GetComponent[*components.BoxCollider](hazard).Layer)
	// body block sits on top of the two-row start block
	assert.Equal(t, float32(2.5), hazard.Transform.Position.Y)

	sign := r.named("Sign")
	require.NotNil(t, sign)
	assert.Equal(t, rl.Vector3{X: 2.5, Y: 1.5}, sign.Transform.Position)

	require.Len(t, c.Triggers(), 1)
	end := r.named("LevelComplete")
	require.NotNil(t, end)
	assert.Equal(t, rl.Vector3{X: 3, Y: 5}, end.Transform.Position)
	assert.Equal(t, rl.Vector3{X: 2, Y: 2, Z: 1}, c.Triggers()[0].Volume.Size)
}

func TestRestartReplacesLevel(t *testing.T) {
	r := newRig(t, testConfig())
	r.game.SetState(game.StateStart)
	first := len(r.scene.GameObjects)

	r.game.SetState(game.StatePlay)
	r.game.SetState(game.StateStart)

	assert.Equal(t, first, len(r.scene.GameObjects))
	assert.Equal(t, 1, r.destroyed)
	assert.Len(t, r.game.Registry().Participants(game.StatePlay), 1, "old trigger deregistered")
}

func TestCompleteAdvancesLevels(t *testing.T) {
	r := newRig(t, testConfig())
	r.game.SetState(game.StatePlay)

	r.controller.Complete(r.game)
	assert.Equal(t, game.StateLevelComplete, r.game.State())
	assert.Equal(t, 1, r.controller.CurrentLevel())

	r.controller.Complete(r.game)
	assert.Equal(t, game.StateLevelEnd, r.game.State())
	assert.Equal(t, 0, r.controller.CurrentLevel(), "level end rewinds")
}

func TestCompleteTriggerFiresOnPlayer(t *testing.T) {
	r := newRig(t, testConfig())
	r.game.SetState(game.StateStart)
	r.game.SetState(game.StatePlay)

	player := engine.NewGameObject("Player")
	player.Transform.Position = rl.Vector3{X: 3, Y: 5}
	player.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1}, components.LayerPlayer))
	r.scene.AddGameObject(player)

	r.game.Tick(0.016)
	assert.Equal(t, game.StateLevelComplete, r.game.State())
	assert.Equal(t, 1, r.controller.CurrentLevel())
}

func TestUnknownTileIsSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.Levels[1].Start[0] = "..?.."
	r := newRig(t, cfg)
	r.controller.SetLevel(1)
	r.game.SetState(game.StateStart)
	assert.Len(t, r.controller.Platforms(), 1)
}

func TestSequencerFlow(t *testing.T) {
	r := newRig(t, testConfig())
	seq := NewSequencer(SequenceConfig{SweepDuration: 0.5, FadeDuration: 1})
	r.game.Register(seq, game.StateStart, game.StateLevelComplete, game.StateLevelEnd, game.StateTitle)
	require.NoError(t, r.game.Bootstrap())

	r.game.SetState(game.StateStart)
	r.game.Tick(0.25)
	assert.Equal(t, game.StateStart, r.game.State())
	assert.InDelta(t, 0.5, seq.Progress(), 1e-6)
	r.game.Tick(0.25)
	assert.Equal(t, game.StatePlay, r.game.State())

	r.game.SetState(game.StateLevelComplete)
	r.game.Tick(0.6)
	assert.Equal(t, game.StateStart, r.game.State())

	r.game.SetState(game.StateLevelEnd)
	r.game.Tick(1)
	require.Equal(t, game.StateTitle, r.game.State())

	r.input.Boost(input.PhaseStarted)
	assert.Equal(t, game.StateTitle, r.game.State(), "title ignores input until faded in")
	r.input.Boost(input.PhaseCanceled)

	r.game.Tick(1)
	require.True(t, seq.Ready())
	r.input.Boost(input.PhaseStarted)
	assert.Equal(t, game.StateLevelComplete, r.game.State())
}

// onceCounter stands in for Play-enter setup that must not rerun after a pause.
type onceCounter struct {
	game.BaseParticipant
	enters, setups int
}

func (o *onceCounter) OnEnter(_ *game.Game, _, previous game.StateID) {
	o.enters++
	if previous != game.StatePause {
		o.setups++
	}
}

func TestPauseRoundTrip(t *testing.T) {
	r := newRig(t, testConfig())
	pause := NewPauseController()
	once := &onceCounter{}
	r.game.Register(pause, game.StatePause)
	r.game.Register(once, game.StatePlay)
	require.NoError(t, r.game.Bootstrap())

	r.game.SetState(game.StatePlay)
	playSet := r.game.Registry().Participants(game.StatePlay)

	r.input.TogglePause()
	require.Equal(t, game.StatePause, r.game.State())
	assert.Zero(t, r.game.PhysicsTickFactor())
	assert.Zero(t, r.game.StateTickFactor())

	r.input.TogglePause()
	require.Equal(t, game.StatePlay, r.game.State())
	assert.Equal(t, float32(1), r.game.PhysicsTickFactor())
	assert.Equal(t, float32(1), r.game.StateTickFactor())
	assert.Equal(t, playSet, r.game.Registry().Participants(game.StatePlay))
	assert.Equal(t, 2, once.enters, "Play enter fans out again")
	assert.Equal(t, 1, once.setups, "one-time setup is skipped when resuming")
}

func TestPauseRestoresScaledFactors(t *testing.T) {
	r := newRig(t, testConfig())
	r.game.Register(NewPauseController(), game.StatePause)
	require.NoError(t, r.game.Bootstrap())
	r.game.SetPhysicsTickFactor(0.5)
	r.game.SetStateTickFactor(0.25)
	r.game.SetState(game.StatePlay)

	r.input.TogglePause()
	require.Equal(t, game.StatePause, r.game.State())
	r.input.TogglePause()
	require.Equal(t, game.StatePlay, r.game.State())

	assert.Equal(t, float32(0.5), r.game.PhysicsTickFactor())
	assert.Equal(t, float32(0.25), r.game.StateTickFactor())
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Levels = nil
	assert.ErrorIs(t, cfg.Validate(), ErrNoLevels)

	cfg = DefaultConfig()
	cfg.Levels = []Layout{{Name: "empty", Start: []string{"...."}}}
	assert.ErrorIs(t, cfg.Validate(), ErrBadLayout)
}

func TestBootstrapWithoutLevels(t *testing.T) {
	g := game.New(engine.NewScene("x"), nil)
	g.Register(NewController(Config{TileSize: 1}, nil), game.StateStart)
	assert.ErrorIs(t, g.Bootstrap(), ErrNoLevels)
}
