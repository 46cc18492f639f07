package world

import (
	"testing"

	"lander/internal/game"
	"lander/internal/input"
	"lander/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(0.02)

func newWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(settings.Default(), nil)
	require.NoError(t, err)
	return w
}

func (w *World) run(frames int) {
	for i := 0; i < frames; i++ {
		w.Step(frame)
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	s := settings.Default()
	s.Simulation.FixedStep = 0
	_, err := New(s, nil)
	assert.ErrorIs(t, err, settings.ErrInvalid)
}

func TestStartPlacesPlayerOnFirstPlatform(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.Start(game.StateStart))

	assert.Equal(t, game.StateStart, w.Game.State())
	assert.NotEmpty(t, w.Level.Objects())
	assert.Equal(t, w.Level.SpawnPoint(), w.PlayerObject.Transform.Position)
	assert.Same(t, w.PlayerObject, w.Camera.Target, "camera finds the player by tag")
	assert.Equal(t, w.PlayerObject.Transform.Position, w.Camera.Position)
	assert.Equal(t, 1, w.Game.BodyCount())
}

func TestSweepEntersPlayAndLands(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.Start(game.StateStart))

	w.run(60)
	require.Equal(t, game.StatePlay, w.Game.State())
	assert.Equal(t, 1, w.Obstacles.Discoveries())
	assert.Len(t, w.Obstacles.WindSpawners(), 1)

	w.run(50)
	assert.True(t, w.Player.Body().Grounded())
	assert.Zero(t, w.Game.Session().Deaths())
}

func TestStepBoundsCatchUp(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.Start(game.StateTitle))
	limit := w.Settings.Simulation.MaxSubsteps

	assert.Equal(t, limit, w.Step(1))
	assert.Zero(t, w.Step(0))
	assert.Zero(t, w.Step(0.015))
	assert.Equal(t, 1, w.Step(0.015))
	assert.Equal(t, limit+1, w.FixedSteps())
	assert.Equal(t, 4, w.Frames())
	assert.InDelta(t, 0.5, w.Alpha(), 1e-3)
}

func TestPauseStopsSimulation(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.Start(game.StateStart))
	w.run(60)
	require.Equal(t, game.StatePlay, w.Game.State())

	w.Input.TogglePause()
	require.Equal(t, game.StatePause, w.Game.State())
	assert.Zero(t, w.Game.PhysicsTickFactor())
	before := w.PlayerObject.Transform.Position
	w.run(20)
	assert.Equal(t, before, w.PlayerObject.Transform.Position)

	w.Input.TogglePause()
	assert.Equal(t, game.StatePlay, w.Game.State())
	assert.Equal(t, float32(1), w.Game.PhysicsTickFactor())
	assert.Equal(t, 1, w.Obstacles.Discoveries())
}

func TestRunsAreDeterministic(t *testing.T) {
	a, b := newWorld(t), newWorld(t)
	require.NoError(t, a.Start(game.StateStart))
	require.NoError(t, b.Start(game.StateStart))

	for _, w := range []*World{a, b} {
		w.run(60)
		w.Input.Boost(input.PhaseStarted)
		w.run(20)
		w.Input.Boost(input.PhaseCanceled)
		w.run(60)
	}

	sa, sb := a.Summary(), b.Summary()
	assert.NotZero(t, sa.Digest)
	assert.Equal(t, sa.Digest, sb.Digest)
	assert.Equal(t, sa.Position, sb.Position)
	assert.NotEmpty(t, sa.Fields())
}

func TestPauseKeepsConfiguredScales(t *testing.T) {
	s := settings.Default()
	s.Simulation.PhysicsScale = 0.5
	s.Simulation.StateScale = 0.5
	w, err := New(s, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(game.StateStart))
	w.run(120)
	require.Equal(t, game.StatePlay, w.Game.State())

	w.Input.TogglePause()
	w.Input.TogglePause()
	require.Equal(t, game.StatePlay, w.Game.State())
	assert.Equal(t, float32(0.5), w.Game.PhysicsTickFactor())
	assert.Equal(t, float32(0.5), w.Game.StateTickFactor())
}
