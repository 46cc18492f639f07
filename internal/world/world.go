// Package world assembles a playable game from settings: the scene and its
// collision world, input, the state machine and every participant.
package world

import (
	"fmt"

	"lander/internal/camera"
	"lander/internal/engine"
	"lander/internal/game"
	"lander/internal/input"
	"lander/internal/level"
	"lander/internal/logging"
	"lander/internal/obstacles"
	"lander/internal/physics"
	"lander/internal/player"
	"lander/internal/settings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

type World struct {
	Settings settings.GameSettings
	Scene    *engine.Scene
	Physics  *physics.PhysicsWorld
	Input    *input.Aggregator
	Game     *game.Game
	Prefabs  *engine.PrefabRegistry

	PlayerObject *engine.GameObject
	Player       *player.Controller
	HUD          *player.HUD
	Level        *level.Controller
	Sequencer    *level.Sequencer
	Pause        *level.PauseController
	Obstacles    *obstacles.Controller
	Particles    *obstacles.Particles
	Camera       *camera.Follow

	accumulator float32
	fixedSteps  int
	frames      int
}

// New validates s and wires a world. A nil log discards output. Nothing runs
// until Start.
func New(s settings.GameSettings, log *zap.Logger) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}

	w := &World{
		Settings: s,
		Scene:    engine.NewScene("Main"),
		Physics:  physics.NewPhysicsWorld(s.Simulation.CellSize),
		Input:    input.NewAggregator(),
		Prefabs:  engine.NewPrefabRegistry(),
		HUD:      &player.HUD{},
	}
	w.Physics.Attach(w.Scene)
	w.Game = game.New(w.Scene, w.Input, game.WithLogger(log))
	w.Game.SetPhysicsTickFactor(s.Simulation.PhysicsScale)
	w.Game.SetStateTickFactor(s.Simulation.StateScale)
	obstacles.RegisterPrefabs(w.Prefabs, s.Obstacles)

	w.PlayerObject, w.Player = player.Spawn(s.Player, s.Body, rl.Vector3{})
	w.Scene.AddGameObject(w.PlayerObject)
	w.Player.AddObserver(w.HUD)

	w.Level = level.NewController(s.Level, w.Prefabs)
	w.Sequencer = level.NewSequencer(s.Level.Sequence)
	w.Pause = level.NewPauseController()
	w.Particles = obstacles.NewParticles(s.Obstacles.Splash)
	w.Obstacles = obstacles.NewController(s.Obstacles, w.Particles)
	w.Camera = camera.NewFollow(s.Camera, nil)

	// The level has to place the checkpoint before the player respawns on
	// Start, and obstacles tick before their splashes expire.
	g := w.Game
	g.Register(w.Level, game.StateStart, game.StateLevelEnd)
	g.Register(w.Player, game.StateStart, game.StatePlay)
	g.Register(w.Sequencer, game.StateStart, game.StateLevelComplete, game.StateLevelEnd, game.StateTitle)
	g.Register(w.Pause, game.StatePause)
	g.Register(w.Obstacles, game.StatePlay)
	g.Register(w.Particles, game.StatePlay)
	g.Register(w.Camera, game.StateStart, game.StatePlay)
	return w, nil
}

// Start runs both initialization phases and enters the initial state.
func (w *World) Start(initial game.StateID) error {
	if err := w.Game.Bootstrap(); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	w.Game.SetState(initial)
	return nil
}

// Step advances the simulation by one rendered frame of length frameDt. It
// runs as many fixed ticks as the accumulated time allows, up to
// MaxSubsteps, then the frame tick. It returns the fixed ticks run.
func (w *World) Step(frameDt float32) int {
	sim := w.Settings.Simulation
	if frameDt < 0 {
		frameDt = 0
	}
	// Time beyond the catch-up budget is dropped.
	w.accumulator = min(w.accumulator+frameDt, sim.FixedStep*float32(sim.MaxSubsteps))

	steps := 0
	for steps < sim.MaxSubsteps && w.accumulator >= sim.FixedStep {
		w.Game.FixedTick(sim.FixedStep)
		w.accumulator -= sim.FixedStep
		steps++
	}
	w.fixedSteps += steps
	w.frames++

	w.Game.Tick(frameDt)
	return steps
}

func (w *World) FixedSteps() int { return w.fixedSteps }

func (w *World) Frames() int { return w.frames }

// Alpha is the fraction of a fixed step left in the accumulator, for
// interpolating rendered positions.
func (w *World) Alpha() float32 {
	return w.accumulator / w.Settings.Simulation.FixedStep
}

// Summary describes the current run for logs.
type Summary struct {
	State      game.StateID
	Level      int
	Deaths     int
	Frames     int
	FixedSteps int
	Position   rl.Vector3
	Digest     uint64
}

func (w *World) Summary() Summary {
	var digest uint64
	if body := w.Player.Body(); body != nil {
		digest = body.Snapshot().Digest()
	}
	return Summary{
		State:      w.Game.State(),
		Level:      w.Level.CurrentLevel(),
		Deaths:     w.Game.Session().Deaths(),
		Frames:     w.frames,
		FixedSteps: w.fixedSteps,
		Position:   w.PlayerObject.Transform.Position,
		Digest:     digest,
	}
}

func (s Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.Stringer("state", s.State),
		zap.Int("level", s.Level),
		zap.Int("deaths", s.Deaths),
		zap.Int("frames", s.Frames),
		zap.Int("fixed_steps", s.FixedSteps),
		zap.Float32("x", s.Position.X),
		zap.Float32("y", s.Position.Y),
		zap.String("digest", fmt.Sprintf("%016x", s.Digest)),
	}
}
