package level

import (
	"lander/internal/game"
	"lander/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sequencer plays the timed sweeps and fades between states. Start and
// LevelComplete sweep, LevelEnd fades to the title, and the title waits for
// a boost press once its fade has finished.
type Sequencer struct {
	game.BaseParticipant
	cfg SequenceConfig

	game     *game.Game
	state    game.StateID
	elapsed  float32
	progress float32
	ready    bool
}

func NewSequencer(cfg SequenceConfig) *Sequencer {
	return &Sequencer{cfg: cfg}
}

// Progress is the eased 0..1 progress of the running sweep or fade.
func (s *Sequencer) Progress() float32 { return s.progress }

// Ready reports whether the title screen accepts input.
func (s *Sequencer) Ready() bool { return s.ready }

func (s *Sequencer) EarlyInitialize(g *game.Game) error {
	s.game = g
	g.Input().Subscribe(s)
	return nil
}

func (s *Sequencer) LateInitialize(*game.Game) error { return nil }

func (s *Sequencer) OnEnter(_ *game.Game, state, _ game.StateID) {
	s.state = state
	s.elapsed = 0
	s.progress = 0
	s.ready = false
}

func (s *Sequencer) OnExit(*game.Game, game.StateID, game.StateID) {
	s.state = game.StateNone
	s.ready = false
}

func (s *Sequencer) duration(state game.StateID) float32 {
	if state == game.StateLevelEnd || state == game.StateTitle {
		return s.cfg.FadeDuration
	}
	return s.cfg.SweepDuration
}

func (s *Sequencer) OnTick(g *game.Game, state game.StateID, dt float32) {
	d := s.duration(state)
	s.elapsed += dt
	t := float32(1)
	if d > 0 {
		t = rl.Clamp(s.elapsed/d, 0, 1)
	}
	if state == game.StateLevelEnd || state == game.StateTitle {
		s.progress = s.cfg.Fade.Evaluate(t)
	} else {
		s.progress = s.cfg.Sweep.Evaluate(t)
	}
	if t < 1 {
		return
	}

	switch state {
	case game.StateStart:
		g.SetState(game.StatePlay)
	case game.StateLevelComplete:
		g.SetState(game.StateStart)
	case game.StateLevelEnd:
		g.SetState(game.StateTitle)
	case game.StateTitle:
		s.ready = true
	}
}

// Notify restarts the run from the title screen on a boost press.
func (s *Sequencer) Notify(snap input.Snapshot) {
	if s.game == nil || s.state != game.StateTitle || !s.ready {
		return
	}
	if snap.Boost == input.BoostPressed {
		s.game.SetState(game.StateLevelComplete)
	}
}
