package level

import (
	"lander/internal/game"
	"lander/internal/input"
)

// PauseController toggles between Play and Pause from the input pause flag
// and freezes both tick factors while paused. Leaving Pause restores the
// factors that were active when it was entered.
type PauseController struct {
	game.BaseParticipant
	game *game.Game

	physicsFactor float32
	stateFactor   float32
}

func NewPauseController() *PauseController {
	return &PauseController{}
}

func (p *PauseController) EarlyInitialize(g *game.Game) error {
	p.game = g
	g.Input().Subscribe(p)
	return nil
}

func (p *PauseController) LateInitialize(*game.Game) error { return nil }

func (p *PauseController) OnEnter(g *game.Game, _, _ game.StateID) {
	p.physicsFactor = g.PhysicsTickFactor()
	p.stateFactor = g.StateTickFactor()
	g.SetPhysicsTickFactor(0)
	g.SetStateTickFactor(0)
}

func (p *PauseController) OnExit(g *game.Game, _, _ game.StateID) {
	g.SetPhysicsTickFactor(p.physicsFactor)
	g.SetStateTickFactor(p.stateFactor)
}

func (p *PauseController) Notify(s input.Snapshot) {
	if p.game == nil {
		return
	}
	switch p.game.State() {
	case game.StatePlay:
		if s.Paused {
			p.game.SetState(game.StatePause)
		}
	case game.StatePause:
		if !s.Paused {
			p.game.SetState(game.StatePlay)
		}
	}
}
