package level

import (
	"lander/internal/components"
	"lander/internal/engine"
	"lander/internal/game"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CompleteTrigger ends the level when the player enters its volume.
type CompleteTrigger struct {
	engine.BaseComponent
	game.BaseParticipant
	Volume *components.TriggerVolume

	controller *Controller
	game       *game.Game
}

func NewCompleteTrigger(c *Controller, size rl.Vector3) *CompleteTrigger {
	t := &CompleteTrigger{
		Volume:     components.NewTriggerVolume(size, engine.Layers(components.LayerPlayer)),
		controller: c,
	}
	t.Volume.OnEnter.AddListener(func(*engine.GameObject) {
		if t.game != nil {
			t.controller.Complete(t.game)
		}
	})
	return t
}

func (t *CompleteTrigger) OnEnter(g *game.Game, _, _ game.StateID) {
	t.game = g
}

func (t *CompleteTrigger) OnTick(*game.Game, game.StateID, float32) {
	t.Volume.Check()
}
