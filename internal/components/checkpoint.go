package components

import (
	"lander/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Checkpoint marks a collider the player can respawn on.
type Checkpoint struct {
	engine.BaseComponent
	SpawnOffset rl.Vector3
}

func NewCheckpoint(spawnOffset rl.Vector3) *Checkpoint {
	return &Checkpoint{SpawnOffset: spawnOffset}
}

// SpawnPosition is the world position a respawning body is placed at.
func (c *Checkpoint) SpawnPosition() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return c.SpawnOffset
	}
	return rl.Vector3Add(g.Transform.Position, c.SpawnOffset)
}
