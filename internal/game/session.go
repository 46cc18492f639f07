package game

import (
	"lander/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Session is the per-run context shared by every participant: the current
// checkpoint and run counters. A new session starts from scratch.
type Session struct {
	ID uuid.UUID

	checkpoint    rl.Vector3
	hasCheckpoint bool
	deaths        int
}

func NewSession() *Session {
	return &Session{ID: uuid.New()}
}

// SetCheckpoint records the spawn position. The last write wins.
func (s *Session) SetCheckpoint(pos rl.Vector3) {
	s.checkpoint = pos
	s.hasCheckpoint = true
}

func (s *Session) Checkpoint() (rl.Vector3, bool) {
	return s.checkpoint, s.hasCheckpoint
}

// Respawn moves obj to the checkpoint. It reports false when no checkpoint
// has been set.
func (s *Session) Respawn(obj *engine.GameObject) bool {
	if !s.hasCheckpoint || obj == nil {
		return false
	}
	obj.Transform.Position = s.checkpoint
	return true
}

func (s *Session) RecordDeath() { s.deaths++ }

func (s *Session) Deaths() int { return s.deaths }
