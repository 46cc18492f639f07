package player

import (
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Observer is notified about player changes a HUD would display.
type Observer interface {
	OnBoostDirectionChange(dir rl.Vector3)
	OnBoostAmountChange(current, max int)
	OnEnergyChange(current, max float32)
	OnVelocityChange(v rl.Vector3)
	OnStateChange(from, to State)
}

// HUD is a view model built from observer callbacks.
type HUD struct {
	BoostDirection rl.Vector3
	ShowArrow      bool
	Boosts         int
	MaxBoosts      int
	EnergyFill     float32
	Velocity       rl.Vector3
	State          State
	Deaths         int
}

func (h *HUD) OnBoostDirectionChange(dir rl.Vector3) {
	h.ShowArrow = rl.Vector3Length(dir) > 0
	h.BoostDirection = physics.SafeNormalize(dir)
}

func (h *HUD) OnBoostAmountChange(current, max int) {
	h.Boosts, h.MaxBoosts = current, max
}

func (h *HUD) OnEnergyChange(current, max float32) {
	h.EnergyFill = physics.InverseLerp(0, max, current)
}

func (h *HUD) OnVelocityChange(v rl.Vector3) { h.Velocity = v }

func (h *HUD) OnStateChange(_, to State) {
	if to == Dead {
		h.Deaths++
	}
	h.State = to
}
