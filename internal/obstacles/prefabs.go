package obstacles

import (
	"lander/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tile codes for the spawner prefabs.
const (
	CodeWater = 'W'
	CodeWind  = 'V'
)

// RegisterPrefabs adds the water and wind spawners to reg.
func RegisterPrefabs(reg *engine.PrefabRegistry, cfg Config) {
	reg.Register(CodeWater, "water_spawner", func(pos rl.Vector3) *engine.GameObject {
		obj := engine.NewGameObject("WaterSpawner")
		obj.Transform.Position = pos
		obj.AddComponent(NewWaterSpawner(cfg.Water.SpawnInterval))
		return obj
	})
	reg.Register(CodeWind, "wind_spawner", func(pos rl.Vector3) *engine.GameObject {
		obj := engine.NewGameObject("WindSpawner")
		obj.Transform.Position = pos
		obj.AddComponent(NewWindSpawner(cfg.Wind))
		return obj
	})
}
