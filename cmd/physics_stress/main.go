// Stress test comparing grid-indexed raycasts against a brute-force scan
// over a large generated tile field.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"lander/internal/components"
	"lander/internal/engine"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	rays := flag.Int("rays", 2000, "raycasts per field")
	cell := flag.Float64("cell", physics.DefaultCellSize, "grid cell size")
	flag.Parse()

	for _, count := range []int{100, 500, 1000, 5000, 20000} {
		testRaycasts(count, *rays, float32(*cell))
	}
}

func testRaycasts(count, rays int, cellSize float32) {
	rng := rand.New(rand.NewSource(42))

	scene := engine.NewScene("stress")
	world := physics.NewPhysicsWorld(cellSize)
	world.Attach(scene)

	// Tiles spread over a square field; the side grows with the count to
	// keep density constant.
	side := float32(20) + float32(count)/10
	for i := 0; i < count; i++ {
		tile := engine.NewGameObject(fmt.Sprintf("Tile_%d", i))
		tile.Transform.Position = rl.Vector3{
			X: rng.Float32()*side - side/2,
			Y: rng.Float32()*side - side/2,
		}
		size := rl.Vector3{X: 1 + float32(rng.Intn(4)), Y: 1, Z: 1}
		tile.AddComponent(components.NewStaticBoxCollider(size, components.LayerGround))
		scene.AddGameObject(tile)
	}

	type ray struct{ origin, dir rl.Vector3 }
	casts := make([]ray, rays)
	for i := range casts {
		casts[i] = ray{
			origin: rl.Vector3{X: rng.Float32()*side - side/2, Y: rng.Float32()*side - side/2},
			dir:    physics.Rotate2D(rl.Vector3{X: 1}, rng.Float32()*360),
		}
	}
	mask := engine.Layers(components.LayerGround)
	const reach = 5

	gridStart := time.Now()
	gridHits := 0
	for _, c := range casts {
		if _, ok := world.Raycast(c.origin, c.dir, reach, mask, nil); ok {
			gridHits++
		}
	}
	gridTime := time.Since(gridStart)

	bruteStart := time.Now()
	bruteHits := 0
	for _, c := range casts {
		if _, ok := world.RaycastBruteForce(c.origin, c.dir, reach, mask, nil); ok {
			bruteHits++
		}
	}
	bruteTime := time.Since(bruteStart)

	match := "OK"
	if gridHits != bruteHits {
		match = "MISMATCH"
	}
	speedup := float64(bruteTime) / float64(max(gridTime, 1))
	fmt.Printf("%6d tiles: grid %8v (%4d hits) | brute %8v (%4d hits) | %5.1fx | %s\n",
		count, gridTime, gridHits, bruteTime, bruteHits, speedup, match)
}
