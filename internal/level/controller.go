// Package level builds levels from tile layouts and drives the flow between
// them: start sweeps, completion, the title screen and pausing.
package level

import (
	"fmt"

	"lander/internal/components"
	"lander/internal/engine"
	"lander/internal/game"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Destroyer is implemented by components that hold resources beyond their
// object, such as pooled spawns.
type Destroyer interface {
	Destroy()
}

// Controller owns the objects of the current level. It regenerates the level
// on every Start and rewinds to the first level on LevelEnd.
type Controller struct {
	game.BaseParticipant
	cfg     Config
	prefabs *engine.PrefabRegistry

	current   int
	objects   []*engine.GameObject
	platforms []Platform
	triggers  []*CompleteTrigger
	spawn     rl.Vector3

	// Generated fires after a level has been built, with its index.
	Generated engine.EventWithArg[int]
}

// NewController builds levels from cfg. Tile codes outside the built-in set
// are resolved through prefabs; a nil registry means none.
func NewController(cfg Config, prefabs *engine.PrefabRegistry) *Controller {
	if prefabs == nil {
		prefabs = engine.NewPrefabRegistry()
	}
	return &Controller{cfg: cfg, prefabs: prefabs}
}

func (c *Controller) CurrentLevel() int              { return c.current }
func (c *Controller) LevelCount() int                { return len(c.cfg.Levels) }
func (c *Controller) Objects() []*engine.GameObject  { return c.objects }
func (c *Controller) Platforms() []Platform          { return c.platforms }
func (c *Controller) Triggers() []*CompleteTrigger   { return c.triggers }
func (c *Controller) SpawnPoint() rl.Vector3         { return c.spawn }

// SetLevel selects the level generated on the next Start.
func (c *Controller) SetLevel(i int) {
	c.current = min(max(i, 0), max(len(c.cfg.Levels)-1, 0))
}

func (c *Controller) EarlyInitialize(*game.Game) error {
	if len(c.cfg.Levels) == 0 {
		return ErrNoLevels
	}
	for _, l := range c.cfg.Levels {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) LateInitialize(*game.Game) error { return nil }

func (c *Controller) OnEnter(g *game.Game, state, _ game.StateID) {
	switch state {
	case game.StateStart:
		c.DestroyLevel(g)
		if err := c.Generate(g, c.current); err != nil {
			g.Log().Error("level generation failed", zap.Int("level", c.current), zap.Error(err))
			return
		}
		g.Session().SetCheckpoint(c.spawn)
	case game.StateLevelEnd:
		c.current = 0
	}
}

// Complete advances to the next level, or ends the run after the last one.
func (c *Controller) Complete(g *game.Game) {
	c.current++
	if c.current >= len(c.cfg.Levels) {
		g.SetState(game.StateLevelEnd)
		return
	}
	g.SetState(game.StateLevelComplete)
}

// DestroyLevel removes every object of the current level from the scene.
func (c *Controller) DestroyLevel(g *game.Game) {
	for _, t := range c.triggers {
		g.Deregister(t)
	}
	for _, obj := range c.objects {
		for _, d := range engine.GetComponents[Destroyer](obj) {
			d.Destroy()
		}
		g.Scene().RemoveGameObject(obj)
	}
	c.objects = nil
	c.platforms = nil
	c.triggers = nil
}

// Generate builds level i into the game's scene.
func (c *Controller) Generate(g *game.Game, i int) error {
	if i < 0 || i >= len(c.cfg.Levels) {
		return fmt.Errorf("%w: level %d of %d", ErrNoLevels, i, len(c.cfg.Levels))
	}
	layout := c.cfg.Levels[i]
	ts := c.cfg.TileSize

	var offset float32
	for s, rows := range layout.Sections() {
		cells := ParseBlock(rows, ts, rl.Vector3{Y: offset})
		platforms := c.addRuns(g, filterCells(cells, TilePlatform), AxisX, components.LayerGround, true)
		if s == 0 && len(platforms) > 0 {
			c.spawn = rl.Vector3{X: platforms[0].Center.X, Y: platforms[0].Top() + c.cfg.SpawnHeight}
		}
		c.addRuns(g, filterCells(cells, TileWall), AxisY, components.LayerGround, false)
		c.addRuns(g, filterCells(cells, TileHazard), AxisX, components.LayerObstacle, false)
		c.addComplete(g, filterCells(cells, TileComplete))

		for _, cell := range cells {
			switch cell.Code {
			case TilePlatform, TileWall, TileHazard, TileComplete:
				continue
			}
			obj, ok := c.prefabs.Spawn(cell.Code, CellCenter(cell, ts))
			if !ok {
				g.Log().Warn("unknown tile", zap.String("code", string(cell.Code)), zap.String("level", layout.Name))
				continue
			}
			c.add(g, obj)
		}
		offset += float32(len(rows)) * ts
	}

	g.Log().Info("level generated",
		zap.String("level", layout.Name),
		zap.Int("index", i),
		zap.Int("objects", len(c.objects)),
		zap.Int("platforms", len(c.platforms)))
	c.Generated.Invoke(i)
	return nil
}

func (c *Controller) add(g *game.Game, obj *engine.GameObject) {
	c.objects = append(c.objects, obj)
	g.Scene().AddGameObject(obj)
}

func (c *Controller) addRuns(g *game.Game, cells []Cell, axis Axis, layer int, checkpoint bool) []Platform {
	runs := MergeRuns(cells, axis, c.cfg.TileSize)
	for _, p := range runs {
		obj := engine.NewGameObject("Platform")
		if layer == components.LayerObstacle {
			obj.Name = "Hazard"
		}
		obj.Transform.Position = p.Center
		obj.AddComponent(components.NewStaticBoxCollider(p.Size, layer))
		if checkpoint {
			obj.AddComponent(components.NewCheckpoint(rl.Vector3{Y: p.Size.Y/2 + c.cfg.SpawnHeight}))
			c.platforms = append(c.platforms, p)
		}
		c.add(g, obj)
	}
	return runs
}

func (c *Controller) addComplete(g *game.Game, cells []Cell) {
	runs := MergeRuns(cells, AxisX, c.cfg.TileSize)
	if len(runs) == 0 {
		return
	}
	box := physics.NewAABBFromCenter(runs[0].Center, runs[0].Size)
	for _, r := range runs[1:] {
		box = box.Union(physics.NewAABBFromCenter(r.Center, r.Size))
	}
	obj := engine.NewGameObject("LevelComplete")
	obj.Transform.Position = box.Center()
	size := box.Size()
	size.Z = runs[0].Size.Z
	trigger := NewCompleteTrigger(c, size)
	obj.AddComponent(trigger.Volume)
	obj.AddComponent(trigger)
	c.triggers = append(c.triggers, trigger)
	g.Register(trigger, game.StatePlay)
	c.add(g, obj)
}
