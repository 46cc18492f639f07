package level

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrNoLevels  = errors.New("no levels configured")
	ErrBadLayout = errors.New("bad level layout")
)

// Tile codes with built-in meaning. Any other non-empty rune is looked up in
// the prefab registry.
const (
	TilePlatform = '#'
	TileWall     = '|'
	TileHazard   = 'X'
	TileComplete = 'E'
	TileEmpty    = '.'
)

// Layout describes one level as ASCII blocks stacked bottom to top: the start
// block, the body blocks and the end block. Row 0 of a block is its top row.
type Layout struct {
	Name   string     `yaml:"name" json:"name"`
	Start  []string   `yaml:"start" json:"start"`
	Blocks [][]string `yaml:"blocks" json:"blocks"`
	End    []string   `yaml:"end" json:"end"`
}

// Sections returns every block in stacking order.
func (l Layout) Sections() [][]string {
	out := make([][]string, 0, len(l.Blocks)+2)
	out = append(out, l.Start)
	out = append(out, l.Blocks...)
	out = append(out, l.End)
	return out
}

func (l Layout) Validate() error {
	if len(l.Start) == 0 {
		return fmt.Errorf("%w: level %q has no start block", ErrBadLayout, l.Name)
	}
	cells := ParseBlock(l.Start, 1, rl.Vector3{})
	for _, c := range cells {
		if c.Code == TilePlatform {
			return nil
		}
	}
	return fmt.Errorf("%w: start block of %q has no platform to spawn on", ErrBadLayout, l.Name)
}

// Cell is one occupied tile in grid coordinates.
type Cell struct {
	Code rune
	X, Y int
}

// ParseBlock returns the occupied cells of a block. Y grows upward from the
// bottom row, offset by origin expressed in tiles.
func ParseBlock(rows []string, tileSize float32, origin rl.Vector3) []Cell {
	var cells []Cell
	ox := int(origin.X / tileSize)
	oy := int(origin.Y / tileSize)
	for r, row := range rows {
		y := len(rows) - 1 - r
		for x, code := range []rune(row) {
			if code == ' ' || code == TileEmpty {
				continue
			}
			cells = append(cells, Cell{Code: code, X: ox + x, Y: oy + y})
		}
	}
	return cells
}

// Axis selects the direction tiles are merged along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Platform is a merged run of tiles in world space.
type Platform struct {
	Center rl.Vector3
	Size   rl.Vector3
	Tiles  int
}

// Top returns the y of the platform's upper face.
func (p Platform) Top() float32 {
	return p.Center.Y + p.Size.Y/2
}

// Rect returns the platform's XY bounds with Y pointing up, so Y is the
// bottom edge.
func (p Platform) Rect() rl.Rectangle {
	return rl.Rectangle{
		X:      p.Center.X - p.Size.X/2,
		Y:      p.Center.Y - p.Size.Y/2,
		Width:  p.Size.X,
		Height: p.Size.Y,
	}
}

// MergeRuns merges contiguous cells along axis into boxes. Cells are grouped
// by line and sorted, so the output is ordered by line then position.
func MergeRuns(cells []Cell, axis Axis, tileSize float32) []Platform {
	if len(cells) == 0 {
		return nil
	}
	main := func(c Cell) int { return c.X }
	line := func(c Cell) int { return c.Y }
	if axis == AxisY {
		main, line = line, main
	}

	sorted := slices.Clone(cells)
	slices.SortFunc(sorted, func(a, b Cell) int {
		if d := cmp.Compare(line(a), line(b)); d != 0 {
			return d
		}
		return cmp.Compare(main(a), main(b))
	})
	sorted = slices.CompactFunc(sorted, func(a, b Cell) bool { return a.X == b.X && a.Y == b.Y })

	var out []Platform
	start, prev := sorted[0], sorted[0]
	flush := func() {
		out = append(out, runBox(start, prev, tileSize))
	}
	for _, c := range sorted[1:] {
		if line(c) == line(prev) && main(c) == main(prev)+1 {
			prev = c
			continue
		}
		flush()
		start, prev = c, c
	}
	flush()
	return out
}

func runBox(a, b Cell, tileSize float32) Platform {
	w := float32(b.X-a.X+1) * tileSize
	h := float32(b.Y-a.Y+1) * tileSize
	return Platform{
		Center: rl.Vector3{
			X: float32(a.X)*tileSize + w/2,
			Y: float32(a.Y)*tileSize + h/2,
		},
		Size:  rl.Vector3{X: w, Y: h, Z: tileSize},
		Tiles: (b.X - a.X + 1) * (b.Y - a.Y + 1),
	}
}

func filterCells(cells []Cell, code rune) []Cell {
	var out []Cell
	for _, c := range cells {
		if c.Code == code {
			out = append(out, c)
		}
	}
	return out
}

// CellCenter returns the world center of a cell.
func CellCenter(c Cell, tileSize float32) rl.Vector3 {
	return rl.Vector3{
		X: (float32(c.X) + 0.5) * tileSize,
		Y: (float32(c.Y) + 0.5) * tileSize,
	}
}

// DefaultLayouts is a two-level course used when no levels are configured.
func DefaultLayouts() []Layout {
	return []Layout{
		{
			Name: "first-steps",
			Start: []string{
				"|..............|",
				"|..............|",
				"|..............|",
				"|......###.....|",
				"|..............|",
				"|..............|",
				"|..####........|",
				"################",
			},
			Blocks: [][]string{{
				"|..............|",
				"|.........V....|",
				"|..............|",
				"|....###.......|",
				"|..........##..|",
				"|..............|",
				"|.XX...........|",
				"|..............|",
			}},
			End: []string{
				"|......EE......|",
				"|......EE......|",
				"|..............|",
				"|.....####.....|",
				"|..............|",
				"|..............|",
				"|..............|",
				"|..............|",
			},
		},
		{
			Name: "rain",
			Start: []string{
				"|.....W........|",
				"|..............|",
				"|..............|",
				"|.......####...|",
				"|..............|",
				"|..............|",
				"|.###..........|",
				"################",
			},
			Blocks: [][]string{{
				"|..............|",
				"|..W......W....|",
				"|..............|",
				"|..###....###..|",
				"|..............|",
				"|......XX......|",
				"|..............|",
				"|..............|",
			}},
			End: []string{
				"|......EE......|",
				"|......EE......|",
				"|..............|",
				"|.....####.....|",
				"|..............|",
				"|.V............|",
				"|..............|",
				"|..............|",
			},
		},
	}
}
