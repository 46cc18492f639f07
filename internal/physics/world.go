package physics

import (
	"math"
	"slices"

	"lander/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultCellSize is the edge length of a spatial grid cell in world units.
const DefaultCellSize = 4.0

// Cell key for spatial hashing
type CellKey struct {
	X, Y int
}

type entry struct {
	obj      *engine.GameObject
	collider engine.Collider
	seq      uint64
	cells    []CellKey
}

// PhysicsWorld answers collision queries for a scene. Static colliders are
// indexed in a uniform grid, moving colliders are scanned linearly.
type PhysicsWorld struct {
	CellSize float32

	statics  map[uint64]*entry
	dynamics []*entry
	grid     map[CellKey][]*entry
	seq      uint64
}

func NewPhysicsWorld(cellSize float32) *PhysicsWorld {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &PhysicsWorld{
		CellSize: cellSize,
		statics:  make(map[uint64]*entry),
		grid:     make(map[CellKey][]*entry),
	}
}

// Attach makes p the collision world of scene and keeps it in sync with
// objects added to or removed from the scene.
func (p *PhysicsWorld) Attach(scene *engine.Scene) {
	scene.World = p
	for _, g := range scene.GameObjects {
		p.AddObject(g)
	}
	scene.ObjectAdded.AddListener(p.AddObject)
	scene.ObjectRemoved.AddListener(p.RemoveObject)
}

func (p *PhysicsWorld) posToCell(x, y float32) CellKey {
	return CellKey{
		X: int(math.Floor(float64(x / p.CellSize))),
		Y: int(math.Floor(float64(y / p.CellSize))),
	}
}

func (p *PhysicsWorld) cellsFor(box AABB) []CellKey {
	lo := p.posToCell(box.Min.X, box.Min.Y)
	hi := p.posToCell(box.Max.X, box.Max.Y)
	cells := make([]CellKey, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			cells = append(cells, CellKey{x, y})
		}
	}
	return cells
}

// AddObject registers the object's collider. Objects without a collider are
// ignored.
func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	col := engine.GetComponent[engine.Collider](g)
	if col == nil {
		return
	}
	p.seq++
	e := &entry{obj: g, collider: col, seq: p.seq}
	if !col.IsStatic() {
		p.dynamics = append(p.dynamics, e)
		return
	}
	if _, exists := p.statics[g.UID]; exists {
		return
	}
	e.cells = p.cellsFor(colliderBox(col))
	for _, c := range e.cells {
		p.grid[c] = append(p.grid[c], e)
	}
	p.statics[g.UID] = e
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	if e, ok := p.statics[g.UID]; ok {
		for _, c := range e.cells {
			p.grid[c] = slices.DeleteFunc(p.grid[c], func(o *entry) bool { return o == e })
			if len(p.grid[c]) == 0 {
				delete(p.grid, c)
			}
		}
		delete(p.statics, g.UID)
		return
	}
	p.dynamics = slices.DeleteFunc(p.dynamics, func(o *entry) bool { return o.obj == g })
}

func (p *PhysicsWorld) StaticCount() int {
	return len(p.statics)
}

func (p *PhysicsWorld) DynamicCount() int {
	return len(p.dynamics)
}

func colliderBox(c engine.Collider) AABB {
	center, size := c.Bounds()
	return NewAABBFromCenter(center, size)
}

// candidates returns entries that may touch region, in insertion order.
func (p *PhysicsWorld) candidates(region AABB, mask engine.LayerMask, ignore *engine.GameObject) []*entry {
	var out []*entry
	seen := make(map[*entry]struct{})
	for _, c := range p.cellsFor(region) {
		for _, e := range p.grid[c] {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			if accept(e, mask, ignore) {
				out = append(out, e)
			}
		}
	}
	for _, e := range p.dynamics {
		if accept(e, mask, ignore) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *entry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	return out
}

func accept(e *entry, mask engine.LayerMask, ignore *engine.GameObject) bool {
	return e.obj != ignore && e.obj.Active && mask.Contains(e.collider.CollisionLayer())
}

// Raycast returns the closest hit along dir. A zero-length direction never hits.
func (p *PhysicsWorld) Raycast(origin, dir rl.Vector3, maxDistance float32, mask engine.LayerMask, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	dir = SafeNormalize(rl.Vector3{X: dir.X, Y: dir.Y})
	if dir == (rl.Vector3{}) || maxDistance < 0 || mask == 0 {
		return engine.RaycastResult{}, false
	}
	end := rl.Vector3Add(origin, rl.Vector3Scale(dir, maxDistance))
	region := AABB{
		Min: rl.Vector2{X: min(origin.X, end.X), Y: min(origin.Y, end.Y)},
		Max: rl.Vector2{X: max(origin.X, end.X), Y: max(origin.Y, end.Y)},
	}

	var closest engine.RaycastResult
	closest.Distance = maxDistance
	found := false
	for _, e := range p.candidates(region, mask, ignore) {
		h, ok := RaycastAABB(origin, dir, colliderBox(e.collider), maxDistance)
		if !ok || (found && h.Distance >= closest.Distance) {
			continue
		}
		closest = engine.RaycastResult{GameObject: e.obj, Point: h.Point, Normal: h.Normal, Distance: h.Distance}
		found = true
	}
	return closest, found
}

// OverlapBox returns the first collider, in insertion order, overlapping the
// rotated box.
func (p *PhysicsWorld) OverlapBox(center, size rl.Vector3, angle float32, mask engine.LayerMask, ignore *engine.GameObject) (*engine.GameObject, bool) {
	if mask == 0 {
		return nil, false
	}
	probe := NewOBB(center, size, angle)
	for _, e := range p.candidates(probe.Bounds(), mask, ignore) {
		if probe.IntersectsAABB(colliderBox(e.collider)) {
			return e.obj, true
		}
	}
	return nil, false
}

func (p *PhysicsWorld) Overlapping(center, size rl.Vector3, mask engine.LayerMask, ignore *engine.GameObject) []*engine.GameObject {
	if mask == 0 {
		return nil
	}
	box := NewAABBFromCenter(center, size)
	var out []*engine.GameObject
	for _, e := range p.candidates(box, mask, ignore) {
		if box.Intersects(colliderBox(e.collider)) {
			out = append(out, e.obj)
		}
	}
	return out
}

// RaycastBruteForce tests every collider without the grid. It exists to
// validate and benchmark the indexed path.
func (p *PhysicsWorld) RaycastBruteForce(origin, dir rl.Vector3, maxDistance float32, mask engine.LayerMask, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	dir = SafeNormalize(rl.Vector3{X: dir.X, Y: dir.Y})
	if dir == (rl.Vector3{}) || mask == 0 {
		return engine.RaycastResult{}, false
	}
	all := make([]*entry, 0, len(p.statics)+len(p.dynamics))
	for _, e := range p.statics {
		all = append(all, e)
	}
	all = append(all, p.dynamics...)

	var closest engine.RaycastResult
	found := false
	for _, e := range all {
		if !accept(e, mask, ignore) {
			continue
		}
		h, ok := RaycastAABB(origin, dir, colliderBox(e.collider), maxDistance)
		if !ok || (found && h.Distance >= closest.Distance) {
			continue
		}
		closest = engine.RaycastResult{GameObject: e.obj, Point: h.Point, Normal: h.Normal, Distance: h.Distance}
		found = true
	}
	return closest, found
}

var _ engine.WorldAccess = (*PhysicsWorld)(nil)
