package engine

import (
	"fmt"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PrefabFactory builds a ready-to-add object placed at pos.
type PrefabFactory func(pos rl.Vector3) *GameObject

// PrefabRegistry maps tile codes to object factories.
type PrefabRegistry struct {
	factories map[rune]PrefabFactory
	names     map[rune]string
}

func NewPrefabRegistry() *PrefabRegistry {
	return &PrefabRegistry{
		factories: make(map[rune]PrefabFactory),
		names:     make(map[rune]string),
	}
}

// Register binds a tile code to a factory. Registering the same code twice
// is a programming error.
func (r *PrefabRegistry) Register(code rune, name string, factory PrefabFactory) {
	if _, exists := r.factories[code]; exists {
		panic(fmt.Sprintf("prefab %q already registered for %q", code, r.names[code]))
	}
	r.factories[code] = factory
	r.names[code] = name
}

// Spawn creates the prefab for code at pos. The second result is false for
// unknown codes.
func (r *PrefabRegistry) Spawn(code rune, pos rl.Vector3) (*GameObject, bool) {
	f, ok := r.factories[code]
	if !ok {
		return nil, false
	}
	return f(pos), true
}

func (r *PrefabRegistry) Has(code rune) bool {
	_, ok := r.factories[code]
	return ok
}

// Names returns the registered prefab names sorted.
func (r *PrefabRegistry) Names() []string {
	names := make([]string, 0, len(r.names))
	for _, n := range r.names {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
