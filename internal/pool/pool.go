// Package pool recycles short-lived objects such as droplets, gusts and
// particles. Pools have a fixed capacity; when every slot is in use the
// oldest active item is destroyed to make room.
package pool

import (
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// Hooks customize the item lifecycle. Every hook is optional except Create.
type Hooks[T any] struct {
	Create    func() T
	OnTake    func(T)
	OnReturn  func(T)
	OnDestroy func(T)
	// OnEvict runs before OnDestroy when a saturated pool drops an active item.
	OnEvict func(T)
}

type Pool[T comparable] struct {
	name      string
	capacity  int
	hooks     Hooks[T]
	free      []T
	active    []T
	evictions int
	log       *zap.Logger
}

type Option func(*options)

type options struct {
	name string
	log  *zap.Logger
}

func WithName(name string) Option { return func(o *options) { o.name = name } }

func WithLogger(l *zap.Logger) Option { return func(o *options) { o.log = l } }

// New creates a pool holding at most capacity items. A capacity below one is
// raised to one.
func New[T comparable](capacity int, hooks Hooks[T], opts ...Option) *Pool[T] {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = reflect.TypeOf((*T)(nil)).Elem().String()
	}
	return &Pool[T]{
		name:     o.name,
		capacity: max(1, capacity),
		hooks:    hooks,
		log:      o.log,
	}
}

func (p *Pool[T]) Capacity() int  { return p.capacity }
func (p *Pool[T]) Active() int    { return len(p.active) }
func (p *Pool[T]) Free() int      { return len(p.free) }
func (p *Pool[T]) Evictions() int { return p.evictions }

// ActiveItems returns the active items, oldest first.
func (p *Pool[T]) ActiveItems() []T {
	return slices.Clone(p.active)
}

// Prewarm fills the free list with up to n new items.
func (p *Pool[T]) Prewarm(n int) {
	for i := 0; i < n && len(p.free)+len(p.active) < p.capacity; i++ {
		item := p.hooks.Create()
		if p.hooks.OnReturn != nil {
			p.hooks.OnReturn(item)
		}
		p.free = append(p.free, item)
	}
}

// Acquire hands out a free item, creating one when the free list is empty.
// A saturated pool destroys its oldest active item first.
func (p *Pool[T]) Acquire() T {
	if len(p.active) >= p.capacity {
		oldest := p.active[0]
		p.active = p.active[1:]
		p.evictions++
		p.log.Debug("pool saturated, evicting oldest",
			zap.String("pool", p.name),
			zap.Int("capacity", p.capacity))
		if p.hooks.OnEvict != nil {
			p.hooks.OnEvict(oldest)
		}
		p.destroy(oldest)
	}

	var item T
	if n := len(p.free); n > 0 {
		item = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		item = p.hooks.Create()
	}
	p.active = append(p.active, item)
	if p.hooks.OnTake != nil {
		p.hooks.OnTake(item)
	}
	return item
}

// Release returns an active item. Items the pool did not hand out, or that
// were already released or evicted, are ignored and false is returned.
func (p *Pool[T]) Release(item T) bool {
	i := slices.Index(p.active, item)
	if i < 0 {
		return false
	}
	p.active = slices.Delete(p.active, i, i+1)
	if len(p.free)+len(p.active) >= p.capacity {
		p.destroy(item)
		return true
	}
	if p.hooks.OnReturn != nil {
		p.hooks.OnReturn(item)
	}
	p.free = append(p.free, item)
	return true
}

// Clear destroys every item, active and free.
func (p *Pool[T]) Clear() {
	for _, item := range p.active {
		p.destroy(item)
	}
	for _, item := range p.free {
		p.destroy(item)
	}
	p.active = nil
	p.free = nil
}

func (p *Pool[T]) destroy(item T) {
	if p.hooks.OnDestroy != nil {
		p.hooks.OnDestroy(item)
	}
}

// Set keeps one pool per element type.
type Set struct {
	pools map[reflect.Type]any
}

func NewSet() *Set {
	return &Set{pools: make(map[reflect.Type]any)}
}

// Register stores p as the pool for T, replacing any previous one.
func Register[T comparable](s *Set, p *Pool[T]) {
	s.pools[reflect.TypeOf((*T)(nil)).Elem()] = p
}

func Get[T comparable](s *Set) (*Pool[T], bool) {
	p, ok := s.pools[reflect.TypeOf((*T)(nil)).Elem()].(*Pool[T])
	return p, ok
}

// ClearAll destroys the contents of every pool in the set.
func (s *Set) ClearAll() {
	for _, p := range s.pools {
		if c, ok := p.(interface{ Clear() }); ok {
			c.Clear()
		}
	}
}
