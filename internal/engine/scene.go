package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	World       WorldAccess

	// ObjectAdded and ObjectRemoved let collision worlds track membership.
	ObjectAdded   EventWithArg[*GameObject]
	ObjectRemoved EventWithArg[*GameObject]

	uidMap map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if _, exists := s.uidMap[g.UID]; exists {
		return
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
	s.ObjectAdded.Invoke(g)
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			delete(s.uidMap, g.UID)
			s.ObjectRemoved.Invoke(g)
			g.Scene = nil
			return
		}
	}
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// FindComponents returns every component of type T on active objects, in
// scene order.
func FindComponents[T any](s *Scene) []T {
	var result []T
	for _, g := range s.GameObjects {
		if !g.Active {
			continue
		}
		result = append(result, GetComponents[T](g)...)
	}
	return result
}
