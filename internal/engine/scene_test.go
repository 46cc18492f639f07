package engine

import "testing"

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	scene.AddGameObject(obj)

	if len(scene.GameObjects) != 1 {
		t.Errorf("Expected 1 GameObject, got %d", len(scene.GameObjects))
	}

	if scene.GameObjects[0] != obj {
		t.Error("GameObject not added to scene")
	}

	if obj.Scene != scene {
		t.Error("GameObject.Scene not set")
	}
}

func TestSceneAddTwiceIsIgnored(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	added := 0
	scene.ObjectAdded.AddListener(func(*GameObject) { added++ })

	scene.AddGameObject(obj)
	scene.AddGameObject(obj)

	if len(scene.GameObjects) != 1 {
		t.Errorf("Expected 1 GameObject, got %d", len(scene.GameObjects))
	}
	if added != 1 {
		t.Errorf("Expected 1 ObjectAdded notification, got %d", added)
	}
}

func TestSceneUIDLookup(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	scene.AddGameObject(obj)

	found := scene.FindByUID(obj.UID)
	if found != obj {
		t.Errorf("FindByUID failed: expected %v, got %v", obj, found)
	}

	if scene.FindByUID(0) != nil {
		t.Error("FindByUID should return nil for non-existent UID")
	}
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Player")
	obj2 := NewGameObject("Enemy")

	var removed *GameObject
	scene.ObjectRemoved.AddListener(func(g *GameObject) { removed = g })

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)

	scene.RemoveGameObject(obj1)

	if len(scene.GameObjects) != 1 {
		t.Errorf("Expected 1 GameObject after removal, got %d", len(scene.GameObjects))
	}

	if scene.GameObjects[0] != obj2 {
		t.Error("Wrong GameObject removed")
	}

	if scene.FindByUID(obj1.UID) != nil {
		t.Error("Removed GameObject still in UID map")
	}

	if removed != obj1 {
		t.Error("ObjectRemoved not invoked with the removed object")
	}

	if obj1.Scene != nil {
		t.Error("Removed GameObject still points at the scene")
	}
}

func TestSceneFindByTag(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Rock1")
	obj2 := NewGameObject("Rock2")
	obj3 := NewGameObject("Player")

	obj1.Tags = []string{"obstacle", "static"}
	obj2.Tags = []string{"obstacle"}
	obj3.Tags = []string{"player"}

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)
	scene.AddGameObject(obj3)

	if got := len(scene.FindByTag("obstacle")); got != 2 {
		t.Errorf("Expected 2 obstacles, got %d", got)
	}

	if got := len(scene.FindByTag("player")); got != 1 {
		t.Errorf("Expected 1 player, got %d", got)
	}

	if len(scene.FindByTag("nonexistent")) != 0 {
		t.Error("FindByTag should return empty slice for non-existent tag")
	}
}

type markerComponent struct {
	BaseComponent
	id int
}

func TestFindComponentsSkipsInactive(t *testing.T) {
	scene := NewScene("Test")
	a := NewGameObject("A")
	a.AddComponent(&markerComponent{id: 1})
	b := NewGameObject("B")
	b.AddComponent(&markerComponent{id: 2})
	b.Active = false
	c := NewGameObject("C")
	c.AddComponent(&markerComponent{id: 3})

	scene.AddGameObject(a)
	scene.AddGameObject(b)
	scene.AddGameObject(c)

	found := FindComponents[*markerComponent](scene)
	if len(found) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(found))
	}
	if found[0].id != 1 || found[1].id != 3 {
		t.Errorf("Expected ids 1,3 in scene order, got %d,%d", found[0].id, found[1].id)
	}
}
