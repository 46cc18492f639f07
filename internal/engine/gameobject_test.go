package engine

import "testing"

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if !obj.Active {
		t.Error("New objects should be active")
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")
	obj3 := NewGameObject("Third")

	if obj1.UID == obj2.UID || obj2.UID == obj3.UID || obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"checkpoint", "platform"}

	if !obj.HasTag("checkpoint") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("player") {
		t.Error("HasTag should return false for non-existent tag")
	}

	obj2 := NewGameObject("Test2")
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

type otherComponent struct {
	BaseComponent
}

func TestGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	m := &markerComponent{id: 7}
	obj.AddComponent(m)

	if got := GetComponent[*markerComponent](obj); got != m {
		t.Errorf("Expected marker component, got %v", got)
	}
	if m.GetGameObject() != obj {
		t.Error("AddComponent should set the owner")
	}
	if got := GetComponent[*otherComponent](obj); got != nil {
		t.Errorf("Expected nil for missing component, got %v", got)
	}
	if got := GetComponent[*markerComponent](nil); got != nil {
		t.Error("GetComponent on nil object should return zero value")
	}
}

func TestGetComponentByInterface(t *testing.T) {
	obj := NewGameObject("Test")
	obj.AddComponent(&otherComponent{})
	obj.AddComponent(&markerComponent{})

	all := GetComponents[Component](obj)
	if len(all) != 2 {
		t.Errorf("Expected 2 components, got %d", len(all))
	}
}

func TestBaseComponentWorldDetached(t *testing.T) {
	m := &markerComponent{}
	if m.World() != nil {
		t.Error("Detached component should have no world")
	}

	obj := NewGameObject("Test")
	obj.AddComponent(m)
	scene := NewScene("Test")
	scene.AddGameObject(obj)
	if m.World() != nil {
		t.Error("Scene without world should yield nil")
	}
}
