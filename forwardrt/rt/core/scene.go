package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FrameCollector receives the renderable parts of visible entities while a
// frame is being classified.
type FrameCollector interface {
	CollectPrefab(root *Node)
	CollectLight(light *LightEntity)
}

// Entity is a top-level scene element. Each kind decides what it contributes
// to a frame through Collect; kinds with nothing to draw do nothing.
type Entity interface {
	EntityName() string
	IsVisible() bool
	Collect(c FrameCollector)
}

// Prefab is a reusable node tree that can be instantiated many times.
type Prefab struct {
	Name string
	Root *Node
}

func NewPrefab(name string, root *Node) *Prefab {
	return &Prefab{Name: name, Root: root}
}

// Instantiate places a fresh copy of the prefab at transform.
func (p *Prefab) Instantiate(name string, transform Transform) *PrefabEntity {
	e := NewPrefabEntity(name, p)
	e.Root.Transform = transform
	return e
}

// PrefabEntity places an instance of a prefab in the scene. Root is the
// placement node; the cloned prefab tree hangs below it.
type PrefabEntity struct {
	Name    string
	Prefab  *Prefab
	Root    *Node
	Visible bool
}

func NewPrefabEntity(name string, prefab *Prefab) *PrefabEntity {
	e := &PrefabEntity{
		Name:    name,
		Prefab:  prefab,
		Root:    NewNode(name),
		Visible: true,
	}
	if prefab != nil && prefab.Root != nil {
		e.Root.AddChild(prefab.Root.Clone())
	}
	return e
}

// A nil *PrefabEntity is a hidden entity with no name.
func (e *PrefabEntity) EntityName() string {
	if e == nil {
		return ""
	}
	return e.Name
}

func (e *PrefabEntity) IsVisible() bool { return e != nil && e.Visible }

func (e *PrefabEntity) Collect(c FrameCollector) {
	if e == nil || e.Prefab == nil {
		return
	}
	c.CollectPrefab(e.Root)
}

// MarkerEntity is a named transform with no renderable content (spawn points,
// camera targets). The renderer ignores it.
type MarkerEntity struct {
	Name      string
	Transform Transform
	Visible   bool
}

func (e *MarkerEntity) EntityName() string {
	if e == nil {
		return ""
	}
	return e.Name
}

func (e *MarkerEntity) IsVisible() bool        { return e != nil && e.Visible }
func (e *MarkerEntity) Collect(FrameCollector) {}

type Scene struct {
	Entities        []Entity
	BackgroundColor mgl32.Vec3
	AmbientLight    mgl32.Vec3
	SkyboxFilename  string
	BaseFolder      string
}

func NewScene() *Scene {
	return &Scene{
		Entities:        []Entity{},
		BackgroundColor: mgl32.Vec3{0, 0, 0},
		AmbientLight:    mgl32.Vec3{0.1, 0.1, 0.1},
	}
}

func (s *Scene) AddEntity(es ...Entity) {
	s.Entities = append(s.Entities, es...)
}

// Find returns the first entity with the given name.
func (s *Scene) Find(name string) Entity {
	for _, e := range s.Entities {
		if e != nil && e.EntityName() == name {
			return e
		}
	}
	return nil
}
