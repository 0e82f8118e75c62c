// Package world holds the renderer-independent scene graph: objects, camera,
// lights and helpers. The frame loop mutates it and the renderer reads it, so
// nothing here depends on a window or GPU.
package world

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// AmbientLight lights every standard material uniformly.
type AmbientLight struct {
	Color     Color
	Intensity float32
}

// FogExp2 is exponential squared fog: factor = 1 - exp(-(density*distance)^2).
type FogExp2 struct {
	Color   Color
	Density float32
}

// Background is drawn behind everything. When all six Faces are set they form
// a cubemap in the order +X, -X, +Y, -Y, +Z, -Z; otherwise Color is the clear color.
type Background struct {
	Color Color
	Faces [6]string
}

// HasCubemap reports whether every face has an image.
func (b Background) HasCubemap() bool {
	for _, f := range b.Faces {
		if f == "" {
			return false
		}
	}
	return true
}

// AxesHelper draws X/Y/Z axis lines of the given length from the origin.
type AxesHelper struct {
	Size    float32
	Visible bool
}

// GridHelper draws a Size×Size grid on the XZ plane.
type GridHelper struct {
	Size      float32
	Divisions int
	Visible   bool
}

// Scene is an ordered set of objects plus the environment they are lit and
// drawn in. Children keeps insertion order; lookups by ID go through an index.
type Scene struct {
	children []*Object
	index    *intmap.Map[ID, *Object]
	nextID   ID

	Background Background
	Fog        *FogExp2
	Ambient    AmbientLight
	Spot       *SpotLight
	SpotHelper *SpotLightHelper
	Axes       AxesHelper
	Grid       GridHelper
}

// NewScene returns an empty scene with a black background and no fog.
func NewScene() *Scene {
	return &Scene{
		index:  intmap.New[ID, *Object](32),
		nextID: 1,
	}
}

// Add appends o and returns its ID. A new object gets a fresh ID; an object
// that was removed earlier comes back under the ID it had, so IDs captured
// before the removal still find it.
func (s *Scene) Add(o *Object) ID {
	if o.id != 0 {
		cur, ok := s.index.Get(o.id)
		if ok && cur == o {
			return o.id
		}
		if !ok {
			s.nextID = max(s.nextID, o.id+1)
			s.children = append(s.children, o)
			s.index.Put(o.id, o)
			return o.id
		}
	}
	o.id = s.nextID
	s.nextID++
	s.children = append(s.children, o)
	s.index.Put(o.id, o)
	return o.id
}

// Remove drops the object with the given ID. It reports whether one was found.
func (s *Scene) Remove(id ID) bool {
	if _, ok := s.index.Get(id); !ok {
		return false
	}
	s.index.Del(id)
	s.children = slices.DeleteFunc(s.children, func(o *Object) bool { return o.id == id })
	return true
}

// ByID returns the object with the given ID.
func (s *Scene) ByID(id ID) (*Object, bool) {
	return s.index.Get(id)
}

// ByName returns the first object with the given name.
func (s *Scene) ByName(name string) (*Object, bool) {
	for _, o := range s.children {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// Children returns the current members in insertion order. The slice is a
// copy; the objects are shared.
func (s *Scene) Children() []*Object {
	return slices.Clone(s.children)
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.children)
}
