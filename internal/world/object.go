package world

import "github.com/go-gl/mathgl/mgl32"

// ID identifies an object within a Scene. IDs are assigned by Scene.Add and never reused.
type ID uint32

// Kind selects the geometry an object is drawn with.
type Kind int

const (
	KindBox Kind = iota
	KindSphere
	KindPlane
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindModel:
		return "model"
	}
	return "unknown"
}

// MaterialKind selects the shading model.
type MaterialKind int

const (
	// MaterialStandard is lit by the ambient and spot lights and fogged.
	MaterialStandard MaterialKind = iota
	// MaterialBasic ignores lights.
	MaterialBasic
	// MaterialShader uses the vertex/fragment shader files on the material.
	MaterialShader
)

// Face is one side of a multi-material box. Texture, when set, replaces Color.
type Face struct {
	Color   Color
	Texture string
}

// Material holds the surface state the renderer reads every frame. Color and
// Wireframe are mutated live by parameter callbacks and by picking.
type Material struct {
	Kind       MaterialKind
	Color      Color
	Wireframe  bool
	DoubleSide bool
	Texture    string

	// Faces, when non-nil, gives a box one material per side in the order
	// +X, -X, +Y, -Y, +Z, -Z.
	Faces []Face

	VertexShader   string
	FragmentShader string
}

// Shape is the pick volume of an object.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeSphere
	ShapeBox
	// ShapeQuad is a rectangle in the local XY plane.
	ShapeQuad
)

// Bounds is the local-space pick volume. Radius applies to spheres,
// HalfExtents to boxes and quads (Z is ignored for quads).
type Bounds struct {
	Shape       Shape
	Radius      float32
	HalfExtents mgl32.Vec3
}

// Object is a scene member: geometry, transform and material.
type Object struct {
	id ID

	Name string
	Kind Kind

	// Size holds geometry dimensions: box width/height/depth, sphere radius
	// in X, plane width/height in X and Y.
	Size mgl32.Vec3

	Position mgl32.Vec3
	// Rotation is Euler angles in radians, applied X then Y then Z.
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	Material Material
	Bounds   Bounds

	// Source is the model file for KindModel.
	Source string

	CastShadow    bool
	ReceiveShadow bool
	Visible       bool
}

// NewObject returns a visible object with unit scale and bounds derived from kind and size.
func NewObject(name string, kind Kind, size mgl32.Vec3) *Object {
	o := &Object{
		Name:    name,
		Kind:    kind,
		Size:    size,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
	}
	o.Bounds = defaultBounds(kind, size)
	return o
}

func defaultBounds(kind Kind, size mgl32.Vec3) Bounds {
	switch kind {
	case KindBox:
		return Bounds{Shape: ShapeBox, HalfExtents: size.Mul(0.5)}
	case KindSphere:
		return Bounds{Shape: ShapeSphere, Radius: size.X()}
	case KindPlane:
		return Bounds{Shape: ShapeQuad, HalfExtents: mgl32.Vec3{size.X() / 2, size.Y() / 2, 0}}
	}
	return Bounds{}
}

// ID returns the identifier assigned when the object was added to a scene, or 0.
func (o *Object) ID() ID {
	return o.id
}

// Transform returns the local-to-world matrix: translate * Rx * Ry * Rz * scale.
func (o *Object) Transform() mgl32.Mat4 {
	t := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	r := mgl32.HomogRotate3DX(o.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z()))
	s := mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(r).Mul4(s)
}
