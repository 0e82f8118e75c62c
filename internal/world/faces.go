package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FacePlacement positions one side of a box. The face is a Width×Length
// quad in the local XZ plane facing +Y, moved into place by Transform.
type FacePlacement struct {
	Transform mgl32.Mat4
	Width     float32
	Length    float32
	Normal    mgl32.Vec3
}

// BoxFaces returns the six sides of a box of the given size in the order
// +X, -X, +Y, -Y, +Z, -Z.
func BoxFaces(size mgl32.Vec3) [6]FacePlacement {
	hx, hy, hz := size.X()/2, size.Y()/2, size.Z()/2
	half := math32.Pi / 2
	place := func(t, r mgl32.Mat4, w, l float32) FacePlacement {
		m := t.Mul4(r)
		return FacePlacement{
			Transform: m,
			Width:     w,
			Length:    l,
			Normal:    m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize(),
		}
	}
	return [6]FacePlacement{
		place(mgl32.Translate3D(hx, 0, 0), mgl32.HomogRotate3DZ(-half), size.Y(), size.Z()),
		place(mgl32.Translate3D(-hx, 0, 0), mgl32.HomogRotate3DZ(half), size.Y(), size.Z()),
		place(mgl32.Translate3D(0, hy, 0), mgl32.Ident4(), size.X(), size.Z()),
		place(mgl32.Translate3D(0, -hy, 0), mgl32.HomogRotate3DX(math32.Pi), size.X(), size.Z()),
		place(mgl32.Translate3D(0, 0, hz), mgl32.HomogRotate3DX(half), size.X(), size.Y()),
		place(mgl32.Translate3D(0, 0, -hz), mgl32.HomogRotate3DX(-half), size.X(), size.Y()),
	}
}

// PlaneBasis turns a quad built in the XZ plane into one in the local XY
// plane facing +Z, which is how planes are defined on Object.
func PlaneBasis() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(math32.Pi / 2)
}
