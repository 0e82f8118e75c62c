// Package pick casts rays from the camera into the scene. It is the
// CPU counterpart of the renderer's mesh picker: it tests object pick bounds
// rather than triangles and needs no GPU or window.
package pick

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scene-demo/internal/world"
)

const parallelEpsilon = 1e-6

// Ray is a half-line. Dir is unit length.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at distance t along r.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Hit is one ray/object intersection.
type Hit struct {
	Object   *world.Object
	Distance float32
	Point    mgl32.Vec3
}

// FromCamera returns the ray leaving the camera through ndc, a point in
// normalized device coordinates with +Y up.
func FromCamera(cam *world.Camera, ndc mgl32.Vec2) Ray {
	inv := cam.Projection().Mul4(cam.View()).Inv()
	through := unproject(inv, ndc, 0.5)
	dir := through.Sub(cam.Position)
	if dir.Len() == 0 {
		dir = cam.Target.Sub(cam.Position)
	}
	return Ray{Origin: cam.Position, Dir: dir.Normalize()}
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec2, z float32) mgl32.Vec3 {
	p := inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), z, 1})
	if p.W() == 0 {
		return p.Vec3()
	}
	return p.Vec3().Mul(1 / p.W())
}

// Intersect tests r against every visible object with pick bounds and returns
// the hits nearest first. Objects without bounds are skipped.
func Intersect(r Ray, objects []*world.Object) []Hit {
	var hits []Hit
	for _, o := range objects {
		if !o.Visible || o.Bounds.Shape == world.ShapeNone {
			continue
		}
		t, ok := intersectLocal(r, o)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Object: o, Distance: t, Point: r.At(t)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// intersectLocal moves r into the object's local frame. The local direction
// is left unnormalized so the ray parameter equals world distance.
func intersectLocal(r Ray, o *world.Object) (float32, bool) {
	m := o.Transform()
	if m.Det() == 0 {
		return 0, false
	}
	inv := m.Inv()
	origin := inv.Mul4x1(r.Origin.Vec4(1)).Vec3()
	dir := inv.Mul4x1(r.Dir.Vec4(0)).Vec3()

	switch o.Bounds.Shape {
	case world.ShapeSphere:
		return raySphere(origin, dir, o.Bounds.Radius)
	case world.ShapeBox:
		return rayBox(origin, dir, o.Bounds.HalfExtents)
	case world.ShapeQuad:
		return rayQuad(origin, dir, o.Bounds.HalfExtents)
	}
	return 0, false
}

func raySphere(o, d mgl32.Vec3, radius float32) (float32, bool) {
	a := d.Dot(d)
	b := 2 * o.Dot(d)
	c := o.Dot(o) - radius*radius
	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

func rayBox(o, d, half mgl32.Vec3) (float32, bool) {
	tmin := float32(math32.Inf(-1))
	tmax := float32(math32.Inf(1))
	for i := 0; i < 3; i++ {
		if math32.Abs(d[i]) < parallelEpsilon {
			if o[i] < -half[i] || o[i] > half[i] {
				return 0, false
			}
			continue
		}
		t1 := (-half[i] - o[i]) / d[i]
		t2 := (half[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

func rayQuad(o, d, half mgl32.Vec3) (float32, bool) {
	if math32.Abs(d.Z()) < parallelEpsilon {
		return 0, false
	}
	t := -o.Z() / d.Z()
	if t < 0 {
		return 0, false
	}
	p := o.Add(d.Mul(t))
	if math32.Abs(p.X()) > half.X() || math32.Abs(p.Y()) > half.Y() {
		return 0, false
	}
	return t, true
}

// CPU picks against pick bounds. It is the picker used without a window.
type CPU struct{}

// Pick casts a ray from cam through ndc and intersects it with objects.
func (CPU) Pick(cam *world.Camera, ndc mgl32.Vec2, objects []*world.Object) []Hit {
	return Intersect(FromCamera(cam, ndc), objects)
}
