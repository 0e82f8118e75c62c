package render

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"scene-demo/internal/pick"
	"scene-demo/internal/world"
)

// Pick casts a ray through ndc with raylib and tests it against object
// meshes. Objects not drawn yet fall back to their pick bounds.
func (r *Renderer) Pick(cam *world.Camera, ndc mgl32.Vec2, objects []*world.Object) []pick.Hit {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	screen := rl.NewVector2((ndc.X()+1)/2*w, (1-ndc.Y())/2*h)
	ray := rl.GetScreenToWorldRay(screen, toCamera(cam))

	var hits []pick.Hit
	var rest []*world.Object
	for _, o := range objects {
		if !o.Visible {
			continue
		}
		e, ok := r.entries[o.ID()]
		if !ok {
			rest = append(rest, o)
			continue
		}
		if c, ok := collide(ray, e, o); ok {
			hits = append(hits, pick.Hit{
				Object:   o,
				Distance: c.Distance,
				Point:    mgl32.Vec3{c.Point.X, c.Point.Y, c.Point.Z},
			})
		}
	}
	if len(rest) > 0 {
		hits = append(hits, pick.Intersect(pick.Ray{
			Origin: mgl32.Vec3{ray.Position.X, ray.Position.Y, ray.Position.Z},
			Dir:    mgl32.Vec3{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}.Normalize(),
		}, rest)...)
	}
	slices.SortFunc(hits, func(a, b pick.Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

// collide returns the nearest hit of ray against the meshes of e.
func collide(ray rl.Ray, e *entry, o *world.Object) (rl.RayCollision, bool) {
	xf := o.Transform()
	if !e.hasModel {
		if o.Kind == world.KindPlane {
			xf = xf.Mul4(world.PlaneBasis())
		}
		c := rl.GetRayCollisionMesh(ray, e.mesh, toMatrix(xf))
		return c, c.Hit
	}
	var best rl.RayCollision
	for _, m := range e.model.GetMeshes() {
		c := rl.GetRayCollisionMesh(ray, m, toMatrix(xf))
		if c.Hit && (!best.Hit || c.Distance < best.Distance) {
			best = c
		}
	}
	return best, best.Hit
}
