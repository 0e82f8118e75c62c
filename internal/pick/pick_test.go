package pick

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-demo/internal/world"
)

func frontCamera() *world.Camera {
	cam := world.NewPerspective(60, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 10}
	cam.Target = mgl32.Vec3{0, 0, 0}
	return cam
}

func sphereAt(name string, pos mgl32.Vec3, r float32) *world.Object {
	o := world.NewObject(name, world.KindSphere, mgl32.Vec3{r, 0, 0})
	o.Position = pos
	return o
}

func TestFromCameraCenter(t *testing.T) {
	r := FromCamera(frontCamera(), mgl32.Vec2{0, 0})
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, r.Origin)
	assert.True(t, r.Dir.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5), "dir %v", r.Dir)
}

func TestFromCameraOffCenter(t *testing.T) {
	cam := frontCamera()
	// A point at x=2 on the z=0 plane projects to ndc x = 2 / (10 * tan(30°)).
	ndcX := 2 / (10 * math32.Tan(mgl32.DegToRad(30)))
	r := FromCamera(cam, mgl32.Vec2{ndcX, 0})
	p := r.At(10 / -r.Dir.Z())
	assert.InDelta(t, 2, p.X(), 1e-3)
	assert.InDelta(t, 0, p.Y(), 1e-3)
}

func TestIntersectSphere(t *testing.T) {
	target := sphereAt("target", mgl32.Vec3{}, 1)
	other := sphereAt("other", mgl32.Vec3{5, 0, 0}, 1)

	hits := CPU{}.Pick(frontCamera(), mgl32.Vec2{0, 0}, []*world.Object{other, target})
	require.Len(t, hits, 1)
	assert.Same(t, target, hits[0].Object)
	assert.InDelta(t, 9, hits[0].Distance, 1e-4)
	assert.True(t, hits[0].Point.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-4))
}

func TestIntersectNearestFirst(t *testing.T) {
	far := sphereAt("far", mgl32.Vec3{0, 0, -5}, 1)
	near := sphereAt("near", mgl32.Vec3{0, 0, 3}, 1)

	hits := Intersect(FromCamera(frontCamera(), mgl32.Vec2{}), []*world.Object{far, near})
	require.Len(t, hits, 2)
	assert.Same(t, near, hits[0].Object)
	assert.Same(t, far, hits[1].Object)
}

func TestIntersectSkipsHiddenAndUnbounded(t *testing.T) {
	hidden := sphereAt("hidden", mgl32.Vec3{}, 1)
	hidden.Visible = false
	model := world.NewObject("model", world.KindModel, mgl32.Vec3{})

	hits := Intersect(FromCamera(frontCamera(), mgl32.Vec2{}), []*world.Object{hidden, model})
	assert.Empty(t, hits)
}

func TestIntersectRotatedBox(t *testing.T) {
	box := world.NewObject("box", world.KindBox, mgl32.Vec3{1, 1, 1})
	box.Rotation = mgl32.Vec3{0, math32.Pi / 4, 0}
	cam := frontCamera()

	hits := Intersect(FromCamera(cam, mgl32.Vec2{}), []*world.Object{box})
	require.Len(t, hits, 1)
	// Rotated 45° the nearest edge sits at half the diagonal.
	assert.InDelta(t, 10-math32.Sqrt(2)/2, hits[0].Distance, 1e-3)

	cam.Position = mgl32.Vec3{3, 0, 10}
	cam.Target = mgl32.Vec3{3, 0, 0}
	assert.Empty(t, Intersect(FromCamera(cam, mgl32.Vec2{}), []*world.Object{box}))
}

func TestIntersectScaledSphere(t *testing.T) {
	s := sphereAt("s", mgl32.Vec3{}, 1)
	s.Scale = mgl32.Vec3{3, 3, 3}
	hits := Intersect(FromCamera(frontCamera(), mgl32.Vec2{}), []*world.Object{s})
	require.Len(t, hits, 1)
	assert.InDelta(t, 7, hits[0].Distance, 1e-3)
}

func TestIntersectFloorQuad(t *testing.T) {
	plane := world.NewObject("plane", world.KindPlane, mgl32.Vec3{30, 30, 0})
	plane.Rotation = mgl32.Vec3{-math32.Pi / 2, 0, 0}

	cam := world.NewPerspective(60, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 10, 25}
	cam.Target = mgl32.Vec3{}

	hits := Intersect(FromCamera(cam, mgl32.Vec2{}), []*world.Object{plane})
	require.Len(t, hits, 1)
	assert.InDelta(t, 0, hits[0].Point.Y(), 1e-3)
	assert.InDelta(t, cam.Distance(), hits[0].Distance, 1e-2)

	// Looking up and away never reaches the floor.
	assert.Empty(t, Intersect(FromCamera(cam, mgl32.Vec2{0, 1}), []*world.Object{plane}))
}

func TestRayStartingInsideSphere(t *testing.T) {
	s := sphereAt("s", mgl32.Vec3{0, 0, 10}, 2)
	hits := Intersect(FromCamera(frontCamera(), mgl32.Vec2{}), []*world.Object{s})
	require.Len(t, hits, 1)
	assert.InDelta(t, 2, hits[0].Distance, 1e-4)
}
