package world

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#00ff00", 0x00ff00},
		{"0x0000FF", 0x0000ff},
		{"#f00", 0xff0000},
		{"  #333333 ", 0x333333},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	for _, bad := range []string{"00ff00", "#12345", "#gggggg", ""} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorChannels(t *testing.T) {
	r, g, b := Color(0x123456).RGB()
	assert.Equal(t, uint8(0x12), r)
	assert.Equal(t, uint8(0x34), g)
	assert.Equal(t, uint8(0x56), b)
	assert.Equal(t, "#ff0000", Color(0xff0000).Hex())
}

func TestSceneAddRemove(t *testing.T) {
	s := NewScene()
	box := NewObject("box", KindBox, mgl32.Vec3{1, 1, 1})
	sphere := NewObject("sphere", KindSphere, mgl32.Vec3{2, 0, 0})

	boxID := s.Add(box)
	sphereID := s.Add(sphere)
	assert.NotEqual(t, boxID, sphereID)
	assert.Equal(t, boxID, box.ID())
	assert.Equal(t, boxID, s.Add(box), "re-adding keeps the ID")
	assert.Equal(t, 2, s.Len())

	got, ok := s.ByID(sphereID)
	require.True(t, ok)
	assert.Same(t, sphere, got)

	byName, ok := s.ByName("box")
	require.True(t, ok)
	assert.Same(t, box, byName)

	assert.True(t, s.Remove(sphereID))
	assert.False(t, s.Remove(sphereID))
	_, ok = s.ByID(sphereID)
	assert.False(t, ok)
	assert.Equal(t, []*Object{box}, s.Children())

	third := NewObject("third", KindBox, mgl32.Vec3{1, 1, 1})
	assert.Greater(t, s.Add(third), sphereID, "IDs are not reused")
}

func TestSceneReAddKeepsID(t *testing.T) {
	s := NewScene()
	box := NewObject("box", KindBox, mgl32.Vec3{1, 1, 1})
	sphere := NewObject("sphere", KindSphere, mgl32.Vec3{2, 0, 0})
	s.Add(box)
	sphereID := s.Add(sphere)

	require.True(t, s.Remove(sphereID))
	assert.Equal(t, sphereID, s.Add(sphere))
	got, ok := s.ByID(sphereID)
	require.True(t, ok)
	assert.Same(t, sphere, got)
	assert.Equal(t, []*Object{box, sphere}, s.Children())

	fresh := NewObject("fresh", KindBox, mgl32.Vec3{1, 1, 1})
	assert.Greater(t, s.Add(fresh), sphereID)
}

func TestSceneAddFromOtherSceneAvoidsCollision(t *testing.T) {
	a, b := NewScene(), NewScene()
	moved := NewObject("moved", KindBox, mgl32.Vec3{1, 1, 1})
	a.Add(NewObject("pad", KindBox, mgl32.Vec3{1, 1, 1}))
	movedID := a.Add(moved)

	first := NewObject("first", KindBox, mgl32.Vec3{1, 1, 1})
	firstID := b.Add(first)
	require.Equal(t, ID(1), firstID)
	require.True(t, a.Remove(movedID))

	assert.Equal(t, movedID, b.Add(moved), "a free ID is kept")
	next := b.Add(NewObject("next", KindBox, mgl32.Vec3{1, 1, 1}))
	assert.Greater(t, next, movedID)

	clash := NewObject("clash", KindBox, mgl32.Vec3{1, 1, 1})
	a.Add(clash)
	require.True(t, a.Remove(clash.ID()))
	clashID := b.Add(clash)
	got, ok := b.ByID(clashID)
	require.True(t, ok)
	assert.Same(t, clash, got)
	assert.Equal(t, 4, b.Len())
}

func TestSceneChildrenIsSnapshot(t *testing.T) {
	s := NewScene()
	s.Add(NewObject("a", KindBox, mgl32.Vec3{1, 1, 1}))
	snap := s.Children()
	s.Add(NewObject("b", KindBox, mgl32.Vec3{1, 1, 1}))
	assert.Len(t, snap, 1)
	assert.Len(t, s.Children(), 2)
}

func TestDefaultBounds(t *testing.T) {
	box := NewObject("box", KindBox, mgl32.Vec3{5, 5, 5})
	assert.Equal(t, ShapeBox, box.Bounds.Shape)
	assert.Equal(t, mgl32.Vec3{2.5, 2.5, 2.5}, box.Bounds.HalfExtents)

	sphere := NewObject("sphere", KindSphere, mgl32.Vec3{4, 0, 0})
	assert.Equal(t, ShapeSphere, sphere.Bounds.Shape)
	assert.Equal(t, float32(4), sphere.Bounds.Radius)

	plane := NewObject("plane", KindPlane, mgl32.Vec3{30, 30, 0})
	assert.Equal(t, ShapeQuad, plane.Bounds.Shape)

	model := NewObject("monkey", KindModel, mgl32.Vec3{})
	assert.Equal(t, ShapeNone, model.Bounds.Shape)
}

func TestObjectTransform(t *testing.T) {
	o := NewObject("o", KindBox, mgl32.Vec3{1, 1, 1})
	o.Position = mgl32.Vec3{1, 2, 3}
	p := o.Transform().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.True(t, p.ApproxEqual(mgl32.Vec3{1, 2, 3}))

	o.Rotation = mgl32.Vec3{0, math32.Pi / 2, 0}
	x := o.Transform().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.True(t, x.ApproxEqualThreshold(mgl32.Vec3{1, 2, 2}, 1e-5), "got %v", x)
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	c := NewPerspective(60, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{0, 10, 25}
	c.Target = mgl32.Vec3{}
	d := c.Distance()

	c.Orbit(0.5, 0.2)
	assert.InDelta(t, d, c.Distance(), 1e-3)
	assert.NotEqual(t, mgl32.Vec3{0, 10, 25}, c.Position)

	c.Orbit(0, 10)
	assert.Greater(t, c.Position.Y(), float32(0), "pitch clamps short of the pole")
	assert.InDelta(t, d, c.Distance(), 1e-3)
}

func TestCameraZoomAndAspect(t *testing.T) {
	c := NewPerspective(60, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{0, 0, 10}
	c.Target = mgl32.Vec3{}

	c.Zoom(0.5)
	assert.InDelta(t, 5, c.Distance(), 1e-4)
	c.Zoom(0.0001)
	assert.InDelta(t, minOrbitDistance, c.Distance(), 1e-4)

	c.SetAspect(1600, 900)
	assert.InDelta(t, 16.0/9.0, c.Aspect, 1e-6)
	c.SetAspect(0, 900)
	assert.InDelta(t, 16.0/9.0, c.Aspect, 1e-6)
}

func TestSpotLightHelperFollowsAngle(t *testing.T) {
	l := &SpotLight{
		Position: mgl32.Vec3{-30, 30, 0},
		Target:   mgl32.Vec3{0, 0, 0},
		Angle:    0.2,
	}
	h := NewSpotLightHelper(l)
	require.Len(t, h.Lines, 4+helperSegments)

	apex := h.Lines[0][0]
	assert.Equal(t, l.Position, apex)

	narrow := rimRadius(h)
	l.Angle = 0.6
	h.Update()
	wide := rimRadius(h)
	assert.Greater(t, wide, narrow)

	length := l.Target.Sub(l.Position).Len()
	assert.InDelta(t, length*math32.Tan(0.6), wide, 1e-3)
}

func rimRadius(h *SpotLightHelper) float32 {
	l := h.Light
	center := l.Position.Add(l.Direction().Mul(l.Target.Sub(l.Position).Len()))
	return h.Lines[0][1].Sub(center).Len()
}

func TestSpotConeCosines(t *testing.T) {
	l := &SpotLight{Angle: 0.5, Penumbra: 0}
	assert.Equal(t, l.OuterCos(), l.InnerCos())
	l.Penumbra = 1
	assert.InDelta(t, 1, l.InnerCos(), 1e-6)
}
