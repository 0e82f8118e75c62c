package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-demo/internal/params"
	"scene-demo/internal/world"
)

func demoStore(t *testing.T) *params.Store {
	t.Helper()
	s, err := params.New([]params.Def{
		{Name: "sphereColor", Kind: params.KindColor, Default: params.Value{Color: 0x0000ff}, Folder: "Sphere"},
		{Name: "wireframe", Kind: params.KindBool, Folder: "Sphere"},
		{Name: "speed", Kind: params.KindRange, Min: 0, Max: 0.1, Default: params.Value{Number: 0.01}, Folder: "Sphere"},
		{Name: "angle", Kind: params.KindRange, Min: 0, Max: 1, Default: params.Value{Number: 0.2}, Folder: "Spot Light"},
		{Name: "penumbra", Kind: params.KindRange, Min: 0, Max: 1, Folder: "Spot Light"},
		{Name: "intensity", Kind: params.KindRange, Min: 0, Max: 1, Default: params.Value{Number: 1}, Folder: "Spot Light"},
	})
	require.NoError(t, err)
	return s
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Sphere Color", Label("sphereColor"))
	assert.Equal(t, "Wireframe", Label("wireframe"))
	assert.Equal(t, "Snake Case", Label("snake_case"))
	assert.Equal(t, "Light2 Angle", Label("light2Angle"))
}

func TestLayoutGroupsFolders(t *testing.T) {
	p := New(demoStore(t), Layout{})
	require.Len(t, p.Folders(), 2)

	sphere := p.Folders()[0]
	assert.Equal(t, "Sphere", sphere.Name)
	require.Len(t, sphere.Rows, 3)
	assert.Equal(t, Rect{X: 10, Y: 10, W: 260, H: 24}, sphere.Header)
	assert.Equal(t, Rect{X: 10, Y: 34, W: 260, H: 26}, sphere.Rows[0].Bounds)
	assert.Equal(t, float32(20), sphere.Rows[1].Control.W, "checkbox is square")
	assert.Equal(t, Rect{X: 110, Y: 89, W: 154, H: 20}, sphere.Rows[2].Control)

	spot, ok := p.Folder("Spot Light")
	require.True(t, ok)
	assert.Equal(t, float32(112), spot.Header.Y)
	assert.Equal(t, Rect{X: 10, Y: 10, W: 260, H: 204}, p.Bounds())
}

func TestHeaderCollapses(t *testing.T) {
	p := New(demoStore(t), Layout{})

	consumed, err := p.Press(20, 20)
	require.NoError(t, err)
	assert.True(t, consumed)

	sphere, _ := p.Folder("Sphere")
	spot, _ := p.Folder("Spot Light")
	assert.True(t, sphere.Collapsed)
	assert.Equal(t, float32(34), spot.Header.Y)
	assert.Equal(t, Rect{}, sphere.Rows[0].Bounds)

	_, r := p.Hit(150, 45)
	assert.Nil(t, r, "collapsed rows are not hit")

	_, _ = p.Press(20, 20)
	assert.False(t, sphere.Collapsed)
	assert.Equal(t, float32(112), spot.Header.Y)
}

func TestCheckboxAndSwatch(t *testing.T) {
	s := demoStore(t)
	p := New(s, Layout{})

	_, err := p.Press(115, 70)
	require.NoError(t, err)
	on, _ := s.Bool("wireframe")
	assert.True(t, on)

	_, _ = p.Press(115, 70)
	on, _ = s.Bool("wireframe")
	assert.False(t, on)

	var pushed []world.Color
	require.NoError(t, s.OnChange("sphereColor", func(v params.Value) { pushed = append(pushed, v.Color) }))
	_, err = p.Press(150, 45)
	require.NoError(t, err)
	assert.Equal(t, []world.Color{0xff0000}, pushed)
}

func TestSliderDrag(t *testing.T) {
	s := demoStore(t)
	p := New(s, Layout{})

	consumed, err := p.Press(187, 100)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.True(t, p.Dragging())
	speed, _ := s.Float("speed")
	assert.InDelta(t, 0.05, speed, 1e-6)

	require.NoError(t, p.Drag(1000))
	speed, _ = s.Float("speed")
	assert.InDelta(t, 0.1, speed, 1e-6)

	require.NoError(t, p.Drag(-50))
	speed, _ = s.Float("speed")
	assert.Equal(t, float32(0), speed)

	p.Release()
	assert.False(t, p.Dragging())
	require.NoError(t, p.Drag(187))
	speed, _ = s.Float("speed")
	assert.Equal(t, float32(0), speed, "no drag after release")
}

func TestSliderLabelAreaDoesNothing(t *testing.T) {
	s := demoStore(t)
	p := New(s, Layout{})

	consumed, err := p.Press(50, 100)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.False(t, p.Dragging())
	speed, _ := s.Float("speed")
	assert.InDelta(t, 0.01, speed, 1e-6)
}

func TestPressOutside(t *testing.T) {
	p := New(demoStore(t), Layout{})
	consumed, err := p.Press(500, 500)
	assert.NoError(t, err)
	assert.False(t, consumed)

	p.Visible = false
	consumed, _ = p.Press(20, 20)
	assert.False(t, consumed)
	assert.False(t, p.Contains(20, 20))
}

func TestFractionAndValue(t *testing.T) {
	s := demoStore(t)
	p := New(s, Layout{})
	spot, _ := p.Folder("Spot Light")

	assert.InDelta(t, 0.2, p.Fraction(spot.Rows[0]), 1e-6)
	assert.Equal(t, float32(0), p.Fraction(p.Folders()[0].Rows[1]), "bool rows have no fraction")
	assert.Equal(t, "1", p.Value(spot.Rows[2]).String())
}

func TestSliderMath(t *testing.T) {
	track := Rect{X: 100, W: 200}
	assert.Equal(t, 0.0, SliderValue(track, 50, 0, 1))
	assert.Equal(t, 0.5, SliderValue(track, 200, 0, 1))
	assert.Equal(t, 1.0, SliderValue(track, 400, 0, 1))
	assert.Equal(t, 2.0, SliderValue(Rect{}, 10, 2, 5))

	assert.Equal(t, float32(0.25), SliderFraction(0.025, 0, 0.1))
	assert.Equal(t, float32(0), SliderFraction(1, 1, 1))
}

func TestNextPreset(t *testing.T) {
	assert.Equal(t, world.Color(0xff0000), NextPreset(DefaultPresets, 0x0000ff))
	assert.Equal(t, world.Color(0x0000ff), NextPreset(DefaultPresets, 0xffffff))
	assert.Equal(t, world.Color(0x0000ff), NextPreset(DefaultPresets, 0x123456))
	assert.Equal(t, world.Color(0x123456), NextPreset(nil, 0x123456))
}
