package params

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-demo/internal/world"
)

func demoDefs() []Def {
	return []Def{
		{Name: "sphereColor", Kind: KindColor, Default: Value{Color: 0x0000ff}, Folder: "Sphere"},
		{Name: "wireframe", Kind: KindBool, Folder: "Sphere"},
		{Name: "speed", Kind: KindRange, Min: 0, Max: 0.1, Default: Value{Number: 0.01}, Folder: "Sphere"},
		{Name: "angle", Kind: KindRange, Min: 0, Max: 1, Default: Value{Number: 0.2}, Folder: "Spot Light"},
		{Name: "penumbra", Kind: KindRange, Min: 0, Max: 1, Folder: "Spot Light"},
		{Name: "intensity", Kind: KindRange, Min: 0, Max: 1, Default: Value{Number: 1}, Folder: "Spot Light"},
	}
}

func newDemoStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(demoDefs())
	require.NoError(t, err)
	return s
}

func TestDefaults(t *testing.T) {
	s := newDemoStore(t)

	speed, err := s.Float("speed")
	require.NoError(t, err)
	assert.InDelta(t, 0.01, speed, 1e-6)

	wire, err := s.Bool("wireframe")
	require.NoError(t, err)
	assert.False(t, wire)

	c, err := s.Color("sphereColor")
	require.NoError(t, err)
	assert.Equal(t, world.Color(0x0000ff), c)

	names := make([]string, 0)
	for _, d := range s.Defs() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"sphereColor", "wireframe", "speed", "angle", "penumbra", "intensity"}, names)
}

func TestSetClampsRange(t *testing.T) {
	s := newDemoStore(t)

	require.NoError(t, s.Set("speed", 5))
	speed, _ := s.Float("speed")
	assert.InDelta(t, 0.1, speed, 1e-6)

	require.NoError(t, s.Set("angle", float32(-2)))
	angle, _ := s.Float("angle")
	assert.Equal(t, float32(0), angle)
}

func TestUnboundedRange(t *testing.T) {
	s, err := New([]Def{{Name: "amplitude", Kind: KindRange, Default: Value{Number: 10}}})
	require.NoError(t, err)
	require.NoError(t, s.Set("amplitude", 250.0))
	a, _ := s.Float("amplitude")
	assert.Equal(t, float32(250), a)
}

func TestSetRejectsNaN(t *testing.T) {
	s := newDemoStore(t)
	var calls int
	require.NoError(t, s.OnChange("speed", func(Value) { calls++ }))

	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf"} {
		assert.ErrorIs(t, s.SetString("speed", raw), ErrKind, raw)
	}
	assert.ErrorIs(t, s.Set("speed", math.NaN()), ErrKind)
	assert.ErrorIs(t, s.Set("speed", float32(math.Inf(1))), ErrKind)

	speed, _ := s.Float("speed")
	assert.InDelta(t, 0.01, speed, 1e-6, "rejected values leave the old one")
	assert.Zero(t, calls)

	u, err := New([]Def{{Name: "amplitude", Kind: KindRange, Default: Value{Number: 10}}})
	require.NoError(t, err)
	assert.ErrorIs(t, u.Set("amplitude", math.Inf(-1)), ErrKind)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.0, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, float32(1), Clamp(float32(3), 0, 1))
}

func TestErrors(t *testing.T) {
	s := newDemoStore(t)

	_, err := s.Float("missing")
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = s.Float("wireframe")
	assert.ErrorIs(t, err, ErrKind)

	assert.ErrorIs(t, s.Set("speed", "fast"), ErrKind)
	assert.ErrorIs(t, s.Set("wireframe", 1), ErrKind)
	assert.ErrorIs(t, s.Set("sphereColor", -1), ErrKind)
	assert.ErrorIs(t, s.Set("nope", 1), ErrUnknown)
	assert.ErrorIs(t, s.OnChange("nope", func(Value) {}), ErrUnknown)
}

func TestNewRejectsBadDefs(t *testing.T) {
	_, err := New([]Def{{Name: "a"}, {Name: "a"}})
	assert.Error(t, err)

	_, err = New([]Def{{Name: ""}})
	assert.Error(t, err)

	_, err = New([]Def{{Name: "r", Kind: KindRange, Min: 1, Max: 0}})
	assert.Error(t, err)

	_, err = New([]Def{{Name: "r", Kind: KindRange, Max: 1, Default: Value{Number: math.NaN()}}})
	assert.Error(t, err)
}

func TestOnChangePushesValue(t *testing.T) {
	s := newDemoStore(t)

	var got []Value
	require.NoError(t, s.OnChange("sphereColor", func(v Value) { got = append(got, v) }))

	require.NoError(t, s.Set("sphereColor", "#00ff00"))
	require.NoError(t, s.Set("sphereColor", world.Color(0xffffff)))
	require.Len(t, got, 2)
	assert.Equal(t, world.Color(0x00ff00), got[0].Color)
	assert.Equal(t, world.Color(0xffffff), got[1].Color)

	assert.Error(t, s.Set("sphereColor", "green"))
	assert.Len(t, got, 2, "failed sets do not notify")
}

func TestSetString(t *testing.T) {
	s := newDemoStore(t)

	require.NoError(t, s.SetString("speed", " 0.05 "))
	speed, _ := s.Float("speed")
	assert.InDelta(t, 0.05, speed, 1e-7)

	require.NoError(t, s.SetString("wireframe", "on"))
	wire, _ := s.Bool("wireframe")
	assert.True(t, wire)

	require.NoError(t, s.SetString("wireframe", "false"))
	wire, _ = s.Bool("wireframe")
	assert.False(t, wire)

	require.NoError(t, s.SetString("sphereColor", "0xff00ff"))
	c, _ := s.Color("sphereColor")
	assert.Equal(t, world.Color(0xff00ff), c)

	assert.ErrorIs(t, s.SetString("speed", "abc"), ErrKind)
	assert.ErrorIs(t, s.SetString("wireframe", "maybe"), ErrKind)
	assert.ErrorIs(t, s.SetString("ghost", "1"), ErrUnknown)
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := newDemoStore(t)
	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap, 6)

	require.NoError(t, s.Set("speed", 0.09))
	assert.InDelta(t, 0.01, snap["speed"].Number, 1e-9)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "0.25", Value{Kind: KindRange, Number: 0.25}.String())
	assert.Equal(t, "true", Value{Kind: KindBool, Flag: true}.String())
	assert.Equal(t, "#0000ff", Value{Kind: KindColor, Color: 0xff}.String())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Color")
	require.NoError(t, err)
	assert.Equal(t, KindColor, k)
	_, err = ParseKind("vector")
	assert.ErrorIs(t, err, ErrKind)
}
