package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SpotLight emits a cone from Position towards Target.
type SpotLight struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Color    Color

	// Angle is the cone half-angle in radians.
	Angle float32
	// Penumbra is the fraction of the cone, from 0 to 1, over which light fades out at the edge.
	Penumbra  float32
	Intensity float32
	// Distance limits the cone length; 0 means the helper uses the distance to Target.
	Distance float32

	CastShadow bool
}

// Direction returns the unit vector from Position to Target.
func (l *SpotLight) Direction() mgl32.Vec3 {
	d := l.Target.Sub(l.Position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

// InnerCos and OuterCos are the cone cosines the shader compares against:
// full intensity inside InnerCos, zero outside OuterCos.
func (l *SpotLight) OuterCos() float32 {
	return math32.Cos(l.Angle)
}

func (l *SpotLight) InnerCos() float32 {
	return math32.Cos(l.Angle * (1 - mgl32.Clamp(l.Penumbra, 0, 1)))
}

const helperSegments = 32

// SpotLightHelper is the wire cone drawn around a spot light. Lines are
// recomputed by Update and read by the renderer.
type SpotLightHelper struct {
	Light *SpotLight
	Color Color
	Lines [][2]mgl32.Vec3
}

// NewSpotLightHelper returns a helper already updated for l.
func NewSpotLightHelper(l *SpotLight) *SpotLightHelper {
	h := &SpotLightHelper{Light: l, Color: l.Color}
	h.Update()
	return h
}

// Update rebuilds the cone from the light's current position, target and angle.
func (h *SpotLightHelper) Update() {
	l := h.Light
	length := l.Distance
	if length == 0 {
		length = l.Target.Sub(l.Position).Len()
	}
	width := length * math32.Tan(l.Angle)

	dir := l.Direction()
	u, v := basis(dir)
	base := l.Position.Add(dir.Mul(length))

	rim := make([]mgl32.Vec3, helperSegments)
	for i := range rim {
		a := float32(i) / helperSegments * 2 * math32.Pi
		off := u.Mul(math32.Cos(a) * width).Add(v.Mul(math32.Sin(a) * width))
		rim[i] = base.Add(off)
	}

	h.Lines = h.Lines[:0]
	for i := 0; i < helperSegments; i += helperSegments / 4 {
		h.Lines = append(h.Lines, [2]mgl32.Vec3{l.Position, rim[i]})
	}
	for i := range rim {
		h.Lines = append(h.Lines, [2]mgl32.Vec3{rim[i], rim[(i+1)%len(rim)]})
	}
	h.Color = l.Color
}

// basis returns two unit vectors orthogonal to d and to each other.
func basis(d mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	ref := mgl32.Vec3{0, 1, 0}
	if math32.Abs(d.Dot(ref)) > 0.99 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	u := d.Cross(ref).Normalize()
	v := d.Cross(u).Normalize()
	return u, v
}
