// Package frame runs the per-frame update: time-driven cube rotation, the
// accumulating sphere bounce, spot light parameters, pointer picking and the
// hand-off to the renderer.
package frame

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scene-demo/internal/params"
	"scene-demo/internal/pick"
	"scene-demo/internal/world"
)

// Parameter names read every frame.
const (
	ParamSpeed     = "speed"
	ParamAngle     = "angle"
	ParamPenumbra  = "penumbra"
	ParamIntensity = "intensity"
)

const (
	// DefaultAmplitude is the bounce height of the sphere.
	DefaultAmplitude = 10
	// DefaultHighlight is the color a hovered target is painted with.
	DefaultHighlight world.Color = 0xff0000
)

// Picker casts a ray from cam through ndc and returns the hits nearest first.
type Picker interface {
	Pick(cam *world.Camera, ndc mgl32.Vec2, objects []*world.Object) []pick.Hit
}

// Renderer draws the scene from the camera.
type Renderer interface {
	Render(scene *world.Scene, cam *world.Camera)
}

// Releaser is implemented by renderers that hold GPU resources; Stop calls it.
type Releaser interface {
	Release()
}

// PointerSource supplies the pointer position in normalized device coordinates.
type PointerSource interface {
	Position() mgl32.Vec2
}

// Logger receives loop diagnostics.
type Logger interface {
	Log(line string)
}

// Context is everything the loop reads and writes. The scene objects are
// owned by the scene; the loop mutates them in place.
type Context struct {
	Scene    *world.Scene
	Camera   *world.Camera
	Params   *params.Store
	Pointer  PointerSource
	Picker   Picker
	Renderer Renderer
	Log      Logger

	Cube   *world.Object
	Sphere *world.Object
	Spot   *world.SpotLight
	Helper *world.SpotLightHelper

	// Target is the object painted with Highlight when the pointer ray hits it.
	Target world.ID
	// Highlight is the hover color; nil means DefaultHighlight.
	Highlight *world.Color
	Amplitude float32

	// Strict makes a missing or mistyped parameter panic instead of falling
	// back to a neutral value.
	Strict bool
}

// State is a read-only view of the loop after the last Tick.
type State struct {
	Frames        uint64
	Step          float32
	SphereY       float32
	CubeRotation  mgl32.Vec3
	LastTime      float64
	Hovered       bool
	Highlights    uint64
	TargetPresent bool
}

// Loop advances the scene once per Tick. It is driven by a single host and
// is not safe for concurrent use.
type Loop struct {
	ctx       Context
	highlight world.Color
	step      float32
	state     State
	warned    map[string]bool

	host    Host
	running bool
}

// New validates ctx and returns a loop. Cube, Sphere and Spot may be nil;
// the corresponding step is then skipped.
func New(ctx Context) (*Loop, error) {
	if ctx.Scene == nil || ctx.Camera == nil {
		return nil, fmt.Errorf("frame: scene and camera are required")
	}
	if ctx.Params == nil {
		return nil, fmt.Errorf("frame: parameter store is required")
	}
	if ctx.Amplitude == 0 {
		ctx.Amplitude = DefaultAmplitude
	}
	highlight := DefaultHighlight
	if ctx.Highlight != nil {
		highlight = *ctx.Highlight
	}
	return &Loop{ctx: ctx, highlight: highlight, warned: make(map[string]bool)}, nil
}

// Tick runs one frame for timestamp timeMs (milliseconds, non-decreasing).
// Order: time-based mutation, then picking, then render.
func (l *Loop) Tick(timeMs float64) {
	c := &l.ctx

	if c.Cube != nil {
		r := float32(timeMs / 1000)
		c.Cube.Rotation[0] = r
		c.Cube.Rotation[1] = r
	}

	l.step += l.number(ParamSpeed, 0)
	if c.Sphere != nil {
		c.Sphere.Position[1] = c.Amplitude * math32.Abs(math32.Sin(l.step))
	}

	if c.Spot != nil {
		c.Spot.Angle = l.number(ParamAngle, c.Spot.Angle)
		c.Spot.Penumbra = l.number(ParamPenumbra, c.Spot.Penumbra)
		c.Spot.Intensity = l.number(ParamIntensity, c.Spot.Intensity)
	}
	if c.Helper != nil {
		c.Helper.Update()
	}

	l.pick()

	if c.Renderer != nil {
		c.Renderer.Render(c.Scene, c.Camera)
	}

	l.state.Frames++
	l.state.Step = l.step
	l.state.LastTime = timeMs
	if c.Sphere != nil {
		l.state.SphereY = c.Sphere.Position.Y()
	}
	if c.Cube != nil {
		l.state.CubeRotation = c.Cube.Rotation
	}
}

// pick paints every hit on the target. The color is never restored.
func (l *Loop) pick() {
	c := &l.ctx
	_, present := c.Scene.ByID(c.Target)
	l.state.TargetPresent = present
	l.state.Hovered = false
	if c.Picker == nil || c.Pointer == nil || !present {
		return
	}
	hits := c.Picker.Pick(c.Camera, c.Pointer.Position(), c.Scene.Children())
	for _, h := range hits {
		if h.Object.ID() != c.Target {
			continue
		}
		h.Object.Material.Color = l.highlight
		l.state.Hovered = true
		l.state.Highlights++
	}
}

// number reads a range parameter. On failure strict loops panic; others log
// once per name and use fallback.
func (l *Loop) number(name string, fallback float32) float32 {
	v, err := l.ctx.Params.Float(name)
	if err == nil {
		return v
	}
	if l.ctx.Strict {
		panic(fmt.Sprintf("frame: parameter %s: %v", name, err))
	}
	if !l.warned[name] {
		l.warned[name] = true
		if l.ctx.Log != nil {
			l.ctx.Log.Log(fmt.Sprintf("frame: parameter %s unavailable (%v); using %g", name, err, fallback))
		}
	}
	return fallback
}

// Step returns the animation clock.
func (l *Loop) Step() float32 {
	return l.step
}

// State returns a copy of the loop state after the last Tick.
func (l *Loop) State() State {
	return l.state
}
