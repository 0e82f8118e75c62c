// Package headless drives the frame loop without a window: a fixed-step
// animation host, a renderer that only records what it was asked to draw,
// and the CPU picker.
package headless

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"scene-demo/internal/frame"
	"scene-demo/internal/params"
	"scene-demo/internal/pick"
	"scene-demo/internal/pointer"
	"scene-demo/internal/scenedef"
	"scene-demo/internal/world"
)

// DefaultStepMs is one 60 Hz frame.
const DefaultStepMs = 1000.0 / 60

// Host is a frame.Host whose clock advances by a fixed step per frame.
type Host struct {
	cb  func(timeMs float64)
	now float64
}

// SetAnimationLoop stores cb; nil stops RunFrames after the current frame.
func (h *Host) SetAnimationLoop(cb func(timeMs float64)) {
	h.cb = cb
}

// Now returns the timestamp passed to the last frame.
func (h *Host) Now() float64 {
	return h.now
}

// RunFrames invokes the callback n times, advancing the clock by stepMs
// before each call. It returns the number of frames run, which is less than
// n when the callback is cleared or ctx is done.
func (h *Host) RunFrames(ctx context.Context, n int, stepMs float64) (int, error) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if h.cb == nil {
			return i, nil
		}
		h.now += stepMs
		h.cb(h.now)
	}
	return n, nil
}

// Recorder is a frame.Renderer that keeps the last frame's object colors.
type Recorder struct {
	Frames   int
	Released int
	Colors   map[string]world.Color
	Camera   mgl32.Vec3
}

// Render records the scene state.
func (r *Recorder) Render(scene *world.Scene, cam *world.Camera) {
	r.Frames++
	if r.Colors == nil {
		r.Colors = make(map[string]world.Color)
	}
	clear(r.Colors)
	for _, o := range scene.Children() {
		r.Colors[o.Name] = o.Material.Color
	}
	r.Camera = cam.Position
}

// Release counts calls; there is nothing to free.
func (r *Recorder) Release() {
	r.Released++
}

// Options configure Run.
type Options struct {
	Frames int
	StepMs float64
	// Pointer is the fixed pointer position in normalized device coordinates.
	Pointer       mgl32.Vec2
	Width, Height int
	Strict        bool
	Log           frame.Logger
}

// Result is the loop state after the last frame.
type Result struct {
	Frames   int
	State    frame.State
	Recorder *Recorder
}

// Run builds a loop over b and store, runs opt.Frames frames and stops it.
func Run(ctx context.Context, b *scenedef.Built, store *params.Store, opt Options) (Result, error) {
	if opt.StepMs <= 0 {
		opt.StepMs = DefaultStepMs
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		opt.Width, opt.Height = 1280, 720
	}
	b.Camera.SetAspect(opt.Width, opt.Height)

	ptr := pointer.New(opt.Width, opt.Height)
	ptr.Set(opt.Pointer)
	rec := &Recorder{}

	loop, err := frame.New(frame.Context{
		Scene:     b.Scene,
		Camera:    b.Camera,
		Params:    store,
		Pointer:   ptr,
		Picker:    pick.CPU{},
		Renderer:  rec,
		Log:       opt.Log,
		Cube:      b.Cube,
		Sphere:    b.Sphere,
		Spot:      b.Spot,
		Helper:    b.Scene.SpotHelper,
		Target:    b.Target,
		Highlight: b.Highlight,
		Amplitude: b.Amplitude,
		Strict:    opt.Strict,
	})
	if err != nil {
		return Result{}, fmt.Errorf("headless: %w", err)
	}

	host := &Host{}
	if err := loop.Start(host); err != nil {
		return Result{}, fmt.Errorf("headless: %w", err)
	}
	defer loop.Stop()

	n, err := host.RunFrames(ctx, opt.Frames, opt.StepMs)
	return Result{Frames: n, State: loop.State(), Recorder: rec}, err
}

// ParsePointer reads "x,y" in normalized device coordinates. An empty string
// is the screen center.
func ParsePointer(s string) (mgl32.Vec2, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return mgl32.Vec2{}, nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return mgl32.Vec2{}, fmt.Errorf("headless: pointer %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return mgl32.Vec2{}, fmt.Errorf("headless: pointer %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return mgl32.Vec2{}, fmt.Errorf("headless: pointer %q: %w", s, err)
	}
	if x < -1 || x > 1 || y < -1 || y > 1 {
		return mgl32.Vec2{}, fmt.Errorf("headless: pointer %q: outside [-1, 1]", s)
	}
	return mgl32.Vec2{float32(x), float32(y)}, nil
}
