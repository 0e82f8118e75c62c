// Package graphics owns the raylib window. Window is the frame.Host of the
// interactive demo: it polls input, then calls the animation callback with
// the window clock between BeginDrawing and EndDrawing.
package graphics

import (
	"context"
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options configure the window.
type Options struct {
	Width, Height int
	Title         string
	Fullscreen    bool
	TargetFPS     int
}

// Hooks run around the animation callback each frame. Any may be nil.
type Hooks struct {
	// Resize is called once after the window opens and on every resize.
	Resize func(width, height int)
	// Update runs before drawing (input, terminal typing).
	Update func()
	// Overlay draws 2D content after the 3D frame.
	Overlay func()
	// Close runs once before the window closes, while GPU resources can still be freed.
	Close func()
}

// Window is a raylib window that schedules one animation callback per frame.
type Window struct {
	opt Options
	cb  func(timeMs float64)
}

// New returns a window host; the window itself opens in Run.
func New(opt Options) *Window {
	if opt.Width <= 0 || opt.Height <= 0 {
		opt.Width, opt.Height = 1280, 720
	}
	if opt.TargetFPS <= 0 {
		opt.TargetFPS = 60
	}
	return &Window{opt: opt}
}

// SetAnimationLoop sets the per-frame callback; nil clears it. The window
// keeps running the hooks without a callback.
func (w *Window) SetAnimationLoop(cb func(timeMs float64)) {
	w.cb = cb
}

// Run opens the window and loops until it is closed or ctx is done.
// ESC is left to the terminal; the window closes via its close button.
func (w *Window) Run(ctx context.Context, hooks Hooks) error {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if w.opt.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	width, height := w.opt.Width, w.opt.Height
	if w.opt.Fullscreen {
		width, height = rl.GetMonitorWidth(0), rl.GetMonitorHeight(0)
	}
	rl.InitWindow(int32(width), int32(height), w.opt.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return errors.New("graphics: window failed to open")
	}
	if hooks.Close != nil {
		defer hooks.Close()
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(w.opt.TargetFPS))

	if hooks.Resize != nil {
		hooks.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		if rl.IsWindowResized() && hooks.Resize != nil {
			hooks.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		if hooks.Update != nil {
			hooks.Update()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		if w.cb != nil {
			w.cb(rl.GetTime() * 1000)
		}
		if hooks.Overlay != nil {
			hooks.Overlay()
		}
		rl.EndDrawing()
	}
	return nil
}
