package graphics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-demo/internal/panel"
	"scene-demo/internal/pointer"
	"scene-demo/internal/world"
)

// zoomStep is the distance factor per wheel notch.
const zoomStep = 0.95

// Input routes mouse events to the pointer tracker, the control panel and
// the orbit camera.
type Input struct {
	Pointer *pointer.Tracker
	Camera  *world.Camera
	Panel   *panel.Panel
	// Blocked, when it returns true, suspends panel and orbit input (terminal open).
	Blocked func() bool
	// OnError receives parameter errors from panel edits.
	OnError func(error)
}

// Poll reads this frame's mouse state. Call from Hooks.Update.
func (in *Input) Poll() {
	mouse := rl.GetMousePosition()
	if in.Pointer != nil {
		in.Pointer.Move(mouse.X, mouse.Y)
	}
	if in.Blocked != nil && in.Blocked() {
		return
	}

	overPanel := in.Panel != nil && in.Panel.Contains(mouse.X, mouse.Y)
	if in.Panel != nil {
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			_, err := in.Panel.Press(mouse.X, mouse.Y)
			in.report(err)
		}
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) && in.Panel.Dragging() {
			in.report(in.Panel.Drag(mouse.X))
		}
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			in.Panel.Release()
		}
	}

	if in.Camera == nil || overPanel {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		h := float32(rl.GetScreenHeight())
		if h > 0 {
			// A drag across the full height turns the camera once around.
			in.Camera.Orbit(2*math32.Pi*d.X/h, 2*math32.Pi*d.Y/h)
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		in.Camera.Zoom(math32.Pow(zoomStep, wheel))
	}
}

func (in *Input) report(err error) {
	if err != nil && in.OnError != nil {
		in.OnError(err)
	}
}
