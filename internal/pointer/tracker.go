// Package pointer tracks the cursor in normalized device coordinates.
package pointer

import "github.com/go-gl/mathgl/mgl32"

// Tracker keeps the last pointer position normalized to [-1, 1] on both
// axes, +Y up. Every Move overwrites the previous one; nothing is queued.
type Tracker struct {
	pos           mgl32.Vec2
	width, height int
}

// New returns a tracker for a viewport of the given size, pointer at the center.
func New(width, height int) *Tracker {
	return &Tracker{width: width, height: height}
}

// Resize records a new viewport size used to normalize later moves.
func (t *Tracker) Resize(width, height int) {
	t.width, t.height = width, height
}

// Size returns the viewport size.
func (t *Tracker) Size() (width, height int) {
	return t.width, t.height
}

// Move records a pointer event at pixel (px, py), origin top-left. Events
// arriving before the viewport has a size are dropped.
func (t *Tracker) Move(px, py float32) {
	if t.width <= 0 || t.height <= 0 {
		return
	}
	t.pos = mgl32.Vec2{
		px/float32(t.width)*2 - 1,
		-(py/float32(t.height))*2 + 1,
	}
}

// Set stores an already normalized position.
func (t *Tracker) Set(ndc mgl32.Vec2) {
	t.pos = ndc
}

// Position returns the last normalized position.
func (t *Tracker) Position() mgl32.Vec2 {
	return t.pos
}

// Pixel converts the stored position back to viewport pixels.
func (t *Tracker) Pixel() (px, py float32) {
	return (t.pos.X() + 1) / 2 * float32(t.width), (1 - t.pos.Y()) / 2 * float32(t.height)
}
