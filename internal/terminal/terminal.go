package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-demo/internal/commands"
	"scene-demo/internal/logger"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible (avoids being cut off by taskbar/window bounds).
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	// Number of log lines drawn above the input bar when terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	termBarColor  = rl.NewColor(40, 40, 40, 255)
	termLineColor = rl.NewColor(80, 80, 80, 255)
	termLogColor  = rl.NewColor(24, 24, 24, 240)
)

// Terminal is the command bar at the bottom of the screen, shown and hidden with ESC.
// Lines starting with "cmd " run through the command registry; anything else
// gets a usage hint. Recent log lines are drawn above the bar while it is open.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font // optional; when set, Draw uses DrawTextEx instead of default font

	// history holds submitted lines, oldest first; histPos == len(history) means a fresh line.
	history []string
	histPos int
}

// New returns a closed terminal that logs lines and runs "cmd ..." through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the terminal is visible and capturing keyboard input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetFont sets the font used to draw the terminal bar (e.g. same as UI). Zero texture ID = use raylib default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

// Update handles ESC (toggle open/closed), and when open: typing, paste,
// backspace, history recall with the arrow keys and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		t.recall(-1)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		t.recall(1)
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		line := t.inputBuf
		t.log.Log(prompt + line)
		t.inputBuf = ""
		t.history = append(t.history, line)
		t.histPos = len(t.history)

		t.Submit(line)
	}
}

// recall moves through submitted lines; stepping past the newest clears the input.
func (t *Terminal) recall(step int) {
	pos := min(max(t.histPos+step, 0), len(t.history))
	if pos == t.histPos {
		return
	}
	t.histPos = pos
	if pos == len(t.history) {
		t.inputBuf = ""
		return
	}
	t.inputBuf = t.history[pos]
}

// Submit runs one input line as if it was typed.
func (t *Terminal) Submit(line string) {
	handled, err := t.reg.ExecuteLine(line)
	switch {
	case err != nil:
		t.log.Log(err.Error())
	case !handled:
		t.log.Log(`commands start with "cmd", try "cmd help"`)
	}
}

// Draw draws the terminal bar at the bottom when open, and the recent log lines above it.
// Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D overlay coordinate system (correct in fullscreen).
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	// Log area above the bar: last maxLinesOnScreen lines
	logHeight := maxLinesOnScreen * lineHeight
	logY := barY - logHeight
	if logY < 0 {
		logHeight = barY
		logY = 0
	}
	if logHeight > 0 {
		rl.DrawRectangle(0, int32(logY), int32(screenW), int32(logHeight), termLogColor)
	}
	lines := t.log.Tail(maxLinesOnScreen)
	for i, line := range lines {
		y := logY + i*lineHeight + padding
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		if t.font.Texture.ID != 0 {
			rl.DrawTextEx(t.font, line, rl.NewVector2(float32(padding), float32(y)), float32(fontSize), 1, rl.LightGray)
		} else {
			rl.DrawText(line, int32(padding), int32(y), int32(fontSize), rl.LightGray)
		}
	}

	// Input bar
	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)

	text := prompt + t.inputBuf + "|"
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, text, rl.NewVector2(float32(padding), float32(barY+padding)), float32(fontSize), 1, rl.White)
	} else {
		rl.DrawText(text, int32(padding), int32(barY+padding), int32(fontSize), rl.White)
	}
}
