// Package ui draws the overlay with raylib: the control panel and free text
// nodes, styled by a css.Stylesheet.
package ui

import (
	"fmt"
	"image/color"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-demo/internal/panel"
	"scene-demo/internal/params"
	"scene-demo/internal/ui/css"
	"scene-demo/internal/world"
)

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Resolved styles are cached per class/id pair and dropped when the sheet changes.
// If a font is loaded (LoadFont), text is drawn with it; otherwise raylib's default font is used.
type Engine struct {
	sheet  *css.Stylesheet
	nodes  []*Node
	styles map[[2]string]css.Style
	font   rl.Font
}

// New creates an engine with the built-in panel stylesheet.
func New() *Engine {
	return &Engine{sheet: css.Default(), styles: make(map[[2]string]css.Style)}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := css.Parse(string(data))
	if err != nil {
		return fmt.Errorf("ui: %s: %w", path, err)
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly.
func (e *Engine) SetStylesheet(sheet *css.Stylesheet) {
	e.sheet = sheet
	clear(e.styles)
}

// LoadFont loads a TTF font from path for text rendering. On failure the engine keeps the default font.
// Call after the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; a zero texture ID means the default font.
func (e *Engine) Font() rl.Font {
	return e.font
}

// Unload frees the loaded font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

// SetNodes replaces all nodes. Nodes are drawn in order.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
}

func (e *Engine) style(class, id string) css.Style {
	key := [2]string{class, id}
	if s, ok := e.styles[key]; ok {
		return s
	}
	s := e.sheet.Lookup(class, id)
	e.styles[key] = s
	return s
}

func rlColor(c color.RGBA) rl.Color {
	return rl.Color(c)
}

func worldColor(c world.Color) rl.Color {
	r, g, b := c.RGB()
	return rl.NewColor(r, g, b, 255)
}

func (e *Engine) text(s string, x, y, size int32, c color.RGBA) {
	if e.font.Texture.ID != 0 {
		rl.DrawTextEx(e.font, s, rl.NewVector2(float32(x), float32(y)), float32(size), 1, rlColor(c))
		return
	}
	rl.DrawText(s, x, y, size, rlColor(c))
}

func (e *Engine) measure(s string, size int32) int32 {
	if e.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(e.font, s, float32(size), 1).X)
	}
	return rl.MeasureText(s, size)
}

func box(r panel.Rect, st css.Style) {
	x, y, w, h := int32(r.X), int32(r.Y), int32(r.W), int32(r.H)
	if st.Background.A > 0 {
		rl.DrawRectangle(x, y, w, h, rlColor(st.Background))
	}
	if st.HasBorder && w > 0 && h > 0 {
		rl.DrawRectangleLines(x, y, w, h, rlColor(st.Border))
	}
}

// Draw draws the free nodes. Percentage positions are resolved against the
// screen with the node's size subtracted, so 100% keeps it on screen.
func (e *Engine) Draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	for _, n := range e.nodes {
		st := e.style(n.Class, n.ID)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)
		if st.Width > 0 {
			w = st.Width
		}
		if st.Height > 0 {
			h = st.Height
		}
		if n.Text != "" && w == 0 {
			w = e.measure(n.Text, st.FontSize) + 2*st.Padding
			h = st.FontSize + 2*st.Padding
		}
		x, y := st.Left, st.Top
		if st.LeftPct >= 0 {
			x = (screenW - w) * st.LeftPct / 100
		}
		if st.TopPct >= 0 {
			y = (screenH - h) * st.TopPct / 100
		}
		n.Bounds = rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
		box(panel.Rect{X: float32(x), Y: float32(y), W: float32(w), H: float32(h)}, st)
		if n.Text != "" {
			e.text(n.Text, x+st.Padding, y+st.Padding, st.FontSize, st.Color)
		}
	}
}

// DrawPanel draws p when it is visible: folder headers, row labels and one
// control per row.
func (e *Engine) DrawPanel(p *panel.Panel) {
	if p == nil || !p.Visible {
		return
	}
	ps := e.style("panel", "")
	box(p.Bounds(), ps)

	fs := e.style("folder", "")
	rs := e.style("row", "")
	for _, f := range p.Folders() {
		box(f.Header, fs)
		marker := "- "
		if f.Collapsed {
			marker = "+ "
		}
		e.text(marker+f.Name, int32(f.Header.X)+fs.Padding, centered(f.Header, ps.FontSize), ps.FontSize, fs.Color)
		if f.Collapsed {
			continue
		}
		for _, r := range f.Rows {
			box(r.Bounds, rs)
			e.text(r.Label, int32(r.Bounds.X)+rs.Padding, centered(r.Bounds, ps.FontSize), ps.FontSize, rs.Color)
			e.drawControl(p, r, ps.FontSize)
		}
	}
}

func centered(r panel.Rect, size int32) int32 {
	return int32(r.Y) + (int32(r.H)-size)/2
}

func (e *Engine) drawControl(p *panel.Panel, r *panel.Row, size int32) {
	c := r.Control
	switch r.Def.Kind {
	case params.KindRange:
		st := e.style("slider", "")
		fill := c
		fill.W = c.W * p.Fraction(r)
		rl.DrawRectangle(int32(fill.X), int32(fill.Y), int32(fill.W), int32(fill.H), rlColor(st.Background))
		if st.HasBorder {
			rl.DrawRectangleLines(int32(c.X), int32(c.Y), int32(c.W), int32(c.H), rlColor(st.Border))
		}
		v := p.Value(r).String()
		e.text(v, int32(c.X+c.W)-e.measure(v, size)-st.Padding, centered(c, size), size, st.Color)
	case params.KindBool:
		st := e.style("checkbox", "")
		box(c, st)
		if p.Value(r).Flag {
			inset := c.W / 4
			rl.DrawRectangle(int32(c.X+inset), int32(c.Y+inset), int32(c.W-2*inset), int32(c.H-2*inset), rlColor(st.Color))
		}
	case params.KindColor:
		st := e.style("swatch", "")
		v := p.Value(r)
		sw := panel.Rect{X: c.X, Y: c.Y, W: c.H * 2, H: c.H}
		rl.DrawRectangle(int32(sw.X), int32(sw.Y), int32(sw.W), int32(sw.H), worldColor(v.Color))
		if st.HasBorder {
			rl.DrawRectangleLines(int32(sw.X), int32(sw.Y), int32(sw.W), int32(sw.H), rlColor(st.Border))
		}
		e.text(v.Color.Hex(), int32(sw.X+sw.W)+st.Padding, centered(c, size), size, st.Color)
	}
}
