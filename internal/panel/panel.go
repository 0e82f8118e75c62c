// Package panel is the control panel model: parameter rows grouped into
// folders, their screen layout and the pointer interactions that edit them.
// Drawing lives in the ui package; everything here is plain geometry.
package panel

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"scene-demo/internal/params"
	"scene-demo/internal/world"
)

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout sizes the panel. Zero fields take DefaultLayout values.
type Layout struct {
	X, Y         float32
	Width        float32
	HeaderHeight float32
	RowHeight    float32
	LabelWidth   float32
	Padding      float32
}

// DefaultLayout is a 260px panel anchored at the top-left corner.
var DefaultLayout = Layout{X: 10, Y: 10, Width: 260, HeaderHeight: 24, RowHeight: 26, LabelWidth: 100, Padding: 6}

// DefaultPresets are the swatch colors a color row cycles through.
var DefaultPresets = []world.Color{0x0000ff, 0xff0000, 0x00ff00, 0xffff00, 0xff00ff, 0x00ffff, 0xffffff}

// Row is one parameter control.
type Row struct {
	Def    params.Def
	Label  string
	Bounds Rect
	// Control is the slider track, checkbox or swatch area.
	Control Rect
}

// Folder groups rows under a collapsible header.
type Folder struct {
	Name      string
	Header    Rect
	Rows      []*Row
	Collapsed bool
}

// Panel edits a parameter store through pointer presses and drags.
type Panel struct {
	Visible bool
	Presets []world.Color

	store   *params.Store
	layout  Layout
	folders []*Folder
	active  *Row
	bounds  Rect
}

// New groups the store's parameters by folder, in order of first appearance,
// and lays them out.
func New(store *params.Store, layout Layout) *Panel {
	p := &Panel{
		Visible: true,
		Presets: DefaultPresets,
		store:   store,
		layout:  withDefaults(layout),
	}
	byName := make(map[string]*Folder)
	for _, d := range store.Defs() {
		f, ok := byName[d.Folder]
		if !ok {
			f = &Folder{Name: d.Folder}
			byName[d.Folder] = f
			p.folders = append(p.folders, f)
		}
		f.Rows = append(f.Rows, &Row{Def: d, Label: Label(d.Name)})
	}
	p.Relayout()
	return p
}

func withDefaults(l Layout) Layout {
	d := DefaultLayout
	if l.X == 0 && l.Y == 0 {
		l.X, l.Y = d.X, d.Y
	}
	if l.Width == 0 {
		l.Width = d.Width
	}
	if l.HeaderHeight == 0 {
		l.HeaderHeight = d.HeaderHeight
	}
	if l.RowHeight == 0 {
		l.RowHeight = d.RowHeight
	}
	if l.LabelWidth == 0 {
		l.LabelWidth = d.LabelWidth
	}
	if l.Padding == 0 {
		l.Padding = d.Padding
	}
	return l
}

// Label turns a parameter name like "sphereColor" into "Sphere Color".
func Label(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		if r == '_' || r == '-' {
			b.WriteRune(' ')
			prevLower = false
			continue
		}
		if unicode.IsUpper(r) && prevLower {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return cases.Title(language.English).String(b.String())
}

// Relayout recomputes every rectangle, skipping rows of collapsed folders.
func (p *Panel) Relayout() {
	l := p.layout
	y := l.Y
	for _, f := range p.folders {
		f.Header = Rect{X: l.X, Y: y, W: l.Width, H: l.HeaderHeight}
		y += l.HeaderHeight
		for _, r := range f.Rows {
			if f.Collapsed {
				r.Bounds, r.Control = Rect{}, Rect{}
				continue
			}
			r.Bounds = Rect{X: l.X, Y: y, W: l.Width, H: l.RowHeight}
			cx := l.X + l.LabelWidth
			r.Control = Rect{X: cx, Y: y + l.Padding/2, W: l.Width - l.LabelWidth - l.Padding, H: l.RowHeight - l.Padding}
			if r.Def.Kind == params.KindBool {
				r.Control.W = r.Control.H
			}
			y += l.RowHeight
		}
	}
	p.bounds = Rect{X: l.X, Y: l.Y, W: l.Width, H: y - l.Y}
}

// Folders returns the folders in display order.
func (p *Panel) Folders() []*Folder {
	return p.folders
}

// Folder returns the folder called name.
func (p *Panel) Folder(name string) (*Folder, bool) {
	i := slices.IndexFunc(p.folders, func(f *Folder) bool { return f.Name == name })
	if i < 0 {
		return nil, false
	}
	return p.folders[i], true
}

// Bounds is the area covered by the panel.
func (p *Panel) Bounds() Rect {
	return p.bounds
}

// Contains reports whether the visible panel covers (x, y). The host uses it
// to keep orbit controls from reacting to panel clicks.
func (p *Panel) Contains(x, y float32) bool {
	return p.Visible && p.bounds.Contains(x, y)
}

// Hit returns the folder header or row under (x, y). Both are nil on a miss.
func (p *Panel) Hit(x, y float32) (*Folder, *Row) {
	if !p.Contains(x, y) {
		return nil, nil
	}
	for _, f := range p.folders {
		if f.Header.Contains(x, y) {
			return f, nil
		}
		if f.Collapsed {
			continue
		}
		for _, r := range f.Rows {
			if r.Bounds.Contains(x, y) {
				return f, r
			}
		}
	}
	return nil, nil
}

// Dragging reports whether a slider drag is in progress.
func (p *Panel) Dragging() bool {
	return p.active != nil
}

// Press handles a button press at (x, y). It returns whether the panel
// consumed the press and any error from the store. Headers toggle their
// folder; checkboxes flip; swatches advance to the next preset; slider
// presses set the value and start a drag.
func (p *Panel) Press(x, y float32) (bool, error) {
	f, r := p.Hit(x, y)
	if f == nil {
		return false, nil
	}
	if r == nil {
		f.Collapsed = !f.Collapsed
		p.Relayout()
		return true, nil
	}
	switch r.Def.Kind {
	case params.KindBool:
		on, err := p.store.Bool(r.Def.Name)
		if err != nil {
			return true, err
		}
		return true, p.store.Set(r.Def.Name, !on)
	case params.KindColor:
		c, err := p.store.Color(r.Def.Name)
		if err != nil {
			return true, err
		}
		return true, p.store.Set(r.Def.Name, NextPreset(p.Presets, c))
	case params.KindRange:
		if !r.Control.Contains(x, y) {
			return true, nil
		}
		p.active = r
		return true, p.setFromSlider(r, x)
	}
	return true, nil
}

// Drag moves the active slider to x. It does nothing without an active drag.
func (p *Panel) Drag(x float32) error {
	if p.active == nil {
		return nil
	}
	return p.setFromSlider(p.active, x)
}

// Release ends a slider drag.
func (p *Panel) Release() {
	p.active = nil
}

func (p *Panel) setFromSlider(r *Row, x float32) error {
	return p.store.Set(r.Def.Name, SliderValue(r.Control, x, r.Def.Min, r.Def.Max))
}

// Fraction returns how far along its slider a range row's current value is, in [0, 1].
func (p *Panel) Fraction(r *Row) float32 {
	v, err := p.store.Float(r.Def.Name)
	if err != nil {
		return 0
	}
	return SliderFraction(float64(v), r.Def.Min, r.Def.Max)
}

// Value returns the row's current value.
func (p *Panel) Value(r *Row) params.Value {
	v, _ := p.store.Get(r.Def.Name)
	return v
}

// SliderValue maps x on track to [lo, hi], clamping outside the track.
func SliderValue(track Rect, x float32, lo, hi float64) float64 {
	if track.W <= 0 {
		return lo
	}
	t := float64((x - track.X) / track.W)
	t = params.Clamp(t, 0, 1)
	return lo + t*(hi-lo)
}

// SliderFraction is the inverse of SliderValue.
func SliderFraction(v, lo, hi float64) float32 {
	if hi <= lo {
		return 0
	}
	t := (v - lo) / (hi - lo)
	return float32(params.Clamp(t, 0, 1))
}

// NextPreset returns the preset after cur, or the first preset when cur is not one of them.
func NextPreset(presets []world.Color, cur world.Color) world.Color {
	if len(presets) == 0 {
		return cur
	}
	i := slices.Index(presets, cur)
	return presets[(i+1)%len(presets)]
}
