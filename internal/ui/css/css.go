// Package css parses the small stylesheet subset used by the overlay UI:
// rules keyed by .class or #id (comma lists allowed) holding plain
// declarations. Later rules override earlier ones.
package css

import (
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
	"golang.org/x/image/colornames"
)

//go:embed panel.css
var defaultSheet string

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".panel" or "#menu"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// Default returns the built-in panel stylesheet.
func Default() *Stylesheet {
	s, err := Parse(defaultSheet)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse reads content. Selectors other than .class or #id, combinators and
// at-rules are skipped.
func Parse(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := tcss.NewParser(parse.NewInputString(content), false)

	var selectors []string
	var props map[string]string
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case tcss.ErrorGrammar:
			if err := p.Err(); err != io.EOF {
				return nil, fmt.Errorf("css: %w", err)
			}
			return sheet, nil
		case tcss.BeginAtRuleGrammar:
			atDepth++
		case tcss.EndAtRuleGrammar:
			atDepth--
		case tcss.BeginRulesetGrammar:
			if atDepth > 0 {
				continue
			}
			selectors = simpleSelectors(tokensString(p.Values()))
			props = make(map[string]string)
		case tcss.DeclarationGrammar, tcss.CustomPropertyGrammar:
			if props == nil {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(string(data)))
			val := strings.TrimSpace(tokensString(p.Values()))
			val = strings.TrimSpace(strings.TrimSuffix(val, "!important"))
			if key != "" && val != "" {
				props[key] = val
			}
		case tcss.EndRulesetGrammar:
			for _, sel := range selectors {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
			}
			selectors, props = nil, nil
		}
	}
}

func tokensString(tokens []tcss.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return b.String()
}

// simpleSelectors splits a selector list and keeps the .class and #id entries.
func simpleSelectors(list string) []string {
	var out []string
	for _, sel := range strings.Split(list, ",") {
		sel = strings.TrimSpace(sel)
		if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
			continue
		}
		if strings.ContainsAny(sel[1:], " .#>+~:[") {
			continue
		}
		out = append(out, sel)
	}
	return out
}

// Match returns the merged properties of every rule whose selector is .class or #id.
func (s *Stylesheet) Match(class, id string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, r := range s.Rules {
		if (class != "" && r.Selector == "."+class) || (id != "" && r.Selector == "#"+id) {
			for k, v := range r.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Style holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type Style struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	FontSize   int32
}

// DefaultStyle returns a transparent box with white 20px text and 4px padding.
func DefaultStyle() Style {
	return Style{
		Color:    color.RGBA{255, 255, 255, 255},
		Border:   color.RGBA{0, 0, 0, 255},
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: 20,
	}
}

// Resolve builds a Style from merged properties. Unparseable values are ignored.
func Resolve(props map[string]string) Style {
	out := DefaultStyle()
	for k, v := range props {
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := ParseColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}

// Lookup matches and resolves in one step.
func (s *Stylesheet) Lookup(class, id string) Style {
	return Resolve(s.Match(class, id))
}

// ParseColor parses #RGB, #RRGGBB, #RRGGBBAA or an SVG color name.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[s]
		return c, ok
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), uint8(n)}, true
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}
