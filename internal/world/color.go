package world

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed 0xRRGGBB value. Scene files, the parameter store and the
// picking highlight all use this form.
type Color uint32

// RGB splits c into its 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns c as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// ParseColor parses "#rgb", "#rrggbb" or "0xrrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	var hex string
	switch {
	case strings.HasPrefix(s, "#"):
		hex = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		hex = s[2:]
	default:
		return 0, fmt.Errorf("color %q: missing # or 0x prefix", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q: want 3 or 6 hex digits", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return Color(n), nil
}
