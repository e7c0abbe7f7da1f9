// Package colorcodec parses and renders the hex colours used by themes,
// notifications and the tray icon.
package colorcodec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// hexPattern accepts exactly two hex digits per channel, with an optional
// leading '#'. Shorthand forms like "#abc" are rejected.
var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// RGB holds three 8-bit colour channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Parse decodes a "#rrggbb" or "rrggbb" string.
// On malformed input it returns the zero RGB and false; it never panics.
func Parse(hex string) (RGB, bool) {
	if !hexPattern.MatchString(hex) {
		return RGB{}, false
	}

	c, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return RGB{}, false
	}

	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, true
}

// ParseOptional is Parse for boundaries where "absent" must travel as nil.
// A nil result means all three channels are missing.
func ParseOptional(hex string) *RGB {
	rgb, ok := Parse(hex)
	if !ok {
		return nil
	}
	return &rgb
}

// Hex renders the colour as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return c.Hex()
}

// Mix blends a towards b by t in RGB space, t clamped to [0, 1].
func Mix(a, b RGB, t float64) RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	r, g, bl := a.colorful().BlendRgb(b.colorful(), t).Clamped().RGB255()
	return RGB{R: r, G: g, B: bl}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
