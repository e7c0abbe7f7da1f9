// Package styles turns pomo themes into lipgloss styles.
package styles

import (
	"image/color"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/guilhermegouw/pomo/internal/colorcodec"
	"github.com/guilhermegouw/pomo/internal/schema"
)

// Theme is a resolved colour set.
type Theme struct { //nolint:govet // fieldalignment: preserving logical field order
	Name   string
	IsDark bool

	Accent             color.Color
	Background         color.Color
	BackgroundLight    color.Color
	BackgroundLightest color.Color
	Foreground         color.Color
	ForegroundDarker   color.Color
	ForegroundDarkest  color.Color

	// Round colours are kept as RGB so the focus colour can be blended.
	FocusRound       colorcodec.RGB
	FocusRoundMiddle colorcodec.RGB
	FocusRoundEnd    colorcodec.RGB
	ShortRound       colorcodec.RGB
	LongRound        colorcodec.RGB

	styles *Styles
}

// Styles are the text styles derived from a theme.
type Styles struct {
	Base     lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Accent   lipgloss.Style
	Info     lipgloss.Style
	Error    lipgloss.Style
	Timer    lipgloss.Style
}

// ParseHex converts a hex string to a colour. Malformed input yields
// lipgloss.NoColor.
func ParseHex(hex string) color.Color {
	rgb, ok := colorcodec.Parse(hex)
	if !ok {
		return lipgloss.NoColor{}
	}
	return RGBColor(rgb)
}

// RGBColor converts a codec colour to a color.Color.
func RGBColor(c colorcodec.RGB) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func parseRGB(hex string, fallback colorcodec.RGB) colorcodec.RGB {
	if rgb, ok := colorcodec.Parse(hex); ok {
		return rgb
	}
	return fallback
}

// FromSchema resolves a UI theme.
func FromSchema(t schema.Theme) *Theme {
	c := t.Colors
	focus := parseRGB(c.FocusRound, colorcodec.RGB{R: 0xff, G: 0x4e, B: 0x4d})
	end := parseRGB(c.FocusRoundEnd, focus)

	bg, _ := colorcodec.Parse(c.Background)
	_, _, lightness := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}.Hcl()

	return &Theme{
		Name:   t.Name,
		IsDark: lightness < 0.5,

		Accent:             ParseHex(c.Accent),
		Background:         ParseHex(c.Background),
		BackgroundLight:    ParseHex(c.BackgroundLight),
		BackgroundLightest: ParseHex(c.BackgroundLightest),
		Foreground:         ParseHex(c.Foreground),
		ForegroundDarker:   ParseHex(c.ForegroundDarker),
		ForegroundDarkest:  ParseHex(c.ForegroundDarkest),

		FocusRound:       focus,
		FocusRoundMiddle: parseRGB(c.FocusRoundMiddle, colorcodec.Mix(focus, end, 0.5)),
		FocusRoundEnd:    end,
		ShortRound:       parseRGB(c.ShortRound, focus),
		LongRound:        parseRGB(c.LongRound, focus),
	}
}

// RoundColor is the dial colour for a session kind. Focus sessions shift
// from the start colour through the middle to the end colour as fraction
// goes from 0 to 1.
func (t *Theme) RoundColor(kind schema.SessionKind, fraction float64) colorcodec.RGB {
	switch kind {
	case schema.KindShortBreak:
		return t.ShortRound
	case schema.KindLongBreak:
		return t.LongRound
	}
	if fraction < 0.5 {
		return colorcodec.Mix(t.FocusRound, t.FocusRoundMiddle, fraction*2)
	}
	return colorcodec.Mix(t.FocusRoundMiddle, t.FocusRoundEnd, (fraction-0.5)*2)
}

// S returns the text styles for the theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.Foreground)
	return &Styles{
		Base:     base,
		Text:     base,
		Muted:    lipgloss.NewStyle().Foreground(t.ForegroundDarker),
		Subtle:   lipgloss.NewStyle().Foreground(t.BackgroundLightest),
		Title:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(t.ForegroundDarkest),
		Accent:   lipgloss.NewStyle().Foreground(t.Accent),
		Info:     lipgloss.NewStyle().Foreground(t.Accent).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(RGBColor(t.FocusRound)).Bold(true),
		Timer:    base.Bold(true),
	}
}

var (
	mu      sync.RWMutex
	current = NewDefaultTheme()
)

// CurrentTheme returns the active theme.
func CurrentTheme() *Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetTheme makes t the active theme. A nil theme restores the default.
func SetTheme(t *Theme) {
	if t == nil {
		t = NewDefaultTheme()
	}
	mu.Lock()
	defer mu.Unlock()
	current = t
}

// ApplyForegroundGrad colours each grapheme of s along a gradient from
// `from` to `to`. Multi-line input uses the same gradient on every line.
func ApplyForegroundGrad(s string, from, to color.Color) string {
	lines := strings.Split(s, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		clusters := graphemes(line)
		if len(clusters) == 0 {
			continue
		}
		ramp := blend(from, to, len(clusters))
		for j, g := range clusters {
			b.WriteString(lipgloss.NewStyle().Foreground(ramp[j]).Render(g))
		}
	}
	return b.String()
}

func graphemes(s string) []string {
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

func blend(from, to color.Color, n int) []color.Color {
	a, ok1 := colorful.MakeColor(from)
	b, ok2 := colorful.MakeColor(to)
	out := make([]color.Color, n)
	for i := range out {
		if !ok1 || !ok2 || n == 1 {
			out[i] = from
			continue
		}
		out[i] = a.BlendLab(b, float64(i)/float64(n-1)).Clamped()
	}
	return out
}
