package styles

import "github.com/guilhermegouw/pomo/internal/schema"

// NewDefaultTheme creates the pomotroid theme used before any theme loads.
func NewDefaultTheme() *Theme {
	return FromSchema(schema.Theme{
		Name: "pomotroid",
		Colors: schema.ThemeColors{
			Accent:             "#05ec8c",
			Background:         "#2f384b",
			BackgroundLight:    "#3d4457",
			BackgroundLightest: "#9ca5b5",
			FocusRound:         "#ff4e4d",
			FocusRoundMiddle:   "#ff4e4d",
			FocusRoundEnd:      "#ff4e4d",
			Foreground:         "#f6f2eb",
			ForegroundDarker:   "#c0c9da",
			ForegroundDarkest:  "#dbe1ef",
			LongRound:          "#0bbddb",
			ShortRound:         "#05ec8c",
		},
	})
}
