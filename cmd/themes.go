package cmd

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/guilhermegouw/pomo/internal/config"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long: `List the built-in themes and the ones found in ~/.config/pomo/themes,
with a swatch of their round colours. The active theme is marked with *.`,
		Args: cobra.NoArgs,
		RunE: runThemes,
	}
}

func runThemes(cmd *cobra.Command, _ []string) error {
	active := config.Default().Theme
	if !config.IsFirstRun("") {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		active = cfg.Theme
	}

	themes, errs := config.LoadThemes(config.ThemesDir())
	w := cmd.OutOrStdout()
	out := termenv.NewOutput(w)

	for _, t := range themes {
		marker := " "
		if t.Name == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-16s %s\n", marker, t.Name, swatch(out, t.Colors))
	}
	printThemeErrors(cmd.ErrOrStderr(), errs)
	return nil
}

// swatch renders the focus gradient and break colours as coloured blocks on
// the theme background.
func swatch(out *termenv.Output, c config.Colors) string {
	var s string
	for _, hex := range []string{c.FocusRound, c.FocusRoundMiddle, c.FocusRoundEnd, c.ShortRound, c.LongRound} {
		s += out.String("██").
			Foreground(out.Color(hex)).
			Background(out.Color(c.Background)).
			String()
	}
	return s
}

func printThemeErrors(w io.Writer, errs []error) {
	for _, err := range errs {
		fmt.Fprintf(w, "skipped: %v\n", err)
	}
}
