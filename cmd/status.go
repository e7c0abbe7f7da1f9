package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/db"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and data locations",
		Long: `Display the pomo status including:
  - Config file, themes and sounds locations
  - Session durations and rounds
  - Audio and notification settings`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	if config.IsFirstRun("") {
		fmt.Fprintln(w, "Status: Not configured")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'pomo' once to create the default configuration.")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Fprintln(w, "pomo Status")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Sessions:")
	fmt.Fprintf(w, "  Focus:       %s (%s)\n", minutes(cfg.FocusDuration), cfg.DefaultFocusLabel)
	fmt.Fprintf(w, "  Short break: %s (%s)\n", minutes(cfg.ShortBreakDuration), cfg.DefaultShortBreakLabel)
	fmt.Fprintf(w, "  Long break:  %s (%s)\n", minutes(cfg.LongBreakDuration), cfg.DefaultLongBreakLabel)
	fmt.Fprintf(w, "  Rounds:      %d\n", cfg.MaxRoundNumber)
	if cfg.AutoQuit != nil {
		fmt.Fprintf(w, "  Auto quit:   after %s\n", *cfg.AutoQuit)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Audio:")
	fmt.Fprintf(w, "  Muted:       %s\n", onOff(cfg.Muted))
	fmt.Fprintf(w, "  Work sound:  %s\n", soundPath(cfg.FocusAudio))
	fmt.Fprintf(w, "  Short sound: %s\n", soundPath(cfg.ShortBreakAudio))
	fmt.Fprintf(w, "  Long sound:  %s\n", soundPath(cfg.LongBreakAudio))
	fmt.Fprintf(w, "  Notify:      %s\n", onOff(cfg.DesktopNotifications))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Theme:       %s\n", cfg.Theme)
	fmt.Fprintf(w, "Config File: %s\n", config.ConfigPath())
	fmt.Fprintf(w, "Themes Dir:  %s\n", config.ThemesDir())
	fmt.Fprintf(w, "Journal:     %s\n", filepath.Join(config.DataDir(), db.FileName))

	return nil
}

func minutes(seconds int) string {
	if seconds%60 == 0 {
		return fmt.Sprintf("%d minutes", seconds/60)
	}
	return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func soundPath(p *string) string {
	if p == nil {
		return "built-in"
	}
	return *p
}
