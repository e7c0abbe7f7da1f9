// Package cmd provides the CLI commands for pomo.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/guilhermegouw/pomo/internal/bridge"
	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/db"
	"github.com/guilhermegouw/pomo/internal/debug"
	"github.com/guilhermegouw/pomo/internal/host"
	"github.com/guilhermegouw/pomo/internal/journal"
	"github.com/guilhermegouw/pomo/internal/pubsub"
	"github.com/guilhermegouw/pomo/internal/tui"
)

const component = "cmd"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pomo",
		Short: "A pomodoro timer for the terminal",
		Long: `pomo is a pomodoro timer for the terminal.

It alternates focus sessions with short breaks and, after the configured
number of rounds, a long break. Settings and themes live under
~/.config/pomo; send SIGHUP to reload them while pomo is running.
SIGUSR1 toggles play and pause, SIGUSR2 skips to the next session.`,
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().Bool("debug", false, "Enable debug logging to ~/.local/share/pomo/debug.log")
	cmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newThemesCmd(),
		newStatusCmd(),
		newJournalCmd(),
		newSendCmd(),
	)

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // file descriptors fit in int
		return fmt.Errorf("pomo requires an interactive terminal: stdin/stdout must be connected to a TTY")
	}

	debugFlag, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("getting debug flag: %w", err)
	}
	devMode := debug.DevMode(debugFlag)
	if devMode {
		logPath := filepath.Join(config.DataDir(), "debug.log")
		var opts []debug.Option
		// Mirroring onto the terminal the TUI draws on would corrupt it.
		if !term.IsTerminal(int(os.Stderr.Fd())) { //nolint:gosec // file descriptors fit in int
			opts = append(opts, debug.WithMirror(os.Stderr))
		}
		if debugErr := debug.Enable(logPath, opts...); debugErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to enable debug logging: %v\n", debugErr)
		} else {
			defer debug.Disable()
			fmt.Fprintf(os.Stderr, "Debug: %s\n", logPath)
		}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, closeJournal := openJournal(ctx)
	defer closeJournal()

	hub := pubsub.NewHub()
	local, err := host.NewLocal(hub, config.ConfigPath(),
		host.WithNotifier(host.NewTermNotifier(os.Stderr)),
		host.WithQuit(cancel),
	)
	if err != nil {
		hub.Shutdown()
		return fmt.Errorf("starting host: %w", err)
	}

	var program *tea.Program
	factory := func(flags bridge.Flags) (bridge.Sender, error) {
		program = tui.NewProgram(flags, hub.Outbound, tea.WithContext(ctx))
		return program, nil
	}

	dispatcherOpts := []bridge.DispatcherOption{}
	if store != nil {
		dispatcherOpts = append(dispatcherOpts, bridge.WithJournal(store))
	}
	supervisor := bridge.NewSupervisor(hub, local, factory,
		bridge.WithEnvironment(bridge.Environment{
			Version: func(context.Context) (string, error) { return resolveVersion(), nil },
			DevMode: devMode,
		}),
		bridge.WithDispatcherOptions(dispatcherOpts...),
	)
	if err := supervisor.Start(ctx); err != nil {
		hub.Shutdown()
		return fmt.Errorf("starting bridge: %w", err)
	}

	go local.Run(ctx)
	go reloadOnHangup(ctx, local)
	controlOnSignal(ctx, hub)

	_, runErr := program.Run()

	// The clock and the relay publish with ctx; cancel before tearing down
	// the hub so neither is left blocked on a broker nobody reads.
	quitRequested := ctx.Err() != nil
	cancel()
	supervisor.Stop()

	if runErr != nil && !(quitRequested && errors.Is(runErr, tea.ErrProgramKilled)) {
		return fmt.Errorf("running TUI: %w", runErr)
	}
	return nil
}

// openJournal opens the journal database. Without one the bridge still
// runs; failures are then only logged.
func openJournal(ctx context.Context) (journal.Store, func()) {
	database, err := db.Open(ctx, filepath.Join(config.DataDir(), db.FileName))
	if err != nil {
		debug.Error(component, err, "opening journal")
		return nil, func() {}
	}
	return journal.NewSQLiteStore(database), func() {
		if err := database.Close(); err != nil {
			debug.Error(component, err, "closing journal")
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
