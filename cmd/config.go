package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/pomo/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration pomo would start with, after defaults and
legacy key migration are applied.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
	cmd.Flags().String("file", "", "Read this config file instead of the global one")
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
		},
	})
	return cmd
}

func runConfig(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("getting file flag: %w", err)
	}
	if path == "" {
		path = config.ConfigPath()
	}

	cfg := config.Default()
	if !config.IsFirstRun(path) {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
