package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	configFileName = "config.json"
	themesDirName  = "themes"
)

// Load reads the global configuration file, creating it with defaults
// when it does not exist yet.
func Load() (*Config, error) {
	return LoadOrCreate(ConfigPath())
}

// LoadOrCreate loads the configuration at path. A missing file is created
// with Default() and the themes directory next to it.
func LoadOrCreate(path string) (*Config, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(filepath.Join(dir, themesDirName), 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := SaveToFile(&cfg, path); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	return LoadFromFile(path)
}

// LoadFromFile loads configuration from a specific file path.
// Fields missing from the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	//nolint:gosec // G304: Path is from trusted config locations, not user input.
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	migrated, changed, err := MigrateLegacyKeys(data)
	if err != nil {
		return fmt.Errorf("migrating config: %w", err)
	}
	if changed {
		//nolint:gosec // 0o600 is intentionally restrictive.
		if err := os.WriteFile(path, migrated, 0o600); err != nil {
			return fmt.Errorf("writing migrated config: %w", err)
		}
	}

	if err := json.Unmarshal(migrated, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// ConfigDir returns the directory holding the config file and custom themes.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// ConfigPath returns the path to the global configuration file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// ThemesDir returns the directory scanned for user themes.
func ThemesDir() string {
	return filepath.Join(ConfigDir(), themesDirName)
}

// DataDir returns the directory for the journal database and generated files.
func DataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}
