package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreate(t *testing.T) {
	t.Run("writes defaults on first run", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pomo", "config.json")

		if !IsFirstRun(path) {
			t.Fatal("expected first run")
		}

		cfg, err := LoadOrCreate(path)
		if err != nil {
			t.Fatalf("LoadOrCreate() error = %v", err)
		}
		if cfg.FocusDuration != Default().FocusDuration {
			t.Errorf("expected defaults, got focus %d", cfg.FocusDuration)
		}
		if IsFirstRun(path) {
			t.Error("config file was not written")
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(path), "themes")); err != nil {
			t.Errorf("themes directory not created: %v", err)
		}
	})

	t.Run("reads existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		cfg := Default()
		cfg.Theme = "nord"
		cfg.Muted = true
		audio := "/tmp/bell.ogg"
		cfg.FocusAudio = &audio
		if err := SaveToFile(&cfg, path); err != nil {
			t.Fatal(err)
		}

		loaded, err := LoadOrCreate(path)
		if err != nil {
			t.Fatalf("LoadOrCreate() error = %v", err)
		}
		if loaded.Theme != "nord" || !loaded.Muted {
			t.Errorf("unexpected config: %+v", loaded)
		}
		if loaded.FocusAudio == nil || *loaded.FocusAudio != audio {
			t.Errorf("focus audio not preserved: %v", loaded.FocusAudio)
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("missing fields keep defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"muted": true}`), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if !cfg.Muted {
			t.Error("expected muted")
		}
		if cfg.ShortBreakDuration != 300 {
			t.Errorf("expected default short break, got %d", cfg.ShortBreakDuration)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"focus_duration": -5}`), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("migrates legacy pomodoro_duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"pomodoro_duration": 1800}`), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if cfg.FocusDuration != 1800 {
			t.Errorf("expected migrated focus 1800, got %d", cfg.FocusDuration)
		}

		again, err := LoadFromFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if again.FocusDuration != 1800 {
			t.Errorf("migration not persisted, got %d", again.FocusDuration)
		}
	})
}
