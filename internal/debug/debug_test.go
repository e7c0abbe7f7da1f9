package debug

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableLogDisable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	var mirrored bytes.Buffer

	if err := Enable(path, WithMirror(&mirrored)); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	t.Cleanup(Disable)

	if !IsEnabled() {
		t.Fatal("expected logging to be enabled")
	}
	if LogPath() != path {
		t.Errorf("LogPath() = %q, want %q", LogPath(), path)
	}

	Event("dispatcher", "command", "play-sound")
	Error("dispatcher", errors.New("boom"), "notify")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	log := string(data)
	for _, want := range []string{
		"pomo debug session started",
		"[dispatcher] command: play-sound",
		"[dispatcher] ERROR: notify - boom",
	} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}
	if mirrored.String() != log {
		t.Errorf("mirror differs from log file:\n%s\nvs\n%s", mirrored.String(), log)
	}

	Disable()
	if IsEnabled() {
		t.Error("expected logging to be disabled")
	}

	// Logging while disabled is a no-op.
	Log("ignored")
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if strings.Contains(string(data), "ignored") {
		t.Error("disabled logger should not write")
	}
}

func TestDevMode(t *testing.T) {
	t.Run("flag", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		if !DevMode(true) {
			t.Error("DevMode(true) = false")
		}
		if DevMode(false) {
			t.Error("DevMode(false) = true with empty env")
		}
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvVar, "development")
		if !DevMode(false) {
			t.Error("DevMode(false) = false with POMO_ENV=development")
		}
	})

	t.Run("production", func(t *testing.T) {
		t.Setenv(EnvVar, "production")
		if DevMode(false) {
			t.Error("DevMode(false) = true with POMO_ENV=production")
		}
	})
}
