package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/protocol"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestVersionCmd(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v9.9.9"
	if got := execute(t, "version"); got != "pomo v9.9.9\n" {
		t.Errorf("version = %q", got)
	}
}

func TestConfigCmd(t *testing.T) {
	t.Run("missing file prints defaults", func(t *testing.T) {
		out := execute(t, "config", "--file", filepath.Join(t.TempDir(), "none.json"))

		var cfg config.Config
		if err := json.Unmarshal([]byte(out), &cfg); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if cfg.FocusDuration != config.Default().FocusDuration {
			t.Errorf("FocusDuration = %d, want default", cfg.FocusDuration)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"focus_duration": 600, "theme": "nord"}`), 0o600); err != nil {
			t.Fatal(err)
		}
		out := execute(t, "config", "--file", path)

		var cfg config.Config
		if err := json.Unmarshal([]byte(out), &cfg); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if cfg.FocusDuration != 600 || cfg.Theme != "nord" {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.MaxRoundNumber != config.Default().MaxRoundNumber {
			t.Error("missing field lost its default")
		}
	})

	t.Run("path", func(t *testing.T) {
		if got := strings.TrimSpace(execute(t, "config", "path")); got != config.ConfigPath() {
			t.Errorf("path = %q, want %q", got, config.ConfigPath())
		}
	})
}

func TestSwatch(t *testing.T) {
	themes, errs := config.LoadThemes()
	if len(errs) != 0 || len(themes) == 0 {
		t.Fatalf("builtin themes: %v", errs)
	}
	out := termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii))

	got := swatch(out, themes[0].Colors)
	if got != strings.Repeat("██", 5) {
		t.Errorf("swatch() = %q", got)
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{1500, "25 minutes"},
		{90, "1m30s"},
		{5, "0m05s"},
	}
	for _, tt := range tests {
		if got := minutes(tt.seconds); got != tt.want {
			t.Errorf("minutes(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}

	if soundPath(nil) != "built-in" {
		t.Error("nil sound should be built-in")
	}
	p := "/tmp/bell.ogg"
	if soundPath(&p) != p {
		t.Error("custom sound path not shown")
	}
	if onOff(true) != "on" || onOff(false) != "off" {
		t.Error("onOff")
	}
}

func TestSendCommand(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := config.Default()
	cfg.SessionFile = filepath.Join(dir, "session")
	if err := config.SaveToFile(&cfg, path); err != nil {
		t.Fatal(err)
	}

	t.Run("get init data prints settings", func(t *testing.T) {
		var out bytes.Buffer
		if err := sendCommand(ctx, path, []byte(`{"name":"get-init-data"}`), &out); err != nil {
			t.Fatalf("sendCommand() error = %v", err)
		}
		var reply struct {
			Settings struct {
				PomodoroDuration int `json:"pomodoroDuration"`
			}
		}
		if err := json.Unmarshal(out.Bytes(), &reply); err != nil {
			t.Fatalf("reply is not JSON: %v\n%s", err, out.String())
		}
		if reply.Settings.PomodoroDuration != cfg.FocusDuration {
			t.Errorf("pomodoroDuration = %d, want %d", reply.Settings.PomodoroDuration, cfg.FocusDuration)
		}
	})

	t.Run("timer control prints state", func(t *testing.T) {
		var out bytes.Buffer
		raw := []byte(`{"name":"handle-external-message","payload":{"name":"play"}}`)
		if err := sendCommand(ctx, path, raw, &out); err != nil {
			t.Fatalf("sendCommand() error = %v", err)
		}
		if !strings.Contains(out.String(), `"status": "running"`) {
			t.Errorf("reply = %s", out.String())
		}
	})

	t.Run("no reply prints nothing", func(t *testing.T) {
		var out bytes.Buffer
		if err := sendCommand(ctx, path, []byte(`{"name":"hide-window"}`), &out); err != nil {
			t.Fatalf("sendCommand() error = %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("output = %q, want none", out.String())
		}
	})

	t.Run("partial settings are rejected before the host runs", func(t *testing.T) {
		fresh := filepath.Join(t.TempDir(), "config.json")
		raw := []byte(`{"name":"update-config","payload":{"theme":"dark","muted":false,"pomodoroDuration":1500}}`)

		err := sendCommand(ctx, fresh, raw, &bytes.Buffer{})
		if !errors.Is(err, protocol.ErrMissingField) {
			t.Fatalf("sendCommand() error = %v, want ErrMissingField", err)
		}
		if _, err := os.Stat(fresh); !os.IsNotExist(err) {
			t.Error("config file written for a rejected command")
		}
	})

	t.Run("propagated failure is returned", func(t *testing.T) {
		err := sendCommand(ctx, path, []byte(`{"name":"choose-sound-file","payload":{"sound":"audio-tick"}}`), &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), "choose-sound-file") {
			t.Errorf("sendCommand() error = %v", err)
		}
	})
}
