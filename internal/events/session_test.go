package events

import (
	"testing"
	"time"

	"github.com/guilhermegouw/pomo/internal/config"
)

func TestNewPomodoroState(t *testing.T) {
	state := NewPomodoroState()

	if state.CurrentSession.Status != StatusNotStarted {
		t.Errorf("expected not started, got %q", state.CurrentSession.Status)
	}
	if state.CurrentSession.SessionType != config.SessionFocus {
		t.Errorf("expected focus session, got %q", state.CurrentSession.SessionType)
	}
	if state.CurrentWorkRoundNumber != 1 {
		t.Errorf("expected round 1, got %d", state.CurrentWorkRoundNumber)
	}
	if state.CurrentSession.Label != nil {
		t.Error("expected no label")
	}
}

func TestEventConstructors(t *testing.T) {
	before := time.Now()

	t.Run("tick", func(t *testing.T) {
		e := NewTickEvent()
		if e.Timestamp.Before(before) {
			t.Error("timestamp not set")
		}
	})

	t.Run("toggle play keeps source", func(t *testing.T) {
		e := NewTogglePlayEvent(SourceSignal)
		if e.Source != SourceSignal {
			t.Errorf("expected signal source, got %q", e.Source)
		}
	})

	t.Run("skip keeps source", func(t *testing.T) {
		e := NewSkipEvent(SourceSignal)
		if e.Source != SourceSignal {
			t.Errorf("expected signal source, got %q", e.Source)
		}
	})

	t.Run("external message carries state", func(t *testing.T) {
		state := NewPomodoroState()
		state.CurrentSession.CurrentTime = 42
		e := NewExternalMessageEvent(state)
		if e.State.CurrentSession.CurrentTime != 42 {
			t.Errorf("expected time 42, got %d", e.State.CurrentSession.CurrentTime)
		}
	})

	t.Run("init snapshot carries everything", func(t *testing.T) {
		cfg := config.Default()
		themes := []config.Theme{{Name: "nord"}}
		e := NewInitSnapshotEvent(cfg, themes, NewPomodoroState())
		if e.Config.Theme != cfg.Theme || len(e.Themes) != 1 {
			t.Errorf("unexpected snapshot: %+v", e)
		}
	})
}
