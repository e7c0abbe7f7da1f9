package host

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/debug"
	"github.com/guilhermegouw/pomo/internal/events"
	"github.com/guilhermegouw/pomo/internal/pubsub"
)

// Clock is the host's session clock. It advances the running session once
// per second and pushes ticks and state changes to the hub.
type Clock struct {
	mu    sync.Mutex
	cfg   config.Config
	state events.PomodoroState
	hub   *pubsub.Hub

	// onComplete runs after a session ends, outside the lock.
	onComplete func(finished config.SessionType)

	// The session file on disk and what it holds; empty when there is none.
	sessionPath    string
	sessionContent string
}

// NewClock creates a clock for cfg in the not-started state.
func NewClock(cfg config.Config, hub *pubsub.Hub) *Clock {
	return &Clock{
		cfg:   cfg,
		state: events.NewPomodoroState(),
		hub:   hub,
	}
}

// OnComplete registers fn to run whenever a session finishes by running out.
func (c *Clock) OnComplete(fn func(finished config.SessionType)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onComplete = fn
}

// Run ticks every interval until ctx is done, then removes the session
// file.
func (c *Clock) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer c.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick(ctx)
		}
	}
}

// State returns the current snapshot.
func (c *Clock) State() events.PomodoroState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetConfig replaces the configuration used for durations and auto-start.
func (c *Clock) SetConfig(cfg config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	c.syncSessionFile()
}

// SetStatus records a status change reported by the UI.
func (c *Clock) SetStatus(status events.SessionStatus) events.PomodoroState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentSession.Status = status
	c.syncSessionFile()
	return c.state
}

// Play starts or resumes the current session.
func (c *Clock) Play() events.PomodoroState {
	return c.SetStatus(events.StatusRunning)
}

// Pause pauses the current session.
func (c *Clock) Pause() events.PomodoroState {
	return c.SetStatus(events.StatusPaused)
}

// Reset rewinds the current session to zero without changing its type.
func (c *Clock) Reset() events.PomodoroState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentSession.CurrentTime = 0
	c.state.CurrentSession.Status = events.StatusNotStarted
	c.syncSessionFile()
	return c.state
}

// Skip moves to the next session.
func (c *Clock) Skip() events.PomodoroState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.next()
	c.syncSessionFile()
	return c.state
}

// Tick advances a running session by one second. It always publishes a
// tick; when the state changed it also publishes the new state.
func (c *Clock) Tick(ctx context.Context) {
	c.mu.Lock()
	var (
		changed  bool
		finished *config.SessionType
		session  = c.state.CurrentSession
	)
	if session.Status == events.StatusRunning {
		changed = true
		if session.CurrentTime+1 >= c.cfg.DurationOf(session.SessionType) {
			done := session.SessionType
			finished = &done
			c.state = c.next()
		} else {
			c.state.CurrentSession.CurrentTime++
		}
		c.syncSessionFile()
	}
	state := c.state
	onComplete := c.onComplete
	c.mu.Unlock()

	if c.hub != nil {
		_ = c.hub.Tick.PublishContext(ctx, pubsub.EventPushed, events.NewTickEvent())
		if changed {
			_ = c.hub.External.PublishContext(ctx, pubsub.EventPushed, events.NewExternalMessageEvent(state))
		}
	}

	if finished != nil && onComplete != nil {
		onComplete(*finished)
	}
}

// Close removes the session file, if any.
func (c *Clock) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeSessionFile()
}

// syncSessionFile must be called with mu held. While a session runs the
// configured session file holds "<type>;<label>" for status bars and
// scripts; it is removed once the session is reset or ends without
// auto-start. Paused sessions keep it.
func (c *Clock) syncSessionFile() {
	session := c.state.CurrentSession
	switch session.Status {
	case events.StatusRunning:
		label := "working"
		if session.Label != nil && *session.Label != "" {
			label = *session.Label
		}
		content := string(session.SessionType) + ";" + label
		if c.sessionPath == c.cfg.SessionFile && c.sessionContent == content {
			return
		}
		c.removeSessionFile()
		if c.cfg.SessionFile == "" {
			return
		}
		if err := writeSessionFile(c.cfg.SessionFile, content); err != nil {
			debug.Error(component, err, "writing session file")
			return
		}
		c.sessionPath, c.sessionContent = c.cfg.SessionFile, content
	case events.StatusNotStarted:
		c.removeSessionFile()
	}
}

func (c *Clock) removeSessionFile() {
	if c.sessionPath == "" {
		return
	}
	if err := os.Remove(c.sessionPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		debug.Error(component, err, "removing session file")
	}
	c.sessionPath, c.sessionContent = "", ""
}

func writeSessionFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

// next must be called with mu held.
func (c *Clock) next() events.PomodoroState {
	current := c.state
	round := current.CurrentWorkRoundNumber

	var (
		nextType  config.SessionType
		autoStart bool
	)
	switch current.CurrentSession.SessionType {
	case config.SessionFocus:
		autoStart = c.cfg.AutoStartBreakTimer
		if round >= c.cfg.MaxRoundNumber {
			nextType = config.SessionLongBreak
		} else {
			nextType = config.SessionShortBreak
		}
	case config.SessionShortBreak:
		nextType = config.SessionFocus
		autoStart = c.cfg.AutoStartWorkTimer
		round++
	default:
		nextType = config.SessionFocus
		autoStart = c.cfg.AutoStartWorkTimer
		round = 1
	}

	status := events.StatusNotStarted
	if autoStart {
		status = events.StatusRunning
	}

	return events.PomodoroState{
		CurrentSession: events.SessionState{
			SessionType: nextType,
			Status:      status,
		},
		CurrentWorkRoundNumber: round,
	}
}
