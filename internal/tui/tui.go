// Package tui provides the terminal user interface for pomo.
package tui

import (
	"fmt"
	"path/filepath"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/pomo/internal/bridge"
	"github.com/guilhermegouw/pomo/internal/debug"
	"github.com/guilhermegouw/pomo/internal/protocol"
	"github.com/guilhermegouw/pomo/internal/pubsub"
	"github.com/guilhermegouw/pomo/internal/schema"
	"github.com/guilhermegouw/pomo/internal/tui/page/timer"
	"github.com/guilhermegouw/pomo/internal/tui/styles"
	"github.com/guilhermegouw/pomo/internal/tui/util"
)

const component = "tui"

// Model is the main TUI model.
type Model struct { //nolint:govet // fieldalignment: preserving logical field order
	flags    bridge.Flags
	settings schema.Settings
	themes   []schema.Theme
	out      pubsub.Publisher[protocol.Command]

	timer  *timer.Model
	status *timer.StatusBar
	help   help.Model
	keyMap KeyMap

	width  int
	height int
	ready  bool
}

// New creates the model from the startup flags. Commands are published to
// out.
func New(flags bridge.Flags, out pubsub.Publisher[protocol.Command]) *Model {
	m := &Model{
		flags:    flags,
		settings: flags.Settings,
		themes:   flags.Themes,
		out:      out,
		timer:    timer.New(flags.Settings, flags.State, flags.Version),
		status:   timer.NewStatusBar(),
		help:     help.New(),
		keyMap:   DefaultKeyMap(),
	}
	m.applyTheme()
	m.status.SetMuted(m.settings.Muted)
	if flags.DevMode {
		m.status.SetInfo("dev mode")
	}
	return m
}

// NewProgram creates the Bubble Tea program for flags.
func NewProgram(flags bridge.Flags, out pubsub.Publisher[protocol.Command], opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(New(flags, out), opts...)
}

// Settings returns the settings the UI is showing.
func (m *Model) Settings() schema.Settings {
	return m.settings
}

// State returns the timer state the UI is showing.
func (m *Model) State() schema.State {
	return m.timer.State()
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.iconUpdate()}
	if m.settings.AutoStartOnAppStartup && m.timer.State().CurrentSession.Status != schema.StatusRunning {
		cmds = append(cmds, m.control(protocol.ActionPlay))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
//
//nolint:gocyclo // TUI update handler requires handling many message types
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		debug.Event(component, "WindowSize", fmt.Sprintf("width=%d height=%d", msg.Width, msg.Height))
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.timer.SetSize(msg.Width, msg.Height)
		m.status.SetWidth(msg.Width)
		m.help.SetWidth(msg.Width)
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	case bridge.ReplyMsg:
		return m, m.handleReply(msg)
	case bridge.TickMsg:
		return m, m.tickSound()
	case bridge.TogglePlayMsg:
		return m, m.toggle()
	case bridge.SkipMsg:
		return m, m.control(protocol.ActionSkip)
	case bridge.ExternalMessageMsg:
		return m, m.applyState(schema.StateToUI(msg.Event.State), true)
	case bridge.InitSnapshotMsg:
		debug.Event(component, "Snapshot", "host reloaded")
		m.applyInit(schema.ToUI(msg.Event.Config), schema.ThemesToUI(msg.Event.Themes))
		return m, tea.Batch(m.applyState(schema.StateToUI(msg.Event.State), false), util.ReportInfo("configuration reloaded"))
	case util.InfoMsg:
		if msg.Type == util.InfoTypeError {
			m.status.SetError(msg.Msg)
		} else {
			m.status.SetInfo(msg.Msg)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	debug.Event(component, "KeyMsg", fmt.Sprintf("key=%q", msg.String()))
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return tea.Sequence(m.send(protocol.Quit{}), tea.Quit)
	case key.Matches(msg, m.keyMap.Toggle):
		return m.toggle()
	case key.Matches(msg, m.keyMap.Reset):
		return m.control(protocol.ActionReset)
	case key.Matches(msg, m.keyMap.Skip):
		return m.control(protocol.ActionSkip)
	case key.Matches(msg, m.keyMap.Mute):
		m.settings.Muted = !m.settings.Muted
		m.status.SetMuted(m.settings.Muted)
		return m.send(protocol.UpdateConfig{Settings: m.settings})
	case key.Matches(msg, m.keyMap.Theme):
		return m.cycleTheme()
	case key.Matches(msg, m.keyMap.Sound):
		return m.send(protocol.ChooseSoundFile{Sound: soundFor(m.timer.State().CurrentSession.SessionType)})
	case key.Matches(msg, m.keyMap.Hide):
		return m.send(protocol.HideWindow{})
	case key.Matches(msg, m.keyMap.Minimize):
		return m.send(protocol.MinimizeWindow{})
	case key.Matches(msg, m.keyMap.Close):
		return m.send(protocol.CloseWindow{})
	case key.Matches(msg, m.keyMap.Reload):
		return m.send(protocol.GetInitData{})
	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) handleReply(msg bridge.ReplyMsg) tea.Cmd {
	switch p := msg.Payload.(type) {
	case bridge.InitDataMsg:
		m.applyInit(p.Settings, p.Themes)
		return m.applyState(p.State, false)
	case bridge.StateMsg:
		return m.applyState(p.State, true)
	case bridge.SoundFileChosenMsg:
		if p.Path == nil {
			return util.ReportInfo("no sound chosen")
		}
		if field := customSound(&m.settings, p.Sound); field != nil {
			path := *p.Path
			*field = &path
		}
		return util.ReportInfo(fmt.Sprintf("%s set to %s", p.Sound, filepath.Base(*p.Path)))
	case bridge.CommandFailedMsg:
		debug.Error(component, p.Err, string(p.Command))
		return util.ReportError(fmt.Errorf("%s: %w", p.Command, p.Err))
	case bridge.UnhandledReplyMsg:
		debug.Event(component, "UnhandledReply", fmt.Sprintf("%s: %s", p.Name, p.Payload))
	}
	return nil
}

// applyInit replaces settings and themes and re-resolves the theme.
func (m *Model) applyInit(settings schema.Settings, themes []schema.Theme) {
	m.settings = settings
	if len(themes) > 0 {
		m.themes = themes
	}
	m.timer.SetSettings(settings)
	m.status.SetMuted(settings.Muted)
	m.applyTheme()
}

// applyState shows s. When announce is set and the session type changed,
// the new session's sound is played and a notification is shown.
func (m *Model) applyState(s schema.State, announce bool) tea.Cmd {
	prev := m.timer.State().CurrentSession
	m.timer.SetState(s)

	cmds := []tea.Cmd{m.iconUpdate()}
	if announce && prev.SessionType != s.CurrentSession.SessionType {
		cmds = append(cmds,
			m.send(protocol.PlaySound{Sound: soundFor(s.CurrentSession.SessionType)}),
			m.send(protocol.Notify{Notification: m.notification(s)}),
		)
	}
	return tea.Batch(cmds...)
}

func (m *Model) notification(s schema.State) protocol.Notification {
	kind := s.CurrentSession.SessionType
	rgb := styles.CurrentTheme().RoundColor(kind, 0)

	var body string
	switch kind {
	case schema.KindShortBreak:
		body = fmt.Sprintf("Take a %d minute break.", m.settings.ShortBreakDuration/60)
	case schema.KindLongBreak:
		body = fmt.Sprintf("Take a %d minute break.", m.settings.LongBreakDuration/60)
	default:
		body = fmt.Sprintf("Round %d of %d. Focus for %d minutes.",
			s.CurrentWorkRoundNumber, m.settings.MaxRoundNumber, m.settings.PomodoroDuration/60)
	}

	return protocol.Notification{
		Title: timer.Label(m.settings, s.CurrentSession),
		Body:  body,
		Name:  string(kind),
		Red:   rgb.R,
		Green: rgb.G,
		Blue:  rgb.B,
	}
}

// iconUpdate reports the dial colour and progress to the host.
func (m *Model) iconUpdate() tea.Cmd {
	return m.send(protocol.UpdateCurrentState{
		Color:      m.timer.Color().Hex(),
		Percentage: m.timer.Fraction(),
		Paused:     m.timer.State().CurrentSession.Status != schema.StatusRunning,
	})
}

func (m *Model) tickSound() tea.Cmd {
	session := m.timer.State().CurrentSession
	if m.settings.Muted || session.Status != schema.StatusRunning {
		return nil
	}
	if session.SessionType == schema.KindFocus && !m.settings.TickSoundsDuringWork {
		return nil
	}
	if session.SessionType != schema.KindFocus && !m.settings.TickSoundsDuringBreak {
		return nil
	}
	return m.send(protocol.PlaySound{Sound: protocol.SoundTick})
}

func (m *Model) toggle() tea.Cmd {
	if m.timer.State().CurrentSession.Status == schema.StatusRunning {
		return m.control(protocol.ActionPause)
	}
	return m.control(protocol.ActionPlay)
}

func (m *Model) control(action protocol.ExternalAction) tea.Cmd {
	return m.send(protocol.HandleExternalMessage{Action: action})
}

func (m *Model) cycleTheme() tea.Cmd {
	if len(m.themes) == 0 {
		return nil
	}
	next := 0
	for i, t := range m.themes {
		if t.Name == m.settings.Theme {
			next = (i + 1) % len(m.themes)
			break
		}
	}
	m.settings.Theme = m.themes[next].Name
	m.applyTheme()
	return tea.Batch(
		m.send(protocol.UpdateConfig{Settings: m.settings}),
		util.ReportInfo("theme: "+m.settings.Theme),
	)
}

// applyTheme activates the theme named in the settings, or the default
// theme when none matches.
func (m *Model) applyTheme() {
	var active *styles.Theme
	for _, t := range m.themes {
		if t.Name == m.settings.Theme {
			active = styles.FromSchema(t)
			break
		}
	}
	styles.SetTheme(active)
	m.help.Styles = help.DefaultStyles(styles.CurrentTheme().IsDark)
}

// send publishes c to the host.
func (m *Model) send(c protocol.Command) tea.Cmd {
	if m.out == nil {
		return nil
	}
	return func() tea.Msg {
		m.out.Publish(pubsub.EventCommand, c)
		return nil
	}
}

// View renders the TUI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if !m.ready {
		view.Content = "Loading..."
		return view
	}

	helpView := m.help.View(m.keyMap)
	statusBar := m.status.View("")
	if m.help.ShowAll {
		statusBar = lipgloss.JoinVertical(lipgloss.Left, helpView, statusBar)
	} else {
		statusBar = m.status.View(helpView)
	}

	bodyHeight := max(0, m.height-lipgloss.Height(statusBar))
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.timer.View())

	view.Content = lipgloss.JoinVertical(lipgloss.Left, body, statusBar)
	return view
}

func soundFor(kind schema.SessionKind) protocol.SoundID {
	switch kind {
	case schema.KindShortBreak:
		return protocol.SoundShortBreak
	case schema.KindLongBreak:
		return protocol.SoundLongBreak
	default:
		return protocol.SoundWork
	}
}

// customSound returns the settings field holding the custom file for id.
func customSound(s *schema.Settings, id protocol.SoundID) **string {
	switch id {
	case protocol.SoundWork:
		return &s.FocusAudio
	case protocol.SoundShortBreak:
		return &s.ShortBreakAudio
	case protocol.SoundLongBreak:
		return &s.LongBreakAudio
	default:
		return nil
	}
}
