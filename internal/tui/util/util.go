// Package util holds small helpers shared by TUI components.
package util

import tea "charm.land/bubbletea/v2"

// InfoType is the severity of an InfoMsg.
type InfoType int

// Info severities.
const (
	InfoTypeInfo InfoType = iota
	InfoTypeError
)

// InfoMsg is a status line message.
type InfoMsg struct {
	Type InfoType
	Msg  string
}

// CmdHandler wraps a message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// ReportInfo shows msg in the status line.
func ReportInfo(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeInfo, Msg: msg})
}

// ReportError shows err in the status line.
func ReportError(err error) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeError, Msg: err.Error()})
}
