package host

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/muesli/termenv"

	"github.com/guilhermegouw/pomo/internal/protocol"
)

// Notifier surfaces notifications and icon state to the desktop.
type Notifier interface {
	Notify(n protocol.Notification) error
	SetIcon(icon protocol.IconState) error
}

// TermNotifier uses terminal escape sequences: OSC 777 notifications, the
// window title as the icon and the cursor colour as its tint.
type TermNotifier struct {
	w io.Writer
}

// NewTermNotifier writes escape sequences to w. Use stderr so the sequences
// do not interleave with the UI's frames.
func NewTermNotifier(w io.Writer) *TermNotifier {
	return &TermNotifier{w: w}
}

// Notify shows a desktop notification through the terminal.
func (t *TermNotifier) Notify(n protocol.Notification) error {
	_, err := fmt.Fprint(t.w, termenv.OSC+"777;notify;"+oscField(n.Title)+";"+oscField(n.Body)+termenv.ST)
	return err
}

// SetIcon renders the icon state as the terminal window title. A colour, when
// present, tints the cursor; nil leaves the tint as it was.
func (t *TermNotifier) SetIcon(icon protocol.IconState) error {
	if _, err := fmt.Fprintf(t.w, termenv.OSC+termenv.SetWindowTitleSeq, IconTitle(icon)); err != nil {
		return err
	}
	if icon.Color == nil {
		return nil
	}
	_, err := fmt.Fprintf(t.w, termenv.OSC+termenv.SetCursorColorSeq, icon.Color.Hex())
	return err
}

// oscField drops control characters and the field separator.
func oscField(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ';' {
			return ','
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// IconTitle renders icon state as text, e.g. "pomo ▶ 42%".
func IconTitle(icon protocol.IconState) string {
	mark := "▶"
	if icon.Paused {
		mark = "⏸"
	}
	pct := int(math.Round(math.Max(0, math.Min(1, icon.Percentage)) * 100))
	return fmt.Sprintf("pomo %s %d%%", mark, pct)
}
