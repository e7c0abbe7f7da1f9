package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/guilhermegouw/pomo/internal/protocol"
)

// ErrNoSelection is returned by a Picker when nothing was chosen.
var ErrNoSelection = errors.New("no sound file selected")

// Picker chooses a custom sound file for a sound slot.
type Picker interface {
	Pick(ctx context.Context, id protocol.SoundID) (string, error)
}

// audioExtensions lists the formats BeepPlayer decodes, in preference order.
var audioExtensions = []string{".ogg", ".wav"}

// DirPicker picks "<Dir>/<sound id>.<ext>" for the first supported extension
// that exists, e.g. ~/.config/pomo/sounds/audio-work.ogg.
type DirPicker struct {
	Dir string
}

// Pick returns the absolute path of the matching file or ErrNoSelection.
func (p DirPicker) Pick(ctx context.Context, id protocol.SoundID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, ext := range audioExtensions {
		candidate := filepath.Join(p.Dir, string(id)+ext)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	return "", ErrNoSelection
}
