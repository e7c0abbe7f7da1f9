package host

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/guilhermegouw/pomo/internal/protocol"
)

// Player plays a sound. An empty path selects the built-in sound for id.
type Player interface {
	Play(ctx context.Context, id protocol.SoundID, path string) error
}

// ErrUnsupportedAudio is returned for audio files that are not Ogg Vorbis or WAV.
var ErrUnsupportedAudio = errors.New("unsupported audio format")

const sampleRate = beep.SampleRate(44100)

// tone describes a built-in sound as a short sine beep.
type tone struct {
	freq     float64
	duration time.Duration
}

var builtinTones = map[protocol.SoundID]tone{
	protocol.SoundWork:       {freq: 880, duration: 400 * time.Millisecond},
	protocol.SoundShortBreak: {freq: 660, duration: 400 * time.Millisecond},
	protocol.SoundLongBreak:  {freq: 440, duration: 800 * time.Millisecond},
	protocol.SoundTick:       {freq: 1200, duration: 15 * time.Millisecond},
}

// BeepPlayer plays sounds on the default audio device. Decoded sounds are
// cached; the speaker is initialised on first use.
type BeepPlayer struct {
	mu      sync.Mutex
	buffers map[string]*beep.Buffer

	initOnce sync.Once
	initErr  error

	// Seams for tests without an audio device.
	initSpeaker func(beep.SampleRate, int) error
	play        func(...beep.Streamer)
}

// NewBeepPlayer creates a player backed by beep's speaker.
func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{
		buffers:     make(map[string]*beep.Buffer),
		initSpeaker: speaker.Init,
		play:        speaker.Play,
	}
}

// Play queues the sound and returns without waiting for it to finish.
func (p *BeepPlayer) Play(ctx context.Context, id protocol.SoundID, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.initOnce.Do(func() {
		p.initErr = p.initSpeaker(sampleRate, sampleRate.N(time.Second/10))
	})
	if p.initErr != nil {
		return fmt.Errorf("initialising speaker: %w", p.initErr)
	}

	buf, err := p.buffer(id, path)
	if err != nil {
		return err
	}

	p.play(buf.Streamer(0, buf.Len()))
	return nil
}

// buffer returns the cached decoded sound, decoding it on first use.
func (p *BeepPlayer) buffer(id protocol.SoundID, path string) (*beep.Buffer, error) {
	key := "builtin:" + string(id)
	if path != "" {
		key = path
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if buf, ok := p.buffers[key]; ok {
		return buf, nil
	}

	var (
		buf *beep.Buffer
		err error
	)
	if path != "" {
		buf, err = decodeFile(path)
	} else {
		buf, err = builtinBuffer(id)
	}
	if err != nil {
		return nil, err
	}

	p.buffers[key] = buf
	return buf, nil
}

func builtinBuffer(id protocol.SoundID) (*beep.Buffer, error) {
	t, ok := builtinTones[id]
	if !ok {
		return nil, fmt.Errorf("no built-in sound %q", id)
	}

	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(sampleRate.N(t.duration), sine(t.freq)))
	return buf, nil
}

// sine generates an endless sine wave at freq, at half amplitude.
func sine(freq float64) beep.Streamer {
	var n int
	step := 2 * math.Pi * freq / float64(sampleRate)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := 0.5 * math.Sin(step*float64(n))
			samples[i][0], samples[i][1] = v, v
			n++
		}
		return len(samples), true
	})
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path) //nolint:gosec // user-chosen sound file
	if err != nil {
		return nil, fmt.Errorf("opening sound: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAudio, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer func() { _ = streamer.Close() }()

	var source beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		source = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: format.Precision})
	buf.Append(source)
	return buf, nil
}
