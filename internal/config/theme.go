package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/guilhermegouw/pomo/internal/colorcodec"
)

//go:embed themes/*.json
var builtinThemes embed.FS

// Colors is the host-side colour set of a theme: twelve colour slots.
//
//nolint:govet // Field order mirrors the persisted JSON.
type Colors struct {
	Accent             string `json:"accent"`
	Background         string `json:"background"`
	BackgroundLight    string `json:"background_light"`
	BackgroundLightest string `json:"background_lightest"`
	FocusRound         string `json:"focus_round"`
	FocusRoundMiddle   string `json:"focus_round_middle"`
	FocusRoundEnd      string `json:"focus_round_end"`
	Foreground         string `json:"foreground"`
	ForegroundDarker   string `json:"foreground_darker"`
	ForegroundDarkest  string `json:"foreground_darkest"`
	LongRound          string `json:"long_round"`
	ShortRound         string `json:"short_round"`
}

// Theme is a named colour set.
type Theme struct {
	Colors Colors `json:"colors"`
	Name   string `json:"name"`
}

// themeFile is the on-disk theme format, keyed by CSS custom property names.
// The middle and end focus colours are optional.
type themeFile struct {
	Colors struct {
		Accent             string  `json:"--color-accent"`
		Background         string  `json:"--color-background"`
		BackgroundLight    string  `json:"--color-background-light"`
		BackgroundLightest string  `json:"--color-background-lightest"`
		FocusRound         string  `json:"--color-focus-round"`
		FocusRoundMiddle   *string `json:"--color-focus-round-middle"`
		FocusRoundEnd      *string `json:"--color-focus-round-end"`
		Foreground         string  `json:"--color-foreground"`
		ForegroundDarker   string  `json:"--color-foreground-darker"`
		ForegroundDarkest  string  `json:"--color-foreground-darkest"`
		LongRound          string  `json:"--color-long-round"`
		ShortRound         string  `json:"--color-short-round"`
	} `json:"colors"`
	Name string `json:"name"`
}

// ErrThemeName is returned for theme files without a name.
var ErrThemeName = errors.New("theme has no name")

// ParseTheme decodes a theme file.
//
// When the middle or end focus colours are missing, the middle one is the
// halfway blend of the short-round and focus-round colours and the end one is
// the short-round colour. If either of those is not a valid hex colour both
// fall back to the focus-round colour.
func ParseTheme(data []byte) (Theme, error) {
	var tf themeFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return Theme{}, fmt.Errorf("decoding theme: %w", err)
	}
	if strings.TrimSpace(tf.Name) == "" {
		return Theme{}, ErrThemeName
	}

	c := tf.Colors
	middle, end := c.FocusRound, c.FocusRound
	switch {
	case c.FocusRoundMiddle != nil && c.FocusRoundEnd != nil:
		middle, end = *c.FocusRoundMiddle, *c.FocusRoundEnd
	default:
		short, okShort := colorcodec.Parse(c.ShortRound)
		focus, okFocus := colorcodec.Parse(c.FocusRound)
		if okShort && okFocus {
			middle = strings.ToUpper(colorcodec.Mix(short, focus, 0.5).Hex())
			end = c.ShortRound
		}
	}

	return Theme{
		Name: tf.Name,
		Colors: Colors{
			Accent:             c.Accent,
			Background:         c.Background,
			BackgroundLight:    c.BackgroundLight,
			BackgroundLightest: c.BackgroundLightest,
			FocusRound:         c.FocusRound,
			FocusRoundMiddle:   middle,
			FocusRoundEnd:      end,
			Foreground:         c.Foreground,
			ForegroundDarker:   c.ForegroundDarker,
			ForegroundDarkest:  c.ForegroundDarkest,
			LongRound:          c.LongRound,
			ShortRound:         c.ShortRound,
		},
	}, nil
}

// ThemeLoadError describes one theme file that could not be read.
type ThemeLoadError struct {
	Path string
	Err  error
}

func (e *ThemeLoadError) Error() string {
	return fmt.Sprintf("theme %s: %v", e.Path, e.Err)
}

func (e *ThemeLoadError) Unwrap() error {
	return e.Err
}

// LoadThemes returns the built-in themes followed by every *.json theme in
// dirs, sorted by name within each source. A user theme with the same name as
// an earlier one replaces it. Unreadable files are skipped and reported in
// the returned slice of errors; a missing directory is not an error.
func LoadThemes(dirs ...string) ([]Theme, []error) {
	var (
		themes []Theme
		errs   []error
		index  = make(map[string]int)
	)

	add := func(t Theme) {
		if i, ok := index[t.Name]; ok {
			themes[i] = t
			return
		}
		index[t.Name] = len(themes)
		themes = append(themes, t)
	}

	builtin, builtinErrs := readThemes(builtinThemes, "themes")
	errs = append(errs, builtinErrs...)
	for _, t := range builtin {
		add(t)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		loaded, loadErrs := readThemes(os.DirFS(dir), ".")
		errs = append(errs, loadErrs...)
		for _, t := range loaded {
			add(t)
		}
	}

	return themes, errs
}

func readThemes(fsys fs.FS, dir string) ([]Theme, []error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, []error{&ThemeLoadError{Path: dir, Err: err}}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var (
		themes []Theme
		errs   []error
	)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.ToSlash(filepath.Join(dir, entry.Name()))
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			errs = append(errs, &ThemeLoadError{Path: path, Err: err})
			continue
		}
		theme, err := ParseTheme(data)
		if err != nil {
			errs = append(errs, &ThemeLoadError{Path: path, Err: err})
			continue
		}
		themes = append(themes, theme)
	}
	return themes, errs
}

// FindTheme returns the theme called name, or false.
func FindTheme(themes []Theme, name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
