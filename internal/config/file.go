package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/kk-code-lab/jnv/internal/editor"
	"github.com/kk-code-lab/jnv/internal/keymap"
	"github.com/kk-code-lab/jnv/internal/log"
	"github.com/kk-code-lab/jnv/internal/textbuf"
)

// Format identifies the serialization format of a config file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Source describes where the config was loaded from. Path is empty when
// nothing was found on disk.
type Source struct {
	Path   string
	Format Format
}

// File is the content of config.toml / config.json.
type File struct {
	Keybinds map[string]string `json:"keybinds" toml:"keybinds"`
	Theme    ThemeFile         `json:"theme" toml:"theme"`
}

// ThemeFile overrides parts of the editor look.
type ThemeFile struct {
	FocusPrefix    string `json:"focus_prefix" toml:"focus_prefix"`
	DefocusPrefix  string `json:"defocus_prefix" toml:"defocus_prefix"`
	WordBreakChars string `json:"word_break_chars" toml:"word_break_chars"`
}

// DefaultDir returns $XDG_CONFIG_HOME/jnv, falling back to ~/.config/jnv.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jnv")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "jnv")
}

// Load reads config.toml or config.json from dir. A missing file yields the
// zero File and no error.
func Load(dir string) (File, Source, error) {
	if dir == "" {
		return File{}, Source{}, nil
	}
	candidates := []Source{
		{Path: filepath.Join(dir, "config.toml"), Format: FormatTOML},
		{Path: filepath.Join(dir, "config.json"), Format: FormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(accumulated, fmt.Errorf("read config %q: %w", candidate.Path, err))
			continue
		}
		f, err := parseFile(data, candidate.Format)
		if err != nil {
			return File{}, Source{}, fmt.Errorf("parse config %q: %w", candidate.Path, err)
		}
		log.Debug("config loaded", "path", candidate.Path)
		return f, candidate, nil
	}
	if accumulated != nil {
		return File{}, Source{}, accumulated
	}
	return File{}, Source{}, nil
}

// LoadFile reads an explicitly named config file; the format follows the
// extension and defaults to TOML. Unlike Load, a missing file is an error.
func LoadFile(path string) (File, Source, error) {
	format := FormatTOML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, Source{}, fmt.Errorf("read config %q: %w", path, err)
	}
	f, err := parseFile(data, format)
	if err != nil {
		return File{}, Source{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return f, Source{Path: path, Format: format}, nil
}

func parseFile(data []byte, format Format) (File, error) {
	var f File
	if len(data) == 0 {
		return f, nil
	}
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(strings.NewReader(string(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, err
		}
	case FormatJSON:
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, err
		}
	default:
		return File{}, fmt.Errorf("unsupported format %q", format)
	}
	return f, nil
}

// KeySet returns the default bindings with the file's overrides applied.
func (f File) KeySet() (keymap.Set, error) {
	set := keymap.DefaultSet()
	if err := set.Apply(f.Keybinds); err != nil {
		return keymap.Set{}, err
	}
	return set, nil
}

// Themes returns the focused and unfocused editor themes with the file's
// prefixes applied.
func (f File) Themes() (focus, defocus editor.Theme) {
	focus = editor.DefaultFocusTheme()
	defocus = editor.DefaultDefocusTheme()
	if f.Theme.FocusPrefix != "" {
		focus.Prefix = f.Theme.FocusPrefix
	}
	if f.Theme.DefocusPrefix != "" {
		defocus.Prefix = f.Theme.DefocusPrefix
	}
	return focus, defocus
}

// WordBreakChars returns the configured word separators, or the defaults.
func (f File) WordBreakChars() textbuf.WordBreakChars {
	if f.Theme.WordBreakChars == "" {
		return textbuf.DefaultWordBreakChars()
	}
	return textbuf.NewWordBreakChars(f.Theme.WordBreakChars)
}
