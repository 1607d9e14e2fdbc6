// Package config gathers command-line options and the optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/jnv/internal/query"
	"github.com/kk-code-lab/jnv/internal/suggest"
	"github.com/kk-code-lab/jnv/internal/textbuf"
)

// Options are the command-line settings.
type Options struct {
	Input                string
	EditMode             string
	Indent               int
	NoHint               bool
	LimitLength          int
	SuggestionListLength int
	ConfigPath           string
	LogFile              string
	Debug                bool
}

// DefaultOptions returns the flag defaults.
func DefaultOptions() Options {
	return Options{
		EditMode:             "insert",
		Indent:               2,
		LimitLength:          50,
		SuggestionListLength: suggest.DefaultListLines,
	}
}

// Validate rejects values no component can work with.
func (o Options) Validate() error {
	if _, err := ParseEditMode(o.EditMode); err != nil {
		return err
	}
	if o.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", o.Indent)
	}
	if o.LimitLength < 0 {
		return fmt.Errorf("limit-length must not be negative, got %d", o.LimitLength)
	}
	if o.SuggestionListLength < 0 {
		return fmt.Errorf("suggestion-list-length must not be negative, got %d", o.SuggestionListLength)
	}
	return nil
}

// Mode returns the parsed edit mode. It assumes Validate passed.
func (o Options) Mode() textbuf.Mode {
	m, _ := ParseEditMode(o.EditMode)
	return m
}

// Formatter builds the JSON formatter the options describe.
func (o Options) Formatter() query.Formatter {
	f := query.DefaultFormatter()
	f.Indent = o.Indent
	f.ArrayLimit = o.LimitLength
	return f
}

// ParseEditMode maps "insert" or "overwrite" to a buffer mode. The empty
// string means insert.
func ParseEditMode(s string) (textbuf.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "insert":
		return textbuf.Insert, nil
	case "overwrite":
		return textbuf.Overwrite, nil
	default:
		return textbuf.Insert, fmt.Errorf("unknown edit mode %q (want insert or overwrite)", s)
	}
}
