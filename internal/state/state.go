// Package state holds the application state mutated by the reducer.
package state

import (
	"time"

	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

// Focus names the component that receives keys not claimed by an
// application binding.
type Focus int

const (
	FocusEditor Focus = iota
	FocusViewer
)

// EvalStatus tracks the most recent query evaluation.
type EvalStatus int

const (
	EvalIdle EvalStatus = iota
	EvalRunning
	EvalDone
	EvalFailed
)

// IndexStatus tracks the background suggestion index build.
type IndexStatus int

const (
	IndexLoading IndexStatus = iota
	IndexReady
	IndexFailed
)

// Notice is a one-line message about an application action such as a copy.
type Notice struct {
	Text   string
	Failed bool
	At     time.Time
}

// AppState is everything the renderer needs beyond the editor surfaces.
type AppState struct {
	ScreenWidth  int
	ScreenHeight int
	Focus        Focus
	NoHint       bool

	// Query is the filter whose results are shown.
	Query      string
	EvalSeq    uint64
	EvalStatus EvalStatus
	EvalError  error
	Results    []any
	Rows       []pane.Line

	ScrollOffset int
	// ViewerHeight is the number of result rows visible in the last frame.
	ViewerHeight int

	IndexStatus  IndexStatus
	IndexedPaths int
	IndexError   error

	SpinnerFrame int
	Notice       Notice
}

// Busy reports whether a spinner should be shown.
func (s *AppState) Busy() bool {
	return s.EvalStatus == EvalRunning || s.IndexStatus == IndexLoading
}

// VisibleRows returns the slice of result rows inside the viewport.
func (s *AppState) VisibleRows() []pane.Line {
	if s.ScrollOffset >= len(s.Rows) {
		return nil
	}
	end := len(s.Rows)
	if s.ViewerHeight > 0 && s.ScrollOffset+s.ViewerHeight < end {
		end = s.ScrollOffset + s.ViewerHeight
	}
	return s.Rows[s.ScrollOffset:end]
}

func (s *AppState) maxScroll() int {
	height := s.ViewerHeight
	if height < 1 {
		height = 1
	}
	if m := len(s.Rows) - height; m > 0 {
		return m
	}
	return 0
}

func (s *AppState) clampScroll() {
	if s.ScrollOffset > s.maxScroll() {
		s.ScrollOffset = s.maxScroll()
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

func (s *AppState) pageSize() int {
	if s.ViewerHeight > 1 {
		return s.ViewerHeight - 1
	}
	return 1
}
