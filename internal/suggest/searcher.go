package suggest

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/editor"
	"github.com/kk-code-lab/jnv/internal/log"
	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

const (
	// DefaultChunkSize is how many matches one load adds to a session.
	DefaultChunkSize = 100
	// DefaultListLines is how many candidates the list pane shows.
	DefaultListLines = 3
)

// ErrIndexFailed is wrapped by errors caused by a failed index build.
var ErrIndexFailed = errors.New("suggestion index failed")

// Options configures a Searcher.
type Options struct {
	ChunkSize     int
	ListLines     int
	Cursor        string
	ActiveStyle   tcell.Style
	InactiveStyle tcell.Style
}

// DefaultOptions returns the stock list appearance.
func DefaultOptions() Options {
	return Options{
		ChunkSize:     DefaultChunkSize,
		ListLines:     DefaultListLines,
		Cursor:        "❯ ",
		ActiveStyle:   tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorYellow),
		InactiveStyle: tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// Searcher pages prefix matches out of an Index one chunk at a time.
type Searcher struct {
	index *Index
	opts  Options

	active      bool
	prefix      string
	items       []string
	cursor      int
	scanPos     int
	fullyLoaded bool
}

var _ editor.Searcher = (*Searcher)(nil)

// NewSearcher creates a searcher over index.
func NewSearcher(index *Index, opts Options) *Searcher {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ListLines < 0 {
		opts.ListLines = 0
	}
	return &Searcher{index: index, opts: opts}
}

// Start opens a session for prefix and loads the first chunk of matches.
func (s *Searcher) Start(ctx context.Context, prefix string) (editor.SearchResult, error) {
	s.Leave()
	if err := ctx.Err(); err != nil {
		return editor.SearchResult{}, &editor.LookupError{Kind: "canceled", Err: err}
	}
	if _, err := s.index.Status(); err != nil {
		return editor.SearchResult{}, &editor.LookupError{Kind: "index", Err: err}
	}

	s.prefix = prefix
	s.load()
	log.Debug("suggestions loaded", "prefix", prefix, "count", len(s.items), "complete", s.fullyLoaded)

	result := editor.SearchResult{FullyLoaded: s.fullyLoaded, Loaded: len(s.items)}
	if len(s.items) == 0 {
		return result, nil
	}
	s.active = true
	result.Head = s.items[0]
	result.HasHead = true
	return result, nil
}

// Next moves to the following candidate, loading another chunk when the
// cursor sits on the last loaded match.
func (s *Searcher) Next(ctx context.Context) error {
	if !s.active {
		return nil
	}
	if s.cursor == len(s.items)-1 && !s.fullyLoaded {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.index.Status(); err != nil {
			return fmt.Errorf("%w: %v", ErrIndexFailed, err)
		}
		s.load()
	}
	if s.cursor < len(s.items)-1 {
		s.cursor++
	}
	return nil
}

// Previous moves to the preceding candidate.
func (s *Searcher) Previous() {
	if s.active && s.cursor > 0 {
		s.cursor--
	}
}

// Current returns the selected candidate, or "" outside a session.
func (s *Searcher) Current() string {
	if !s.active || len(s.items) == 0 {
		return ""
	}
	return s.items[s.cursor]
}

// Leave discards the session.
func (s *Searcher) Leave() {
	s.active = false
	s.prefix = ""
	s.items = nil
	s.cursor = 0
	s.scanPos = 0
	s.fullyLoaded = false
}

// Active reports whether a session is open.
func (s *Searcher) Active() bool {
	return s.active
}

func (s *Searcher) load() {
	matches, next, exhausted := s.index.scan(s.prefix, s.scanPos, s.opts.ChunkSize)
	s.items = append(s.items, matches...)
	s.scanPos = next
	s.fullyLoaded = exhausted
}

// Pane renders a window of the candidate list that keeps the cursor visible.
func (s *Searcher) Pane(width, height int) pane.Pane {
	if !s.active || width <= 0 || height <= 0 {
		return pane.Empty
	}
	rows := s.opts.ListLines
	if rows == 0 || rows > height {
		rows = height
	}

	start := 0
	if s.cursor >= rows {
		start = s.cursor - rows + 1
	}
	end := start + rows
	if end > len(s.items) {
		end = len(s.items)
	}

	blank := make([]rune, 0, len(s.opts.Cursor))
	for range []rune(s.opts.Cursor) {
		blank = append(blank, ' ')
	}

	lines := make([]pane.Line, 0, end-start)
	for i := start; i < end; i++ {
		row := pane.SingleLine(string(blank)+s.items[i], s.opts.InactiveStyle, width)
		if i == s.cursor {
			row = pane.SingleLine(s.opts.Cursor+s.items[i], s.opts.ActiveStyle, width)
		}
		lines = append(lines, row.Lines[0])
	}
	return pane.Pane{Lines: lines}
}
