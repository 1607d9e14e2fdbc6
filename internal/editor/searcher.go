package editor

import (
	"context"
	"fmt"

	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

// SearchResult is what a suggestion lookup reports for a prefix.
type SearchResult struct {
	// Head is the first candidate; meaningful only when HasHead is set.
	Head    string
	HasHead bool
	// FullyLoaded is set when every candidate for the prefix is loaded.
	FullyLoaded bool
	// Loaded is the number of candidates loaded so far.
	Loaded int
}

// Searcher ranks and pages suggestion candidates for the editor.
type Searcher interface {
	// Start opens a session for prefix. An error is a lookup failure and is
	// reported to the user, never to the host.
	Start(ctx context.Context, prefix string) (SearchResult, error)
	// Next moves to the following candidate, loading more if the loaded
	// page is exhausted. An error means the provider itself is broken.
	Next(ctx context.Context) error
	// Previous moves to the preceding candidate.
	Previous()
	// Current returns the selected candidate.
	Current() string
	// Leave discards the session.
	Leave()
	// Pane renders the candidate list.
	Pane(width, height int) pane.Pane
}

// LookupError reports why a suggestion lookup failed.
type LookupError struct {
	Kind string
	Err  error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return e.Kind
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
