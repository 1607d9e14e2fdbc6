// Package suggest provides the incremental suggestion search behind query
// completion.
package suggest

import (
	"strings"
	"sync"
)

// Index is an append-only set of candidates filled in background batches and
// read by the searcher on the UI goroutine.
type Index struct {
	mu    sync.RWMutex
	items []string
	seen  map[string]struct{}
	done  bool
	err   error
}

// NewIndex creates an empty, still-loading index.
func NewIndex() *Index {
	return &Index{seen: make(map[string]struct{})}
}

// NewStaticIndex creates a completed index holding items.
func NewStaticIndex(items []string) *Index {
	ix := NewIndex()
	ix.Add(items)
	ix.Finish(nil)
	return ix
}

// Add appends candidates not already present, keeping first-seen order.
func (ix *Index) Add(batch []string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.done {
		return
	}
	for _, item := range batch {
		if _, ok := ix.seen[item]; ok {
			continue
		}
		ix.seen[item] = struct{}{}
		ix.items = append(ix.items, item)
	}
}

// Finish marks loading complete. A non-nil err records why loading stopped.
func (ix *Index) Finish(err error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.done = true
	ix.err = err
}

// Len reports how many candidates have been loaded.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.items)
}

// Status reports whether loading finished and why it stopped.
func (ix *Index) Status() (done bool, err error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.done, ix.err
}

// scan collects up to limit candidates starting with prefix, beginning at
// position from. It returns the position to resume from and whether the scan
// covered a completed index.
func (ix *Index) scan(prefix string, from, limit int) (matches []string, next int, exhausted bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	i := from
	for ; i < len(ix.items) && len(matches) < limit; i++ {
		if strings.HasPrefix(ix.items[i], prefix) {
			matches = append(matches, ix.items[i])
		}
	}
	// Skip trailing non-matches so a full final chunk still reports exhaustion.
	for i < len(ix.items) && !strings.HasPrefix(ix.items[i], prefix) {
		i++
	}
	return matches, i, ix.done && i >= len(ix.items)
}
