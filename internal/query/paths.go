package query

import (
	"context"
	"regexp"
	"sort"
	"strconv"

	"github.com/kk-code-lab/jnv/internal/textutil"
)

// DefaultPathBatchSize is how many paths are handed to the index per batch.
const DefaultPathBatchSize = 50000

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Paths walks every input value and emits the jq path of each node in
// batches of at most batchSize. Object keys are visited in sorted order.
func Paths(ctx context.Context, inputs []any, batchSize int, emit func([]string)) error {
	if batchSize <= 0 {
		batchSize = DefaultPathBatchSize
	}
	w := &pathWalker{ctx: ctx, size: batchSize, emit: emit}
	for _, v := range inputs {
		if err := w.walk(".", v); err != nil {
			return err
		}
	}
	return w.flush()
}

type pathWalker struct {
	ctx   context.Context
	size  int
	batch []string
	emit  func([]string)
}

func (w *pathWalker) add(path string) error {
	w.batch = append(w.batch, path)
	if len(w.batch) >= w.size {
		return w.flush()
	}
	return nil
}

func (w *pathWalker) flush() error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	if len(w.batch) == 0 {
		return nil
	}
	w.emit(w.batch)
	w.batch = nil
	return nil
}

func (w *pathWalker) walk(path string, v any) error {
	if err := w.add(path); err != nil {
		return err
	}
	switch node := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := w.walk(joinKey(path, k), node[k]); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range node {
			if err := w.walk(joinIndex(path, i), item); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinKey(path, key string) string {
	if identifierPattern.MatchString(key) {
		if path == "." {
			return "." + key
		}
		return path + "." + key
	}
	return path + "[" + textutil.QuoteJSON(key) + "]"
}

func joinIndex(path string, i int) string {
	if path == "." {
		return ".[" + strconv.Itoa(i) + "]"
	}
	return path + "[" + strconv.Itoa(i) + "]"
}
