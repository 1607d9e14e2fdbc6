package state

import (
	"errors"
	"testing"

	"github.com/kk-code-lab/jnv/internal/query"
	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

func newTestReducer() *StateReducer {
	return NewStateReducer(query.DefaultFormatter())
}

func stateWithRows(n, height int) *AppState {
	rows := make([]pane.Line, n)
	for i := range rows {
		rows[i] = pane.Line{{Text: "row"}}
	}
	return &AppState{Rows: rows, ViewerHeight: height}
}

func reduceAll(t *testing.T, r *StateReducer, s *AppState, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		if _, err := r.Reduce(s, a); err != nil {
			t.Fatalf("Reduce(%T) returned error: %v", a, err)
		}
	}
}

func TestScrollingClampsToContent(t *testing.T) {
	r := newTestReducer()
	s := stateWithRows(10, 4)

	reduceAll(t, r, s, ScrollUpAction{})
	if s.ScrollOffset != 0 {
		t.Fatalf("scroll above top: %d", s.ScrollOffset)
	}

	reduceAll(t, r, s, ScrollDownAction{}, ScrollDownAction{})
	if s.ScrollOffset != 2 {
		t.Fatalf("expected offset 2, got %d", s.ScrollOffset)
	}

	reduceAll(t, r, s, ScrollPageDownAction{}, ScrollPageDownAction{})
	if s.ScrollOffset != 6 {
		t.Fatalf("expected offset clamped to 6, got %d", s.ScrollOffset)
	}

	reduceAll(t, r, s, ScrollPageUpAction{})
	if s.ScrollOffset != 3 {
		t.Fatalf("expected offset 3 after page up, got %d", s.ScrollOffset)
	}

	reduceAll(t, r, s, ScrollBottomAction{})
	if s.ScrollOffset != 6 {
		t.Fatalf("expected bottom offset 6, got %d", s.ScrollOffset)
	}
	if got := len(s.VisibleRows()); got != 4 {
		t.Fatalf("expected 4 visible rows, got %d", got)
	}

	reduceAll(t, r, s, ScrollTopAction{})
	if s.ScrollOffset != 0 {
		t.Fatalf("expected top, got %d", s.ScrollOffset)
	}
}

func TestSwitchFocusToggles(t *testing.T) {
	r := newTestReducer()
	s := &AppState{}

	reduceAll(t, r, s, SwitchFocusAction{})
	if s.Focus != FocusViewer {
		t.Fatal("expected viewer focus")
	}
	reduceAll(t, r, s, SwitchFocusAction{})
	if s.Focus != FocusEditor {
		t.Fatal("expected editor focus")
	}
}

func TestEvalResultReplacesRows(t *testing.T) {
	r := newTestReducer()
	s := stateWithRows(3, 2)
	s.ScrollOffset = 1

	reduceAll(t, r, s,
		EvalStartAction{Seq: 1, Query: ".a"},
		EvalResultAction{Seq: 1, Query: ".a", Values: []any{"x"}},
	)

	if s.EvalStatus != EvalDone || s.Query != ".a" {
		t.Fatalf("unexpected status %v query %q", s.EvalStatus, s.Query)
	}
	if len(s.Rows) != 1 || s.ScrollOffset != 0 {
		t.Fatalf("expected one row at top, got %d rows offset %d", len(s.Rows), s.ScrollOffset)
	}
}

func TestStaleEvalResultIgnored(t *testing.T) {
	r := newTestReducer()
	s := &AppState{}

	reduceAll(t, r, s,
		EvalStartAction{Seq: 1, Query: ".a"},
		EvalStartAction{Seq: 2, Query: ".b"},
		EvalResultAction{Seq: 1, Query: ".a", Values: []any{1}},
	)

	if s.EvalStatus != EvalRunning || s.Rows != nil {
		t.Fatal("stale result must not be applied")
	}
}

func TestEvalFailureKeepsPreviousRows(t *testing.T) {
	r := newTestReducer()
	s := stateWithRows(2, 5)

	reduceAll(t, r, s,
		EvalStartAction{Seq: 3},
		EvalResultAction{Seq: 3, Query: ".[", Err: errors.New("unexpected EOF")},
	)

	if s.EvalStatus != EvalFailed || s.EvalError == nil {
		t.Fatalf("expected failure, got %v", s.EvalStatus)
	}
	if len(s.Rows) != 2 {
		t.Fatal("previous rows should stay visible")
	}
}

func TestEmptyResultClearsRows(t *testing.T) {
	r := newTestReducer()
	s := stateWithRows(2, 5)

	reduceAll(t, r, s,
		EvalStartAction{Seq: 1},
		EvalResultAction{Seq: 1, Query: "empty", Err: query.ErrEmptyResult},
	)

	if s.EvalStatus != EvalDone || s.EvalError != nil || len(s.Rows) != 0 {
		t.Fatalf("expected empty done state, got %v %v %d", s.EvalStatus, s.EvalError, len(s.Rows))
	}
}

func TestIndexLifecycle(t *testing.T) {
	r := newTestReducer()
	s := &AppState{}
	if !s.Busy() {
		t.Fatal("a fresh state is still indexing")
	}

	reduceAll(t, r, s, IndexProgressAction{Count: 10}, IndexDoneAction{Count: 12})
	if s.IndexStatus != IndexReady || s.IndexedPaths != 12 {
		t.Fatalf("unexpected index state %v %d", s.IndexStatus, s.IndexedPaths)
	}
	if s.Busy() {
		t.Fatal("nothing should be running")
	}

	reduceAll(t, r, s, IndexDoneAction{Err: errors.New("boom")})
	if s.IndexStatus != IndexFailed || s.IndexError == nil {
		t.Fatal("expected failed index")
	}
}

func TestSpinnerWrapsAround(t *testing.T) {
	r := newTestReducer()
	s := &AppState{SpinnerFrame: len(SpinnerFrames) - 1}

	reduceAll(t, r, s, SpinnerTickAction{})
	if s.SpinnerFrame != 0 {
		t.Fatalf("expected frame 0, got %d", s.SpinnerFrame)
	}
}

func TestNoticeSetAndCleared(t *testing.T) {
	r := newTestReducer()
	s := &AppState{}

	reduceAll(t, r, s, NoticeAction{Text: "Copied query"})
	if s.Notice.Text != "Copied query" || s.Notice.At.IsZero() {
		t.Fatalf("unexpected notice %+v", s.Notice)
	}
	reduceAll(t, r, s, ClearNoticeAction{})
	if s.Notice.Text != "" {
		t.Fatal("expected notice cleared")
	}
}
