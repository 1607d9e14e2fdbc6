package state

import "github.com/kk-code-lab/jnv/internal/keymap"

// Action is the base interface for all state mutations
type Action interface{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
type CopyQueryAction struct{}
type CopyResultAction struct{}
type SwitchFocusAction struct{}

// EditorKeyAction hands a keystroke to the query editor.
type EditorKeyAction struct {
	Key keymap.Keystroke
}

// ===== VIEWER ACTIONS =====

type ScrollUpAction struct{}
type ScrollDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollTopAction struct{}
type ScrollBottomAction struct{}

type ResizeAction struct {
	Width  int
	Height int
}

// ===== EVALUATION ACTIONS =====

// EvalRequestAction asks for Query to be evaluated; it is posted once the
// editor has been idle for the debounce interval.
type EvalRequestAction struct {
	Query string
}

type EvalStartAction struct {
	Seq   uint64
	Query string
}

type EvalResultAction struct {
	Seq    uint64
	Query  string
	Values []any
	Err    error
}

// ===== INDEX ACTIONS =====

type IndexProgressAction struct {
	Count int
}

type IndexDoneAction struct {
	Count int
	Err   error
}

// ===== MISC =====

type SpinnerTickAction struct{}

type NoticeAction struct {
	Text   string
	Failed bool
}

type ClearNoticeAction struct{}
