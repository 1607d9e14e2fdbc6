package state

import (
	"errors"
	"time"

	"github.com/kk-code-lab/jnv/internal/log"
	"github.com/kk-code-lab/jnv/internal/query"
)

// SpinnerFrames are cycled while an evaluation or index build is running.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StateReducer applies actions to AppState.
type StateReducer struct {
	formatter query.Formatter
	now       func() time.Time
}

// NewStateReducer creates a reducer that renders results with formatter.
func NewStateReducer(formatter query.Formatter) *StateReducer {
	return &StateReducer{formatter: formatter, now: time.Now}
}

// Formatter returns the result formatter.
func (r *StateReducer) Formatter() query.Formatter {
	return r.formatter
}

// Reduce applies an action to state. Actions the reducer does not know are
// ignored.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== VIEWER =====

	case ScrollUpAction:
		state.ScrollOffset--
		state.clampScroll()
	case ScrollDownAction:
		state.ScrollOffset++
		state.clampScroll()
	case ScrollPageUpAction:
		state.ScrollOffset -= state.pageSize()
		state.clampScroll()
	case ScrollPageDownAction:
		state.ScrollOffset += state.pageSize()
		state.clampScroll()
	case ScrollTopAction:
		state.ScrollOffset = 0
	case ScrollBottomAction:
		state.ScrollOffset = state.maxScroll()

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampScroll()

	case SwitchFocusAction:
		if state.Focus == FocusEditor {
			state.Focus = FocusViewer
		} else {
			state.Focus = FocusEditor
		}

	// ===== EVALUATION =====

	case EvalStartAction:
		state.EvalSeq = a.Seq
		state.EvalStatus = EvalRunning

	case EvalResultAction:
		if a.Seq != state.EvalSeq {
			// A newer evaluation superseded this one.
			return state, nil
		}
		r.applyResult(state, a)

	// ===== INDEX =====

	case IndexProgressAction:
		state.IndexedPaths = a.Count
	case IndexDoneAction:
		state.IndexedPaths = a.Count
		if a.Err != nil {
			state.IndexStatus = IndexFailed
			state.IndexError = a.Err
		} else {
			state.IndexStatus = IndexReady
		}

	// ===== MISC =====

	case SpinnerTickAction:
		state.SpinnerFrame = (state.SpinnerFrame + 1) % len(SpinnerFrames)
	case NoticeAction:
		state.Notice = Notice{Text: a.Text, Failed: a.Failed, At: r.now()}
	case ClearNoticeAction:
		state.Notice = Notice{}
	}
	return state, nil
}

func (r *StateReducer) applyResult(state *AppState, a EvalResultAction) {
	switch {
	case errors.Is(a.Err, query.ErrEmptyResult):
		state.EvalStatus = EvalDone
		state.EvalError = nil
		state.Query = a.Query
		state.Results = nil
		state.Rows = nil
		state.ScrollOffset = 0
	case a.Err != nil:
		// Keep the previous rows on screen; only the error line changes.
		state.EvalStatus = EvalFailed
		state.EvalError = a.Err
		log.Debug("query failed", "query", a.Query, "error", a.Err)
	default:
		state.EvalStatus = EvalDone
		state.EvalError = nil
		state.Query = a.Query
		state.Results = a.Values
		state.Rows = r.formatter.Rows(a.Values)
		state.ScrollOffset = 0
	}
}
