package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kk-code-lab/jnv/internal/log"
	"github.com/kk-code-lab/jnv/internal/query"
	statepkg "github.com/kk-code-lab/jnv/internal/state"
)

func (app *Application) handleEditorKey(a statepkg.EditorKeyAction) bool {
	if app.state.Notice.Text != "" {
		app.reduce(statepkg.ClearNoticeAction{})
	}

	before := app.editor.Text()
	if err := app.editor.OperateKey(app.ctx, a.Key); err != nil {
		log.Error("suggestion provider failed", "error", err)
		app.err = fmt.Errorf("suggestions: %w", err)
		app.shouldQuit = true
		return false
	}
	if after := app.editor.Text(); after != before {
		app.scheduleEval(after)
	}
	return true
}

// scheduleEval restarts the debounce timer for filter.
func (app *Application) scheduleEval(filter string) {
	if app.debounce != nil {
		app.debounce.Stop()
	}
	app.debounce = time.AfterFunc(app.delay, func() {
		app.dispatch(statepkg.EvalRequestAction{Query: filter})
	})
}

// startEval cancels the running evaluation, if any, and starts a new one.
func (app *Application) startEval(filter string) {
	if app.evalCancel != nil {
		app.evalCancel()
	}
	ctx, cancel := context.WithCancel(app.ctx)
	app.evalCancel = cancel
	app.evalSeq++
	seq := app.evalSeq
	app.reduce(statepkg.EvalStartAction{Seq: seq, Query: filter})

	go func() {
		values, err := app.engine.Eval(ctx, filter)
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return
		}
		app.dispatch(statepkg.EvalResultAction{Seq: seq, Query: filter, Values: values, Err: err})
	}()
}

// buildIndex walks every input value and streams the paths into the
// suggestion index.
func (app *Application) buildIndex(ctx context.Context) {
	start := time.Now()
	err := query.Paths(ctx, app.engine.Inputs(), app.pathSize, func(batch []string) {
		app.index.Add(batch)
		app.dispatch(statepkg.IndexProgressAction{Count: app.index.Len()})
	})
	app.index.Finish(err)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("suggestion index failed", "error", err)
	} else {
		log.Debug("suggestion index ready", "paths", app.index.Len(), "elapsed", time.Since(start))
	}
	app.dispatch(statepkg.IndexDoneAction{Count: app.index.Len(), Err: err})
}

func (app *Application) stopWork() {
	if app.debounce != nil {
		app.debounce.Stop()
	}
	if app.evalCancel != nil {
		app.evalCancel()
	}
	app.cancel()
}
