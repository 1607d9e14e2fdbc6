package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/log"
	statepkg "github.com/kk-code-lab/jnv/internal/state"
)

const animationInterval = 100 * time.Millisecond

// Run drives the session until the user quits. It returns the error that
// ended the session, if any.
func (app *Application) Run() error {
	defer app.screen.Fini()
	defer app.stopWork()

	go app.buildIndex(app.ctx)
	app.startEval(app.editor.Text())

	app.render()
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-app.ctx.Done():
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var animationTicker *time.Ticker
	var animationCh <-chan time.Time
	startAnimation := func() {
		if animationTicker == nil {
			animationTicker = time.NewTicker(animationInterval)
			animationCh = animationTicker.C
		}
	}
	stopAnimation := func() {
		if animationTicker == nil {
			return
		}
		animationTicker.Stop()
		animationTicker = nil
		animationCh = nil
	}
	defer stopAnimation()

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		if app.state.Busy() {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			app.reduce(statepkg.SpinnerTickAction{})
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	return app.err
}

func (app *Application) render() {
	app.state.ViewerHeight = app.renderer.Render(app.state, app.editor)
}

// handleEvent applies the action for ev directly. The loop goroutine is the
// only reader of actionCh, so it must never send to it.
func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey:
	case *tcell.EventResize:
		app.screen.Sync()
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	action := app.input.ProcessEvent(ev)
	if action == nil {
		return false
	}
	if app.handleAction(action) {
		return true
	}
	// Quit reports no change but still needs the loop to notice shouldQuit.
	return app.shouldQuit
}

// dispatch posts an action from any goroutine without blocking the caller.
func (app *Application) dispatch(action statepkg.Action) {
	select {
	case app.actionCh <- action:
	default:
		go func() {
			select {
			case app.actionCh <- action:
			case <-app.ctx.Done():
			}
		}()
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch a := action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.EditorKeyAction:
		return app.handleEditorKey(a)
	case statepkg.SwitchFocusAction:
		app.reduce(a)
		if app.state.Focus == statepkg.FocusViewer {
			app.editor.Defocus()
		} else {
			app.editor.Focus()
		}
		return true
	case statepkg.CopyQueryAction:
		return app.handleCopyQuery()
	case statepkg.CopyResultAction:
		return app.handleCopyResult()
	case statepkg.EvalRequestAction:
		if a.Query != app.editor.Text() {
			// The query changed again after this request was scheduled.
			return false
		}
		app.startEval(a.Query)
		return true
	}

	app.reduce(action)
	return true
}

func (app *Application) reduce(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		log.Error("reduce failed", "action", action, "error", err)
	}
}
