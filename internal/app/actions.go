package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kk-code-lab/jnv/internal/log"
	statepkg "github.com/kk-code-lab/jnv/internal/state"
)

var errNoClipboard = errors.New("no clipboard command found")

func (app *Application) handleCopyQuery() bool {
	app.notifyCopy("query", app.copyToClipboard(app.editor.Text()))
	return true
}

func (app *Application) handleCopyResult() bool {
	text, err := app.reducer.Formatter().Plain(app.state.Results)
	if err == nil {
		err = app.copyToClipboard(text)
	}
	app.notifyCopy("result", err)
	return true
}

func (app *Application) copyToClipboard(text string) error {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		return errNoClipboard
	}
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", clipboardName(app.clipboardCmd), err)
	}
	return nil
}

func (app *Application) notifyCopy(what string, err error) {
	if err != nil {
		log.Warn("copy failed", "what", what, "error", err)
		app.reduce(statepkg.NoticeAction{Text: fmt.Sprintf("Failed to copy %s: %v", what, err), Failed: true})
		return
	}
	app.reduce(statepkg.NoticeAction{Text: fmt.Sprintf("Copied %s to clipboard", what)})
}
