package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/jnv/internal/state"
	"github.com/kk-code-lab/jnv/internal/textutil"
	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

// Surfaces are the editor-owned regions drawn above the results.
type Surfaces interface {
	EditorPane(width, height int) pane.Pane
	SearcherPane(width, height int) pane.Pane
	GuidePane(width, height int) pane.Pane
}

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the editor, the suggestion list, the guide line (unless hints
// are disabled) and the visible result rows, top to bottom. It returns the
// number of rows left for results so scrolling can page correctly.
func (r *Renderer) Render(state *statepkg.AppState, surfaces Surfaces) int {
	r.screen.Clear()
	defer r.screen.Show()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return 0
	}

	y := 0
	y = r.drawPane(y, w, h, surfaces.EditorPane(w, h-y))
	r.drawActivity(state, w)
	if y < h {
		y = r.drawPane(y, w, h, surfaces.SearcherPane(w, h-y))
	}
	if y < h && !state.NoHint {
		y = r.drawPane(y, w, h, surfaces.GuidePane(w, h-y))
	}
	if y < h {
		y = r.drawStatus(state, y, w)
	}

	viewerHeight := h - y
	if viewerHeight <= 0 {
		return 0
	}
	rows := state.Rows
	if state.ScrollOffset < len(rows) {
		rows = rows[state.ScrollOffset:]
	} else {
		rows = nil
	}
	if len(rows) == 0 && state.EvalStatus == statepkg.EvalDone {
		r.drawTextLine(0, y, w, "(no output)", tcell.StyleDefault.Foreground(r.theme.MutedFg))
		return viewerHeight
	}
	r.drawPane(y, w, h, pane.Pane{Lines: rows})
	return viewerHeight
}

// drawActivity right-aligns the spinner and index progress on the first row.
func (r *Renderer) drawActivity(state *statepkg.AppState, w int) {
	if !state.Busy() {
		return
	}
	frame := statepkg.SpinnerFrames[state.SpinnerFrame%len(statepkg.SpinnerFrames)]
	text := frame
	if state.IndexStatus == statepkg.IndexLoading {
		text = fmt.Sprintf("%s indexing %d", frame, state.IndexedPaths)
	}
	x := w - textutil.DisplayWidth(text)
	if x < 0 {
		return
	}
	r.drawTextLine(x, 0, w-x, text, tcell.StyleDefault.Foreground(r.theme.SpinnerFg))
}

// drawStatus shows the evaluation error or the latest notice, if any.
func (r *Renderer) drawStatus(state *statepkg.AppState, y, w int) int {
	switch {
	case state.EvalStatus == statepkg.EvalFailed && state.EvalError != nil:
		r.drawTextLine(0, y, w, textutil.SanitizeTerminalText(state.EvalError.Error()),
			tcell.StyleDefault.Foreground(r.theme.ErrorFg))
		return y + 1
	case state.Notice.Text != "":
		fg := r.theme.NoticeFg
		if state.Notice.Failed {
			fg = r.theme.ErrorFg
		}
		r.drawTextLine(0, y, w, textutil.SanitizeTerminalText(state.Notice.Text), tcell.StyleDefault.Foreground(fg))
		return y + 1
	}
	return y
}
