package app

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/config"
	"github.com/kk-code-lab/jnv/internal/editor"
	"github.com/kk-code-lab/jnv/internal/query"
	statepkg "github.com/kk-code-lab/jnv/internal/state"
	"github.com/kk-code-lab/jnv/internal/suggest"
	"github.com/kk-code-lab/jnv/internal/textbuf"
	inputui "github.com/kk-code-lab/jnv/internal/ui/input"
	renderui "github.com/kk-code-lab/jnv/internal/ui/render"
)

// evalDebounce is how long the query must stay unchanged before it runs.
const evalDebounce = 300 * time.Millisecond

// Config is everything needed to start a session.
type Config struct {
	Inputs  []any
	Options config.Options
	File    config.File
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	state    *statepkg.AppState
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action

	editor   *editor.Editor
	index    *suggest.Index
	engine   *query.Engine
	pathSize int

	ctx        context.Context
	cancel     context.CancelFunc
	evalCancel context.CancelFunc
	evalSeq    uint64
	debounce   *time.Timer
	delay      time.Duration

	clipboardCmd   []string
	clipboardAvail bool

	shouldQuit bool
	err        error
}

// NewApplication opens the terminal and prepares a session over cfg.Inputs.
func NewApplication(cfg Config) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	app, err := newApplication(screen, cfg)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	app.clipboardCmd, app.clipboardAvail = detectClipboard()
	return app, nil
}

func newApplication(screen tcell.Screen, cfg Config) (*Application, error) {
	keys, err := cfg.File.KeySet()
	if err != nil {
		return nil, err
	}

	index := suggest.NewIndex()
	listOpts := suggest.DefaultOptions()
	listOpts.ListLines = cfg.Options.SuggestionListLength
	searcher := suggest.NewSearcher(index, listOpts)

	buffer := textbuf.NewState(cfg.Options.Mode())
	buffer.WordBreakChars = cfg.File.WordBreakChars()
	focus, defocus := cfg.File.Themes()
	ed := editor.New(buffer, searcher, focus, defocus, keys.Editor)
	ed.Focus()

	w, h := screen.Size()
	state := &statepkg.AppState{
		ScreenWidth:  w,
		ScreenHeight: h,
		NoHint:       cfg.Options.NoHint,
		IndexStatus:  statepkg.IndexLoading,
	}

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(keys.App)
	inputHandler.SetState(state)

	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		screen:   screen,
		state:    state,
		reducer:  statepkg.NewStateReducer(cfg.Options.Formatter()),
		renderer: renderui.NewRenderer(screen),
		input:    inputHandler,
		actionCh: actionCh,
		editor:   ed,
		index:    index,
		engine:   query.NewEngine(cfg.Inputs),
		pathSize: query.DefaultPathBatchSize,
		ctx:      ctx,
		cancel:   cancel,
		delay:    evalDebounce,
	}, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.cancel()
	app.screen.Fini()
	return nil
}
