package app

import (
	"errors"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/config"
	"github.com/kk-code-lab/jnv/internal/editor"
	"github.com/kk-code-lab/jnv/internal/keymap"
	statepkg "github.com/kk-code-lab/jnv/internal/state"
)

func newTestScreen(t *testing.T) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	screen.SetSize(60, 20)
	t.Cleanup(func() {
		screen.Fini()
	})
	return screen
}

func newTestApplication(t *testing.T, inputs ...any) *Application {
	t.Helper()
	app, err := newApplication(newTestScreen(t), Config{
		Inputs:  inputs,
		Options: config.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("newApplication returned error: %v", err)
	}
	app.delay = time.Hour
	t.Cleanup(app.stopWork)
	return app
}

func sampleDocument() map[string]any {
	return map[string]any{
		"name":  "jnv",
		"items": []any{1.0, 2.0},
	}
}

func typeQuery(t *testing.T, app *Application, text string) {
	t.Helper()
	for _, r := range text {
		app.handleAction(statepkg.EditorKeyAction{Key: keymap.Rune(r, tcell.ModNone)})
	}
}

func pressKey(t *testing.T, app *Application, spec string) {
	t.Helper()
	app.handleAction(statepkg.EditorKeyAction{Key: keymap.MustParse(spec)})
}

// waitForAction pulls actions off the channel until one of type T shows up.
func waitForAction[T statepkg.Action](t *testing.T, app *Application) T {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case action := <-app.actionCh:
			if match, ok := action.(T); ok {
				return match
			}
			app.handleAction(action)
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func TestInitialEvaluationShowsInput(t *testing.T) {
	app := newTestApplication(t, sampleDocument())

	app.startEval(app.editor.Text())
	result := waitForAction[statepkg.EvalResultAction](t, app)
	app.handleAction(result)

	if app.state.EvalStatus != statepkg.EvalDone {
		t.Fatalf("expected finished evaluation, got %v (%v)", app.state.EvalStatus, app.state.EvalError)
	}
	if len(app.state.Rows) == 0 || app.state.Rows[0][0].Text != "{" {
		t.Fatal("expected the whole document to be rendered")
	}
}

func TestEditingRunsLatestQueryOnly(t *testing.T) {
	app := newTestApplication(t, sampleDocument())

	typeQuery(t, app, ".name")
	if app.editor.Text() != ".name" {
		t.Fatalf("unexpected editor text %q", app.editor.Text())
	}

	if app.handleAction(statepkg.EvalRequestAction{Query: ".nam"}) {
		t.Fatal("a request for an outdated query must be ignored")
	}
	if app.state.EvalStatus == statepkg.EvalRunning {
		t.Fatal("no evaluation should have started")
	}

	app.handleAction(statepkg.EvalRequestAction{Query: ".name"})
	result := waitForAction[statepkg.EvalResultAction](t, app)
	app.handleAction(result)

	if app.state.Query != ".name" || len(app.state.Rows) != 1 || app.state.Rows[0][0].Text != `"jnv"` {
		t.Fatalf("unexpected result for .name: %+v", app.state.Rows)
	}
}

func TestFailedQueryKeepsPreviousRows(t *testing.T) {
	app := newTestApplication(t, sampleDocument())
	app.startEval("")
	app.handleAction(waitForAction[statepkg.EvalResultAction](t, app))
	rows := len(app.state.Rows)

	typeQuery(t, app, ".name[")
	app.handleAction(statepkg.EvalRequestAction{Query: ".name["})
	app.handleAction(waitForAction[statepkg.EvalResultAction](t, app))

	if app.state.EvalStatus != statepkg.EvalFailed || app.state.EvalError == nil {
		t.Fatalf("expected failure, got %v", app.state.EvalStatus)
	}
	if len(app.state.Rows) != rows {
		t.Fatal("previous rows should stay visible")
	}
}

func TestCompletionUsesBackgroundIndex(t *testing.T) {
	app := newTestApplication(t, sampleDocument())

	app.buildIndex(app.ctx)
	done := waitForAction[statepkg.IndexDoneAction](t, app)
	app.handleAction(done)
	if app.state.IndexStatus != statepkg.IndexReady {
		t.Fatalf("expected ready index, got %v", app.state.IndexStatus)
	}

	typeQuery(t, app, ".i")
	pressKey(t, app, "tab")

	if got := app.editor.Text(); got != ".items" {
		t.Fatalf("expected completion to .items, got %q", got)
	}
	if app.editor.Mode() != editor.ModeSearch {
		t.Fatal("expected search navigation after completion")
	}
	if guide := app.editor.Guide().Text; guide != "Loaded all (3) suggestions" {
		t.Fatalf("unexpected guide %q", guide)
	}

	pressKey(t, app, "tab")
	if got := app.editor.Text(); got != ".items[0]" {
		t.Fatalf("expected next candidate, got %q", got)
	}
}

func TestProviderFailureEndsSession(t *testing.T) {
	app := newTestApplication(t, sampleDocument())
	app.index.Add([]string{".a"})

	pressKey(t, app, "tab")
	if app.editor.Mode() != editor.ModeSearch {
		t.Fatal("expected search navigation")
	}

	app.index.Finish(errors.New("walker crashed"))
	pressKey(t, app, "tab")

	if !app.shouldQuit || app.err == nil || !strings.Contains(app.err.Error(), "walker crashed") {
		t.Fatalf("expected fatal provider error, got quit=%v err=%v", app.shouldQuit, app.err)
	}
}

func TestSwitchFocusDefocusesEditor(t *testing.T) {
	app := newTestApplication(t, sampleDocument())

	app.handleAction(statepkg.SwitchFocusAction{})
	if app.state.Focus != statepkg.FocusViewer {
		t.Fatal("expected viewer focus")
	}
	if got := app.editor.EditorPane(40, 1).Text(0); !strings.HasPrefix(got, "▼ ") {
		t.Fatalf("expected unfocused prefix, got %q", got)
	}

	app.handleAction(statepkg.SwitchFocusAction{})
	if got := app.editor.EditorPane(40, 1).Text(0); !strings.HasPrefix(got, "❯❯ ") {
		t.Fatalf("expected focused prefix, got %q", got)
	}
}

func TestQuitAction(t *testing.T) {
	app := newTestApplication(t)

	app.handleAction(statepkg.QuitAction{})

	if !app.shouldQuit {
		t.Fatal("expected quit")
	}
}

func TestKeyEventsApplyWhileActionQueueIsFull(t *testing.T) {
	app := newTestApplication(t, sampleDocument())
	for i := 0; i < cap(app.actionCh); i++ {
		app.actionCh <- statepkg.IndexProgressAction{Count: i}
	}

	done := make(chan struct{})
	go func() {
		app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', 0))
		app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handleEvent blocked on the full action queue")
	}
	if app.editor.Text() != "x" {
		t.Fatalf("expected key to reach the editor, got %q", app.editor.Text())
	}
	if !app.shouldQuit {
		t.Fatal("expected exit key to quit")
	}
	if len(app.actionCh) != cap(app.actionCh) {
		t.Fatal("queued background actions should be left for the loop")
	}
}

func TestRenderUsesViewerHeight(t *testing.T) {
	app := newTestApplication(t, sampleDocument())

	app.render()

	if app.state.ViewerHeight <= 0 || app.state.ViewerHeight >= 20 {
		t.Fatalf("unexpected viewer height %d", app.state.ViewerHeight)
	}
}

func TestCopyQuerySuccess(t *testing.T) {
	app := newTestApplication(t)
	app.clipboardAvail = true
	app.clipboardCmd = []string{"fake-clip"}
	typeQuery(t, app, ".a")

	var recorded []string
	withFakeCommandBuilder(t, 0, &recorded, func() {
		app.handleAction(statepkg.CopyQueryAction{})
	})

	if app.state.Notice.Failed || app.state.Notice.Text != "Copied query to clipboard" {
		t.Fatalf("unexpected notice %+v", app.state.Notice)
	}
	assertCommandRecorded(t, recorded, []string{"fake-clip"})
}

func TestCopyResultFailureMentionsCommand(t *testing.T) {
	app := newTestApplication(t)
	app.clipboardAvail = true
	app.clipboardCmd = []string{"fake-clip", "--flag"}
	app.state.Results = []any{1.0}

	var recorded []string
	withFakeCommandBuilder(t, 7, &recorded, func() {
		app.handleAction(statepkg.CopyResultAction{})
	})

	if !app.state.Notice.Failed || !strings.Contains(app.state.Notice.Text, "fake-clip") {
		t.Fatalf("expected failure notice naming the command, got %+v", app.state.Notice)
	}
	assertCommandRecorded(t, recorded, []string{"fake-clip", "--flag"})
}

func TestCopyWithoutClipboard(t *testing.T) {
	app := newTestApplication(t)

	app.handleAction(statepkg.CopyQueryAction{})

	if !app.state.Notice.Failed {
		t.Fatal("expected failure notice without a clipboard command")
	}

	typeQuery(t, app, "x")
	if app.state.Notice.Text != "" {
		t.Fatal("the next key should clear the notice")
	}
}

func TestDetectClipboardPrefersPbcopyOnUnix(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		if cmd == "pbcopy" {
			return "/usr/bin/pbcopy", nil
		}
		return "", errors.New("not found")
	}
	args, ok := detectClipboardInternal("darwin", lookPath)
	if !ok {
		t.Fatalf("expected clipboard command")
	}
	expected := []string{"/usr/bin/pbcopy"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectClipboardXclipUsesClipboardSelection(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		if cmd == "xclip" {
			return "/usr/bin/xclip", nil
		}
		return "", errors.New("not found")
	}
	args, ok := detectClipboardInternal("linux", lookPath)
	if !ok {
		t.Fatalf("expected clipboard command")
	}
	expected := []string{"/usr/bin/xclip", "-selection", "clipboard"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectClipboardPrefersClipOnWindows(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		if cmd == "clip.exe" {
			return `C:\Windows\System32\clip.exe`, nil
		}
		return "", errors.New("not found")
	}
	args, ok := detectClipboardInternal("windows", lookPath)
	if !ok {
		t.Fatalf("expected clipboard command")
	}
	expected := []string{`C:\Windows\System32\clip.exe`}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectClipboardFallsBackToPowershell(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		if cmd == "powershell" {
			return `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, nil
		}
		return "", errors.New("not found")
	}
	args, ok := detectClipboardInternal("windows", lookPath)
	if !ok {
		t.Fatalf("expected clipboard command")
	}
	expected := []string{`C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectClipboardNothingFound(t *testing.T) {
	lookPath := func(string) (string, error) { return "", errors.New("not found") }
	if _, ok := detectClipboardInternal("linux", lookPath); ok {
		t.Fatal("expected no clipboard command")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, err := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	if err != nil {
		code = 1
	}
	os.Exit(code)
}

func withFakeCommandBuilder(t *testing.T, exitCode int, recorded *[]string, fn func()) {
	t.Helper()
	orig := commandBuilder
	commandBuilder = func(name string, args ...string) *exec.Cmd {
		if recorded != nil {
			*recorded = append([]string{name}, args...)
		}
		return helperProcessCommand(exitCode, name, args...)
	}
	defer func() {
		commandBuilder = orig
	}()
	fn()
}

func helperProcessCommand(exitCode int, name string, args ...string) *exec.Cmd {
	cmdArgs := []string{"-test.run=TestHelperProcess", "--", name}
	cmdArgs = append(cmdArgs, args...)
	cmd := exec.Command(os.Args[0], cmdArgs...)
	cmd.Env = append(os.Environ(),
		"GO_WANT_HELPER_PROCESS=1",
		"HELPER_PROCESS_EXIT="+strconv.Itoa(exitCode),
	)
	return cmd
}

func assertCommandRecorded(t *testing.T, recorded, want []string) {
	t.Helper()
	if len(recorded) != len(want) {
		t.Fatalf("expected command %v, got %v", want, recorded)
	}
	for i := range want {
		if recorded[i] != want[i] {
			t.Fatalf("expected command %v, got %v", want, recorded)
		}
	}
}
