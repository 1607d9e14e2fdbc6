package editor

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/keymap"
	"github.com/kk-code-lab/jnv/internal/log"
	"github.com/kk-code-lab/jnv/internal/textbuf"
)

// edit handles a keystroke in edit mode. The guide is cleared first; at most
// one rule applies, in the order completion, motion, erasure, literal.
func (e *Editor) edit(ctx context.Context, k keymap.Keystroke) error {
	e.guide.clear()

	buf := e.state.Editor
	breaks := e.state.WordBreakChars

	switch e.resolver.Edit(k) {
	case keymap.ActionCompletion:
		e.complete(ctx)

	case keymap.ActionBackward:
		buf.Backward()
	case keymap.ActionForward:
		buf.Forward()
	case keymap.ActionMoveToHead:
		buf.MoveToHead()
	case keymap.ActionMoveToTail:
		buf.MoveToTail()
	case keymap.ActionMoveToPreviousNearest:
		buf.MoveToPreviousNearest(breaks)
	case keymap.ActionMoveToNextNearest:
		buf.MoveToNextNearest(breaks)

	case keymap.ActionErase:
		buf.Erase()
	case keymap.ActionEraseAll:
		buf.EraseAll()
	case keymap.ActionEraseToPreviousNearest:
		buf.EraseToPreviousNearest(breaks)
	case keymap.ActionEraseToNextNearest:
		buf.EraseToNextNearest(breaks)

	default:
		ch, ok := k.Char()
		if !ok {
			return nil
		}
		switch e.state.EditMode {
		case textbuf.Overwrite:
			buf.Overwrite(ch)
		default:
			buf.Insert(ch)
		}
	}
	return nil
}

// complete looks up the whole buffer, not just the text left of the cursor,
// since the candidate replaces the whole buffer.
func (e *Editor) complete(ctx context.Context) {
	prefix := e.state.Editor.TextWithoutCursor()

	result, err := e.searcher.Start(ctx, prefix)
	if err != nil {
		log.Warn("suggestion lookup failed", "prefix", prefix, "error", err)
		e.guide.set(fmt.Sprintf("Failed to lookup suggestions: %v", err), warningStyle)
		return
	}
	if !result.HasHead {
		e.guide.set(fmt.Sprintf("No suggestion found for '%s'", prefix), warningStyle)
		return
	}

	if result.FullyLoaded {
		e.guide.set(fmt.Sprintf("Loaded all (%d) suggestions", result.Loaded), successStyle)
	} else {
		e.guide.set(fmt.Sprintf("Loaded partially (%d) suggestions", result.Loaded), successStyle)
	}
	e.state.Editor.Replace(result.Head)
	e.switchMode(ModeSearch)
}

// search handles a keystroke while navigating suggestions. The guide is left
// alone so the completion summary stays visible. Any key that is not a
// navigation key ends the session and is then handled as an edit-mode key.
func (e *Editor) search(ctx context.Context, k keymap.Keystroke) error {
	switch {
	case isSearchDown(k):
		if err := e.searcher.Next(ctx); err != nil {
			return err
		}
		e.state.Editor.Replace(e.searcher.Current())

	case e.resolver.IsSearchUp(k):
		e.searcher.Previous()
		e.state.Editor.Replace(e.searcher.Current())

	default:
		e.searcher.Leave()
		e.switchMode(ModeEdit)
		return e.edit(ctx, k)
	}
	return nil
}

func isSearchDown(k keymap.Keystroke) bool {
	if !k.IsPlain() {
		return false
	}
	return k.Code.Key == tcell.KeyTab || k.Code.Key == tcell.KeyDown
}
