package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/jnv/internal/textutil"
	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru >= 0 && ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

// drawTextLine draws text from startX, attaching zero-width runes to the
// preceding cell, and returns the column after the last drawn cell.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := r.cachedRuneWidth(mainc)
		if w <= 0 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 && runes[i] != 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

// drawLine draws the segments of one pane row, sanitizing each one.
func (r *Renderer) drawLine(y, width int, line pane.Line) {
	x := 0
	for _, seg := range line {
		if x >= width {
			return
		}
		x = r.drawTextLine(x, y, width-x, textutil.SanitizeTerminalText(seg.Text), seg.Style)
	}
}

// drawPane draws p from row y and returns the row after it.
func (r *Renderer) drawPane(y, width, maxY int, p pane.Pane) int {
	for _, line := range p.Lines {
		if y >= maxY {
			break
		}
		r.drawLine(y, width, line)
		y++
	}
	return y
}
