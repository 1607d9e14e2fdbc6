// Package textbuf provides the single-line text buffer behind the query editor.
package textbuf

// Mode selects how typed characters are applied.
type Mode int

const (
	Insert Mode = iota
	Overwrite
)

func (m Mode) String() string {
	if m == Overwrite {
		return "overwrite"
	}
	return "insert"
}

// WordBreakChars is the set of runes that delimit words for nearest-word
// motions and erasures.
type WordBreakChars map[rune]struct{}

// DefaultWordBreakChars returns the separators used by jq filters.
func DefaultWordBreakChars() WordBreakChars {
	return NewWordBreakChars(".|()[] ")
}

// NewWordBreakChars builds a set from every rune in chars.
func NewWordBreakChars(chars string) WordBreakChars {
	set := make(WordBreakChars, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether r is a word break.
func (w WordBreakChars) Has(r rune) bool {
	_, ok := w[r]
	return ok
}

// Editor is a rune-based single-line buffer with a cursor. The cursor ranges
// over [0, Len()]; Len() is the tail position after the last rune.
type Editor struct {
	text   []rune
	cursor int
}

// New creates an editor holding text with the cursor at the tail.
func New(text string) *Editor {
	e := &Editor{}
	e.Replace(text)
	return e
}

// TextWithoutCursor returns the buffer content.
func (e *Editor) TextWithoutCursor() string {
	return string(e.text)
}

// Position returns the cursor index in runes.
func (e *Editor) Position() int {
	return e.cursor
}

// Len returns the number of runes in the buffer.
func (e *Editor) Len() int {
	return len(e.text)
}

// Runes returns a copy of the buffer content.
func (e *Editor) Runes() []rune {
	out := make([]rune, len(e.text))
	copy(out, e.text)
	return out
}

// Replace swaps the whole content and moves the cursor to the tail.
func (e *Editor) Replace(text string) {
	e.text = []rune(text)
	e.cursor = len(e.text)
}

// Insert adds ch at the cursor and advances past it.
func (e *Editor) Insert(ch rune) {
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = ch
	e.cursor++
}

// Overwrite replaces the rune under the cursor with ch and advances. At the
// tail it appends.
func (e *Editor) Overwrite(ch rune) {
	if e.cursor >= len(e.text) {
		e.Insert(ch)
		return
	}
	e.text[e.cursor] = ch
	e.cursor++
}

// Backward moves the cursor one rune left.
func (e *Editor) Backward() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	return true
}

// Forward moves the cursor one rune right.
func (e *Editor) Forward() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.cursor++
	return true
}

// MoveToHead moves the cursor to the first rune.
func (e *Editor) MoveToHead() {
	e.cursor = 0
}

// MoveToTail moves the cursor past the last rune.
func (e *Editor) MoveToTail() {
	e.cursor = len(e.text)
}

// Erase removes the rune before the cursor.
func (e *Editor) Erase() bool {
	if e.cursor == 0 {
		return false
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
	return true
}

// EraseAll clears the buffer.
func (e *Editor) EraseAll() {
	e.text = e.text[:0]
	e.cursor = 0
}

// MoveToPreviousNearest moves the cursor left to the start of the previous
// word, where words are delimited by breaks.
func (e *Editor) MoveToPreviousNearest(breaks WordBreakChars) {
	e.cursor = e.previousNearest(breaks)
}

// MoveToNextNearest moves the cursor right to the next word break.
func (e *Editor) MoveToNextNearest(breaks WordBreakChars) {
	e.cursor = e.nextNearest(breaks)
}

// EraseToPreviousNearest deletes from the previous word start to the cursor.
func (e *Editor) EraseToPreviousNearest(breaks WordBreakChars) {
	target := e.previousNearest(breaks)
	e.text = append(e.text[:target], e.text[e.cursor:]...)
	e.cursor = target
}

// EraseToNextNearest deletes from the cursor to the next word break.
func (e *Editor) EraseToNextNearest(breaks WordBreakChars) {
	target := e.nextNearest(breaks)
	e.text = append(e.text[:e.cursor], e.text[target:]...)
}

func (e *Editor) previousNearest(breaks WordBreakChars) int {
	i := e.cursor
	for i > 0 && breaks.Has(e.text[i-1]) {
		i--
	}
	for i > 0 && !breaks.Has(e.text[i-1]) {
		i--
	}
	return i
}

func (e *Editor) nextNearest(breaks WordBreakChars) int {
	i := e.cursor
	for i < len(e.text) && breaks.Has(e.text[i]) {
		i++
	}
	for i < len(e.text) && !breaks.Has(e.text[i]) {
		i++
	}
	return i
}
