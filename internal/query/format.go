package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/textutil"
	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

// Formatter renders JSON values as styled rows.
type Formatter struct {
	Indent int
	// ArrayLimit caps how many elements of each array are shown; zero shows all.
	ArrayLimit int

	BracketStyle tcell.Style
	KeyStyle     tcell.Style
	StringStyle  tcell.Style
	NumberStyle  tcell.Style
	BoolStyle    tcell.Style
	NullStyle    tcell.Style
}

// DefaultFormatter returns the stock JSON colouring.
func DefaultFormatter() Formatter {
	return Formatter{
		Indent:       2,
		ArrayLimit:   50,
		BracketStyle: tcell.StyleDefault.Bold(true),
		KeyStyle:     tcell.StyleDefault.Foreground(tcell.ColorTeal),
		StringStyle:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		NumberStyle:  tcell.StyleDefault,
		BoolStyle:    tcell.StyleDefault,
		NullStyle:    tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// Rows renders every value, one after another.
func (f Formatter) Rows(values []any) []pane.Line {
	var rows []pane.Line
	for _, v := range values {
		rows = f.appendValue(rows, nil, 0, v, false)
	}
	return rows
}

// appendValue writes v starting on a new row whose leading segments are head.
func (f Formatter) appendValue(rows []pane.Line, head pane.Line, depth int, v any, comma bool) []pane.Line {
	switch node := v.(type) {
	case map[string]any:
		if len(node) == 0 {
			return append(rows, f.closeRow(head, depth, "{}", comma))
		}
		rows = append(rows, append(f.indentRow(head, depth), pane.Segment{Text: "{", Style: f.BracketStyle}))
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			keyHead := pane.Line{
				{Text: textutil.QuoteJSON(k), Style: f.KeyStyle},
				{Text: ": "},
			}
			rows = f.appendValue(rows, keyHead, depth+1, node[k], i < len(keys)-1)
		}
		return append(rows, f.closeRow(nil, depth, "}", comma))

	case []any:
		if len(node) == 0 {
			return append(rows, f.closeRow(head, depth, "[]", comma))
		}
		rows = append(rows, append(f.indentRow(head, depth), pane.Segment{Text: "[", Style: f.BracketStyle}))
		shown := len(node)
		if f.ArrayLimit > 0 && shown > f.ArrayLimit {
			shown = f.ArrayLimit
		}
		for i := 0; i < shown; i++ {
			rows = f.appendValue(rows, nil, depth+1, node[i], i < len(node)-1)
		}
		if hidden := len(node) - shown; hidden > 0 {
			rows = append(rows, append(f.indentRow(nil, depth+1), pane.Segment{
				Text:  fmt.Sprintf("… %d more", hidden),
				Style: f.NullStyle,
			}))
		}
		return append(rows, f.closeRow(nil, depth, "]", comma))

	default:
		row := append(f.indentRow(head, depth), f.scalar(v))
		if comma {
			row = append(row, pane.Segment{Text: ","})
		}
		return append(rows, row)
	}
}

func (f Formatter) indentRow(head pane.Line, depth int) pane.Line {
	row := pane.Line{}
	if pad := depth * f.Indent; pad > 0 {
		row = append(row, pane.Segment{Text: strings.Repeat(" ", pad)})
	}
	return append(row, head...)
}

func (f Formatter) closeRow(head pane.Line, depth int, bracket string, comma bool) pane.Line {
	row := append(f.indentRow(head, depth), pane.Segment{Text: bracket, Style: f.BracketStyle})
	if comma {
		row = append(row, pane.Segment{Text: ","})
	}
	return row
}

func (f Formatter) scalar(v any) pane.Segment {
	switch x := v.(type) {
	case nil:
		return pane.Segment{Text: "null", Style: f.NullStyle}
	case bool:
		return pane.Segment{Text: strconv.FormatBool(x), Style: f.BoolStyle}
	case string:
		return pane.Segment{Text: textutil.QuoteJSON(x), Style: f.StringStyle}
	case int:
		return pane.Segment{Text: strconv.Itoa(x), Style: f.NumberStyle}
	case float64:
		return pane.Segment{Text: formatFloat(x), Style: f.NumberStyle}
	case *big.Int:
		return pane.Segment{Text: x.String(), Style: f.NumberStyle}
	case json.Number:
		return pane.Segment{Text: x.String(), Style: f.NumberStyle}
	default:
		return pane.Segment{Text: fmt.Sprint(x), Style: f.NumberStyle}
	}
}

// Plain renders values as indented JSON text, one document per value, with
// no array limit. It is what gets copied to the clipboard.
func (f Formatter) Plain(values []any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", f.Indent))
	for _, v := range values {
		if err := enc.Encode(normalizeForJSON(v)); err != nil {
			return "", fmt.Errorf("encode result: %w", err)
		}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func normalizeForJSON(v any) any {
	switch x := v.(type) {
	case *big.Int:
		return json.Number(x.String())
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = normalizeForJSON(item)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalizeForJSON(item)
		}
		return out
	default:
		return v
	}
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) && f < 1e17 && f > -1e17 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
