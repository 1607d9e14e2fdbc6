package textutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// QuoteJSON returns s as a double-quoted JSON string literal that jq parses
// back to s. Control runes, DEL and invisible formatting runes are written
// as \uXXXX escapes so the literal stays on one visible line.
func QuoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Encoding a string cannot fail; fall back to escaping by hand.
		return `"` + escapeRunes(strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s), false) + `"`
	}
	return escapeRunes(strings.TrimSuffix(buf.String(), "\n"), false)
}

// SanitizeTerminalText makes text safe to draw on one terminal row. Control
// runes and bidi or zero-width formatting runes become \uXXXX escapes, the
// same form QuoteJSON uses, so they cannot emit escape sequences or reorder
// the row. Line breaks and tabs become spaces.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if needsEscape(r) {
			return escapeRunes(text, true)
		}
	}
	return text
}

func escapeRunes(text string, spaceBreaks bool) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case spaceBreaks && (r == '\t' || r == '\n' || r == '\r'):
			b.WriteByte(' ')
		case needsEscape(r):
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscape(r rune) bool {
	return r < 0x20 || r == 0x7f || unicode.Is(unicode.Cf, r) || r == 0x2028 || r == 0x2029
}
