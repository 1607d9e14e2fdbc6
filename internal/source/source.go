// Package source loads the JSON document stream jnv operates on.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/kk-code-lab/jnv/internal/log"
)

const (
	binarySampleSize             = 4096
	nonPrintableThresholdPercent = 30
)

var (
	// ErrNoInput is returned when the input holds no JSON value at all.
	ErrNoInput = errors.New("input contains no JSON value")
	// ErrBinaryInput is returned for content that does not look like text.
	ErrBinaryInput = errors.New("input looks like binary data")
)

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

// Load reads path (or stdin when path is "" or "-") and decodes every JSON
// value it contains.
func Load(path string, stdin io.Reader) ([]any, error) {
	raw, err := Read(path, stdin)
	if err != nil {
		return nil, err
	}
	values, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	log.Debug("input loaded", "path", displayName(path), "bytes", len(raw), "values", len(values))
	return values, nil
}

// Read returns the raw input bytes.
func Read(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			return nil, fmt.Errorf("read stdin: %w", os.ErrInvalid)
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Decode normalizes content to UTF-8 and decodes the whitespace separated
// stream of JSON values in it. Numbers are kept as json.Number so large
// integers survive untouched.
func Decode(content []byte) ([]any, error) {
	if !isText(content) {
		return nil, ErrBinaryInput
	}
	text := normalizeText(content)

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var values []any
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode JSON value %d: %w", len(values)+1, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, ErrNoInput
	}
	return values, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}

func isText(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	sample := content
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	if detectUnicodeEncoding(sample) != encodingUnknown {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

func normalizeText(content []byte) []byte {
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return content[3:]
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return content
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) []byte {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return content
	}
	return out
}
