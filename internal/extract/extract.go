// README: Locates and parses the JSON value embedded in free-form model output.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Mode selects which kind of top-level value to look for.
type Mode int

const (
	ObjectMode Mode = iota
	ArrayMode
)

func (m Mode) String() string {
	if m == ArrayMode {
		return "array"
	}
	return "object"
}

func (m Mode) opener() byte {
	if m == ArrayMode {
		return '['
	}
	return '{'
}

// excerptLen bounds the diagnostic fragment attached to extraction errors.
const excerptLen = 300

var (
	thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	fenceRe      = regexp.MustCompile("```[A-Za-z0-9_-]*[ \t]*\\r?\\n?")
)

// Extract finds the first balanced JSON value of the given mode inside text and parses it.
// The result is a map[string]any in ObjectMode and a []any in ArrayMode. No schema
// validation happens here; callers read fields with the helpers in fields.go.
func Extract(text string, mode Mode) (any, error) {
	cleaned := Strip(text)

	start := strings.IndexByte(cleaned, mode.opener())
	if start < 0 {
		return nil, notFound(text)
	}

	var (
		firstSpan string
		firstErr  error
	)
	for start >= 0 {
		end, ok := matchBracket(cleaned, start)
		if !ok {
			if firstErr == nil {
				return nil, malformed(cleaned[start:], errUnterminated)
			}
			break
		}

		span := normalize(cleaned[start : end+1])
		var v any
		err := json.Unmarshal([]byte(span), &v)
		if err == nil {
			return v, nil
		}
		if firstErr == nil {
			firstSpan, firstErr = span, err
		}

		next := strings.IndexByte(cleaned[start+1:], mode.opener())
		if next < 0 {
			break
		}
		start += next + 1
	}
	return nil, malformed(firstSpan, firstErr)
}

// Object extracts a JSON object.
func Object(text string) (map[string]any, error) {
	v, err := Extract(text, ObjectMode)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, malformed(text, errWrongKind)
	}
	return m, nil
}

// Array extracts a JSON array.
func Array(text string) ([]any, error) {
	v, err := Extract(text, ArrayMode)
	if err != nil {
		return nil, err
	}
	a, ok := v.([]any)
	if !ok {
		return nil, malformed(text, errWrongKind)
	}
	return a, nil
}

// Strip removes reasoning blocks and markdown code fences from model output.
func Strip(text string) string {
	text = thinkBlockRe.ReplaceAllString(text, "")
	return fenceRe.ReplaceAllString(text, "")
}

// matchBracket returns the index of the bracket closing the one at start.
// Brackets inside string literals are ignored.
func matchBracket(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// normalize turns raw line breaks into spaces and drops commas that directly
// precede a closing bracket. String literals keep their commas.
func normalize(span string) string {
	var b strings.Builder
	b.Grow(len(span))
	inString := false
	escaped := false
	for i := 0; i < len(span); i++ {
		c := span[i]
		if c == '\n' || c == '\r' {
			b.WriteByte(' ')
			continue
		}
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
		}
		if c == ',' && closesNext(span, i+1) {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func closesNext(s string, from int) bool {
	for j := from; j < len(s); j++ {
		switch s[j] {
		case ' ', '\t', '\n', '\r':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}
