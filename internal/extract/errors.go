package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStructuredData means the text contained no opening bracket of the requested kind.
	ErrNoStructuredData = errors.New("no structured data found")
	// ErrMalformedStructuredData means a bracketed span was found but did not parse.
	ErrMalformedStructuredData = errors.New("malformed structured data")

	errUnterminated = errors.New("unterminated value")
	errWrongKind    = errors.New("unexpected value kind")
)

// Error carries the failure kind together with a diagnostic fragment of the input.
type Error struct {
	Kind     error
	Fragment string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %v: %v (in: %s)", e.Kind, e.Err, e.Fragment)
	}
	return fmt.Sprintf("extract: %v in: %s", e.Kind, e.Fragment)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFound(text string) error {
	return &Error{Kind: ErrNoStructuredData, Fragment: prefix(text)}
}

func malformed(fragment string, err error) error {
	return &Error{Kind: ErrMalformedStructuredData, Fragment: prefix(fragment), Err: err}
}

// prefix cuts s to excerptLen runes.
func prefix(s string) string {
	r := []rune(s)
	if len(r) <= excerptLen {
		return s
	}
	return string(r[:excerptLen])
}
