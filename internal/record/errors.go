package record

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is returned (wrapped in a *FormatError) when a line is not a valid record.
	ErrFormat = errors.New("malformed record")

	// ErrDelimiterInField is returned when a text field contains a comma or a line break.
	ErrDelimiterInField = errors.New("field contains a delimiter")

	// ErrEmptyTitle is returned when a book has no title.
	ErrEmptyTitle = errors.New("title must not be empty")
)

// FormatError describes a line that could not be parsed into a book.
// Line is the 1-based line number in the backing file, or 0 when unknown.
type FormatError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%v at line %d: %s (%q)", ErrFormat, e.Line, msg, e.Text)
	}
	return fmt.Sprintf("%v: %s (%q)", ErrFormat, msg, e.Text)
}

// Unwrap allows errors.Is(err, ErrFormat) as well as matching the cause.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}
