package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is matched by every MissingColumnError.
	ErrMissingColumn = errors.New("missing column")
	// ErrEmptyVocabulary means no term survived tokenization and stop word
	// filtering.
	ErrEmptyVocabulary = errors.New("empty vocabulary")
	// ErrNotFitted is returned when a vectorizer is used before Fit.
	ErrNotFitted = errors.New("vectorizer not fitted")
	// ErrUnsupportedFormat is returned for unknown table file formats.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// MissingColumnError reports a required column absent from a table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }

// ParseError reports a cell that could not be interpreted. Row is 1-based
// and counts the header row.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %q: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
