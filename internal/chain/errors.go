package chain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoTableFound   = errors.New("option chain table not found")
	ErrHeaderMismatch = errors.New("option chain header mismatch")
	ErrMalformedCell  = errors.New("malformed cell value")
	ErrOutOfBounds    = errors.New("strike width out of bounds")
)

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	KindNoTableFound ParseErrorKind = iota
	KindHeaderMismatch
	KindMalformedCell
)

func (k ParseErrorKind) String() string {
	switch k {
	case KindNoTableFound:
		return "no_table_found"
	case KindHeaderMismatch:
		return "header_mismatch"
	case KindMalformedCell:
		return "malformed_cell_value"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

func (k ParseErrorKind) sentinel() error {
	switch k {
	case KindNoTableFound:
		return ErrNoTableFound
	case KindHeaderMismatch:
		return ErrHeaderMismatch
	default:
		return ErrMalformedCell
	}
}

// ParseError reports that a chain page no longer matches the layout the
// parser understands. Kinds no_table_found and header_mismatch mean the page
// structure changed; malformed_cell_value means a data cell was not numeric.
type ParseError struct {
	Kind ParseErrorKind

	// Header mismatch details.
	Expected []string
	Actual   []string

	// Malformed cell details. Row is the zero-based index within the table.
	Row    int
	Column int
	Value  string

	Err error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("parsing option chain: ")
	sb.WriteString(e.Kind.String())

	switch e.Kind {
	case KindHeaderMismatch:
		sb.WriteString(fmt.Sprintf("\nexpected headers:\n%q\nbut got:\n%q", e.Expected, e.Actual))
	case KindMalformedCell:
		sb.WriteString(fmt.Sprintf(" (row %d, column %d, value %q)", e.Row, e.Column, e.Value))
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind, so callers can write
// errors.Is(err, chain.ErrHeaderMismatch).
func (e *ParseError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// RangeError reports a strike width outside [Min, Max].
type RangeError struct {
	Width int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("strike width %d out of bounds [%d, %d]", e.Width, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfBounds
}
