package scorecard

import (
	"errors"
	"fmt"
)

var (
	ErrAmbiguousLayout  = errors.New("ambiguous scorecard layout")
	ErrPartialLayout    = errors.New("opponent batting table not determined")
	ErrMalformedRow     = errors.New("malformed scorecard row")
	ErrInvalidStatValue = errors.New("invalid stat value")
)

// RowError reports a single rejected row. The rest of the table is still
// normalized when a RowError is produced.
type RowError struct {
	Table  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s row %d: %v", e.Table, e.Row, e.Err)
	}
	return fmt.Sprintf("%s row %d column %s=%q: %v", e.Table, e.Row, e.Column, e.Value, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}
