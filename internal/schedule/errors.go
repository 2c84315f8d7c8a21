package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDataset is returned when the table has a header but no body rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

// ErrNoDatedRecords is returned by ComputeRange when no activity or
// milestone carries a usable start date.
var ErrNoDatedRecords = errors.New("no activity or milestone has a valid date")

// MissingColumnError reports required header names that were not found.
type MissingColumnError struct {
	Columns []string
	Header  []string
}

func (e *MissingColumnError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("missing required column(s) %s. Available columns: %v",
		strings.Join(quoted, ", "), e.Header)
}

// InvalidDateError describes a date cell that could not be read. It never
// aborts a layout; the record keeps its row and is simply not drawn.
type InvalidDateError struct {
	Row    int
	Column string
	Value  any
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("row %d: column %q: invalid date value %v", e.Row+1, e.Column, e.Value)
}
