package schedule

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a schedule row.
type Kind string

const (
	KindActivity  Kind = "Activity"
	KindMilestone Kind = "Milestone"
	KindOther     Kind = "Other"
)

// Cell is a single host table value. Supported dynamic types are nil,
// string, bool and the Go numeric types.
type Cell any

// Columns names the header cells the normalizer looks for. Matching is
// exact and case-sensitive.
type Columns struct {
	Type  string
	Start string
	End   string
	Title string
}

// DefaultColumns returns the header names used by the host add-in.
func DefaultColumns() Columns {
	return Columns{
		Type:  "Type",
		Start: "Start date",
		End:   "End date",
		Title: "Title",
	}
}

// Record is one normalized schedule row. Start and End are zero when the
// source cell was empty or unreadable.
type Record struct {
	Kind  Kind
	Title string
	Start time.Time
	End   time.Time
	Row   int
}

func (r Record) HasStart() bool { return !r.Start.IsZero() }
func (r Record) HasEnd() bool   { return !r.End.IsZero() }

// Drawable reports whether the record produces a bar or diamond: activities
// need both dates, milestones only a start.
func (r Record) Drawable() bool {
	switch r.Kind {
	case KindActivity:
		return r.HasStart() && r.HasEnd()
	case KindMilestone:
		return r.HasStart()
	default:
		return false
	}
}

// Reach is the latest instant the record occupies on the time axis: the
// later of its end date and one day past its start.
func (r Record) Reach() time.Time {
	reach := r.Start.AddDate(0, 0, 1)
	if r.HasEnd() && r.End.After(reach) {
		reach = r.End
	}
	return reach
}

// Normalize turns a header row and body rows into records, one per body
// row, in source order. Unreadable date cells are reported in the returned
// warnings and leave the date absent.
func Normalize(header []string, rows [][]Cell, cols Columns) ([]Record, []error, error) {
	index, err := locateColumns(header, cols)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	var warnings []error
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec := Record{
			Kind:  kindOf(cellText(cellAt(row, index.Type))),
			Title: cellText(cellAt(row, index.Title)),
			Row:   i,
		}
		var w error
		if rec.Start, w = cellDate(row, index.Start, i, cols.Start); w != nil {
			warnings = append(warnings, w)
		}
		if rec.End, w = cellDate(row, index.End, i, cols.End); w != nil {
			warnings = append(warnings, w)
		}
		records = append(records, rec)
	}
	return records, warnings, nil
}

type columnIndex struct {
	Type, Start, End, Title int
}

func locateColumns(header []string, cols Columns) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	var missing []string
	find := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	idx := columnIndex{
		Type:  find(cols.Type),
		Start: find(cols.Start),
		End:   find(cols.End),
		Title: find(cols.Title),
	}
	if len(missing) > 0 {
		return columnIndex{}, &MissingColumnError{Columns: missing, Header: header}
	}
	return idx, nil
}

func kindOf(s string) Kind {
	switch s {
	case string(KindActivity):
		return KindActivity
	case string(KindMilestone):
		return KindMilestone
	default:
		return KindOther
	}
}

// blank marks a cell past the end of a short row.
const blank = ""

func cellAt(row []Cell, i int) Cell {
	if i < 0 || i >= len(row) {
		return blank
	}
	return row[i]
}

func cellDate(row []Cell, i, rowIndex int, column string) (time.Time, error) {
	c := cellAt(row, i)
	if s, ok := c.(string); ok && strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	serial, ok := cellSerial(c)
	if !ok {
		return time.Time{}, &InvalidDateError{Row: rowIndex, Column: column, Value: c}
	}
	t := ToDate(serial)
	if t.IsZero() {
		return t, &InvalidDateError{Row: rowIndex, Column: column, Value: c}
	}
	return t, nil
}

// cellSerial reads a date cell. A nil cell counts as serial 0; text goes
// through ParseDateText.
func cellSerial(c Cell) (float64, bool) {
	switch v := c.(type) {
	case nil:
		return 0, true
	case string:
		f, ok := ParseDateText(v)
		return f, ok && !math.IsNaN(f)
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), !math.IsNaN(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

func cellText(c Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		if f, ok := cellSerial(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return ""
	}
}
