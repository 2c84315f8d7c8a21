package schedule

import "time"

// Range is the month-aligned visible span of a chart. End is exclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

// ComputeRange returns the span from the first of the month holding the
// earliest start to the first of the month after the latest reach. Only
// drawable records contribute.
func ComputeRange(records []Record) (Range, error) {
	var earliest, latest time.Time
	found := false
	for _, r := range records {
		if !r.Drawable() {
			continue
		}
		reach := r.Reach()
		if !found {
			earliest, latest = r.Start, reach
			found = true
			continue
		}
		if r.Start.Before(earliest) {
			earliest = r.Start
		}
		if reach.After(latest) {
			latest = reach
		}
	}
	if !found {
		return Range{}, ErrNoDatedRecords
	}
	return Range{
		Start: MonthStart(earliest),
		End:   MonthStart(latest).AddDate(0, 1, 0),
	}, nil
}

// Days is the length of the range in days.
func (r Range) Days() float64 { return DaysBetween(r.Start, r.End) }

// Contains reports whether t lies strictly inside the range.
func (r Range) Contains(t time.Time) bool {
	return t.After(r.Start) && t.Before(r.End)
}

// MonthStart truncates t to midnight UTC on the first of its month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DayStart truncates t to midnight UTC of its calendar day.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
