package schedule

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var header = []string{"Type", "Title", "Start date", "End date"}

func TestToDate(t *testing.T) {
	cases := []struct {
		serial float64
		want   time.Time
	}{
		{0, date(1899, time.December, 30)},
		{1, date(1899, time.December, 31)},
		{45292, date(2024, time.January, 1)},
		{45296, date(2024, time.January, 5)},
		{45292.5, time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)},
		{-1, date(1899, time.December, 29)},
	}
	for _, tc := range cases {
		assert.True(t, tc.want.Equal(ToDate(tc.serial)), "serial=%v got %v", tc.serial, ToDate(tc.serial))
	}
}

func TestToDate_Unrepresentable(t *testing.T) {
	assert.True(t, ToDate(math.NaN()).IsZero())
	assert.True(t, ToDate(math.Inf(1)).IsZero())
	assert.True(t, ToDate(1e12).IsZero())
}

func TestFromDate_RoundTrip(t *testing.T) {
	d := time.Date(2031, time.July, 14, 6, 0, 0, 0, time.UTC)
	assert.InDelta(t, 48043.25, FromDate(d), 1e-9)
	assert.True(t, d.Equal(ToDate(FromDate(d))))
}

func TestDaysBetween_LongSpan(t *testing.T) {
	a := date(1600, time.January, 1)
	b := date(2400, time.January, 1)
	// 800 Gregorian years hold exactly two 400-year cycles of 146097 days.
	assert.Equal(t, float64(2*146097), DaysBetween(a, b))
	assert.Equal(t, -float64(2*146097), DaysBetween(b, a))
}

func TestNormalize_Kinds(t *testing.T) {
	rows := [][]Cell{
		{"Activity", "Build", 45296.0, 45301.0},
		{"Milestone", "Launch", 45311, ""},
		{"activity", "Lowercase", 45296.0, 45301.0},
		{"Note", "Anything", 45296.0, 45301.0},
	}
	recs, warnings, err := Normalize(header, rows, DefaultColumns())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, recs, 4)

	assert.Equal(t, KindActivity, recs[0].Kind)
	assert.Equal(t, "Build", recs[0].Title)
	assert.True(t, date(2024, time.January, 5).Equal(recs[0].Start))
	assert.True(t, date(2024, time.January, 10).Equal(recs[0].End))

	assert.Equal(t, KindMilestone, recs[1].Kind)
	assert.False(t, recs[1].HasEnd())
	assert.True(t, recs[1].Drawable())

	assert.Equal(t, KindOther, recs[2].Kind, "kind match is case-sensitive")
	assert.Equal(t, KindOther, recs[3].Kind)
	assert.False(t, recs[3].Drawable())

	for i, r := range recs {
		assert.Equal(t, i, r.Row)
	}
}

func TestNormalize_MissingColumns(t *testing.T) {
	_, _, err := Normalize([]string{"type", "Title", "Start date"}, [][]Cell{{"Activity"}}, DefaultColumns())
	var mce *MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []string{"Type", "End date"}, mce.Columns)
	assert.Contains(t, err.Error(), `"End date"`)
}

func TestNormalize_EmptyDataset(t *testing.T) {
	_, _, err := Normalize(header, nil, DefaultColumns())
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}

func TestNormalize_InvalidDateIsRecovered(t *testing.T) {
	rows := [][]Cell{
		{"Activity", "Bad start", "soon", 45301.0},
		{"Activity", "Short row"},
		{"Milestone", "Nil start", nil},
	}
	recs, warnings, err := Normalize(header, rows, DefaultColumns())
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Len(t, warnings, 1)

	var ide *InvalidDateError
	require.ErrorAs(t, warnings[0], &ide)
	assert.Equal(t, 0, ide.Row)
	assert.Equal(t, "Start date", ide.Column)

	assert.False(t, recs[0].HasStart())
	assert.False(t, recs[0].Drawable())
	assert.False(t, recs[1].Drawable(), "missing cells leave dates absent")
	assert.True(t, date(1899, time.December, 30).Equal(recs[2].Start), "nil counts as serial 0")
}

func TestNormalize_DateText(t *testing.T) {
	rows := [][]Cell{
		{"Activity", "Iso", "2024-01-05", "2024-01-10T12:00:00Z"},
		{"Milestone", "Serial text", " 45311 ", ""},
		{"Milestone", "Day first", "25/01/2024", nil},
	}
	recs, warnings, err := Normalize(header, rows, DefaultColumns())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.True(t, date(2024, time.January, 5).Equal(recs[0].Start))
	assert.True(t, time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC).Equal(recs[0].End))
	assert.True(t, date(2024, time.January, 20).Equal(recs[1].Start))
	assert.True(t, date(2024, time.January, 25).Equal(recs[2].Start))
}

func TestParseDateText(t *testing.T) {
	f, ok := ParseDateText("45292.5")
	assert.True(t, ok)
	assert.Equal(t, 45292.5, f)

	f, ok = ParseDateText("01/02/2024")
	assert.True(t, ok)
	assert.Equal(t, 45293.0, f, "month-first layouts win over day-first")

	_, ok = ParseDateText("next week")
	assert.False(t, ok)
	_, ok = ParseDateText("  ")
	assert.False(t, ok)
}

// The zero time marks an absent date, so the one serial that lands on it
// and serials too far out to lay out are both reported and skipped.
func TestNormalize_UnrepresentableSerials(t *testing.T) {
	rows := [][]Cell{
		{"Milestone", "Year one", -693593.0, nil},
		{"Milestone", "Far future", 1e12, nil},
		{"Milestone", "Just before", -693592.0, nil},
	}
	recs, warnings, err := Normalize(header, rows, DefaultColumns())
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.False(t, recs[0].HasStart())
	assert.False(t, recs[1].HasStart())
	assert.True(t, date(1, time.January, 2).Equal(recs[2].Start))
}

func TestNormalize_CustomColumns(t *testing.T) {
	cols := Columns{Type: "Kind", Start: "From", End: "To", Title: "Name"}
	recs, _, err := Normalize([]string{"Name", "Kind", "From", "To"},
		[][]Cell{{"Ship", "Milestone", 45311, nil}}, cols)
	require.NoError(t, err)
	assert.Equal(t, "Ship", recs[0].Title)
	assert.Equal(t, KindMilestone, recs[0].Kind)
}

func TestRecordReach(t *testing.T) {
	m := Record{Kind: KindMilestone, Start: date(2024, time.January, 20)}
	assert.True(t, date(2024, time.January, 21).Equal(m.Reach()))

	a := Record{Kind: KindActivity, Start: date(2024, time.January, 5), End: date(2024, time.January, 10)}
	assert.True(t, date(2024, time.January, 10).Equal(a.Reach()))
}

func TestComputeRange(t *testing.T) {
	recs := []Record{
		{Kind: KindActivity, Start: date(2024, time.January, 5), End: date(2024, time.January, 10)},
		{Kind: KindMilestone, Start: date(2024, time.January, 20), Row: 1},
	}
	r, err := ComputeRange(recs)
	require.NoError(t, err)
	assert.True(t, date(2024, time.January, 1).Equal(r.Start))
	assert.True(t, date(2024, time.February, 1).Equal(r.End))
	assert.Equal(t, 31.0, r.Days())
}

func TestComputeRange_MonthAligned(t *testing.T) {
	cases := []struct {
		name       string
		records    []Record
		start, end time.Time
	}{
		{
			name: "end on first of month rolls over",
			records: []Record{
				{Kind: KindActivity, Start: date(2023, time.November, 15), End: date(2024, time.February, 1)},
			},
			start: date(2023, time.November, 1),
			end:   date(2024, time.March, 1),
		},
		{
			name: "milestone on last day of month",
			records: []Record{
				{Kind: KindMilestone, Start: date(2024, time.March, 31)},
			},
			start: date(2024, time.March, 1),
			end:   date(2024, time.May, 1),
		},
		{
			name: "other and undated records ignored",
			records: []Record{
				{Kind: KindOther, Start: date(2019, time.January, 1), End: date(2030, time.January, 1)},
				{Kind: KindActivity, Start: date(2020, time.January, 1)},
				{Kind: KindMilestone, Start: date(2024, time.June, 3)},
			},
			start: date(2024, time.June, 1),
			end:   date(2024, time.July, 1),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ComputeRange(tc.records)
			require.NoError(t, err)
			assert.Equal(t, 1, r.Start.Day())
			assert.Equal(t, 1, r.End.Day())
			assert.True(t, r.End.After(r.Start))
			assert.True(t, tc.start.Equal(r.Start), "start %v", r.Start)
			assert.True(t, tc.end.Equal(r.End), "end %v", r.End)
		})
	}
}

func TestComputeRange_NoDatedRecords(t *testing.T) {
	_, err := ComputeRange([]Record{{Kind: KindOther, Start: date(2024, time.January, 1)}})
	assert.ErrorIs(t, err, ErrNoDatedRecords)
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: date(2024, time.January, 1), End: date(2024, time.February, 1)}
	assert.False(t, r.Contains(r.Start))
	assert.False(t, r.Contains(r.End))
	assert.True(t, r.Contains(date(2024, time.January, 2)))
}
