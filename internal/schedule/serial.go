package schedule

import (
	"math"
	"time"
)

// serialEpoch is day 0 of the spreadsheet "1900 date system". Starting on
// Dec 30 1899 absorbs the historical Feb 29 1900 bug for every serial after
// March 1900.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const (
	secondsPerDay = 24 * 60 * 60

	// maxSerialDays bounds serials to roughly +/-270,000 years, well inside
	// what time.Time can represent.
	maxSerialDays = 1e8
)

// ToDate converts a spreadsheet day serial into a UTC calendar time.
// The integer part counts days from the epoch, the fractional part carries
// through as time of day. Negative serials are valid and land before the
// epoch. NaN, infinities and serials beyond maxSerialDays return the zero
// time, which the rest of the package treats as an absent date. Serial
// -693593 lands exactly on the zero time (0001-01-01) and is therefore
// absent as well.
func ToDate(serial float64) time.Time {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || math.Abs(serial) > maxSerialDays {
		return time.Time{}
	}
	days := math.Floor(serial)
	frac := serial - days
	t := serialEpoch.AddDate(0, 0, int(days))
	return t.Add(time.Duration(math.Round(frac * secondsPerDay * float64(time.Second))))
}

// FromDate is the inverse of ToDate. It lets sources that carry real dates
// (ISO text in a CSV file, for instance) feed the same pipeline as a host
// spreadsheet.
func FromDate(t time.Time) float64 {
	return DaysBetween(serialEpoch, t)
}

// DaysBetween returns the signed number of days from a to b, including the
// fractional part. It works on Unix seconds rather than time.Duration so that
// spans longer than ~292 years do not saturate.
func DaysBetween(a, b time.Time) float64 {
	secs := float64(b.Unix() - a.Unix())
	nanos := float64(b.Nanosecond() - a.Nanosecond())
	return (secs + nanos/1e9) / secondsPerDay
}
