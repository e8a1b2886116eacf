package timeutil

import "time"

// DateLayout is the calendar date format used for birth dates and date filters.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders the calendar date of t in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DateOf truncates t to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SubtractYears moves a calendar date back by the given number of years.
// February 29 becomes February 28 when the target year is not a leap year,
// unlike time.AddDate which would roll over into March.
func SubtractYears(t time.Time, years int) time.Time {
	t = DateOf(t)
	y, m, d := t.Date()
	y -= years
	if m == time.February && d == 29 && !isLeap(y) {
		d = 28
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
