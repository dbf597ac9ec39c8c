package util

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// NormalizeDate is the single date contract for the whole module: it accepts
// an ISO YYYY-MM-DD string or a time.Time and returns the value truncated to
// UTC midnight. Anything else is rejected.
func NormalizeDate(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, fmt.Errorf("zero time is not a valid date")
		}
		return NewDate(t.Year(), int(t.Month()), t.Day()), nil
	case string:
		return ParseDate(t)
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", v)
	}
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// MonthStart truncates a date to the first of its month. Schedule rows are
// keyed by month start.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthKey formats a date as YYYY-MM for keying events by calendar month.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthsBetween returns the number of whole calendar months from a to b,
// negative if b is before a. Day-of-month is ignored.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(dateLayout) == t2.Format(dateLayout)
}
