package docgen

import (
	"fmt"
	"time"
)

// StatuteDate returns the statutory filing deadline: the accident date
// plus the configured number of years. A February 29 accident in a
// non-leap target year clamps to February 28 rather than rolling into
// March, which would silently extend the deadline.
func StatuteDate(accident time.Time, years int) time.Time {
	y := accident.Year() + years
	m := accident.Month()
	d := accident.Day()
	if m == time.February && d == 29 && !isLeapYear(y) {
		d = 28
	}
	return time.Date(y, m, d, 0, 0, 0, 0, accident.Location())
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// FormatLongDate renders a date as "March 5, 2024", without a leading
// zero on the day.
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", t.Month(), t.Day(), t.Year())
}

// ParseISODate parses a YYYY-MM-DD string.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
