package engine

import "time"

// DaysInMonth returns the number of days in a given month.
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// MonthsBetween returns the number of whole calendar months elapsed from
// start to end, floored. A partial month does not count: Jan 15 to Feb 14
// is 0 months, Jan 15 to Feb 15 is 1. Returns 0 when end precedes start.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// AddMonths advances a date by whole calendar months, clamping the day to
// the length of the target month so Jan 31 plus one month lands on the
// last day of February rather than spilling into March.
func AddMonths(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) + months
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}

	day := t.Day()
	if max := DaysInMonth(year, month); day > max {
		day = max
	}

	return time.Date(year, time.Month(month), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// WholeDaysBetween returns the number of full 24-hour days elapsed from
// start to end, floored. Negative when end precedes start.
func WholeDaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
