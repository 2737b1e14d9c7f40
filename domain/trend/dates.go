package trend

import (
	"strconv"
	"strings"
)

// monthAbbrevs is a fixed English month table. Axis labels and tooltips
// are formatted from the date string's components directly; parsing
// "YYYY-MM-DD" as a time would pin it to midnight UTC and shift the
// displayed day in other timezones.
var monthAbbrevs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// FormatShortDate renders "YYYY-MM-DD" as "Mon D" for axis labels.
// Strings that do not split into three parts with a valid month come
// back unchanged rather than crashing the formatter.
func FormatShortDate(date string) string {
	month, day, _, ok := splitDate(date)
	if !ok {
		return date
	}
	return monthAbbrevs[month-1] + " " + strconv.Itoa(day)
}

// FormatLongDate renders "YYYY-MM-DD" as "Mon D, YYYY" for tooltips.
func FormatLongDate(date string) string {
	month, day, year, ok := splitDate(date)
	if !ok {
		return date
	}
	return monthAbbrevs[month-1] + " " + strconv.Itoa(day) + ", " + strconv.Itoa(year)
}

func splitDate(date string) (month, day, year int, ok bool) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return 0, 0, 0, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, false
	}
	return month, day, year, true
}
