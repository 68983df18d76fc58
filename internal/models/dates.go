package models

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// FormatDate renders a date as YYYY-MM-DD
func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DatePathParts returns the 4-digit year and zero-padded month and day used in request paths
func DatePathParts(d civil.Date) (year, month, day string) {
	return fmt.Sprintf("%04d", d.Year), fmt.Sprintf("%02d", int(d.Month)), fmt.Sprintf("%02d", d.Day)
}

// DaysBetween returns every day from start to end, both inclusive.
// Returns an error when end is before start or either date is invalid.
func DaysBetween(start, end civil.Date) ([]civil.Date, error) {
	if !start.IsValid() || !end.IsValid() {
		return nil, fmt.Errorf("invalid date range %s..%s", start, end)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}

	var days []civil.Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days, nil
}
