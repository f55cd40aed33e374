package services

import (
	"fmt"
	"time"
)

// Period names a history window relative to the current time.
type Period string

const (
	PeriodCurrentWeek Period = "current_week"
	PeriodLastWeek    Period = "last_week"
	PeriodLastMonth   Period = "last_month"
	PeriodLastYear    Period = "last_year"
)

// Periods lists every accepted period value.
var Periods = []Period{PeriodCurrentWeek, PeriodLastWeek, PeriodLastMonth, PeriodLastYear}

// ParsePeriod returns the Period named by s. An empty string yields an empty Period.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return "", nil
	}
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Window returns the inclusive bounds of p as seen at now. Calendar weeks
// start on Monday in now's location.
func (p Period) Window(now time.Time) (from, to time.Time) {
	switch p {
	case PeriodCurrentWeek:
		return startOfWeek(now), now
	case PeriodLastWeek:
		thisMonday := startOfWeek(now)
		return thisMonday.AddDate(0, 0, -7), thisMonday.Add(-time.Nanosecond)
	case PeriodLastMonth:
		return now.Add(-30 * 24 * time.Hour), now
	case PeriodLastYear:
		return now.Add(-365 * 24 * time.Hour), now
	default:
		return time.Time{}, time.Time{}
	}
}

// startOfWeek returns midnight of the most recent Monday, t's own day included.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}
