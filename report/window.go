package report

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Window is the inclusive [start, end] calendar date range a report covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow parses the YYYY-MM-DD date pair a report request carries.
func ParseWindow(startDate, endDate string) (Window, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return Window{}, fmt.Errorf("invalid start_date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return Window{}, fmt.Errorf("invalid end_date %q: %w", endDate, err)
	}
	return Window{Start: start, End: end}, nil
}

func (w Window) StartDate() string { return w.Start.Format(dateLayout) }

func (w Window) EndDate() string { return w.End.Format(dateLayout) }

// SingleDay reports whether the window covers exactly one calendar date.
func (w Window) SingleDay() bool { return w.Start.Equal(w.End) }

// Contains reports whether t's local calendar date falls inside the window.
func (w Window) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return !day.Before(w.Start) && !day.After(w.End)
}

// Dates enumerates the window's calendar dates in ascending order.
func (w Window) Dates() []string {
	var dates []string
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}
