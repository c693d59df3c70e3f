package schedule

import "time"

// dateLayout is the calendar-day granularity used by the backend.
const dateLayout = "2006-01-02"

// Window is the visible grid range, inclusive on both ends, with no time
// component.
type Window struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the Monday..Sunday window containing t.
func WeekOf(t time.Time) Window {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start := day.AddDate(0, 0, -offset)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

// Shift moves the window by the given number of days.
func (w Window) Shift(days int) Window {
	return Window{Start: w.Start.AddDate(0, 0, days), End: w.End.AddDate(0, 0, days)}
}

// StartDate is the inclusive start formatted for the backend.
func (w Window) StartDate() string {
	return w.Start.Format(dateLayout)
}

// EndDate is the inclusive end formatted for the backend.
func (w Window) EndDate() string {
	return w.End.Format(dateLayout)
}
