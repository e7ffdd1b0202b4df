package refresh

import "time"

// WindowStats counts postings in one observation window.
type WindowStats struct {
	Label string
	Total int
	AI    int
}

// Share is the AI share of the window in percent, 0 for an empty window.
func (w WindowStats) Share() float64 {
	if w.Total == 0 {
		return 0
	}
	return float64(w.AI) / float64(w.Total) * 100.0
}

// monthWindow returns the inclusive start and exclusive end of the month
// containing d.
func monthWindow(d time.Time) (time.Time, time.Time) {
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// firstOfMonth truncates d to the first day of its month.
func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthLabel formats a window start the way the charts label it.
func monthLabel(start time.Time) string {
	return start.Format("Jan 2006")
}

// fmtAPIDate formats a date as MM-DD-YYYY, the Historic JOA parameter
// format.
func fmtAPIDate(d time.Time) string {
	return d.Format("01-02-2006")
}
