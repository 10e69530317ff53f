package ingestion

import "time"

// Weekdays returns every Monday-to-Friday date in [start, end], oldest first.
// Both bounds are truncated to UTC calendar dates. Exchange holidays are not
// modeled; the result matches a plain business-day frequency.
func Weekdays(start, end time.Time) []time.Time {
	from, to := truncateToDate(start), truncateToDate(end)
	if to.Before(from) {
		return nil
	}

	out := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) {
			out = append(out, d)
		}
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
