package feeder

import "time"

// NextOccurrence computes the first instant strictly after ref at which a
// weekly schedule on the given weekday and time-of-day fires, in ref's
// location. A same-day time that is not strictly after ref's time-of-day is
// pushed a full week rather than firing in the past; the result is therefore
// always in the future and at most seven days away.
func NextOccurrence(day time.Weekday, at TimeOfDay, ref time.Time) time.Time {
	daysUntil := (int(day) - int(ref.Weekday()) + 7) % 7
	if daysUntil == 0 {
		refTod := TimeOfDay{Hour: ref.Hour(), Minute: ref.Minute()}
		if !at.After(refTod) {
			daysUntil = 7
		}
	}

	d := ref.AddDate(0, 0, daysUntil)
	return time.Date(d.Year(), d.Month(), d.Day(), at.Hour, at.Minute, 0, 0, ref.Location())
}
