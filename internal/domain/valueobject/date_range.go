package valueobject

import "time"

// endOfDayNanos is 23:59:59.999, the inclusive end of a calendar day.
const endOfDayNanos = int(999 * time.Millisecond)

// DateRange is an inclusive time window handed to repositories.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartOfDay returns 00:00:00.000 of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of the day containing t, in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, endOfDayNanos, t.Location())
}

// NewDayRange spans from the start of from's day to the end of to's day.
func NewDayRange(from, to time.Time) DateRange {
	return DateRange{Start: StartOfDay(from), End: EndOfDay(to)}
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
