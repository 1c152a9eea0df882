package render

import "github.com/nibzard/tasklist/internal/clock"

// Urgency is the due band of a task relative to today.
type Urgency int

const (
	// None is the zero value; Classify never returns it.
	None Urgency = iota
	InFuture
	Today
	Overdue
)

var urgencyNames = [...]string{
	None:     "none",
	InFuture: "in future",
	Today:    "today",
	Overdue:  "overdue",
}

func (u Urgency) String() string {
	if u < None || u > Overdue {
		return "unknown"
	}
	return urgencyNames[u]
}

// Classify returns the urgency of a task due on due when the current date
// is today.
func Classify(due, today clock.Date) Urgency {
	switch delta := today.DaysUntil(due); {
	case delta == 0:
		return Today
	case delta > 0:
		return InFuture
	default:
		return Overdue
	}
}
