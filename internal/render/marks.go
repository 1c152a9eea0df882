package render

import "github.com/nibzard/tasklist/internal/task"

const (
	ansiRed    = "\u001B[101m \u001B[0m"
	ansiYellow = "\u001B[103m \u001B[0m"
	ansiGreen  = "\u001B[102m \u001B[0m"
	ansiBlue   = "\u001B[104m \u001B[0m"
)

// Marks maps priorities and urgency bands to the one-cell marks shown in
// the P and D columns.
type Marks struct {
	priority [task.Low + 1]string
	urgency  [Overdue + 1]string
}

// ANSIMarks draws colored background blocks for terminals.
var ANSIMarks = Marks{
	priority: [task.Low + 1]string{
		task.Critical: ansiRed,
		task.High:     ansiYellow,
		task.Normal:   ansiGreen,
		task.Low:      ansiBlue,
	},
	urgency: [Overdue + 1]string{
		None:     " ",
		InFuture: ansiGreen,
		Today:    ansiYellow,
		Overdue:  ansiRed,
	},
}

// PlainMarks uses letters, for output that is not a terminal.
var PlainMarks = Marks{
	priority: [task.Low + 1]string{
		task.Critical: "C",
		task.High:     "H",
		task.Normal:   "N",
		task.Low:      "L",
	},
	urgency: [Overdue + 1]string{
		None:     " ",
		InFuture: "F",
		Today:    "T",
		Overdue:  "O",
	},
}

// Priority returns the mark for p, or a blank cell for an invalid priority.
func (m Marks) Priority(p task.Priority) string {
	if !p.Valid() || m.priority[p] == "" {
		return " "
	}
	return m.priority[p]
}

// Urgency returns the mark for u.
func (m Marks) Urgency(u Urgency) string {
	if u < None || u > Overdue || m.urgency[u] == "" {
		return " "
	}
	return m.urgency[u]
}
