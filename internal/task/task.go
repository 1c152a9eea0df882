package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/tasklist/internal/clock"
)

// Priority is the urgency the user assigned to a task.
type Priority int

const (
	Critical Priority = iota + 1
	High
	Normal
	Low
)

// Priorities lists every priority in display order.
var Priorities = []Priority{Critical, High, Normal, Low}

var priorityCodes = [...]string{
	Critical: "C",
	High:     "H",
	Normal:   "N",
	Low:      "L",
}

var priorityNames = [...]string{
	Critical: "Critical",
	High:     "High",
	Normal:   "Normal",
	Low:      "Low",
}

// ParsePriority parses a one-letter priority code, ignoring case.
func ParsePriority(s string) (Priority, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for _, p := range Priorities {
		if priorityCodes[p] == code {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid priority %q, must be one of: C, H, N, L", s)
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	return p >= Critical && p <= Low
}

// Code returns the one-letter code used on input and in the task file.
func (p Priority) Code() string {
	if !p.Valid() {
		return ""
	}
	return priorityCodes[p]
}

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("marshal priority: invalid value %d", int(p))
	}
	return []byte(p.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// DueAt is the date and time of day a task is due.
// Its text form is YYYY-MM-DDTHH:MM.
type DueAt struct {
	Date   clock.Date
	Hour   int
	Minute int
}

// NewDueAt returns a DueAt after checking the time of day.
func NewDueAt(date clock.Date, hour, minute int) (DueAt, error) {
	if hour < 0 || hour > 23 {
		return DueAt{}, fmt.Errorf("hour %d out of range 0-23", hour)
	}
	if minute < 0 || minute > 59 {
		return DueAt{}, fmt.Errorf("minute %d out of range 0-59", minute)
	}
	return DueAt{Date: date, Hour: hour, Minute: minute}, nil
}

// ParseDueAt parses the text form written by DueAt.String.
func ParseDueAt(s string) (DueAt, error) {
	datePart, timePart, ok := strings.Cut(s, "T")
	if !ok {
		return DueAt{}, fmt.Errorf("parse due %q: missing T separator", s)
	}
	date, err := clock.ParseDate(datePart)
	if err != nil {
		return DueAt{}, fmt.Errorf("parse due %q: %w", s, err)
	}
	if !isClockText(timePart) {
		return DueAt{}, fmt.Errorf("parse due %q: time must be HH:MM", s)
	}
	hour, herr := strconv.Atoi(timePart[:2])
	minute, merr := strconv.Atoi(timePart[3:])
	if err := errors.Join(herr, merr); err != nil {
		return DueAt{}, fmt.Errorf("parse due %q: %w", s, err)
	}
	due, err := NewDueAt(date, hour, minute)
	if err != nil {
		return DueAt{}, fmt.Errorf("parse due %q: %w", s, err)
	}
	return due, nil
}

func isClockText(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i != 2 && (s[i] < '0' || s[i] > '9') {
			return false
		}
	}
	return true
}

func (d DueAt) String() string {
	return d.Date.String() + "T" + d.Clock()
}

// Clock returns the time of day as HH:MM.
func (d DueAt) Clock() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// WithDate returns a copy of d on another date, keeping the time of day.
func (d DueAt) WithDate(date clock.Date) DueAt {
	d.Date = date
	return d
}

// WithClock returns a copy of d at another time of day, keeping the date.
func (d DueAt) WithClock(hour, minute int) (DueAt, error) {
	return NewDueAt(d.Date, hour, minute)
}

// MarshalText implements encoding.TextMarshaler.
func (d DueAt) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DueAt) UnmarshalText(b []byte) error {
	parsed, err := ParseDueAt(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task is a single entry of the task list.
// JSON field names match the files written by earlier versions of the tool.
type Task struct {
	Description string   `json:"task"`
	Priority    Priority `json:"priority"`
	DueAt       DueAt    `json:"dataTime"`
}

// ErrBlankDescription is returned when a task has no description text.
var ErrBlankDescription = errors.New("the task is blank")

// New builds a task from its parts and checks it.
func New(description string, priority Priority, due DueAt) (Task, error) {
	t := Task{Description: description, Priority: priority, DueAt: due}
	if err := t.Check(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Check reports the first problem with t, or nil.
func (t *Task) Check() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrBlankDescription
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("invalid priority %d", int(t.Priority))
	}
	if t.DueAt.Date.IsZero() {
		return fmt.Errorf("missing due date")
	}
	return nil
}
