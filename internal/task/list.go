package task

import (
	"errors"
	"fmt"
)

// ErrNoSuchTask is returned for an index outside the list.
var ErrNoSuchTask = errors.New("no such task")

// Store is the ordered task collection used by the interactive session.
// Indices are 0-based.
type Store interface {
	Len() int
	Tasks() []Task
	Get(i int) (Task, error)
	Add(t Task) error
	Update(i int, updater func(*Task)) error
	Delete(i int) error
}

var _ Store = (*List)(nil)

// List is the ordered task collection.
// Tasks are stored by value; Tasks exposes them for read-only use.
type List struct {
	tasks []Task
}

// NewList returns a list holding tasks in order.
func NewList(tasks ...Task) *List {
	l := &List{}
	l.tasks = append(l.tasks, tasks...)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// IsEmpty reports whether the list has no tasks.
func (l *List) IsEmpty() bool {
	return len(l.tasks) == 0
}

// Tasks returns the tasks in order. Callers must not modify the slice.
func (l *List) Tasks() []Task {
	return l.tasks
}

// Get returns the task at index i (0-based).
func (l *List) Get(i int) (Task, error) {
	if i < 0 || i >= len(l.tasks) {
		return Task{}, fmt.Errorf("get task %d: %w", i+1, ErrNoSuchTask)
	}
	return l.tasks[i], nil
}

// Add appends a task after checking it.
func (l *List) Add(t Task) error {
	if err := t.Check(); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	l.tasks = append(l.tasks, t)
	return nil
}

// Update changes the task at index i in place.
// The change is discarded when the updated task fails Check.
func (l *List) Update(i int, updater func(*Task)) error {
	if i < 0 || i >= len(l.tasks) {
		return fmt.Errorf("update task %d: %w", i+1, ErrNoSuchTask)
	}
	updated := l.tasks[i]
	updater(&updated)
	if err := updated.Check(); err != nil {
		return fmt.Errorf("update task %d: %w", i+1, err)
	}
	l.tasks[i] = updated
	return nil
}

// Delete removes the task at index i.
func (l *List) Delete(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return fmt.Errorf("delete task %d: %w", i+1, ErrNoSuchTask)
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return nil
}
