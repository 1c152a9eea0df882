// Package session runs the interactive add, print, edit and delete loop
// over a task file.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/clock"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/prompt"
	"github.com/nibzard/tasklist/internal/render"
	"github.com/nibzard/tasklist/internal/task"
)

const (
	msgBlank   = "The task is blank"
	msgChanged = "The task is changed"
	msgDeleted = "The task is deleted"
	msgExiting = "Tasklist exiting!"
)

// Options configures a Session.
type Options struct {
	// Path is the task file. It is read by New and written when Run ends.
	Path string

	In  io.Reader
	Out io.Writer

	// Table renders the print, edit and delete listings.
	Table render.Table

	// Dates supplies today for urgency marks. Nil means clock.System{}.
	Dates clock.DateProvider

	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

// Session owns the task list for one interactive run.
type Session struct {
	store  task.Store
	path   string
	prompt *prompt.Prompter
	table  render.Table
	dates  clock.DateProvider
	logger *log.Logger
}

// New loads the task file and prepares a session.
func New(opts Options) (*Session, error) {
	list, err := task.Load(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	s := &Session{
		store:  list,
		path:   opts.Path,
		prompt: prompt.New(opts.In, opts.Out),
		table:  opts.Table,
		dates:  opts.Dates,
		logger: opts.Logger,
	}
	if s.dates == nil {
		s.dates = clock.System{}
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.logger.Debug("loaded tasks", "path", opts.Path, "count", list.Len())
	return s, nil
}

// Store returns the session's task collection.
func (s *Session) Store() task.Store {
	return s.store
}

// Run reads actions until "end", then saves the task file.
// If the input ends first, the tasks are saved and the returned error
// wraps prompt.ErrClosed. If ctx is cancelled, even while a question is
// waiting for input, the tasks are saved and ctx.Err() is returned.
func (s *Session) Run(ctx context.Context) error {
	defer s.prompt.Close()

	for {
		if err := ctx.Err(); err != nil {
			return s.finish(err)
		}

		action, err := s.prompt.ReadAction(ctx)
		if err != nil {
			return s.finish(err)
		}
		s.logger.Debug("action", "name", action)

		switch action {
		case prompt.ActionAdd:
			err = s.add(ctx)
		case prompt.ActionPrint:
			err = s.print()
		case prompt.ActionEdit:
			err = s.edit(ctx)
		case prompt.ActionDelete:
			err = s.delete(ctx)
		case prompt.ActionEnd:
			if err := s.save(); err != nil {
				return err
			}
			s.prompt.Say(msgExiting)
			return nil
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

// finish saves the tasks after the loop was interrupted by cause.
func (s *Session) finish(cause error) error {
	switch {
	case errors.Is(cause, prompt.ErrClosed):
		s.logger.Warn("input closed before end, saving tasks", "path", s.path)
	case errors.Is(cause, context.Canceled), errors.Is(cause, context.DeadlineExceeded):
		s.logger.Warn("interrupted, saving tasks", "path", s.path)
	}
	if err := s.save(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (s *Session) save() error {
	if err := task.NewList(s.store.Tasks()...).Save(s.path); err != nil {
		return err
	}
	s.logger.Info("saved tasks", "path", s.path, "count", s.store.Len())
	return nil
}

func (s *Session) add(ctx context.Context) error {
	priority, err := s.prompt.ReadPriority(ctx)
	if err != nil {
		return err
	}
	date, err := s.prompt.ReadDate(ctx)
	if err != nil {
		return err
	}
	hour, minute, err := s.prompt.ReadTime(ctx)
	if err != nil {
		return err
	}
	description, err := s.prompt.ReadDescription(ctx)
	if err != nil {
		return err
	}

	due, err := task.NewDueAt(date, hour, minute)
	if err != nil {
		return err
	}
	t, err := task.New(description, priority, due)
	if errors.Is(err, task.ErrBlankDescription) {
		s.prompt.Say(msgBlank)
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.store.Add(t); err != nil {
		return err
	}
	s.logger.Debug("added task", "index", s.store.Len(), "priority", priority, "due", due)
	return nil
}

func (s *Session) print() error {
	return s.table.Render(s.prompt.Writer(), s.store.Tasks(), s.dates.Today())
}

// empty prints the table's empty message when there are no tasks.
func (s *Session) empty() bool {
	if s.store.Len() > 0 {
		return false
	}
	s.prompt.Say(render.EmptyMessage)
	return true
}

func (s *Session) edit(ctx context.Context) error {
	if s.empty() {
		return nil
	}
	if err := s.print(); err != nil {
		return err
	}
	index, err := s.prompt.ReadTaskNumber(ctx, s.store.Len())
	if err != nil {
		return err
	}
	field, err := s.prompt.ReadField(ctx)
	if err != nil {
		return err
	}

	var update func(*task.Task)
	switch field {
	case prompt.FieldPriority:
		p, err := s.prompt.ReadPriority(ctx)
		if err != nil {
			return err
		}
		update = func(t *task.Task) { t.Priority = p }
	case prompt.FieldDate:
		d, err := s.prompt.ReadDate(ctx)
		if err != nil {
			return err
		}
		update = func(t *task.Task) { t.DueAt = t.DueAt.WithDate(d) }
	case prompt.FieldTime:
		hour, minute, err := s.prompt.ReadTime(ctx)
		if err != nil {
			return err
		}
		update = func(t *task.Task) {
			if due, err := t.DueAt.WithClock(hour, minute); err == nil {
				t.DueAt = due
			}
		}
	case prompt.FieldTask:
		desc, err := s.prompt.ReadDescription(ctx)
		if err != nil {
			return err
		}
		update = func(t *task.Task) { t.Description = desc }
	}

	if err := s.store.Update(index, update); err != nil {
		if errors.Is(err, task.ErrBlankDescription) {
			s.prompt.Say(msgBlank)
			return nil
		}
		return err
	}
	s.logger.Debug("edited task", "index", index+1, "field", field)
	s.prompt.Say(msgChanged)
	return nil
}

func (s *Session) delete(ctx context.Context) error {
	if s.empty() {
		return nil
	}
	if err := s.print(); err != nil {
		return err
	}
	index, err := s.prompt.ReadTaskNumber(ctx, s.store.Len())
	if err != nil {
		return err
	}
	if err := s.store.Delete(index); err != nil {
		return err
	}
	s.logger.Debug("deleted task", "index", index+1)
	s.prompt.Say(msgDeleted)
	return nil
}
