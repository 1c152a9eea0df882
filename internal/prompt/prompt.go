// Package prompt reads validated answers from an interactive console.
//
// Every Read method prints its question, reads one line and repeats until
// the answer is valid. When input ends before a valid answer is read the
// method returns ErrClosed. When the context passed to a Read method is
// cancelled while it waits for input, the method returns the context's
// error.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/cancelreader"

	"github.com/nibzard/tasklist/internal/clock"
	"github.com/nibzard/tasklist/internal/task"
)

// ErrClosed is returned when the input ends.
var ErrClosed = errors.New("input closed")

// Action is a command of the interactive loop.
type Action string

const (
	ActionAdd    Action = "add"
	ActionPrint  Action = "print"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionEnd    Action = "end"
)

// Actions lists the accepted actions in prompt order.
var Actions = []Action{ActionAdd, ActionPrint, ActionEdit, ActionDelete, ActionEnd}

// Field is an editable part of a task.
type Field string

const (
	FieldPriority Field = "priority"
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldTask     Field = "task"
)

// Fields lists the editable fields in prompt order.
var Fields = []Field{FieldPriority, FieldDate, FieldTime, FieldTask}

const (
	msgAction      = "Input an action (add, print, edit, delete, end):"
	msgBadAction   = "The input action is invalid"
	msgPriority    = "Input the task priority (C, H, N, L):"
	msgDate        = "Input the date (yyyy-mm-dd):"
	msgBadDate     = "The input date is invalid"
	msgTime        = "Input the time (hh:mm):"
	msgBadTime     = "The input time is invalid"
	msgDescription = "Input a new task (enter a blank line to end):"
	msgBadNumber   = "Invalid task number"
	msgField       = "Input a field to edit (priority, date, time, task):"
	msgBadField    = "Invalid field"
)

// clockPattern accepts H:M with an optional leading digit on each part.
var clockPattern = regexp.MustCompile(`^(([0-1]?[0-9])|(2[0-3])):[0-5]?[0-9]$`)

// Prompter asks questions on out and reads answers from in.
//
// Lines are read by a background goroutine so that a pending question can
// be abandoned when its context is cancelled. Call Close when done.
type Prompter struct {
	in     *bufio.Reader
	cancel cancelreader.CancelReader // nil unless in is a pollable file
	out    io.Writer

	start sync.Once
	lines chan string
	err   error // final read error, set before lines is closed

	stop     sync.Once
	stopping chan struct{}
}

// New returns a Prompter reading from in and writing to out.
// Terminal and pipe input passed as an *os.File is read through a
// cancelable reader so that Close also unblocks the pending read.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{out: out, stopping: make(chan struct{})}
	if f, ok := in.(*os.File); ok {
		if cr, err := cancelreader.NewReader(f); err == nil {
			p.cancel = cr
			in = cr
		}
	}
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	p.in = br
	return p
}

// Close stops the background reader. Reads after Close return ErrClosed.
func (p *Prompter) Close() error {
	p.stop.Do(func() {
		close(p.stopping)
		if p.cancel != nil {
			p.cancel.Cancel()
		}
	})
	return nil
}

// Say prints a line of output.
func (p *Prompter) Say(line string) {
	fmt.Fprintln(p.out, line)
}

// Writer returns the output stream, for callers printing tables.
func (p *Prompter) Writer() io.Writer {
	return p.out
}

// ReadAction asks for the next action.
func (p *Prompter) ReadAction(ctx context.Context) (Action, error) {
	for {
		p.Say(msgAction)
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		for _, a := range Actions {
			if line == string(a) {
				return a, nil
			}
		}
		p.Say(msgBadAction)
	}
}

// ReadPriority asks for a priority code. Invalid codes repeat the question
// without a message.
func (p *Prompter) ReadPriority(ctx context.Context) (task.Priority, error) {
	for {
		p.Say(msgPriority)
		line, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if prio, perr := task.ParsePriority(line); perr == nil {
			return prio, nil
		}
	}
}

// ReadDate asks for a calendar date.
func (p *Prompter) ReadDate(ctx context.Context) (clock.Date, error) {
	for {
		p.Say(msgDate)
		line, err := p.readLine(ctx)
		if err != nil {
			return clock.Date{}, err
		}
		if d, derr := clock.ParseDate(line); derr == nil {
			return d, nil
		}
		p.Say(msgBadDate)
	}
}

// ReadTime asks for a time of day and returns the hour and minute.
func (p *Prompter) ReadTime(ctx context.Context) (hour, minute int, err error) {
	for {
		p.Say(msgTime)
		line, err := p.readLine(ctx)
		if err != nil {
			return 0, 0, err
		}
		if clockPattern.MatchString(line) {
			h, m, _ := strings.Cut(line, ":")
			hour, _ = strconv.Atoi(h)
			minute, _ = strconv.Atoi(m)
			return hour, minute, nil
		}
		p.Say(msgBadTime)
	}
}

// ReadDescription reads trimmed lines until a blank one and joins them
// with "\n". The result is empty when the first line is blank.
func (p *Prompter) ReadDescription(ctx context.Context) (string, error) {
	p.Say(msgDescription)
	var lines []string
	for {
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}

// ReadTaskNumber asks for a number between 1 and n and returns its 0-based
// index.
func (p *Prompter) ReadTaskNumber(ctx context.Context, n int) (int, error) {
	for {
		p.Say(fmt.Sprintf("Input the task number (1-%d):", n))
		line, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}
		num, nerr := strconv.Atoi(line)
		if nerr == nil && num >= 1 && num <= n {
			return num - 1, nil
		}
		p.Say(msgBadNumber)
	}
}

// ReadField asks which field of a task to edit.
func (p *Prompter) ReadField(ctx context.Context) (Field, error) {
	for {
		p.Say(msgField)
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		for _, f := range Fields {
			if line == string(f) {
				return f, nil
			}
		}
		p.Say(msgBadField)
	}
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned before ErrClosed. It returns ctx.Err()
// if ctx is done before a line arrives.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.start.Do(func() {
		p.lines = make(chan string)
		go p.scan()
	})

	select {
	case text, ok := <-p.lines:
		if !ok {
			return "", p.err
		}
		return text, nil
	case <-p.stopping:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// scan feeds lines to readLine until the input ends or Close is called.
func (p *Prompter) scan() {
	defer close(p.lines)
	if p.cancel != nil {
		defer p.cancel.Close()
	}
	for {
		text, err := p.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || text == "") {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, cancelreader.ErrCanceled):
				p.err = ErrClosed
			default:
				p.err = fmt.Errorf("read input: %w", err)
			}
			return
		}
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")

		select {
		case p.lines <- text:
		case <-p.stopping:
			p.err = ErrClosed
			return
		}
		if err != nil {
			// Final line without a newline.
			p.err = ErrClosed
			return
		}
	}
}
