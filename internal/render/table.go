package render

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/nibzard/tasklist/internal/clock"
	"github.com/nibzard/tasklist/internal/task"
)

// EmptyMessage is printed instead of a table when there are no tasks.
const EmptyMessage = "No tasks have been input"

// DescriptionWidth is the width of the Task column.
const DescriptionWidth = 44

type alignment int

const (
	alignLeft alignment = iota
	alignRight
	alignCenter
)

// column describes one table column. width excludes the margins.
type column struct {
	name  string
	width int
	// margin adds one space on each side of the cell.
	margin bool
	align  alignment
	// The header label is aligned within headerSpan, then left-aligned
	// within width. A zero headerSpan means width.
	headerSpan  int
	headerAlign alignment
}

var columns = []column{
	{name: "N", width: 2, margin: true, align: alignLeft, headerAlign: alignLeft},
	{name: "Date", width: 10, margin: true, align: alignLeft, headerAlign: alignCenter},
	{name: "Time", width: 5, margin: true, align: alignLeft, headerAlign: alignLeft},
	{name: "P", width: 1, margin: true, align: alignLeft, headerAlign: alignLeft},
	{name: "D", width: 1, margin: true, align: alignLeft, headerAlign: alignLeft},
	{name: "Task", width: DescriptionWidth, align: alignLeft, headerSpan: 23, headerAlign: alignRight},
}

// Table renders tasks as a bordered fixed-width report.
type Table struct {
	Marks Marks
}

// Render writes the report for tasks to w. Urgency is computed against today.
func (t Table) Render(w io.Writer, tasks []task.Task, today clock.Date) error {
	_, err := io.WriteString(w, t.Format(tasks, today))
	return err
}

// Format returns the report for tasks, one line per row, each ending in a
// newline.
func (t Table) Format(tasks []task.Task, today clock.Date) string {
	var b strings.Builder
	if len(tasks) == 0 {
		b.WriteString(EmptyMessage)
		b.WriteByte('\n')
		return b.String()
	}

	border := borderRow()
	writeLine(&b, border)
	writeLine(&b, headerRow())
	for i, tk := range tasks {
		writeLine(&b, border)
		first := []string{
			fmt.Sprint(i + 1),
			tk.DueAt.Date.String(),
			tk.DueAt.Clock(),
			t.Marks.Priority(tk.Priority),
			t.Marks.Urgency(Classify(tk.DueAt.Date, today)),
		}
		blank := make([]string, len(first))
		for j, chunk := range Reflow(tk.Description, DescriptionWidth) {
			cells := blank
			if j == 0 {
				cells = first
			}
			writeLine(&b, formatRow(append(slices.Clone(cells), chunk)))
		}
	}
	writeLine(&b, border)
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteByte('\n')
}

func borderRow() string {
	var b strings.Builder
	b.WriteByte('+')
	for _, c := range columns {
		b.WriteString(strings.Repeat("-", c.outerWidth()))
		b.WriteByte('+')
	}
	return b.String()
}

func headerRow() string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		span := c.headerSpan
		if span == 0 {
			span = c.width
		}
		cells[i] = pad(c.name, span, c.headerAlign)
	}
	return formatRow(cells)
}

// formatRow lays out one cell per column. Cells wider than their column
// are not truncated.
func formatRow(cells []string) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, c := range columns {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if c.margin {
			b.WriteByte(' ')
		}
		b.WriteString(pad(cell, c.width, c.align))
		if c.margin {
			b.WriteByte(' ')
		}
		b.WriteByte('|')
	}
	return b.String()
}

func (c column) outerWidth() int {
	if c.margin {
		return c.width + 2
	}
	return c.width
}

// pad aligns s within width characters. Escape sequences take no space.
func pad(s string, width int, align alignment) string {
	gap := width - utf8.RuneCountInString(ansi.Strip(s))
	if gap <= 0 {
		return s
	}
	switch align {
	case alignRight:
		return strings.Repeat(" ", gap) + s
	case alignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
