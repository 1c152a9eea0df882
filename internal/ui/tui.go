// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/tasklist/internal/clock"
	"github.com/nibzard/tasklist/internal/render"
	"github.com/nibzard/tasklist/internal/task"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	interval time.Duration
	dates    clock.DateProvider
	marks    render.Marks
}

// WithInterval sets how often the task file is reloaded.
func WithInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithDates sets the source of today used for due marks.
func WithDates(dates clock.DateProvider) TUIOption {
	return func(c *tuiConfig) {
		c.dates = dates
	}
}

// WithMarks sets the priority and due marks of the table.
func WithMarks(marks render.Marks) TUIOption {
	return func(c *tuiConfig) {
		c.marks = marks
	}
}

// RunTUI shows a read-only view of the task file that refreshes itself.
func RunTUI(ctx context.Context, taskPath string, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(taskPath, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

type tuiModel struct {
	taskPath     string
	table        render.Table
	dates        clock.DateProvider
	tasks        []task.Task
	today        clock.Date
	loadErr      error
	loaded       bool
	tickInterval time.Duration
	filter       render.Urgency // None shows every task
	showHelp     bool
}

type tickMsg time.Time

func newTUIModel(taskPath string, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{
		interval: time.Second,
		dates:    clock.System{},
		marks:    render.ANSIMarks,
	}
	for _, opt := range opts {
		opt(c)
	}
	return &tuiModel{
		taskPath:     taskPath,
		table:        render.Table{Marks: c.marks},
		dates:        c.dates,
		tickInterval: c.interval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.filter = render.Overdue
		case "2":
			m.filter = render.Today
		case "3":
			m.filter = render.InFuture
		case "0":
			m.filter = render.None
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if !m.loaded {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.tasks, m.today)
	if m.filter != render.None {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}
	if visible := m.visible(); len(visible) == 0 && len(m.tasks) > 0 {
		b.WriteString(fmt.Sprintf("No %s tasks\n", m.filter))
	} else {
		b.WriteString(m.table.Format(visible, m.today))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Task file: %s\n\n", m.taskPath))
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	list, err := task.Load(m.taskPath)
	m.today = m.dates.Today()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	m.loaded = true
	m.tasks = list.Tasks()
}

// visible returns the tasks matching the current filter.
func (m *tuiModel) visible() []task.Task {
	if m.filter == render.None {
		return m.tasks
	}
	var out []task.Task
	for _, t := range m.tasks {
		if render.Classify(t.DueAt.Date, m.today) == m.filter {
			out = append(out, t)
		}
	}
	return out
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Tasklist") + "\n\n")
}

func writeOverview(b *strings.Builder, tasks []task.Task, today clock.Date) {
	counts := map[render.Urgency]int{}
	for _, t := range tasks {
		counts[render.Classify(t.DueAt.Date, today)]++
	}
	b.WriteString(headerStyle.Render("Overview") + "\n\n")
	b.WriteString(fmt.Sprintf("  Today: %s  Tasks: %d  Overdue: %d  Due today: %d  Upcoming: %d\n\n",
		today, len(tasks), counts[render.Overdue], counts[render.Today], counts[render.InFuture]))
}

func writeHelp(b *strings.Builder) {
	b.WriteString(headerStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload the task file\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show overdue tasks\n")
	b.WriteString("  2            Show tasks due today\n")
	b.WriteString("  3            Show upcoming tasks\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(footerStyle.Render(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", interval)) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
