package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/tasklist/internal/clock"
	"github.com/nibzard/tasklist/internal/task"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestReadAction(t *testing.T) {
	p, out := newPrompter("list\nAdd\nadd\n")
	got, err := p.ReadAction(context.Background())
	if err != nil {
		t.Fatalf("ReadAction: %v", err)
	}
	if got != ActionAdd {
		t.Errorf("ReadAction: got %q, want %q", got, ActionAdd)
	}
	want := strings.Repeat(msgAction+"\n"+msgBadAction+"\n", 2) + msgAction + "\n"
	if out.String() != want {
		t.Errorf("output:\ngot  %q\nwant %q", out.String(), want)
	}
}

func TestReadPriority(t *testing.T) {
	p, out := newPrompter("x\n\nn\n")
	got, err := p.ReadPriority(context.Background())
	if err != nil {
		t.Fatalf("ReadPriority: %v", err)
	}
	if got != task.Normal {
		t.Errorf("ReadPriority: got %v, want Normal", got)
	}
	if want := strings.Repeat(msgPriority+"\n", 3); out.String() != want {
		t.Errorf("invalid priorities must re-ask silently, output %q", out.String())
	}
}

func TestReadDate(t *testing.T) {
	p, out := newPrompter("2023-02-29\n2023-13-01\nsoon\n2023-5-3\n")
	got, err := p.ReadDate(context.Background())
	if err != nil {
		t.Fatalf("ReadDate: %v", err)
	}
	if want := (clock.Date{Year: 2023, Month: time.May, Day: 3}); got != want {
		t.Errorf("ReadDate: got %v, want %v", got, want)
	}
	if n := strings.Count(out.String(), msgBadDate); n != 3 {
		t.Errorf("got %d invalid date messages, want 3", n)
	}
}

func TestReadTime(t *testing.T) {
	tests := []struct {
		input      string
		wantHour   int
		wantMinute int
		wantBad    int
	}{
		{"19:30\n", 19, 30, 0},
		{"7:5\n", 7, 5, 0},
		{"00:00\n", 0, 0, 0},
		{"23:59\n", 23, 59, 0},
		{"24:00\n9:60\n19:3a\n 9:00\n09:05\n", 9, 5, 4},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, out := newPrompter(tt.input)
			h, m, err := p.ReadTime(context.Background())
			if err != nil {
				t.Fatalf("ReadTime: %v", err)
			}
			if h != tt.wantHour || m != tt.wantMinute {
				t.Errorf("ReadTime: got %d:%d, want %d:%d", h, m, tt.wantHour, tt.wantMinute)
			}
			if n := strings.Count(out.String(), msgBadTime); n != tt.wantBad {
				t.Errorf("got %d invalid time messages, want %d", n, tt.wantBad)
			}
		})
	}
}

func TestReadDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "  Watch Season 9  \n\n", "Watch Season 9"},
		{"multiple lines", "one\ntwo\n   \n", "one\ntwo"},
		{"blank", "\n", ""},
		{"windows line endings", "one\r\n\r\n", "one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newPrompter(tt.input)
			got, err := p.ReadDescription(context.Background())
			if err != nil {
				t.Fatalf("ReadDescription: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadDescription: got %q, want %q", got, tt.want)
			}
			if out.String() != msgDescription+"\n" {
				t.Errorf("output: got %q", out.String())
			}
		})
	}
}

func TestReadTaskNumber(t *testing.T) {
	p, out := newPrompter("0\n4\nsecond\n3\n")
	got, err := p.ReadTaskNumber(context.Background(), 3)
	if err != nil {
		t.Fatalf("ReadTaskNumber: %v", err)
	}
	if got != 2 {
		t.Errorf("ReadTaskNumber: got %d, want 2", got)
	}
	if !strings.HasPrefix(out.String(), "Input the task number (1-3):\n") {
		t.Errorf("output: got %q", out.String())
	}
	if n := strings.Count(out.String(), msgBadNumber); n != 3 {
		t.Errorf("got %d invalid number messages, want 3", n)
	}
}

func TestReadField(t *testing.T) {
	p, out := newPrompter("when\ntime\n")
	got, err := p.ReadField(context.Background())
	if err != nil {
		t.Fatalf("ReadField: %v", err)
	}
	if got != FieldTime {
		t.Errorf("ReadField: got %q, want %q", got, FieldTime)
	}
	want := msgField + "\n" + msgBadField + "\n" + msgField + "\n"
	if out.String() != want {
		t.Errorf("output:\ngot  %q\nwant %q", out.String(), want)
	}
}

func TestReadClosed(t *testing.T) {
	calls := map[string]func(*Prompter) error{
		"action":      func(p *Prompter) error { _, err := p.ReadAction(context.Background()); return err },
		"priority":    func(p *Prompter) error { _, err := p.ReadPriority(context.Background()); return err },
		"date":        func(p *Prompter) error { _, err := p.ReadDate(context.Background()); return err },
		"time":        func(p *Prompter) error { _, _, err := p.ReadTime(context.Background()); return err },
		"description": func(p *Prompter) error { _, err := p.ReadDescription(context.Background()); return err },
		"number":      func(p *Prompter) error { _, err := p.ReadTaskNumber(context.Background(), 2); return err },
		"field":       func(p *Prompter) error { _, err := p.ReadField(context.Background()); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			p, _ := newPrompter("bogus")
			if err := call(p); !errors.Is(err, ErrClosed) {
				t.Errorf("got %v, want ErrClosed", err)
			}
		})
	}
}

func TestFinalLineWithoutNewline(t *testing.T) {
	p, _ := newPrompter("end")
	got, err := p.ReadAction(context.Background())
	if err != nil {
		t.Fatalf("ReadAction: %v", err)
	}
	if got != ActionEnd {
		t.Errorf("ReadAction: got %q, want %q", got, ActionEnd)
	}
}

func TestReadCanceledWhileWaiting(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	p := New(in, io.Discard)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.ReadAction(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("ReadAction: got %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("ReadAction returned after %v", elapsed)
	}
}

func TestReadAfterCancelKeepsLines(t *testing.T) {
	in, w := io.Pipe()
	p := New(in, io.Discard)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.ReadAction(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadAction: got %v, want context.Canceled", err)
	}

	go func() {
		io.WriteString(w, "print\n")
		w.Close()
	}()
	got, err := p.ReadAction(context.Background())
	if err != nil {
		t.Fatalf("ReadAction: %v", err)
	}
	if got != ActionPrint {
		t.Errorf("ReadAction: got %q, want %q", got, ActionPrint)
	}
	if _, err := p.ReadAction(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("ReadAction after end: got %v, want ErrClosed", err)
	}
}

func TestReadAfterClose(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	p := New(in, io.Discard)
	p.Close()

	if _, err := p.ReadAction(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("ReadAction after Close: got %v, want ErrClosed", err)
	}
}
