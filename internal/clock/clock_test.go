package clock

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"2023-05-23", Date{2023, time.May, 23}, false},
		{"2023-5-3", Date{2023, time.May, 3}, false},
		{" 2024-02-29 ", Date{2024, time.February, 29}, false},
		{"2023-02-29", Date{}, true},
		{"2023-13-01", Date{}, true},
		{"2023-00-10", Date{}, true},
		{"2023-05", Date{}, true},
		{"2023-05-23-1", Date{}, true},
		{"-5-01-01", Date{}, true},
		{"abcd-01-01", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	d := Date{Year: 987, Month: time.January, Day: 5}
	if got := d.String(); got != "0987-01-05" {
		t.Errorf("String: got %q, want 0987-01-05", got)
	}
	if back := mustDate(t, d.String()); back != d {
		t.Errorf("round trip: got %v, want %v", back, d)
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2023-05-23", "2023-05-23", 0},
		{"2023-05-23", "2023-05-25", 2},
		{"2023-05-25", "2023-05-23", -2},
		{"2023-12-31", "2024-01-01", 1},
		{"2024-02-28", "2024-03-01", 2},
		{"1600-01-01", "2400-01-01", 292194},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			got := mustDate(t, tt.from).DaysUntil(mustDate(t, tt.to))
			if got != tt.want {
				t.Errorf("DaysUntil: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProviders(t *testing.T) {
	fixed := Fixed(Date{2023, time.May, 23})
	if got := fixed.Today(); got != (Date{2023, time.May, 23}) {
		t.Errorf("Fixed.Today: got %v", got)
	}

	before := DateOf(time.Now().UTC())
	got := System{}.Today()
	after := DateOf(time.Now().UTC())
	if got != before && got != after {
		t.Errorf("System.Today: got %v, want %v or %v", got, before, after)
	}
}
