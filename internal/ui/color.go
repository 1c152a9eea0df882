package ui

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/nibzard/tasklist/internal/render"
)

// Marks picks the table marks for mode ("auto", "always" or "never").
// In auto mode colors are used only when w is a terminal and the
// environment does not disable them (NO_COLOR, CLICOLOR=0).
func Marks(mode string, w io.Writer) render.Marks {
	if ColorEnabled(mode, w) {
		return render.ANSIMarks
	}
	return render.PlainMarks
}

// ColorEnabled reports whether colored marks should be written to w.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return IsTTY(w) && !termenv.EnvNoColor()
	}
}
