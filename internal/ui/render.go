package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a Unicode progress bar with a done/total suffix.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// Panel draws a framed box around lines using the current theme.
func Panel(w io.Writer, lines []string) {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(current.Border.GetForeground()).
		Padding(0, 1)
	fmt.Fprintln(w, border.Render(strings.Join(lines, "\n")))
}

// OK prints a success line.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.SymDone+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render("✖ "+msg))
}
