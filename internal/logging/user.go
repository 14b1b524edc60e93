package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// User-facing output functions with status prefixes.
// Commands pass their own output writer so the messages can be captured,
// separate from the structured debug logging.

// UserInfo prints an info message to w.
func UserInfo(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to w.
func UserSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to w.
func UserWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "⚠ "+format+"\n", args...)
}

var (
	errorHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	errorBodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ErrorPrinter writes error messages for the top-level error handler.
// The first line is the headline; following lines are explanation or a
// stack trace.
type ErrorPrinter struct {
	w io.Writer
}

// NewErrorPrinter returns an ErrorPrinter writing to w, or stderr if w is nil.
func NewErrorPrinter(w io.Writer) *ErrorPrinter {
	if w == nil {
		w = os.Stderr
	}
	return &ErrorPrinter{w: w}
}

// Print writes message prefixed with the error indicator.
func (p *ErrorPrinter) Print(message string) {
	lines := strings.Split(message, "\n")

	fmt.Fprintln(p.w, errorHeadStyle.Render("✗ "+lines[0]))
	// Styled one line at a time; lipgloss pads multi-line blocks to equal width.
	for _, line := range lines[1:] {
		fmt.Fprintln(p.w, errorBodyStyle.Render(line))
	}
}
