package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("10") // Green
	colorWarning = lipgloss.Color("11") // Yellow
	colorError   = lipgloss.Color("9")  // Red
	colorMuted   = lipgloss.Color("8")  // Gray
	colorPrimary = lipgloss.Color("12") // Blue
)

var (
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

// Success renders text in the success style when TTY mode is active.
func Success(s string) string { return render(successStyle, s) }

// Warning renders text in the warning style.
func Warning(s string) string { return render(warningStyle, s) }

// Error renders text in the error style.
func Error(s string) string { return render(errorStyle, s) }

// Muted renders de-emphasized text.
func Muted(s string) string { return render(mutedStyle, s) }

// Header renders a section header.
func Header(s string) string { return render(headerStyle, s) }

func render(style lipgloss.Style, s string) string {
	if !Default().IsTTY() {
		return s
	}
	return style.Render(s)
}

// Printf writes formatted output to the configured writer.
func Printf(format string, args ...any) {
	fmt.Fprintf(Default().Writer, format, args...)
}

// Println writes a line to the configured writer.
func Println(args ...any) {
	fmt.Fprintln(Default().Writer, args...)
}
