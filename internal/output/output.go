package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	verboseMode bool
	stdout      io.Writer = os.Stdout
	stderr      io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose output.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

// SetWriters redirects the standard and diagnostic streams.
// A nil writer leaves the corresponding stream unchanged.
func SetWriters(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// Reset restores the process streams and disables verbose mode.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	stdout = os.Stdout
	stderr = os.Stderr
	verboseMode = false
}

// Success prints a completed-operation message in green.
//
// Example:
//
//	output.Success("Generated user_handler.go")
func Success(msg string) {
	write(false, successStyle.Render(msg))
}

// Error prints a failure message with ❌ in red on the diagnostic stream.
func Error(msg string) {
	write(true, errorStyle.Render("❌ "+msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	write(false, infoStyle.Render(msg))
}

// Step prints an indented gray sub-item.
func Step(msg string) {
	write(false, stepStyle.Render("   "+msg))
}

// Verbose prints a debug message with 🔍 only if verbose mode is enabled.
//
// Example:
//
//	output.Verbose("Rendering templates/handler.go.tmpl")
func Verbose(msg string) {
	if !IsVerbose() {
		return
	}
	write(true, stepStyle.Render("🔍 "+msg))
}

func write(diag bool, line string) {
	mu.Lock()
	w := stdout
	if diag {
		w = stderr
	}
	mu.Unlock()
	fmt.Fprintln(w, line)
}
