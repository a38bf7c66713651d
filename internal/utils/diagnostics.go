package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides structured, user-friendly output
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
}

// NewDiagnosticSystem creates a new diagnostic system
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticVerbose,
		output:    os.Stdout,
		errorOut:  os.Stderr,
		indent:    0,
	}
}

// NewQuietDiagnostics creates a diagnostic system that only shows errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// NewVerboseDiagnostics creates a diagnostic system with full output
func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

// SetOutput redirects regular and error output, and turns off colors and
// timestamps so the output is stable
func (d *DiagnosticSystem) SetOutput(out, errOut io.Writer) {
	d.output = out
	d.errorOut = errOut
	d.useColors = false
	d.showTime = false
}

// Level returns the configured output level
func (d *DiagnosticSystem) Level() DiagnosticLevel {
	return d.level
}

// Out returns the writer used for regular output
func (d *DiagnosticSystem) Out() io.Writer {
	return d.output
}

// ErrOut returns the writer used for error output
func (d *DiagnosticSystem) ErrOut() io.Writer {
	return d.errorOut
}

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, "ERROR", color.FgRed, format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.output, "WARN", color.FgYellow, format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "INFO", color.FgBlue, format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "SUCCESS", color.FgGreen, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", color.FgHiBlack, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, "DEBUG", color.FgMagenta, format, args...)
	}
}

// Section creates a prominent section header
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s\n", d.paint(color.FgCyan, title))
	}
}

// Subsection creates a subsection header
func (d *DiagnosticSystem) Subsection(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s:\n", d.paint(color.FgBlue, title))
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		message := fmt.Sprintf(format, args...)
		fmt.Fprintf(d.output, "%s- %s\n", d.getIndent(), message)
	}
}

// PhaseItem outputs a completed step with a checkmark
func (d *DiagnosticSystem) PhaseItem(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		message := fmt.Sprintf(format, args...)
		fmt.Fprintf(d.output, "%s%s %s\n", d.getIndent(), d.paint(color.FgGreen, "✓"), message)
	}
}

// FileWritten outputs a file operation such as "write" or "remove"
func (d *DiagnosticSystem) FileWritten(operation, path string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s%s %s %s\n", d.getIndent(), d.paint(color.FgMagenta, "✏"), operation, path)
	}
}

// Indent increases the indentation level
func (d *DiagnosticSystem) Indent() {
	d.indent++
}

// Unindent decreases the indentation level
func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary outputs a final summary with statistics, keys in sorted order
func (d *DiagnosticSystem) Summary(title string, stats map[string]interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s\n", d.paint(color.FgGreen, title))

		keys := make([]string, 0, len(stats))
		for key := range stats {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Fprintf(d.output, "   %s: %v\n", key, stats[key])
		}
		fmt.Fprintln(d.output)
	}
}

// writeMessage is the internal message writing function
func (d *DiagnosticSystem) writeMessage(writer io.Writer, level string, attr color.Attribute, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	var output strings.Builder
	output.WriteString(d.getIndent())

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	output.WriteString(d.paint(attr, "["+level+"]"))
	output.WriteString(" ")
	output.WriteString(message)
	output.WriteString("\n")

	fmt.Fprint(writer, output.String())
}

// paint colors text when colors are enabled
func (d *DiagnosticSystem) paint(attr color.Attribute, text string) string {
	if !d.useColors {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

// getIndent returns the current indentation string
func (d *DiagnosticSystem) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	// Check if NO_COLOR is set (standard)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	return !color.NoColor
}
