package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	clierrors "github.com/toyz/autoinject/internal/errors"
	"github.com/toyz/autoinject/internal/marker"
	"github.com/toyz/autoinject/internal/models"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterTo(verbose, os.Stderr)
}

// NewDiagnosticReporterTo creates a diagnostic reporter writing to out
func NewDiagnosticReporterTo(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
	}
}

// ReportDiagnostic prints one pass diagnostic as
// "file:line:col: severity CODE: message", with a hint for the known codes
func (r *DiagnosticReporter) ReportDiagnostic(d models.Diagnostic) {
	mark := color.New(color.FgYellow, color.Bold)
	if d.Severity == models.SeverityError {
		mark = color.New(color.FgRed, color.Bold)
	}
	mark.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", d.String())

	if hint := diagnosticHint(d.Code); hint != "" && (r.verbose || d.Severity == models.SeverityError) {
		fmt.Fprintf(r.out, "  hint: %s\n", hint)
	}
}

// ReportDiagnostics prints every diagnostic of a pass result
func (r *DiagnosticReporter) ReportDiagnostics(diags models.Diagnostics) {
	for _, d := range diags {
		r.ReportDiagnostic(d)
	}
}

func diagnosticHint(code string) string {
	switch code {
	case models.CodeGenerationFailed:
		return "no registration code was generated for this package; fix the cause and run autoinject again"
	case models.CodeMarkerUnavailable:
		return "the generated marker declares " + strings.Join(marker.Names, ", ") + "; rename any of them declared in this package"
	case models.CodePackageErrors:
		return "run 'go build' on the package to see the errors; annotations on broken declarations may be missed"
	}
	return ""
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var multi *clierrors.MultipleErrors
	var coded clierrors.CodedError
	if errors.As(err, &multi) {
		for i, e := range multi.Errors {
			if i > 0 {
				fmt.Fprintf(r.out, "\n")
			}
			r.reportCodedError(e)
		}
	} else if errors.As(err, &coded) {
		r.reportCodedError(coded)
	} else {
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.out, "\n")
}

// reportCodedError reports a coded error with full context and suggestions
func (r *DiagnosticReporter) reportCodedError(err clierrors.CodedError) {
	r.printErrorHeader(err.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose && err.Unwrap() != nil {
		r.printErrorChain(err.Unwrap())
	}

	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run with --verbose for more detailed output\n")
}

// reportBasicError reports an error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.out, "Message: %s\n", err.Error())
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code clierrors.ErrorCode) {
	var title string
	switch code {
	case clierrors.LoadErrorCode:
		title = "Package Load Error"
	case clierrors.ModuleErrorCode:
		title = "Module Error"
	case clierrors.GenerationErrorCode:
		title = "Code Generation Error"
	case clierrors.TemplateErrorCode:
		title = "Template Error"
	case clierrors.FileSystemErrorCode:
		title = "File System Error"
	case clierrors.ConfigurationErrorCode:
		title = "Configuration Error"
	default:
		title = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context information in a stable order
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")
	for level := 1; err != nil; level++ {
		fmt.Fprintf(r.out, "  %d. %v\n", level, err)
		err = errors.Unwrap(err)
	}
	fmt.Fprintf(r.out, "\n")
}
