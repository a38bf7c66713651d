package models

import (
	"fmt"
	"go/token"
)

// Diagnostic is a message surfaced to the user about one generation pass
type Diagnostic struct {
	Code     string         // stable identifier such as AUTODI01
	Severity Severity       // how serious the diagnostic is
	Message  string         // human readable message
	Position token.Position // optional source position
}

// Error implements the error interface so diagnostics can travel as errors
func (d Diagnostic) Error() string {
	return d.String()
}

// String renders the diagnostic as "pos: severity CODE: message"
func (d Diagnostic) String() string {
	if d.Position.IsValid() {
		return fmt.Sprintf("%s: %s %s: %s", d.Position, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
}

// Diagnostics is an ordered list of diagnostics
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has error severity
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with the given severity
func (ds Diagnostics) Count(severity Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == severity {
			n++
		}
	}
	return n
}

// ByCode returns the diagnostics carrying the given code
func (ds Diagnostics) ByCode(code string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}
