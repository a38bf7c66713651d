package annotations

import "fmt"

// SyntaxError represents a comment line that looks like an annotation but does
// not follow the annotation grammar
type SyntaxError struct {
	Msg  string         // Error message
	Loc  SourceLocation // Where the error occurred
	Hint string         // Suggested fix
}

func (e *SyntaxError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s: syntax error: %s", e.Loc, e.Msg)
	}
	return fmt.Sprintf("%s: syntax error: %s. %s", e.Loc, e.Msg, e.Hint)
}

func (e *SyntaxError) Location() SourceLocation { return e.Loc }
func (e *SyntaxError) Suggestion() string       { return e.Hint }
