package annotations

import (
	"fmt"
	"strings"
)

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns file:line:column, or a shorter form when parts are missing
func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "<unknown>"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// Argument is one positional argument of an annotation
type Argument struct {
	Index int    // Position in the argument list (0-based)
	Expr  string // Go expression text, evaluated later against type information
}

// ParsedAnnotation represents a syntactically parsed annotation such as
//
//	// @Injectable(InjectSingleton, UserRepository)
//
// Nothing about it is resolved: Name is the qualified identifier as written and
// every argument is kept as expression text.
type ParsedAnnotation struct {
	Name     string         // Qualified name as written, e.g. "Injectable" or "di.Injectable"
	Args     []Argument     // Positional arguments, in order
	HasArgs  bool           // Whether an argument list (possibly empty) was present
	Location SourceLocation // Source location of the comment line
	Raw      string         // Original comment text
}

// Qualifier returns the package qualifier of the name, or "" when unqualified
func (p *ParsedAnnotation) Qualifier() string {
	if i := strings.LastIndex(p.Name, "."); i >= 0 {
		return p.Name[:i]
	}
	return ""
}

// Ident returns the unqualified identifier of the name
func (p *ParsedAnnotation) Ident() string {
	if i := strings.LastIndex(p.Name, "."); i >= 0 {
		return p.Name[i+1:]
	}
	return p.Name
}

// String renders the annotation back in canonical form
func (p *ParsedAnnotation) String() string {
	if !p.HasArgs {
		return "@" + p.Name
	}
	exprs := make([]string, len(p.Args))
	for i, arg := range p.Args {
		exprs[i] = arg.Expr
	}
	return fmt.Sprintf("@%s(%s)", p.Name, strings.Join(exprs, ", "))
}
