package annotations

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// AnnotationPrefix marks a comment line as an annotation
const AnnotationPrefix = "@"

// Parser parses annotation comment lines using alecthomas/participle
type Parser struct {
	parser *participle.Parser[annotationGrammar]
}

// annotationGrammar represents the root of an annotation: @Name or @pkg.Name,
// optionally followed by a parenthesized argument list. Text after the
// annotation is allowed and ignored.
type annotationGrammar struct {
	At   string        `parser:"@At"`
	Name []string      `parser:"@Ident ( '.' @Ident )?"`
	Args *argumentList `parser:"@@?"`
}

// argumentList represents a parenthesized, comma separated argument list
type argumentList struct {
	Items []*argument `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

// argument is any run of terms up to the next top-level comma or closing paren
type argument struct {
	Terms []*term `parser:"@@+"`
}

// term is a single token or a bracketed group at argument level
type term struct {
	Group *group `parser:"  @@"`
	Atom  string `parser:"| @(Ident | Number | String | Char | Operator)"`
}

// group is a bracketed run of tokens; commas are allowed inside
type group struct {
	Open  string   `parser:"@Open"`
	Inner []*inner `parser:"@@*"`
	Close string   `parser:"@Close"`
}

type inner struct {
	Group *group `parser:"  @@"`
	Atom  string `parser:"| @(Ident | Number | String | Char | Operator | Comma)"`
}

// NewParser creates a new annotation parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "At", Pattern: `@`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"|` + "`[^`]*`"},
		{Name: "Char", Pattern: `'(\\.|[^'\\])*'`},
		{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_]*(\.[0-9a-zA-Z_]+)?`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{Nd}_]*`},
		{Name: "Open", Pattern: `[(\[{]`},
		{Name: "Close", Pattern: `[)\]}]`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Operator", Pattern: `[-+*/%&|^<>=!.:~;]+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[annotationGrammar](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{parser: parser}
}

// AnnotationText returns the annotation text of a line comment, with the
// comment marker and surrounding whitespace removed. The second result is
// false when the comment does not start with the annotation prefix.
func AnnotationText(comment string) (string, bool) {
	if !strings.HasPrefix(comment, "//") {
		return "", false
	}
	text := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	if !strings.HasPrefix(text, AnnotationPrefix) {
		return "", false
	}
	return text, true
}

// IsAnnotationComment is a cheap syntactic check used before parsing
func IsAnnotationComment(comment string) bool {
	_, ok := AnnotationText(comment)
	return ok
}

// ParseAnnotation parses a single comment line
func (p *Parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	text, ok := AnnotationText(comment)
	if !ok {
		return nil, &SyntaxError{
			Msg:  "not an annotation comment",
			Loc:  location,
			Hint: "Annotations are line comments starting with '@', e.g. // @Injectable(InjectScoped)",
		}
	}

	root, err := p.parser.ParseString(location.File, text, participle.AllowTrailing(true))
	if err != nil {
		loc := location
		var perr participle.Error
		if errors.As(err, &perr) && loc.Column > 0 {
			loc.Column += perr.Position().Column - 1
		}
		return nil, &SyntaxError{
			Msg:  err.Error(),
			Loc:  loc,
			Hint: "Expected @Name or @Name(arg, ...)",
		}
	}

	parsed := &ParsedAnnotation{
		Name:     strings.Join(root.Name, "."),
		Location: location,
		Raw:      comment,
	}
	if root.Args != nil {
		parsed.HasArgs = true
		for i, item := range root.Args.Items {
			parsed.Args = append(parsed.Args, Argument{
				Index: i,
				Expr:  renderTokens(flattenTerms(item.Terms)),
			})
		}
	}

	return parsed, nil
}

type tokenKind int

const (
	kindAtom tokenKind = iota
	kindOperator
	kindOpen
	kindClose
	kindComma
)

type flatToken struct {
	kind  tokenKind
	value string
}

func flattenTerms(terms []*term) []flatToken {
	var out []flatToken
	for _, t := range terms {
		if t.Group != nil {
			out = appendGroup(out, t.Group)
			continue
		}
		out = append(out, classify(t.Atom))
	}
	return out
}

func appendGroup(out []flatToken, g *group) []flatToken {
	out = append(out, flatToken{kind: kindOpen, value: g.Open})
	for _, in := range g.Inner {
		if in.Group != nil {
			out = appendGroup(out, in.Group)
			continue
		}
		out = append(out, classify(in.Atom))
	}
	return append(out, flatToken{kind: kindClose, value: g.Close})
}

func classify(value string) flatToken {
	switch {
	case value == ",":
		return flatToken{kind: kindComma, value: value}
	case strings.Trim(value, "-+*/%&|^<>=!.:~;") == "":
		return flatToken{kind: kindOperator, value: value}
	default:
		return flatToken{kind: kindAtom, value: value}
	}
}

// renderTokens joins tokens back into Go expression text. Spacing only matters
// for readability; the result is re-parsed as a Go expression.
func renderTokens(tokens []flatToken) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && needsSpace(tokens, i) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.value)
	}
	return b.String()
}

func needsSpace(tokens []flatToken, i int) bool {
	prev, cur := tokens[i-1], tokens[i]
	switch {
	case prev.kind == kindOpen, cur.kind == kindClose, cur.kind == kindComma:
		return false
	case prev.value == ".", cur.value == ".":
		return false
	case cur.kind == kindOpen && (prev.kind == kindAtom || prev.kind == kindClose):
		return false
	case prev.kind == kindClose && cur.kind == kindAtom:
		return false
	case prev.kind == kindOperator && isUnary(tokens, i-1):
		return false
	}
	return true
}

func isUnary(tokens []flatToken, i int) bool {
	switch tokens[i].value {
	case "*", "&", "-", "+", "!", "^", "<-":
	default:
		return false
	}
	if i == 0 {
		return true
	}
	switch tokens[i-1].kind {
	case kindOpen, kindComma, kindOperator:
		return true
	}
	return false
}
