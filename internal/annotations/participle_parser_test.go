package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipleParserBasic(t *testing.T) {
	parser := NewParser()
	location := SourceLocation{File: "test.go", Line: 3, Column: 1}

	tests := []struct {
		name     string
		input    string
		wantName string
		wantArgs []string
		hasArgs  bool
	}{
		{
			name:     "bare annotation",
			input:    "// @Injectable",
			wantName: "Injectable",
		},
		{
			name:     "no space after comment marker",
			input:    "//@Injectable(InjectScoped)",
			wantName: "Injectable",
			wantArgs: []string{"InjectScoped"},
			hasArgs:  true,
		},
		{
			name:     "lifetime and abstraction",
			input:    "// @Injectable(InjectSingleton, UserRepository)",
			wantName: "Injectable",
			wantArgs: []string{"InjectSingleton", "UserRepository"},
			hasArgs:  true,
		},
		{
			name:     "qualified name and selector arguments",
			input:    "// @di.Injectable(di.InjectTransient, io.Closer)",
			wantName: "di.Injectable",
			wantArgs: []string{"di.InjectTransient", "io.Closer"},
			hasArgs:  true,
		},
		{
			name:     "conversion argument",
			input:    "// @Injectable(InjectLifetime(0x99))",
			wantName: "Injectable",
			wantArgs: []string{"InjectLifetime(0x99)"},
			hasArgs:  true,
		},
		{
			name:     "composite type arguments keep inner commas",
			input:    "// @Injectable(InjectScoped, func(a, b int) error)",
			wantName: "Injectable",
			wantArgs: []string{"InjectScoped", "func(a, b int) error"},
			hasArgs:  true,
		},
		{
			name:     "pointer and slice types",
			input:    "// @Injectable(*Store, []string)",
			wantName: "Injectable",
			wantArgs: []string{"*Store", "[]string"},
			hasArgs:  true,
		},
		{
			name:     "trailing text is ignored",
			input:    "// @Summary Get a user by id",
			wantName: "Summary",
		},
		{
			name:     "string literal argument",
			input:    `// @Name("a, b")`,
			wantName: "Name",
			wantArgs: []string{`"a, b"`},
			hasArgs:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parser.ParseAnnotation(tt.input, location)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, parsed.Name)
			assert.Equal(t, tt.hasArgs, parsed.HasArgs)
			assert.Equal(t, tt.input, parsed.Raw)
			assert.Equal(t, location, parsed.Location)

			var got []string
			for i, arg := range parsed.Args {
				assert.Equal(t, i, arg.Index)
				got = append(got, arg.Expr)
			}
			assert.Equal(t, tt.wantArgs, got)
		})
	}
}

func TestParticipleParserRejectsNonAnnotations(t *testing.T) {
	parser := NewParser()
	location := SourceLocation{File: "test.go", Line: 7, Column: 1}

	inputs := []string{
		"// UserStore persists users.",
		"//go:generate autoinject ./...",
		"/* @Injectable(InjectScoped) */",
		"// @",
		"// @(InjectScoped)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			parsed, err := parser.ParseAnnotation(input, location)
			assert.Nil(t, parsed)
			require.Error(t, err)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, "test.go", syntaxErr.Location().File)
			assert.NotEmpty(t, syntaxErr.Suggestion())
		})
	}
}

func TestAnnotationText(t *testing.T) {
	text, ok := AnnotationText("//   @Injectable(InjectScoped)  ")
	assert.True(t, ok)
	assert.Equal(t, "@Injectable(InjectScoped)", text)

	_, ok = AnnotationText("// Injectable")
	assert.False(t, ok)

	assert.True(t, IsAnnotationComment("// @X"))
	assert.False(t, IsAnnotationComment("# @X"))
}

func TestParsedAnnotationNameParts(t *testing.T) {
	parsed := &ParsedAnnotation{
		Name:    "di.Injectable",
		HasArgs: true,
		Args:    []Argument{{Index: 0, Expr: "di.InjectScoped"}, {Index: 1, Expr: "Repo"}},
	}

	assert.Equal(t, "di", parsed.Qualifier())
	assert.Equal(t, "Injectable", parsed.Ident())
	assert.Equal(t, "@di.Injectable(di.InjectScoped, Repo)", parsed.String())

	bare := &ParsedAnnotation{Name: "Injectable"}
	assert.Equal(t, "", bare.Qualifier())
	assert.Equal(t, "@Injectable", bare.String())
}
