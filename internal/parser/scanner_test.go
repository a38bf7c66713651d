package parser

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFiles(t *testing.T, sources ...string) (*token.FileSet, []*ast.File) {
	t.Helper()

	fset := token.NewFileSet()
	var files []*ast.File
	for i, src := range sources {
		f, err := parser.ParseFile(fset, string(rune('a'+i))+".go", src, parser.ParseComments)
		require.NoError(t, err)
		files = append(files, f)
	}
	return fset, files
}

func TestScannerFindsAnnotatedTypes(t *testing.T) {
	fset, files := parseFiles(t, `package app

// Plain has no annotations.
type Plain struct{}

// UserStore persists users.
// @Injectable(InjectSingleton, UserRepository)
type UserStore struct{}

//@Injectable
type Cache struct{}

type (
	// @Injectable(InjectScoped)
	Grouped struct{}

	Ungrouped struct{}
)

// @Injectable(InjectScoped)
type (
	GroupDocIgnored struct{}
)

// @Injectable(InjectScoped)
func NotAType() {}

// @Injectable(InjectScoped)
var notAType int
`, `package app

// @Other
// @Injectable(InjectTransient)
type Second interface{}
`)

	candidates, err := NewScanner().Scan(context.Background(), fset, files)
	require.NoError(t, err)

	var names []string
	for _, c := range candidates {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"UserStore", "Cache", "Grouped", "Second"}, names)

	store := candidates[0]
	require.Len(t, store.Annotations, 1)
	assert.Equal(t, "Injectable", store.Annotations[0].Name)
	assert.Equal(t, []string{"InjectSingleton", "UserRepository"},
		[]string{store.Annotations[0].Args[0].Expr, store.Annotations[0].Args[1].Expr})
	assert.Equal(t, "a.go", store.Annotations[0].Location.File)
	assert.Equal(t, 7, store.Annotations[0].Location.Line)
	assert.Same(t, files[0], store.File)

	second := candidates[3]
	require.Len(t, second.Annotations, 2, "unrelated annotations are kept for the resolver")
	assert.Equal(t, "Other", second.Annotations[0].Name)
}

func TestScannerIgnoresMalformedAnnotations(t *testing.T) {
	fset, files := parseFiles(t, `package app

// @123 is a number
// @(missing name)
type Noise struct{}
`)

	candidates, err := NewScanner().Scan(context.Background(), fset, files)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestScannerEmptyInput(t *testing.T) {
	candidates, err := NewScanner().Scan(context.Background(), token.NewFileSet(), nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestScannerCancelled(t *testing.T) {
	fset, files := parseFiles(t, "package app\n\n// @Injectable\ntype A struct{}\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates, err := NewScanner().Scan(ctx, fset, files)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, candidates)
}
