package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	prog, err := Check("example.com/app/store", map[string]string{
		"store.go": `package store

import "io"

type Store struct{ w io.Writer }

type Reader = io.Reader
`,
		"other.go": `package store

type Config struct{}
`,
	})
	require.NoError(t, err)

	assert.Equal(t, "store", prog.Name)
	assert.Equal(t, "example.com/app/store", prog.Types.Path())
	assert.Len(t, prog.Files, 2)
	assert.False(t, prog.HasErrors())

	// files are checked in name order
	assert.Equal(t, "other.go", prog.FileName(prog.Files[0]))
	assert.Equal(t, "store.go", prog.FileName(prog.Files[1]))
}

func TestCheckCollectsTypeErrors(t *testing.T) {
	prog, err := Check("example.com/broken", map[string]string{
		"broken.go": `package broken

type Service struct{ dep Missing }
`,
	})
	require.NoError(t, err)
	assert.True(t, prog.HasErrors())

	tn, ok := prog.LookupType("Service")
	require.True(t, ok, "partial package must still expose declared types")
	assert.Equal(t, "Service", tn.Name())
}

func TestCheckRejectsUnparsableFiles(t *testing.T) {
	_, err := Check("example.com/bad", map[string]string{
		"bad.go": "package bad\n\ntype {",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse bad.go")

	_, err = Check("example.com/empty", nil)
	require.Error(t, err)
}

func TestLookupType(t *testing.T) {
	prog, err := Check("example.com/app", map[string]string{
		"app.go": `package app

import "io"

type Service struct{}

var _ io.Closer

func helper() {}
`,
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		qualified string
		found     bool
	}{
		{"unqualified", "Service", true},
		{"own path", "example.com/app.Service", true},
		{"imported package", "io.Closer", true},
		{"not a type", "helper", false},
		{"missing", "Nope", false},
		{"package not imported", "fmt.Stringer", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := prog.LookupType(tt.qualified)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestDeclaredIn(t *testing.T) {
	prog, err := Check("example.com/app", map[string]string{
		"a.go": "package app\n\ntype A struct{}\n",
		"b.go": "package app\n\ntype B struct{}\n",
	})
	require.NoError(t, err)

	a, ok := prog.LookupType("A")
	require.True(t, ok)

	assert.True(t, prog.DeclaredIn(a, "a.go"))
	assert.False(t, prog.DeclaredIn(a, "b.go"))
	assert.False(t, prog.DeclaredIn(nil, "a.go"))
}
