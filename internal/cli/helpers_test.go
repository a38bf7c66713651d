package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/autoinject/internal/utils"
)

const testModule = `module example.com/app

go 1.21
`

const serviceSource = `package svc

type Repository interface{ Find() string }

// Store keeps things.
// @Injectable(InjectSingleton, Repository)
type Store struct{}

func NewStore() *Store { return &Store{} }

func (s *Store) Find() string { return "" }

// @Injectable(InjectScoped)
type Handler struct{}

// @Injectable(InjectLifetime(0x99))
type Odd struct{}
`

const plainSource = `package plain

type Thing struct{}
`

// writeModule lays out files relative to a fresh module root
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	files["go.mod"] = testModule
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func testDiagnostics(level utils.DiagnosticLevel) (*utils.DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := utils.NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	return d, &out, &errOut
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
