package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoinject/internal/generator"
	"github.com/toyz/autoinject/internal/marker"
)

func TestCleanGeneratedFiles(t *testing.T) {
	root := writeModule(t, map[string]string{
		"svc/svc.go":                "package svc\n",
		"svc/" + marker.FileName:    "package svc\n",
		"svc/" + generator.FileName: "package svc\n",
		"plain/plain.go":            plainSource,
		"plain/" + marker.FileName:  "package plain\n",
		"untouched/untouched.go":    "package untouched\n",
	})

	t.Run("dry run reports without removing", func(t *testing.T) {
		cleaner := NewCleaner(&Config{Patterns: []string{"./..."}, Dir: root, DryRun: true})
		removed, err := cleaner.CleanGeneratedFiles(context.Background())
		require.NoError(t, err)
		assert.Len(t, removed, 3)
		assert.FileExists(t, filepath.Join(root, "svc", generator.FileName))
	})

	cleaner := NewCleaner(&Config{Patterns: []string{"./..."}, Dir: root})
	removed, err := cleaner.CleanGeneratedFiles(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "svc", marker.FileName),
		filepath.Join(root, "svc", generator.FileName),
		filepath.Join(root, "plain", marker.FileName),
	}, removed)

	for _, path := range removed {
		assert.NoFileExists(t, path)
	}
	assert.FileExists(t, filepath.Join(root, "svc", "svc.go"))
	assert.FileExists(t, filepath.Join(root, "untouched", "untouched.go"))
	assert.FileExists(t, filepath.Join(root, "plain", "plain.go"))
}
