package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.mod")
	require.NoError(t, os.WriteFile(path, []byte("module a\n"), 0644))

	cache := NewFileCache[string]()
	_, ok := cache.Get(path)
	assert.False(t, ok)

	require.NoError(t, cache.Put(path, "a"))
	value, ok := cache.Get(path)
	assert.True(t, ok)
	assert.Equal(t, "a", value)
	assert.Equal(t, 1, cache.Len())

	require.NoError(t, os.WriteFile(path, []byte("module longer\n"), 0644))
	_, ok = cache.Get(path)
	assert.False(t, ok)
	assert.Zero(t, cache.Len())

	assert.Error(t, cache.Put(filepath.Join(t.TempDir(), "missing"), "x"))
}
