package utils

import (
	"os"
	"sync"
	"time"
)

// fileStamp identifies one version of a file on disk
type fileStamp struct {
	modTime time.Time
	size    int64
}

func stampOf(info os.FileInfo) fileStamp {
	return fileStamp{modTime: info.ModTime(), size: info.Size()}
}

type fileEntry[V any] struct {
	value V
	stamp fileStamp
}

// FileCache caches values derived from files, keyed by path. An entry is
// valid while the file's modification time and size are unchanged.
type FileCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]fileEntry[V]
}

// NewFileCache creates an empty file cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{entries: make(map[string]fileEntry[V])}
}

// Get returns the value cached for path. A stale or unreadable entry is
// dropped and reported as missing.
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}

	if info, err := os.Stat(path); err == nil && stampOf(info) == entry.stamp {
		return entry.value, true
	}

	c.Invalidate(path)
	return zero, false
}

// Put caches value for the current version of path
func (c *FileCache[V]) Put(path string, value V) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = fileEntry[V]{value: value, stamp: stampOf(info)}
	return nil
}

// Invalidate drops the entry for path
func (c *FileCache[V]) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len returns the number of cached entries
func (c *FileCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
