package cli

import (
	"context"
	"os"
	"path/filepath"

	clierrors "github.com/toyz/autoinject/internal/errors"
	"github.com/toyz/autoinject/internal/generator"
	"github.com/toyz/autoinject/internal/marker"
	"github.com/toyz/autoinject/internal/program"
)

// GeneratedFileNames are the files autoinject owns in a package directory
var GeneratedFileNames = []string{marker.FileName, generator.FileName}

// Cleaner handles cleaning up generated files
type Cleaner struct {
	config *Config
}

// NewCleaner creates a new cleaner
func NewCleaner(cfg *Config) *Cleaner {
	return &Cleaner{config: cfg}
}

// CleanGeneratedFiles removes the generated files from every package matched
// by the configured patterns and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(ctx context.Context) ([]string, error) {
	dir, err := c.config.AbsDir()
	if err != nil {
		return nil, clierrors.WrapFileSystemError("resolve", c.config.Dir, err)
	}

	refs, err := program.List(ctx, program.LoadConfig{Dir: dir, Tags: c.config.Tags}, c.config.Patterns)
	if err != nil {
		return nil, clierrors.WrapLoadError(c.config.Patterns, err)
	}

	seen := make(map[string]bool)
	failures := clierrors.NewMultipleErrors()
	var removed []string
	for _, ref := range refs {
		if seen[ref.Dir] {
			continue
		}
		seen[ref.Dir] = true

		// one unwritable directory does not stop the others
		files, err := c.cleanDirectory(ref.Dir)
		removed = append(removed, files...)
		if err != nil {
			failures.Add(err)
		}
	}
	return removed, failures.ErrOrNil()
}

// cleanDirectory removes the generated files of a single directory
func (c *Cleaner) cleanDirectory(dir string) ([]string, clierrors.CodedError) {
	var removed []string
	for _, name := range GeneratedFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if c.config.DryRun {
			removed = append(removed, path)
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, clierrors.WrapFileSystemError("remove", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
