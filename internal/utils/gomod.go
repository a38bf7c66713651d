package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// GoModParser provides utilities for parsing go.mod files. Parsed files are
// cached until they change on disk.
type GoModParser struct {
	cache *FileCache[*modfile.File]
}

// NewGoModParser creates a new go.mod parser with caching
func NewGoModParser() *GoModParser {
	return &GoModParser{
		cache: NewFileCache[*modfile.File](),
	}
}

// Parse reads and parses a go.mod file
func (p *GoModParser) Parse(goModPath string) (*modfile.File, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return nil, fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	if cached, ok := p.cache.Get(cleanPath); ok {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod file: %w", err)
	}

	modFile, err := modfile.Parse(cleanPath, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod file: %w", err)
	}

	_ = p.cache.Put(cleanPath, modFile)
	return modFile, nil
}

// ParseModuleName extracts the module name from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	modFile, err := p.Parse(goModPath)
	if err != nil {
		return "", err
	}

	if modFile.Module == nil {
		return "", fmt.Errorf("no module declaration found in go.mod")
	}

	return modFile.Module.Mod.Path, nil
}

// Requirement returns the version of a required module, and whether the
// go.mod file requires it at all
func (p *GoModParser) Requirement(goModPath, modulePath string) (string, bool, error) {
	modFile, err := p.Parse(goModPath)
	if err != nil {
		return "", false, err
	}

	for _, req := range modFile.Require {
		if req.Mod.Path == modulePath {
			return req.Mod.Version, true, nil
		}
	}
	return "", false, nil
}

// FindGoModFile searches for go.mod file starting from the given directory and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir := filepath.Clean(startDir)

	for {
		goModPath := filepath.Join(currentDir, "go.mod")

		if info, err := os.Stat(goModPath); err == nil && !info.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found")
}
