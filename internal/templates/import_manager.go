package templates

import (
	"fmt"
	"go/types"
	"sort"
	"strconv"
	"strings"
)

// ImportManager handles import generation and deduplication for one
// generated file. Local names never collide with each other, with
// declarations of the package the file belongs to, or with reserved names.
type ImportManager struct {
	self     *types.Package
	paths    map[string]string // path -> local name
	names    map[string]string // local name -> path
	reserved map[string]bool   // identifiers the generated code declares itself
}

// NewImportManager creates a new import manager for a file of package self
func NewImportManager(self *types.Package) *ImportManager {
	return &ImportManager{
		self:  self,
		paths:    make(map[string]string),
		names:    make(map[string]string),
		reserved: make(map[string]bool),
	}
}

// Reserve keeps names from being used as import names, typically because the
// generated code declares them as parameters or locals. Imports added before
// the call keep their names.
func (im *ImportManager) Reserve(names ...string) {
	for _, name := range names {
		im.reserved[name] = true
	}
}

// AddImport adds an import and returns the local name to refer to it by.
// name is the preferred local name, usually the declared package name.
func (im *ImportManager) AddImport(path, name string) string {
	if im.self != nil && path == im.self.Path() {
		return ""
	}
	if local, ok := im.paths[path]; ok {
		return local
	}

	local := name
	for i := 2; im.taken(local); i++ {
		local = name + strconv.Itoa(i)
	}

	im.paths[path] = local
	im.names[local] = path
	return local
}

func (im *ImportManager) taken(name string) bool {
	if _, ok := im.names[name]; ok || im.reserved[name] {
		return true
	}
	return im.self != nil && im.self.Scope().Lookup(name) != nil
}

// Qualifier returns a types.Qualifier that imports every package it is asked
// about and leaves the file's own package unqualified
func (im *ImportManager) Qualifier() types.Qualifier {
	return func(pkg *types.Package) string {
		if pkg == nil {
			return ""
		}
		return im.AddImport(pkg.Path(), pkg.Name())
	}
}

// TypeString renders t with package qualifiers managed by im
func (im *ImportManager) TypeString(t types.Type) string {
	return types.TypeString(t, im.Qualifier())
}

// ObjectString renders an object name with its package qualifier
func (im *ImportManager) ObjectString(obj types.Object) string {
	if q := im.Qualifier()(obj.Pkg()); q != "" {
		return q + "." + obj.Name()
	}
	return obj.Name()
}

// Paths returns the imported paths in sorted order
func (im *ImportManager) Paths() []string {
	paths := make([]string, 0, len(im.paths))
	for path := range im.paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// GenerateImports generates the import section
func (im *ImportManager) GenerateImports() string {
	if len(im.paths) == 0 {
		return ""
	}

	var std, other []string
	for _, path := range im.Paths() {
		spec := im.importSpec(path)
		if isStandardLibraryPath(path) {
			std = append(std, spec)
		} else {
			other = append(other, spec)
		}
	}

	if len(std)+len(other) == 1 {
		return fmt.Sprintf("import %s\n", append(std, other...)[0])
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, imp := range std {
		result.WriteString(fmt.Sprintf("\t%s\n", imp))
	}
	if len(std) > 0 && len(other) > 0 {
		result.WriteString("\n")
	}
	for _, imp := range other {
		result.WriteString(fmt.Sprintf("\t%s\n", imp))
	}
	result.WriteString(")\n")

	return result.String()
}

// importSpec renders one import line, adding an alias only when the local
// name differs from the last path element
func (im *ImportManager) importSpec(path string) string {
	local := im.paths[path]
	if local == lastElement(path) {
		return strconv.Quote(path)
	}
	return fmt.Sprintf("%s %s", local, strconv.Quote(path))
}

func lastElement(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// isStandardLibraryPath uses the go tool convention: standard library paths
// have no dot in their first element
func isStandardLibraryPath(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
