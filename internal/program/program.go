// Package program holds the type-checked snapshot of one Go package that a
// generation pass works on.
package program

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"
)

// Program is a parsed and type-checked package
type Program struct {
	Path   string         // import path
	Name   string         // package name
	Dir    string         // directory holding the package sources, may be empty
	Fset   *token.FileSet // positions for Files
	Files  []*ast.File    // syntax trees, with comments
	Types  *types.Package // type-checked package
	Info   *types.Info    // defs, uses, types and scopes for Files
	Errors []error        // type errors; the snapshot may be partial
}

// NewInfo allocates the type information maps a pass relies on
func NewInfo() *types.Info {
	return &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Scopes:     make(map[ast.Node]*types.Scope),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
	}
}

// HasErrors reports whether the package failed to type-check cleanly
func (p *Program) HasErrors() bool {
	return len(p.Errors) > 0
}

// FileName returns the file name the syntax tree was parsed from
func (p *Program) FileName(f *ast.File) string {
	return p.Fset.Position(f.Package).Filename
}

// DeclaredIn reports whether obj was declared in a file with the given base name
func (p *Program) DeclaredIn(obj types.Object, base string) bool {
	if obj == nil || !obj.Pos().IsValid() {
		return false
	}
	return filepath.Base(p.Fset.Position(obj.Pos()).Filename) == base
}

// LookupType finds a type by qualified name. Unqualified names and names
// qualified with the package's own path are looked up in the package scope;
// other qualifiers must match the path of a direct import.
func (p *Program) LookupType(qualified string) (*types.TypeName, bool) {
	if p.Types == nil {
		return nil, false
	}

	path, name := "", qualified
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		path, name = qualified[:i], qualified[i+1:]
	}

	var scope *types.Scope
	switch path {
	case "", p.Types.Path():
		scope = p.Types.Scope()
	default:
		for _, imp := range p.Types.Imports() {
			if imp.Path() == path {
				scope = imp.Scope()
				break
			}
		}
	}
	if scope == nil {
		return nil, false
	}

	tn, ok := scope.Lookup(name).(*types.TypeName)
	return tn, ok
}
