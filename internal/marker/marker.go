// Package marker provides the static definition of the @Injectable marker and
// finds it again in a type-checked package.
package marker

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"github.com/toyz/autoinject/internal/program"
	"github.com/toyz/autoinject/internal/templates"
)

const (
	// FileName is the file the marker definition is emitted to
	FileName = "autoinject_marker.go"

	// TypeName is the name of the marker type
	TypeName = "Injectable"

	// LifetimeTypeName is the name of the lifetime enumeration
	LifetimeTypeName = "InjectLifetime"
)

// Names are the package-level identifiers the marker file declares
var Names = []string{TypeName, LifetimeTypeName, "InjectScoped", "InjectSingleton", "InjectTransient"}

var (
	// ErrMissing is returned when the package does not declare the marker
	ErrMissing = errors.New("marker type not found")

	// ErrShadowed is returned when the marker name is declared outside the
	// emitted marker file
	ErrShadowed = errors.New("marker type is shadowed by a user declaration")
)

// Source returns the marker definition for a package
func Source(pkgName string) ([]byte, error) {
	src, err := templates.Execute(templates.MarkerUnitTemplate, templates.MarkerData{
		PackageName:  pkgName,
		LifetimeType: LifetimeTypeName,
		MarkerType:   TypeName,
	})
	if err != nil {
		return nil, err
	}
	return []byte(src), nil
}

// Lookup finds the marker type injected into prog. The object must have been
// declared in the marker file: a user type that happens to be called
// Injectable never counts as the marker.
func Lookup(prog *program.Program) (*types.TypeName, error) {
	qualified := prog.Path + "." + TypeName
	tn, ok := prog.LookupType(qualified)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissing, qualified)
	}
	if !prog.DeclaredIn(tn, FileName) {
		pos := prog.Fset.Position(tn.Pos())
		return nil, fmt.Errorf("%w: %s declared at %s", ErrShadowed, qualified, pos)
	}
	if _, ok := tn.Type().(*types.Named); !ok || tn.IsAlias() {
		return nil, fmt.Errorf("%w: %s is not a defined type", ErrShadowed, qualified)
	}
	return tn, nil
}

// Conflicts returns the package-level declarations outside the marker file
// that use one of Names. The type checker keeps whichever declaration it sees
// first, so the syntax is searched rather than the package scope. A package
// with conflicts must not receive the marker file.
func Conflicts(prog *program.Program) []*ast.Ident {
	reserved := make(map[string]bool, len(Names))
	for _, name := range Names {
		reserved[name] = true
	}

	var found []*ast.Ident
	for _, f := range prog.Files {
		if filepath.Base(prog.FileName(f)) == FileName {
			continue
		}
		for _, id := range topLevelNames(f) {
			if reserved[id.Name] {
				found = append(found, id)
			}
		}
	}
	return found
}

func topLevelNames(f *ast.File) []*ast.Ident {
	var names []*ast.Ident
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				names = append(names, d.Name)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, s.Name)
				case *ast.ValueSpec:
					names = append(names, s.Names...)
				case *ast.ImportSpec:
					// a file-scope import name clashes with package-level names too
					if s.Name != nil && s.Name.Name != "_" && s.Name.Name != "." {
						names = append(names, s.Name)
					}
				}
			}
		}
	}
	return names
}

// Describe renders conflicting declarations as "Name (file:line)" for messages
func Describe(fset *token.FileSet, conflicts []*ast.Ident) string {
	parts := make([]string, 0, len(conflicts))
	for _, id := range conflicts {
		pos := fset.Position(id.Pos())
		parts = append(parts, fmt.Sprintf("%s (%s:%d)", id.Name, filepath.Base(pos.Filename), pos.Line))
	}
	return strings.Join(parts, ", ")
}
