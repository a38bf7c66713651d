package program

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"sort"
)

// Check parses and type-checks an in-memory package. files maps file names to
// source text. Imports are resolved from source, so only the standard library
// and packages visible to the current module can be imported.
//
// Type errors do not fail Check; they are collected in Program.Errors. A file
// that cannot be parsed at all is returned as an error.
func Check(path string, files map[string]string) (*Program, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	parsed := make([]*ast.File, 0, len(names))
	for _, name := range names {
		f, err := parser.ParseFile(fset, name, files[name], parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		parsed = append(parsed, f)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("package %s has no files", path)
	}

	prog := &Program{
		Path:  path,
		Name:  parsed[0].Name.Name,
		Fset:  fset,
		Files: parsed,
		Info:  NewInfo(),
	}

	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			prog.Errors = append(prog.Errors, err)
		},
	}
	// With an Error handler set, Check keeps going and returns a usable package.
	prog.Types, _ = conf.Check(path, fset, parsed, prog.Info)

	return prog, nil
}
