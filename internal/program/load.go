package program

import (
	"context"
	"fmt"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadConfig controls how packages are located and loaded
type LoadConfig struct {
	Dir  string   // working directory patterns are resolved in
	Tags []string // build tags
	Env  []string // environment, nil means os.Environ
}

// Ref identifies a package before it is type-checked
type Ref struct {
	Path    string
	Name    string
	Dir     string
	GoFiles []string
}

const listMode = packages.NeedName | packages.NeedFiles

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedModule

func (c LoadConfig) packagesConfig(ctx context.Context, mode packages.LoadMode, overlay map[string][]byte) *packages.Config {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    mode,
		Dir:     c.Dir,
		Env:     c.Env,
		Overlay: overlay,
	}
	if len(c.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(c.Tags, ",")}
	}
	return cfg
}

// List resolves patterns to packages without type-checking them.
// Packages without Go files are left out.
func List(ctx context.Context, cfg LoadConfig, patterns []string) ([]Ref, error) {
	pkgs, err := packages.Load(cfg.packagesConfig(ctx, listMode, nil), patterns...)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	var refs []Ref
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 || pkg.Name == "" {
			continue
		}
		refs = append(refs, Ref{
			Path:    pkg.PkgPath,
			Name:    pkg.Name,
			Dir:     filepath.Dir(pkg.GoFiles[0]),
			GoFiles: pkg.GoFiles,
		})
	}
	return refs, nil
}

// Load type-checks the packages matched by patterns, with overlay replacing or
// adding file contents by absolute path. Package level problems (syntax or type
// errors) do not fail Load and are reported through Program.Errors.
func Load(ctx context.Context, cfg LoadConfig, patterns []string, overlay map[string][]byte) ([]*Program, error) {
	pkgs, err := packages.Load(cfg.packagesConfig(ctx, loadMode, overlay), patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progs := make([]*Program, 0, len(pkgs))
	for _, pkg := range pkgs {
		if len(pkg.Syntax) == 0 {
			continue
		}
		progs = append(progs, fromPackage(pkg))
	}
	return progs, nil
}

func fromPackage(pkg *packages.Package) *Program {
	prog := &Program{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Fset:  pkg.Fset,
		Files: pkg.Syntax,
		Types: pkg.Types,
		Info:  pkg.TypesInfo,
	}
	if len(pkg.GoFiles) > 0 {
		prog.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	if prog.Info == nil {
		prog.Info = NewInfo()
	}
	if prog.Types == nil {
		prog.Types = types.NewPackage(pkg.PkgPath, pkg.Name)
	}
	for _, perr := range pkg.Errors {
		prog.Errors = append(prog.Errors, perr)
	}
	return prog
}
