package cli

import (
	"fmt"

	"github.com/toyz/autoinject/internal/container"
	clierrors "github.com/toyz/autoinject/internal/errors"
	"github.com/toyz/autoinject/internal/utils"
)

// ModuleInfo describes the module generation runs in
type ModuleInfo struct {
	Path             string // module path from the module directive
	GoModPath        string // location of go.mod
	ContainerVersion string // required version of the container module, empty when not required
}

// RequiresContainer reports whether go.mod requires the container module
func (m *ModuleInfo) RequiresContainer() bool {
	return m.ContainerVersion != ""
}

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	goModParser *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		goModParser: utils.NewGoModParser(),
	}
}

// Resolve finds the go.mod governing dir and reads the module path and the
// container requirement from it
func (r *ModuleResolver) Resolve(dir string) (*ModuleInfo, error) {
	goModPath, err := r.goModParser.FindGoModFile(dir)
	if err != nil {
		return nil, clierrors.WrapModuleError(dir, err).
			WithSuggestion("Run autoinject inside a Go module, or create one with 'go mod init'")
	}

	modulePath, err := r.goModParser.ParseModuleName(goModPath)
	if err != nil {
		return nil, clierrors.WrapModuleError(goModPath, err)
	}

	version, _, err := r.goModParser.Requirement(goModPath, container.PackagePath)
	if err != nil {
		return nil, clierrors.WrapModuleError(goModPath, err)
	}

	return &ModuleInfo{
		Path:             modulePath,
		GoModPath:        goModPath,
		ContainerVersion: version,
	}, nil
}

// ContainerWarning returns the warning printed when generated code would not
// compile for lack of the container dependency, or "" when it is required
func (r *ModuleResolver) ContainerWarning(info *ModuleInfo) string {
	if info.RequiresContainer() {
		return ""
	}
	return fmt.Sprintf("module %s does not require %s; generated code will not build until you run 'go get %s'",
		info.Path, container.PackagePath, container.PackagePath)
}
