package generator

import (
	"context"
	"fmt"

	"github.com/toyz/autoinject/internal/marker"
	"github.com/toyz/autoinject/internal/models"
	"github.com/toyz/autoinject/internal/parser"
	"github.com/toyz/autoinject/internal/program"
)

// Options configures a generation pass
type Options struct {
	// Dispatcher overrides the godi strategies, mainly for tests
	Dispatcher Dispatcher
}

// Pass runs the whole pipeline over one package snapshot. It keeps no state
// between runs.
type Pass struct {
	scanner   *parser.Scanner
	generator *Generator
}

// NewPass creates a generation pass
func NewPass(opts Options) *Pass {
	gen := NewGenerator()
	if opts.Dispatcher != nil {
		gen = NewGeneratorWithDispatcher(opts.Dispatcher)
	}
	return &Pass{
		scanner:   parser.NewScanner(),
		generator: gen,
	}
}

// Run emits the marker unit for prog and, when at least one annotated type
// resolves to a registration, the AutoInject unit. A package that declares any
// of the marker's names itself gets neither. Problems are reported as
// diagnostics on the result; only cancellation is returned as an error.
func (p *Pass) Run(ctx context.Context, prog *program.Program) (*models.PassResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &models.PassResult{
		PackagePath: prog.Path,
		PackageName: prog.Name,
		Dir:         prog.Dir,
	}

	if conflicts := marker.Conflicts(prog); len(conflicts) > 0 {
		result.Diagnostics = append(result.Diagnostics, models.Diagnostic{
			Code:     models.CodeMarkerUnavailable,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("%s not emitted for %s: the package already declares %s", marker.FileName, prog.Path, marker.Describe(prog.Fset, conflicts)),
			Position: prog.Fset.Position(conflicts[0].Pos()),
		})
		return result, nil
	}

	src, err := marker.Source(prog.Name)
	if err != nil {
		return nil, fmt.Errorf("render marker for %s: %w", prog.Path, err)
	}
	result.Units = append(result.Units, models.EmittedUnit{
		Kind:        models.UnitMarker,
		PackageName: prog.Name,
		FileName:    marker.FileName,
		Content:     src,
	})

	if prog.HasErrors() {
		result.Diagnostics = append(result.Diagnostics, models.Diagnostic{
			Code:     models.CodePackageErrors,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("package %s has %d error(s), generating from a partial snapshot: %v", prog.Path, len(prog.Errors), prog.Errors[0]),
		})
	}

	candidates, err := p.scanner.Scan(ctx, prog.Fset, prog.Files)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return result, nil
	}

	markerType, err := marker.Lookup(prog)
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, models.Diagnostic{
			Code:     models.CodeMarkerUnavailable,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("annotations in %s cannot be resolved: %v", prog.Path, err),
			Position: prog.Fset.Position(candidates[0].Spec.Name.Pos()),
		})
		return result, nil
	}

	set, err := parser.NewResolver(prog, markerType).Resolve(ctx, candidates)
	if err != nil {
		return nil, err
	}

	agg, diag, err := p.generator.SafeAggregate(ctx, prog, set)
	if err != nil {
		return nil, err
	}
	if diag != nil {
		result.Diagnostics = append(result.Diagnostics, *diag)
		return result, nil
	}

	result.Skipped = agg.Skipped
	result.Targets = len(agg.Fragments)
	if agg.Unit != nil {
		result.Units = append(result.Units, *agg.Unit)
	}
	return result, nil
}
