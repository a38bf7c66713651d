package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	clierrors "github.com/toyz/autoinject/internal/errors"
	"github.com/toyz/autoinject/internal/generator"
	"github.com/toyz/autoinject/internal/marker"
	"github.com/toyz/autoinject/internal/models"
	"github.com/toyz/autoinject/internal/program"
	"github.com/toyz/autoinject/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	config         *Config
	moduleResolver *ModuleResolver
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	pass           *generator.Pass
	summary        models.GenerationSummary
	failures       *clierrors.MultipleErrors
}

// NewGenerator creates a new CLI generator with diagnostics matching cfg
func NewGenerator(cfg *Config) *Generator {
	return NewGeneratorWithDiagnostics(cfg, cfg.Diagnostics())
}

// NewGeneratorWithDiagnostics creates a new CLI generator using the given
// diagnostic system for all output
func NewGeneratorWithDiagnostics(cfg *Config, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		config:         cfg,
		moduleResolver: NewModuleResolver(),
		reporter:       NewDiagnosticReporterTo(cfg.Verbose, diagnostics.ErrOut()),
		diagnostics:    diagnostics,
		pass:           generator.NewPass(generator.Options{}),
	}
}

// SetDispatcher replaces the registration strategies used by the passes
func (g *Generator) SetDispatcher(dispatcher generator.Dispatcher) {
	g.pass = generator.NewPass(generator.Options{Dispatcher: dispatcher})
}

// Reporter returns the reporter used for pass diagnostics and fatal errors
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// Summary returns the summary of the last run
func (g *Generator) Summary() models.GenerationSummary {
	return g.summary
}

// Run generates marker and registration files for every package matched by
// the configured patterns. It returns an error when loading or writing fails,
// or when any pass reported an error diagnostic.
func (g *Generator) Run(ctx context.Context) error {
	start := time.Now()
	g.summary = models.GenerationSummary{RunID: uuid.NewString()}
	g.failures = clierrors.NewMultipleErrors()
	defer func() { g.summary.Duration = time.Since(start) }()

	g.diagnostics.Debug("run %s", g.summary.RunID)

	dir, err := g.config.AbsDir()
	if err != nil {
		return clierrors.WrapFileSystemError("resolve", g.config.Dir, err)
	}

	// Phase 0: module checks
	if g.config.ModuleCheck {
		g.checkModule(dir)
	}

	loadCfg := program.LoadConfig{Dir: dir, Tags: g.config.Tags}

	// Phase 1: discover packages and prepare the overlay
	g.diagnostics.Verbose("Listing packages %v", g.config.Patterns)
	refs, err := program.List(ctx, loadCfg, g.config.Patterns)
	if err != nil {
		return clierrors.WrapLoadError(g.config.Patterns, err)
	}
	if len(refs) == 0 {
		g.diagnostics.Warn("no packages matched %v", g.config.Patterns)
		return nil
	}

	overlay, err := BuildOverlay(refs)
	if err != nil {
		return err
	}
	g.diagnostics.PhaseItem("Found %d package(s)", len(refs))

	// Phase 2: load with the marker in place and run one pass per package
	progs, err := program.Load(ctx, loadCfg, g.config.Patterns, overlay)
	if err != nil {
		return clierrors.WrapLoadError(g.config.Patterns, err)
	}

	for _, prog := range progs {
		result, err := g.pass.Run(ctx, prog)
		if err != nil {
			return err
		}
		if err := g.processResult(result); err != nil {
			return err
		}
	}

	g.diagnostics.PhaseItem("Processed %d package(s)", g.summary.PackagesProcessed)

	return g.failures.ErrOrNil()
}

// BuildOverlay returns the file contents the second load sees: the marker
// source in every package directory, and an empty stub in place of a previous
// registration file so stale output cannot break type-checking
func BuildOverlay(refs []program.Ref) (map[string][]byte, error) {
	overlay := make(map[string][]byte, len(refs))
	for _, ref := range refs {
		src, err := marker.Source(ref.Name)
		if err != nil {
			return nil, clierrors.WrapGenerateError(ref.Path, marker.FileName, err)
		}
		overlay[filepath.Join(ref.Dir, marker.FileName)] = src

		genPath := filepath.Join(ref.Dir, generator.FileName)
		if _, err := os.Stat(genPath); err == nil {
			overlay[genPath] = []byte(fmt.Sprintf("package %s\n", ref.Name))
		}
	}
	return overlay, nil
}

func (g *Generator) checkModule(dir string) {
	info, err := g.moduleResolver.Resolve(dir)
	if err != nil {
		g.diagnostics.Warn("%v", err)
		return
	}
	g.diagnostics.Verbose("Module %s (%s)", info.Path, info.GoModPath)
	if warning := g.moduleResolver.ContainerWarning(info); warning != "" {
		g.diagnostics.Warn("%s", warning)
	}
}

func (g *Generator) processResult(result *models.PassResult) error {
	g.summary.Record(result)

	g.reportDiagnostics(result.Diagnostics)
	for _, d := range result.Diagnostics {
		if d.Severity == models.SeverityError {
			failure := clierrors.WrapGenerateError(result.PackagePath, generator.FileName, d)
			failure.WithLocation(diagnosticLocation(d, result.Dir)).
				WithContext("run_id", g.summary.RunID).
				WithSuggestion("The previous " + generator.FileName + " was kept; fix the cause and run autoinject again")
			g.failures.Add(failure)
		}
	}
	for _, skipped := range result.Skipped {
		g.diagnostics.Verbose("skipped %s.%s: lifetime %s has no registration strategy",
			result.PackagePath, skipped.Name(), skipped.Metadata.Lifetime)
	}

	for _, unit := range result.Units {
		if err := g.emit(result, unit); err != nil {
			return err
		}
	}

	// A package that declares the marker's names itself must not keep a
	// marker file from an earlier run
	if _, ok := result.Unit(models.UnitMarker); !ok {
		if err := g.removeStale(filepath.Join(result.Dir, marker.FileName)); err != nil {
			return err
		}
	}

	// A failed pass keeps its previous registration file
	if _, ok := result.Unit(models.UnitRegistration); !ok && !result.Diagnostics.HasErrors() {
		return g.removeStale(filepath.Join(result.Dir, generator.FileName))
	}
	return nil
}

// diagnosticLocation points a failure at the diagnostic, or at the package
// directory when the diagnostic has no position
func diagnosticLocation(d models.Diagnostic, dir string) clierrors.SourceLocation {
	if d.Position.Filename == "" {
		return clierrors.SourceLocation{File: dir}
	}
	return clierrors.SourceLocation{File: d.Position.Filename, Line: d.Position.Line, Column: d.Position.Column}
}

func (g *Generator) reportDiagnostics(diags models.Diagnostics) {
	for _, d := range diags {
		switch {
		case d.Severity == models.SeverityError && g.diagnostics.Level() >= utils.DiagnosticError:
			g.reporter.ReportDiagnostic(d)
		case d.Severity == models.SeverityWarning && g.diagnostics.Level() >= utils.DiagnosticWarn:
			g.reporter.ReportDiagnostic(d)
		}
	}
}

func (g *Generator) emit(result *models.PassResult, unit models.EmittedUnit) error {
	path := filepath.Join(result.Dir, unit.FileName)

	if g.config.DryRun {
		fmt.Fprintf(g.diagnostics.Out(), "// %s\n%s\n", path, unit.Content)
		return nil
	}

	changed, err := utils.WriteFileIfChanged(path, unit.Content)
	if err != nil {
		return clierrors.WrapFileSystemError("write", path, err)
	}
	g.summary.UnitsWritten++
	if changed {
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
		g.diagnostics.FileWritten("write", path)
	} else {
		g.diagnostics.Verbose("unchanged %s", path)
	}
	return nil
}

func (g *Generator) removeStale(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if g.config.DryRun {
		g.diagnostics.Info("would remove %s", path)
		return nil
	}
	if err := os.Remove(path); err != nil {
		return clierrors.WrapFileSystemError("remove", path, err)
	}
	g.summary.RemovedFiles = append(g.summary.RemovedFiles, path)
	g.diagnostics.FileWritten("remove", path)
	return nil
}

// ReportSummary prints the final statistics of the last run
func (g *Generator) ReportSummary() {
	s := g.summary
	stats := map[string]interface{}{
		"Packages processed": s.PackagesProcessed,
		"Files written":      len(s.GeneratedFiles),
		"Files removed":      len(s.RemovedFiles),
		"Types registered":   s.TargetsRegistered,
		"Types skipped":      s.TargetsSkipped,
		"Warnings":           s.Warnings,
		"Errors":             s.Errors,
		"Duration":           s.Duration.Round(time.Millisecond),
	}
	if g.config.Verbose {
		stats["Run ID"] = s.RunID
	}
	g.diagnostics.Summary("Generation Complete!", stats)

	if g.config.Verbose && len(s.GeneratedFiles) > 0 {
		g.diagnostics.Subsection("Generated Files")
		for _, file := range s.GeneratedFiles {
			g.diagnostics.List("%s", file)
		}
	}
}
