// Package generator turns resolved targets into the AutoInject registration
// routine of a package.
package generator

import (
	"context"
	"fmt"

	"github.com/toyz/autoinject/internal/container"
	"github.com/toyz/autoinject/internal/marker"
	"github.com/toyz/autoinject/internal/models"
	"github.com/toyz/autoinject/internal/program"
	"github.com/toyz/autoinject/internal/templates"
	"github.com/toyz/autoinject/internal/utils"
)

// FileName is the file the registration routine is emitted to
const FileName = "autoinject_gen.go"

// Generator aggregates registration fragments into one unit
type Generator struct {
	dispatcher Dispatcher
}

// Aggregation is the outcome of aggregating one target set
type Aggregation struct {
	Unit      *models.EmittedUnit // nil when no fragment was produced
	Fragments []models.Fragment
	Skipped   []models.Target // targets without a strategy
}

// NewGenerator creates a generator using the godi strategies
func NewGenerator() *Generator {
	return &Generator{dispatcher: StrategyDispatcher{}}
}

// NewGeneratorWithDispatcher creates a generator with a custom dispatcher
func NewGeneratorWithDispatcher(dispatcher Dispatcher) *Generator {
	return &Generator{dispatcher: dispatcher}
}

// Aggregate dispatches every target once and assembles the fragments into the
// AutoInject routine. An empty set, or a set where every target is skipped,
// produces no unit.
func (g *Generator) Aggregate(ctx context.Context, prog *program.Program, set *models.TargetSet) (*Aggregation, error) {
	agg := &Aggregation{}
	if set == nil || set.Len() == 0 {
		return agg, nil
	}

	im := templates.NewImportManager(prog.Types)
	im.Reserve(templates.RoutineLocals...)
	var statements []string

	for _, target := range set.Targets() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fragment, ok, err := g.dispatcher.Dispatch(target, im)
		if err != nil {
			return nil, err
		}
		if !ok {
			agg.Skipped = append(agg.Skipped, target)
			continue
		}
		agg.Fragments = append(agg.Fragments, fragment)
		statements = append(statements, fragment.Statement)
	}

	if len(agg.Fragments) == 0 {
		return agg, nil
	}

	containerName := im.AddImport(container.PackagePath, container.PackageName)
	src, err := templates.Execute(templates.RegistrationUnitTemplate, templates.RegistrationUnitData{
		PackageName:    prog.Name,
		Imports:        im.GenerateImports(),
		MarkerType:     marker.TypeName,
		Container:      containerName,
		CollectionType: container.CollectionType,
		Collection:     templates.CollectionParam,
		Statements:     statements,
	})
	if err != nil {
		return nil, err
	}

	formatted, err := utils.FormatGoSource(FileName, []byte(src))
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", FileName, err)
	}

	agg.Unit = &models.EmittedUnit{
		Kind:        models.UnitRegistration,
		PackageName: prog.Name,
		FileName:    FileName,
		Content:     formatted,
	}
	return agg, nil
}
