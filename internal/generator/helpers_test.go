package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/autoinject/internal/marker"
	"github.com/toyz/autoinject/internal/models"
	"github.com/toyz/autoinject/internal/parser"
	"github.com/toyz/autoinject/internal/program"
)

// checkPackage type-checks files as package example.com/app together with
// the marker definition
func checkPackage(t *testing.T, files map[string]string) *program.Program {
	t.Helper()

	src, err := marker.Source("app")
	require.NoError(t, err)

	all := map[string]string{marker.FileName: string(src)}
	for name, content := range files {
		all[name] = content
	}

	prog, err := program.Check("example.com/app", all)
	require.NoError(t, err)
	return prog
}

// resolveTargets runs the scanner and resolver over prog
func resolveTargets(t *testing.T, prog *program.Program) *models.TargetSet {
	t.Helper()

	tn, err := marker.Lookup(prog)
	require.NoError(t, err)

	ctx := context.Background()
	candidates, err := parser.NewScanner().Scan(ctx, prog.Fset, prog.Files)
	require.NoError(t, err)

	set, err := parser.NewResolver(prog, tn).Resolve(ctx, candidates)
	require.NoError(t, err)
	return set
}

// targetFor finds the target registered for a type name
func targetFor(t *testing.T, prog *program.Program, set *models.TargetSet, name string) models.Target {
	t.Helper()

	tn, ok := prog.LookupType(name)
	require.True(t, ok, "type %s not found", name)
	target, ok := set.Lookup(tn)
	require.True(t, ok, "no target for %s", name)
	return target
}
