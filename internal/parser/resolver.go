package parser

import (
	"context"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/toyz/autoinject/internal/annotations"
	"github.com/toyz/autoinject/internal/models"
	"github.com/toyz/autoinject/internal/program"
)

// Resolver turns candidates into targets by checking their annotations
// against the marker type by identity
type Resolver struct {
	prog   *program.Program
	marker *types.TypeName
}

// NewResolver creates a resolver for prog. A nil marker is valid and makes
// every candidate resolve to nothing.
func NewResolver(prog *program.Program, marker *types.TypeName) *Resolver {
	return &Resolver{prog: prog, marker: marker}
}

// Resolve builds the target set for the candidates. Candidates that do not
// resolve, or carry no marker annotation, are dropped without error. Only
// cancellation stops resolution.
func (r *Resolver) Resolve(ctx context.Context, candidates []*models.Candidate) (*models.TargetSet, error) {
	set := &models.TargetSet{}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if target, ok := r.ResolveCandidate(c); ok {
			set.Add(target)
		}
	}

	return set, nil
}

// ResolveCandidate resolves a single candidate
func (r *Resolver) ResolveCandidate(c *models.Candidate) (models.Target, bool) {
	if r.marker == nil {
		return models.Target{}, false
	}

	symbol, ok := r.symbol(c)
	if !ok {
		return models.Target{}, false
	}

	for _, ann := range c.Annotations {
		if !r.isMarker(c.Spec.Pos(), ann) {
			continue
		}
		return models.Target{
			Symbol:   symbol,
			Metadata: r.metadata(c.Spec.Pos(), ann),
			Position: r.prog.Fset.Position(c.Spec.Name.Pos()),
		}, true
	}

	return models.Target{}, false
}

// symbol returns the named type a candidate declares. An alias resolves to
// the type it names, so annotating a type and an alias of it yields one
// symbol. Generic types and aliases of unnamed types have no symbol.
func (r *Resolver) symbol(c *models.Candidate) (*types.TypeName, bool) {
	obj, ok := r.prog.Info.Defs[c.Spec.Name].(*types.TypeName)
	if !ok {
		return nil, false
	}

	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return nil, false
	}
	if named.TypeParams().Len() > 0 || named.TypeArgs().Len() > 0 {
		return nil, false
	}
	return named.Obj(), true
}

// isMarker evaluates the annotation name in the declaration's scope and
// compares the resulting type with the marker by identity
func (r *Resolver) isMarker(pos token.Pos, ann *annotations.ParsedAnnotation) bool {
	tv, err := types.Eval(r.prog.Fset, r.prog.Types, pos, ann.Name)
	if err != nil || !tv.IsType() {
		return false
	}
	named, ok := types.Unalias(tv.Type).(*types.Named)
	return ok && named.Obj() == r.marker
}

// metadata reads the marker arguments: the first enumeration constant is the
// lifetime and the first type is the abstraction. Arguments that do not
// evaluate are ignored.
func (r *Resolver) metadata(pos token.Pos, ann *annotations.ParsedAnnotation) models.MarkerMetadata {
	var (
		meta        models.MarkerMetadata
		hasLifetime bool
	)

	for _, arg := range ann.Args {
		tv, err := types.Eval(r.prog.Fset, r.prog.Types, pos, arg.Expr)
		if err != nil {
			continue
		}

		switch {
		case !hasLifetime && tv.Value != nil && isEnumType(tv.Type):
			meta.Lifetime = lifetimeOf(tv.Value)
			hasLifetime = true
		case meta.Abstraction == nil && tv.IsType():
			meta.Abstraction = tv.Type
		}
	}

	return meta
}

// isEnumType reports whether t is a defined integer type
func isEnumType(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	basic, ok := named.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsInteger != 0
}

func lifetimeOf(v constant.Value) models.Lifetime {
	n, exact := constant.Int64Val(constant.ToInt(v))
	if !exact {
		return models.LifetimeUnknown
	}
	return models.Lifetime(n)
}
