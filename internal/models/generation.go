package models

import (
	"go/token"
	"go/types"
	"time"
)

// MarkerMetadata is the information carried by a matched @Injectable annotation
type MarkerMetadata struct {
	Lifetime    Lifetime   // lifetime argument, LifetimeUnknown when missing
	Abstraction types.Type // abstraction type argument, nil when absent
}

// HasAbstraction reports whether the registration binds an abstraction
func (m MarkerMetadata) HasAbstraction() bool {
	return m.Abstraction != nil
}

// Target is a resolved type symbol that carries marker metadata
type Target struct {
	Symbol   *types.TypeName // identity of the marked type
	Metadata MarkerMetadata  // metadata of the first matching annotation
	Position token.Position  // position of the declaration that produced it
}

// Name returns the unqualified name of the target type
func (t Target) Name() string {
	return t.Symbol.Name()
}

// TargetSet is an ordered set of targets keyed by symbol identity.
// The zero value is ready to use.
type TargetSet struct {
	order []*types.TypeName
	index map[*types.TypeName]Target
}

// Add inserts the target unless its symbol is already present. The first
// metadata seen for a symbol wins. It reports whether the target was added.
func (s *TargetSet) Add(t Target) bool {
	if s.index == nil {
		s.index = make(map[*types.TypeName]Target)
	}
	if _, ok := s.index[t.Symbol]; ok {
		return false
	}
	s.index[t.Symbol] = t
	s.order = append(s.order, t.Symbol)
	return true
}

// Lookup returns the target registered for the symbol
func (s *TargetSet) Lookup(sym *types.TypeName) (Target, bool) {
	t, ok := s.index[sym]
	return t, ok
}

// Len returns the number of distinct symbols
func (s *TargetSet) Len() int {
	return len(s.order)
}

// Targets returns the targets in insertion order
func (s *TargetSet) Targets() []Target {
	out := make([]Target, 0, len(s.order))
	for _, sym := range s.order {
		out = append(out, s.index[sym])
	}
	return out
}

// Fragment is one registration statement for exactly one target
type Fragment struct {
	Target    Target
	Statement string
}

// EmittedUnit is a generated source file handed back to the caller
type EmittedUnit struct {
	Kind        UnitKind
	PackageName string
	FileName    string // base name, relative to the package directory
	Content     []byte
}

// PassResult is everything one generation pass produced for a package
type PassResult struct {
	PackagePath string
	PackageName string
	Dir         string
	Units       []EmittedUnit
	Diagnostics Diagnostics
	Targets     int      // number of fragments in the registration unit
	Skipped     []Target // targets without a strategy, e.g. unknown lifetime
}

// Unit returns the emitted unit of the given kind
func (r *PassResult) Unit(kind UnitKind) (EmittedUnit, bool) {
	for _, u := range r.Units {
		if u.Kind == kind {
			return u, true
		}
	}
	return EmittedUnit{}, false
}

// GenerationSummary aggregates the results of one CLI run
type GenerationSummary struct {
	RunID             string
	PackagesProcessed int
	UnitsWritten      int
	TargetsRegistered int
	TargetsSkipped    int
	Warnings          int
	Errors            int
	GeneratedFiles    []string
	RemovedFiles      []string
	Duration          time.Duration
}

// Record folds one pass result into the summary
func (s *GenerationSummary) Record(r *PassResult) {
	s.PackagesProcessed++
	s.TargetsRegistered += r.Targets
	s.TargetsSkipped += len(r.Skipped)
	s.Warnings += r.Diagnostics.Count(SeverityWarning)
	s.Errors += r.Diagnostics.Count(SeverityError)
}
