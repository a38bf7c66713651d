package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoinject/internal/models"
	"github.com/toyz/autoinject/internal/templates"
)

const strategiesSource = `package app

type Repository interface{}

// @Injectable(InjectScoped)
type ScopedPlain struct{}

// @Injectable(InjectScoped, Repository)
type ScopedBound struct{}

// @Injectable(InjectSingleton)
type SingletonPlain struct{}

// @Injectable(InjectSingleton, Repository)
type SingletonBound struct{}

// @Injectable(InjectTransient)
type TransientPlain struct{}

// @Injectable(InjectTransient, Repository)
type TransientBound struct{}

// @Injectable(InjectLifetime(0x99), Repository)
type Unknown struct{}

// @Injectable(Repository)
type NoLifetime struct{}
`

func TestDispatchStrategies(t *testing.T) {
	prog := checkPackage(t, map[string]string{"app.go": strategiesSource})
	set := resolveTargets(t, prog)

	tests := []struct {
		name     string
		strategy string
		call     string
	}{
		{"ScopedPlain", "Scoped", "services.AddScoped(func() *ScopedPlain { return new(ScopedPlain) }); err != nil"},
		{"ScopedBound", "ScopedAs", "services.AddScoped(func() *ScopedBound { return new(ScopedBound) }, godi.As(new(Repository))); err != nil"},
		{"SingletonPlain", "Singleton", "services.AddSingleton(func() *SingletonPlain { return new(SingletonPlain) }); err != nil"},
		{"SingletonBound", "SingletonAs", "services.AddSingleton(func() *SingletonBound { return new(SingletonBound) }, godi.As(new(Repository))); err != nil"},
		{"TransientPlain", "Transient", "services.AddTransient(func() *TransientPlain { return new(TransientPlain) }); err != nil"},
		{"TransientBound", "TransientAs", "services.AddTransient(func() *TransientBound { return new(TransientBound) }, godi.As(new(Repository))); err != nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := targetFor(t, prog, set, tt.name)

			strategy, ok := SelectStrategy(target.Metadata)
			require.True(t, ok)
			assert.Equal(t, tt.strategy, strategy.Name())

			im := templates.NewImportManager(prog.Types)
			fragment, ok, err := StrategyDispatcher{}.Dispatch(target, im)
			require.NoError(t, err)
			require.True(t, ok)

			assert.Equal(t, target, fragment.Target)
			assert.Contains(t, fragment.Statement, "if err := "+tt.call)
			assert.Contains(t, fragment.Statement, `fmt.Errorf("autoinject: register `+tt.name+`: %w", err)`)
			assert.ElementsMatch(t, []string{"fmt", "github.com/junioryono/godi/v3"}, im.Paths())
		})
	}
}

func TestDispatchWithoutStrategy(t *testing.T) {
	prog := checkPackage(t, map[string]string{"app.go": strategiesSource})
	set := resolveTargets(t, prog)

	for _, name := range []string{"Unknown", "NoLifetime"} {
		t.Run(name, func(t *testing.T) {
			target := targetFor(t, prog, set, name)

			_, ok := SelectStrategy(target.Metadata)
			assert.False(t, ok)

			im := templates.NewImportManager(prog.Types)
			fragment, ok, err := StrategyDispatcher{}.Dispatch(target, im)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, fragment.Statement)
			assert.Empty(t, im.Paths(), "a skipped target adds no imports")
		})
	}
}

func TestDispatchIsDeterministic(t *testing.T) {
	prog := checkPackage(t, map[string]string{"app.go": strategiesSource})
	set := resolveTargets(t, prog)
	target := targetFor(t, prog, set, "SingletonBound")

	first, _, err := StrategyDispatcher{}.Dispatch(target, templates.NewImportManager(prog.Types))
	require.NoError(t, err)
	second, _, err := StrategyDispatcher{}.Dispatch(target, templates.NewImportManager(prog.Types))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDispatchConstructorDiscovery(t *testing.T) {
	prog := checkPackage(t, map[string]string{
		"app.go": `package app

import "errors"

// @Injectable(InjectSingleton)
type Pointer struct{}

func NewPointer(dep *Value) *Pointer { return &Pointer{} }

// @Injectable(InjectSingleton)
type Value struct{}

func NewValue() (Value, error) { return Value{}, errors.New("x") }

// @Injectable(InjectSingleton)
type WrongResult struct{}

func NewWrongResult() *Value { return nil }

// @Injectable(InjectSingleton)
type Generic struct{}

func NewGeneric[T any]() *Generic { return nil }

// @Injectable(InjectSingleton)
type NotAFunc struct{}

var NewNotAFunc = func() *NotAFunc { return nil }

// @Injectable(InjectSingleton)
type NoResult struct{}

func NewNoResult() {}
`,
	})
	set := resolveTargets(t, prog)

	tests := []struct {
		name string
		ctor string
	}{
		{"Pointer", "NewPointer"},
		{"Value", "NewValue"},
		{"WrongResult", "func() *WrongResult { return new(WrongResult) }"},
		{"Generic", "func() *Generic { return new(Generic) }"},
		{"NotAFunc", "func() *NotAFunc { return new(NotAFunc) }"},
		{"NoResult", "func() *NoResult { return new(NoResult) }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := targetFor(t, prog, set, tt.name)
			fragment, ok, err := StrategyDispatcher{}.Dispatch(target, templates.NewImportManager(prog.Types))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Contains(t, fragment.Statement, "services.AddSingleton("+tt.ctor+")")
		})
	}
}

func TestDispatchQualifiesForeignAbstraction(t *testing.T) {
	prog := checkPackage(t, map[string]string{
		"app.go": `package app

import "io"

var _ io.Closer

// @Injectable(InjectTransient, io.Closer)
type File struct{}

func (*File) Close() error { return nil }
`,
	})
	set := resolveTargets(t, prog)
	target := targetFor(t, prog, set, "File")

	im := templates.NewImportManager(prog.Types)
	fragment, ok, err := StrategyDispatcher{}.Dispatch(target, im)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Contains(t, fragment.Statement, "godi.As(new(io.Closer))")
	assert.Contains(t, im.Paths(), "io")
}

func TestStrategyName(t *testing.T) {
	assert.Equal(t, "Transient", Strategy{Lifetime: models.LifetimeTransient}.Name())
	assert.Equal(t, "ScopedAs", Strategy{Lifetime: models.LifetimeScoped, Bound: true}.Name())
}
