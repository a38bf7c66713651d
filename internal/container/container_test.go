package container

import (
	"reflect"
	"testing"

	"github.com/junioryono/godi/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoinject/internal/models"
)

func TestPackagePath(t *testing.T) {
	assert.Equal(t, "github.com/junioryono/godi/v3", PackagePath)
}

func TestRegistrationMethod(t *testing.T) {
	tests := []struct {
		lifetime models.Lifetime
		method   string
		ok       bool
	}{
		{models.LifetimeScoped, MethodScoped, true},
		{models.LifetimeSingleton, MethodSingleton, true},
		{models.LifetimeTransient, MethodTransient, true},
		{models.LifetimeUnknown, "", false},
		{models.Lifetime(0x99), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.lifetime.String(), func(t *testing.T) {
			method, ok := RegistrationMethod(tt.lifetime)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.method, method)
		})
	}
}

func TestRegistrationMethodsExistOnCollection(t *testing.T) {
	collection := reflect.TypeOf((*godi.Collection)(nil)).Elem()
	assert.Equal(t, CollectionType, collection.Name())

	for _, name := range []string{MethodScoped, MethodSingleton, MethodTransient} {
		_, ok := collection.MethodByName(name)
		assert.True(t, ok, "godi.Collection has no method %s", name)
	}
}

type greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (*englishGreeter) Greet() string { return "hello" }

type clock struct{}

type counter struct{ n int }

type tally interface {
	Count() int
}

func (c *counter) Count() int { return c.n }

func newEnglishGreeter() *englishGreeter { return &englishGreeter{} }

// The statements below have the exact shape of generated registrations.
func registerAll(services godi.Collection) error {
	if err := services.AddSingleton(newEnglishGreeter, godi.As(new(greeter))); err != nil {
		return err
	}
	if err := services.AddSingleton(func() *clock { return new(clock) }); err != nil {
		return err
	}
	if err := services.AddTransient(func() *counter { return new(counter) }); err != nil {
		return err
	}
	return nil
}

func TestGeneratedCallShapesAreAccepted(t *testing.T) {
	services := godi.NewCollection()
	require.NoError(t, registerAll(services))

	provider, err := services.Build()
	require.NoError(t, err)
	defer provider.Close()

	g, err := godi.Resolve[greeter](provider)
	require.NoError(t, err)
	assert.Equal(t, "hello", g.Greet())

	c1, err := godi.Resolve[*clock](provider)
	require.NoError(t, err)
	c2, err := godi.Resolve[*clock](provider)
	require.NoError(t, err)
	assert.Same(t, c1, c2, "singletons are shared")

	n1, err := godi.Resolve[*counter](provider)
	require.NoError(t, err)
	n2, err := godi.Resolve[*counter](provider)
	require.NoError(t, err)
	assert.NotSame(t, n1, n2, "transients are created per resolution")
}

func TestScopedAndBoundRegistrationsBuild(t *testing.T) {
	services := godi.NewCollection()
	require.NoError(t, services.AddTransient(newEnglishGreeter, godi.As(new(greeter))))
	require.NoError(t, services.AddScoped(func() *counter { return new(counter) }, godi.As(new(tally))))
	require.NoError(t, services.AddScoped(func() *clock { return new(clock) }))

	provider, err := services.Build()
	require.NoError(t, err)
	require.NoError(t, provider.Close())
}
