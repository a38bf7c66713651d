// Package container describes the dependency injection API that generated
// registration code calls into.
package container

import (
	"reflect"

	"github.com/junioryono/godi/v3"

	"github.com/toyz/autoinject/internal/models"
)

// PackagePath is the import path of the container package, taken from the
// real godi types so it follows the module version this tool is built with.
var PackagePath = reflect.TypeOf((*godi.Collection)(nil)).Elem().PkgPath()

const (
	// PackageName is the declared name of the container package
	PackageName = "godi"

	// CollectionType is the registration surface passed to AutoInject
	CollectionType = "Collection"

	// BindOption binds a registration to an abstraction: godi.As(new(I))
	BindOption = "As"
)

// Registration method names on godi.Collection
const (
	MethodScoped    = "AddScoped"
	MethodSingleton = "AddSingleton"
	MethodTransient = "AddTransient"
)

// RegistrationMethod returns the Collection method registering a constructor
// with the given lifetime. Unknown lifetimes have no method.
func RegistrationMethod(l models.Lifetime) (string, bool) {
	switch l {
	case models.LifetimeScoped:
		return MethodScoped, true
	case models.LifetimeSingleton:
		return MethodSingleton, true
	case models.LifetimeTransient:
		return MethodTransient, true
	default:
		return "", false
	}
}
