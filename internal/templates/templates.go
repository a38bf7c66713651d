// Package templates renders the source text of generated files
package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// Identifiers declared inside the generated AutoInject function
const (
	CollectionParam = "services"
	ErrVar          = "err"
)

// RoutineLocals lists the identifiers an import inside the registration unit
// must not be named after
var RoutineLocals = []string{CollectionParam, ErrVar}

// MarkerData feeds the marker unit template
type MarkerData struct {
	PackageName  string
	LifetimeType string
	MarkerType   string
}

// RegistrationData feeds the statement registering one type
type RegistrationData struct {
	Method      string // Collection method, e.g. AddSingleton
	Constructor string // constructor expression
	Abstraction string // qualified abstraction type, empty when unbound
	Container   string // local name of the container package
	BindOption  string // name of the binding option, e.g. As
	Fmt         string // local name of package fmt
	TypeName    string // name of the registered type, used in error messages
	Collection  string // name of the Collection parameter
	Err         string // name of the error local
}

// RegistrationUnitData feeds the aggregation routine template
type RegistrationUnitData struct {
	PackageName    string
	Imports        string
	MarkerType     string
	Container      string
	CollectionType string
	Collection     string // name of the Collection parameter
	Statements     []string
}

// Execute renders a template from the default registry
func Execute(name string, data interface{}) (string, error) {
	tmpl, ok := DefaultTemplateRegistry.Get(name)
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}
	return executeTemplate(name, tmpl, data)
}

func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
