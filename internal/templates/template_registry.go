package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// Template names
const (
	MarkerUnitTemplate       = "marker-unit"
	RegistrationUnitTemplate = "registration-unit"
	RegistrationTemplate     = "registration"
)

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerMarkerTemplates()
	registry.registerRegistrationTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// registerMarkerTemplates registers the static marker definition
func (tr *TemplateRegistry) registerMarkerTemplates() {
	tr.templates[MarkerUnitTemplate] = `// Code generated by autoinject. DO NOT EDIT.

package {{.PackageName}}

// {{.LifetimeType}} selects how long the container reuses an instance of a
// type annotated with @{{.MarkerType}}.
type {{.LifetimeType}} int

const (
	InjectScoped    {{.LifetimeType}} = 0x01
	InjectSingleton {{.LifetimeType}} = 0x02
	InjectTransient {{.LifetimeType}} = 0x03
)

// {{.MarkerType}} marks a type for registration by the generated AutoInject
// function. It is used from a doc comment, optionally binding an abstraction:
//
//	// @{{.MarkerType}}(InjectSingleton, UserRepository)
//	type UserStore struct{}
type {{.MarkerType}} struct {
	Lifetime {{.LifetimeType}}
	As       any
}
`
}

// registerRegistrationTemplates registers the aggregation routine and the
// per-type registration statement
func (tr *TemplateRegistry) registerRegistrationTemplates() {
	tr.templates[RegistrationUnitTemplate] = `// Code generated by autoinject. DO NOT EDIT.

package {{.PackageName}}

{{.Imports}}
// AutoInject registers every type of this package annotated with @{{.MarkerType}}.
func AutoInject({{.Collection}} {{.Container}}.{{.CollectionType}}) error {
{{range .Statements}}{{.}}
{{end}}	return nil
}
`

	tr.templates[RegistrationTemplate] = `	if {{.Err}} := {{.Collection}}.{{.Method}}({{.Constructor}}{{if .Abstraction}}, {{.Container}}.{{.BindOption}}(new({{.Abstraction}})){{end}}); {{.Err}} != nil {
		return {{.Fmt}}.Errorf("autoinject: register {{.TypeName}}: %w", {{.Err}})
	}`
}

// Global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
