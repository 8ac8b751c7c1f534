package admin

import (
	"context"
	"fmt"
	"net/http"
)

// Parameters groups the scoped parameter operations.
type Parameters struct {
	core *core
}

// GetAll lists every scoped parameter.
func (r *Parameters) GetAll(ctx context.Context) Result[[]ParameterInfo] {
	return list[ParameterInfo](ctx, r.core, "parameters")
}

// Create sets the parameter described by configure.
func (r *Parameters) Create(ctx context.Context, configure func(*ParameterCreateAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &ParameterCreateAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	def := action.Definition()
	req := Request{
		Method: http.MethodPut,
		Path: fmt.Sprintf("api/parameters/%s/%s/%s",
			escapeSegment(def.Component), SanitizeVirtualHost(def.VirtualHost), escapeSegment(def.Name)),
		Body: def,
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to create scoped parameter",
		"component", def.Component, "parameter", def.Name, "vhost", def.VirtualHost)
}

type parameterTarget struct {
	Component   string `validate:"present" field:"component"`
	VirtualHost string `validate:"present" field:"virtual host name"`
	Name        string `validate:"present" field:"parameter name"`
	Value       string `validate:"present" field:"parameter value"`
}

// ParameterCreateAction captures a scoped parameter request.
type ParameterCreateAction struct {
	component string
	vhost     string
	name      string
	value     Value

	definition ParameterDefinition
	errs       []*Error
}

// Parameter sets the parameter name and value.
func (a *ParameterCreateAction) Parameter(name string, value Value) {
	a.name = name
	a.value = value
}

// Component sets the plugin component owning the parameter, e.g. "federation-upstream".
func (a *ParameterCreateAction) Component(component string) { a.component = component }

// VirtualHost sets the virtual host the parameter is scoped to.
func (a *ParameterCreateAction) VirtualHost(name string) { a.vhost = name }

func (a *ParameterCreateAction) seal() {
	trimIdentifiers(&a.component, &a.vhost, &a.name)
	a.definition = ParameterDefinition{
		Component:   a.component,
		VirtualHost: a.vhost,
		Name:        a.name,
		Value:       a.value,
	}
	a.errs = collect(parameterTarget{
		Component:   a.component,
		VirtualHost: a.vhost,
		Name:        a.name,
		Value:       a.value.String(),
	})
}

// Definition returns the sealed parameter document.
func (a *ParameterCreateAction) Definition() ParameterDefinition { return a.definition }

// Errors returns the validation errors found when the action was sealed.
func (a *ParameterCreateAction) Errors() []*Error { return append([]*Error(nil), a.errs...) }
