package admin

import (
	"context"
	"net/http"
)

// VirtualHosts groups the virtual host operations.
type VirtualHosts struct {
	core *core
}

// GetAll lists every virtual host.
func (r *VirtualHosts) GetAll(ctx context.Context) Result[[]VirtualHostInfo] {
	return list[VirtualHostInfo](ctx, r.core, "vhosts")
}

// Create creates the virtual host described by configure.
func (r *VirtualHosts) Create(ctx context.Context, configure func(*VirtualHostCreateAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &VirtualHostCreateAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodPut,
		Path:   "api/vhosts/" + SanitizeVirtualHost(action.Name()),
		Body:   action.Definition(),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to create virtual host", "vhost", action.Name())
}

// Delete removes the virtual host named by configure. The default virtual
// host is never deleted.
func (r *VirtualHosts) Delete(ctx context.Context, configure func(*VirtualHostDeleteAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &VirtualHostDeleteAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodDelete,
		Path:   "api/vhosts/" + SanitizeVirtualHost(action.Name()),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to delete virtual host", "vhost", action.Name())
}

type virtualHostTarget struct {
	Name string `validate:"present" field:"virtual host name"`
}

// VirtualHostCreateAction captures a virtual host create request.
type VirtualHostCreateAction struct {
	name    string
	tracing bool

	sealed     bool
	definition VirtualHostDefinition
	errs       []*Error
}

// VirtualHost names the virtual host to create.
func (a *VirtualHostCreateAction) VirtualHost(name string) { a.name = name }

// Configure sets the virtual host options.
func (a *VirtualHostCreateAction) Configure(fn func(*VirtualHostConfigurator)) {
	if fn != nil {
		fn(&VirtualHostConfigurator{action: a})
	}
}

func (a *VirtualHostCreateAction) seal() {
	trimIdentifiers(&a.name)
	a.definition = VirtualHostDefinition{Tracing: a.tracing}
	a.errs = collect(virtualHostTarget{Name: a.name})
	a.sealed = true
}

// Name returns the target virtual host once sealed.
func (a *VirtualHostCreateAction) Name() string {
	if !a.sealed {
		return ""
	}
	return a.name
}

// Definition returns the sealed create document.
func (a *VirtualHostCreateAction) Definition() VirtualHostDefinition { return a.definition }

// Errors returns the validation errors found when the action was sealed.
func (a *VirtualHostCreateAction) Errors() []*Error { return append([]*Error(nil), a.errs...) }

// VirtualHostConfigurator exposes the virtual host options.
type VirtualHostConfigurator struct {
	action *VirtualHostCreateAction
}

// WithTracingEnabled turns on message tracing for the virtual host.
func (c *VirtualHostConfigurator) WithTracingEnabled() { c.action.tracing = true }

// VirtualHostDeleteAction captures a virtual host delete request.
type VirtualHostDeleteAction struct {
	name string

	sealed bool
	errs   []*Error
}

// VirtualHost names the virtual host to delete.
func (a *VirtualHostDeleteAction) VirtualHost(name string) { a.name = name }

func (a *VirtualHostDeleteAction) seal() {
	trimIdentifiers(&a.name)
	var protected []*Error
	if IsDefaultVirtualHost(a.name) {
		protected = append(protected, newError(ErrCodeDefaultVHost, "cannot delete the default virtual host", nil, map[string]interface{}{
			"vhost": a.name,
		}))
	}
	a.errs = collect(virtualHostTarget{Name: a.name}, protected)
	a.sealed = true
}

// Name returns the target virtual host once sealed.
func (a *VirtualHostDeleteAction) Name() string {
	if !a.sealed {
		return ""
	}
	return a.name
}

// Errors returns the validation errors found when the action was sealed.
func (a *VirtualHostDeleteAction) Errors() []*Error { return append([]*Error(nil), a.errs...) }
