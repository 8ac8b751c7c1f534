package admin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// RoutingType is an exchange type.
type RoutingType string

const (
	RoutingFanout    RoutingType = "fanout"
	RoutingDirect    RoutingType = "direct"
	RoutingTopic     RoutingType = "topic"
	RoutingHeaders   RoutingType = "headers"
	RoutingFederated RoutingType = "federated"
	RoutingMatch     RoutingType = "match"
)

// Valid reports whether t is one of the supported exchange types.
func (t RoutingType) Valid() bool {
	switch t {
	case RoutingFanout, RoutingDirect, RoutingTopic, RoutingHeaders, RoutingFederated, RoutingMatch:
		return true
	}
	return false
}

// Exchanges groups the exchange operations.
type Exchanges struct {
	core *core
}

// GetAll lists every exchange on the broker.
func (r *Exchanges) GetAll(ctx context.Context) Result[[]ExchangeInfo] {
	return list[ExchangeInfo](ctx, r.core, "exchanges")
}

// Create declares the exchange described by configure.
func (r *Exchanges) Create(ctx context.Context, configure func(*ExchangeCreateAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &ExchangeCreateAction{args: NewArguments(nil)}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodPut,
		Path:   scopedPath("exchanges", action.VirtualHost(), action.Name()),
		Body:   action.Definition(),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to create exchange",
		"exchange", action.Name(), "vhost", action.VirtualHost())
}

// Delete removes the exchange named by configure.
func (r *Exchanges) Delete(ctx context.Context, configure func(*ExchangeDeleteAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &ExchangeDeleteAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodDelete,
		Path:   scopedPath("exchanges", action.VirtualHost(), action.Name()),
		Query:  action.Query(),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to delete exchange",
		"exchange", action.Name(), "vhost", action.VirtualHost())
}

type exchangeTarget struct {
	Name        string `validate:"present" field:"exchange name"`
	VirtualHost string `validate:"present" field:"virtual host name"`
}

type exchangeRef struct {
	name  string
	vhost string

	sealed bool
	errs   []*Error
}

// Exchange names the target exchange.
func (e *exchangeRef) Exchange(name string) { e.name = name }

// Targeting sets where the exchange lives.
func (e *exchangeRef) Targeting(fn func(*ExchangeTarget)) {
	if fn != nil {
		fn(&ExchangeTarget{ref: e})
	}
}

// Name returns the sealed exchange name.
func (e *exchangeRef) Name() string {
	if !e.sealed {
		return ""
	}
	return e.name
}

// VirtualHost returns the sealed virtual host.
func (e *exchangeRef) VirtualHost() string {
	if !e.sealed {
		return ""
	}
	return e.vhost
}

// Errors returns the validation errors found when the action was sealed.
func (e *exchangeRef) Errors() []*Error { return append([]*Error(nil), e.errs...) }

func (e *exchangeRef) seal(extra ...[]*Error) {
	trimIdentifiers(&e.name, &e.vhost)
	e.errs = collect(exchangeTarget{Name: e.name, VirtualHost: e.vhost}, extra...)
	e.sealed = true
}

// ExchangeTarget locates an exchange.
type ExchangeTarget struct {
	ref *exchangeRef
}

// VirtualHost sets the virtual host the exchange belongs to.
func (t *ExchangeTarget) VirtualHost(name string) { t.ref.vhost = name }

// ExchangeCreateAction captures an exchange declaration.
type ExchangeCreateAction struct {
	exchangeRef

	routingType RoutingType
	durable     bool
	autoDelete  bool
	internal    bool
	args        *Arguments

	definition ExchangeDefinition
}

// Configure sets the exchange options.
func (a *ExchangeCreateAction) Configure(fn func(*ExchangeConfigurator)) {
	if fn != nil {
		fn(&ExchangeConfigurator{action: a})
	}
}

// Definition returns the sealed declaration document.
func (a *ExchangeCreateAction) Definition() ExchangeDefinition { return a.definition }

func (a *ExchangeCreateAction) seal() {
	var invalid []*Error
	switch {
	case strings.TrimSpace(string(a.routingType)) == "":
		invalid = append(invalid, newMissingFieldError("routing type", "the routing type is missing"))
	case !a.routingType.Valid():
		invalid = append(invalid, newInvalidArgumentError("routing type",
			fmt.Sprintf("unsupported routing type '%s'", a.routingType)))
	}

	a.definition = ExchangeDefinition{
		RoutingType: a.routingType,
		Durable:     a.durable,
		AutoDelete:  a.autoDelete,
		Internal:    a.internal,
		arguments:   a.args.Snapshot(),
	}
	a.exchangeRef.seal(invalid, a.args.Errors())
}

// ExchangeConfigurator exposes the exchange options.
type ExchangeConfigurator struct {
	action *ExchangeCreateAction
}

// HasRoutingType sets the exchange type.
func (c *ExchangeConfigurator) HasRoutingType(t RoutingType) { c.action.routingType = t }

// IsDurable makes the exchange survive a broker restart.
func (c *ExchangeConfigurator) IsDurable() { c.action.durable = true }

// AutoDeleteWhenNotInUse deletes the exchange once its last binding is removed.
func (c *ExchangeConfigurator) AutoDeleteWhenNotInUse() { c.action.autoDelete = true }

// IsForInternalUse prevents clients from publishing to the exchange directly.
func (c *ExchangeConfigurator) IsForInternalUse() { c.action.internal = true }

// WithArguments attaches exchange arguments.
func (c *ExchangeConfigurator) WithArguments(fn func(*ExchangeArguments)) {
	if fn != nil {
		fn(&ExchangeArguments{args: c.action.args})
	}
}

// ExchangeArguments sets arguments on an exchange declaration.
type ExchangeArguments struct {
	args *Arguments
}

// Set stores an arbitrary argument.
func (e *ExchangeArguments) Set(key string, value Value) { e.args.Set(key, value) }

// SetAlternateExchange names the exchange that receives unroutable messages.
func (e *ExchangeArguments) SetAlternateExchange(exchange string) {
	e.args.Set("alternate-exchange", String(strings.TrimSpace(exchange)))
}

// ExchangeDeleteAction captures an exchange delete request.
type ExchangeDeleteAction struct {
	exchangeRef

	ifUnused bool
	query    string
}

// WithConditions restricts when the broker may delete the exchange.
func (a *ExchangeDeleteAction) WithConditions(fn func(*ExchangeDeleteConditions)) {
	if fn != nil {
		fn(&ExchangeDeleteConditions{action: a})
	}
}

// Query returns the sealed delete condition as a query string.
func (a *ExchangeDeleteAction) Query() string { return a.query }

func (a *ExchangeDeleteAction) seal() {
	if a.ifUnused {
		a.query = "if-unused=true"
	}
	a.exchangeRef.seal()
}

// ExchangeDeleteConditions lists the delete preconditions.
type ExchangeDeleteConditions struct {
	action *ExchangeDeleteAction
}

// IsNotInUse only deletes an exchange without bindings.
func (c *ExchangeDeleteConditions) IsNotInUse() { c.action.ifUnused = true }
