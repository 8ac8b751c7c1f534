package admin

import (
	"context"
	"net/http"
	"strings"
)

// HighAvailabilityMode controls queue mirroring.
type HighAvailabilityMode string

const (
	HighAvailabilityAll     HighAvailabilityMode = "all"
	HighAvailabilityExactly HighAvailabilityMode = "exactly"
	HighAvailabilityNodes   HighAvailabilityMode = "nodes"
)

// HighAvailabilitySyncMode controls how new mirrors catch up.
type HighAvailabilitySyncMode string

const (
	HighAvailabilitySyncManual    HighAvailabilitySyncMode = "manual"
	HighAvailabilitySyncAutomatic HighAvailabilitySyncMode = "automatic"
)

// PolicyRules returns the argument rules applied to every policy definition.
func PolicyRules() *ArgumentRules {
	return &ArgumentRules{
		Exclusive: [][2]string{{"federation-upstream", "federation-upstream-set"}},
		Dependents: []DependentRule{{
			Key:      "ha-mode",
			Values:   []string{string(HighAvailabilityExactly), string(HighAvailabilityNodes)},
			Requires: "ha-params",
		}},
	}
}

// Policies groups the policy operations.
type Policies struct {
	core *core
}

// GetAll lists every policy on the broker.
func (r *Policies) GetAll(ctx context.Context) Result[[]PolicyInfo] {
	return list[PolicyInfo](ctx, r.core, "policies")
}

// Create creates the policy described by configure.
func (r *Policies) Create(ctx context.Context, configure func(*PolicyCreateAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &PolicyCreateAction{args: NewArguments(PolicyRules())}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodPut,
		Path:   scopedPath("policies", action.VirtualHost(), action.Name()),
		Body:   action.Definition(),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to create policy",
		"policy", action.Name(), "vhost", action.VirtualHost())
}

// Delete removes the policy named by configure.
func (r *Policies) Delete(ctx context.Context, configure func(*PolicyDeleteAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &PolicyDeleteAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodDelete,
		Path:   scopedPath("policies", action.VirtualHost(), action.Name()),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to delete policy",
		"policy", action.Name(), "vhost", action.VirtualHost())
}

type policyTarget struct {
	Name        string `validate:"present" field:"policy name"`
	VirtualHost string `validate:"present" field:"virtual host name"`
}

type policyRef struct {
	name  string
	vhost string

	sealed bool
	errs   []*Error
}

// Policy names the target policy.
func (p *policyRef) Policy(name string) { p.name = name }

// Targeting sets where the policy lives.
func (p *policyRef) Targeting(fn func(*PolicyTarget)) {
	if fn != nil {
		fn(&PolicyTarget{ref: p})
	}
}

// Name returns the sealed policy name.
func (p *policyRef) Name() string {
	if !p.sealed {
		return ""
	}
	return p.name
}

// VirtualHost returns the sealed virtual host.
func (p *policyRef) VirtualHost() string {
	if !p.sealed {
		return ""
	}
	return p.vhost
}

// Errors returns the validation errors found when the action was sealed.
func (p *policyRef) Errors() []*Error { return append([]*Error(nil), p.errs...) }

func (p *policyRef) seal(target interface{}, extra ...[]*Error) {
	p.errs = collect(target, extra...)
	p.sealed = true
}

// PolicyTarget locates a policy.
type PolicyTarget struct {
	ref *policyRef
}

// VirtualHost sets the virtual host the policy belongs to.
func (t *PolicyTarget) VirtualHost(name string) { t.ref.vhost = name }

type policyCreateTarget struct {
	Name        string `validate:"present" field:"policy name"`
	VirtualHost string `validate:"present" field:"virtual host name"`
	Pattern     string `validate:"present" field:"pattern"`
}

// PolicyCreateAction captures a policy create request.
type PolicyCreateAction struct {
	policyRef

	pattern  string
	applyTo  string
	priority int
	args     *Arguments

	definition PolicyDefinition
}

// Configure sets the policy options.
func (a *PolicyCreateAction) Configure(fn func(*PolicyConfigurator)) {
	if fn != nil {
		fn(&PolicyConfigurator{action: a})
	}
}

// Definition returns the sealed policy document.
func (a *PolicyCreateAction) Definition() PolicyDefinition { return a.definition }

func (a *PolicyCreateAction) seal() {
	trimIdentifiers(&a.name, &a.vhost)
	a.definition = PolicyDefinition{
		Pattern:  a.pattern,
		ApplyTo:  strings.TrimSpace(a.applyTo),
		Priority: a.priority,
		rules:    a.args.Snapshot(),
	}
	target := policyCreateTarget{Name: a.name, VirtualHost: a.vhost, Pattern: a.pattern}
	a.policyRef.seal(target, a.args.Errors())
}

// PolicyConfigurator exposes the policy options.
type PolicyConfigurator struct {
	action *PolicyCreateAction
}

// UsingPattern sets the regular expression matched against resource names.
func (c *PolicyConfigurator) UsingPattern(pattern string) { c.action.pattern = pattern }

// HasPriority sets the policy priority.
func (c *PolicyConfigurator) HasPriority(priority int) { c.action.priority = priority }

// AppliedTo restricts the policy to "queues", "exchanges" or "all".
func (c *PolicyConfigurator) AppliedTo(applyTo string) { c.action.applyTo = applyTo }

// WithArguments attaches the policy definition.
func (c *PolicyConfigurator) WithArguments(fn func(*PolicyArguments)) {
	if fn != nil {
		fn(&PolicyArguments{args: c.action.args})
	}
}

// PolicyArguments sets entries of a policy definition.
type PolicyArguments struct {
	args *Arguments
}

// Set stores an arbitrary definition entry.
func (p *PolicyArguments) Set(key string, value Value) { p.args.Set(key, value) }

// SetExpiry deletes matching queues after ms milliseconds unused.
func (p *PolicyArguments) SetExpiry(ms int64) { p.args.Set("expires", Int(ms)) }

// SetFederationUpstream federates with a single upstream.
func (p *PolicyArguments) SetFederationUpstream(name string) {
	p.args.Set("federation-upstream", String(strings.TrimSpace(name)))
}

// SetFederationUpstreamSet federates with a named upstream set.
func (p *PolicyArguments) SetFederationUpstreamSet(name string) {
	p.args.Set("federation-upstream-set", String(strings.TrimSpace(name)))
}

// SetHighAvailabilityMode sets the mirroring mode.
func (p *PolicyArguments) SetHighAvailabilityMode(mode HighAvailabilityMode) {
	p.args.Set("ha-mode", Mode(string(mode)))
}

// SetHighAvailabilityParams sets the mirror count used by the "exactly" mode.
func (p *PolicyArguments) SetHighAvailabilityParams(n int64) { p.args.Set("ha-params", Int(n)) }

// SetHighAvailabilityNodes sets the node names used by the "nodes" mode.
func (p *PolicyArguments) SetHighAvailabilityNodes(nodes ...string) {
	names := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if node = strings.TrimSpace(node); node != "" {
			names = append(names, node)
		}
	}
	p.args.Set("ha-params", List(names...))
}

// SetHighAvailabilitySyncMode sets how mirrors synchronise.
func (p *PolicyArguments) SetHighAvailabilitySyncMode(mode HighAvailabilitySyncMode) {
	p.args.Set("ha-sync-mode", Mode(string(mode)))
}

// SetMessageTimeToLive discards messages older than ms milliseconds.
func (p *PolicyArguments) SetMessageTimeToLive(ms int64) { p.args.Set("message-ttl", Int(ms)) }

// SetMessageMaxSizeInBytes caps the total body size of ready messages.
func (p *PolicyArguments) SetMessageMaxSizeInBytes(n int64) {
	p.args.Set("max-length-bytes", Int(n))
}

// SetMessageMaxSize caps the number of ready messages.
func (p *PolicyArguments) SetMessageMaxSize(n int64) { p.args.Set("max-length", Int(n)) }

// SetDeadLetterExchange routes rejected or expired messages to exchange.
func (p *PolicyArguments) SetDeadLetterExchange(exchange string) {
	p.args.Set("dead-letter-exchange", String(strings.TrimSpace(exchange)))
}

// SetDeadLetterRoutingKey overrides the routing key of dead-lettered messages.
func (p *PolicyArguments) SetDeadLetterRoutingKey(routingKey string) {
	p.args.Set("dead-letter-routing-key", String(strings.TrimSpace(routingKey)))
}

// SetQueueMode switches matching queues to lazy mode.
func (p *PolicyArguments) SetQueueMode() { p.args.Set("queue-mode", Mode(string(QueueModeLazy))) }

// SetAlternateExchange names the exchange that receives unroutable messages.
func (p *PolicyArguments) SetAlternateExchange(exchange string) {
	p.args.Set("alternate-exchange", String(strings.TrimSpace(exchange)))
}

// PolicyDeleteAction captures a policy delete request.
type PolicyDeleteAction struct {
	policyRef
}

func (a *PolicyDeleteAction) seal() {
	trimIdentifiers(&a.name, &a.vhost)
	a.policyRef.seal(policyTarget{Name: a.name, VirtualHost: a.vhost})
}
