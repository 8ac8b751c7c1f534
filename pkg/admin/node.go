package admin

import (
	"context"
	"net/http"
)

// Node groups read-only views of the broker node.
type Node struct {
	core *core
}

// Channels lists the open channels.
func (r *Node) Channels(ctx context.Context) Result[[]ChannelInfo] {
	return list[ChannelInfo](ctx, r.core, "channels")
}

// Connections lists the open client connections.
func (r *Node) Connections(ctx context.Context) Result[[]ConnectionInfo] {
	return list[ConnectionInfo](ctx, r.core, "connections")
}

// Consumers lists the active consumers.
func (r *Node) Consumers(ctx context.Context) Result[[]ConsumerInfo] {
	return list[ConsumerInfo](ctx, r.core, "consumers")
}

// Definitions exports the server definitions document.
func (r *Node) Definitions(ctx context.Context) Result[ServerDefinitionInfo] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[ServerDefinitionInfo](DebugInfo{}, err)
	}
	req := Request{Method: http.MethodGet, Path: "api/definitions"}
	return execGet[ServerDefinitionInfo](ctx, r.core, req, "sent request to return server definitions")
}

// Overview fetches the cluster details.
func (r *Node) Overview(ctx context.Context) Result[ClusterInfo] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[ClusterInfo](DebugInfo{}, err)
	}
	req := Request{Method: http.MethodGet, Path: "api/overview"}
	return execGet[ClusterInfo](ctx, r.core, req, "sent request to return cluster details")
}

// HealthCheck runs the broker aliveness test against the virtual host named
// by configure. A broker that answers with a failed status is still a
// successful result; callers check ServerHealth.Healthy.
func (r *Node) HealthCheck(ctx context.Context, configure func(*HealthCheckAction)) Result[ServerHealth] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[ServerHealth](DebugInfo{}, err)
	}

	action := &HealthCheckAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	if errs := action.Errors(); len(errs) > 0 {
		return Faulted[ServerHealth](DebugInfo{}, errs...)
	}
	req := Request{
		Method: http.MethodGet,
		Path:   "api/aliveness-test/" + SanitizeVirtualHost(action.VirtualHostName()),
	}
	return execGet[ServerHealth](ctx, r.core, req, "sent request to check server health", "vhost", action.VirtualHostName())
}

// HealthCheckAction captures an aliveness test request.
type HealthCheckAction struct {
	vhost string

	sealed bool
	errs   []*Error
}

// VirtualHost names the virtual host the aliveness test declares its queue in.
func (a *HealthCheckAction) VirtualHost(name string) { a.vhost = name }

func (a *HealthCheckAction) seal() {
	trimIdentifiers(&a.vhost)
	a.errs = collect(virtualHostTarget{Name: a.vhost})
	a.sealed = true
}

// VirtualHostName returns the sealed virtual host.
func (a *HealthCheckAction) VirtualHostName() string {
	if !a.sealed {
		return ""
	}
	return a.vhost
}

// Errors returns the validation errors found when the action was sealed.
func (a *HealthCheckAction) Errors() []*Error { return append([]*Error(nil), a.errs...) }
