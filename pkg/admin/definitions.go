package admin

import "encoding/json"

// QueueDefinition is the document sent when declaring a queue.
type QueueDefinition struct {
	Node       string
	Durable    bool
	AutoDelete bool
	arguments  map[string]Value
}

// Arguments returns a copy of the queue arguments.
func (d QueueDefinition) Arguments() map[string]Value { return cloneValues(d.arguments) }

// MarshalJSON implements json.Marshaler.
func (d QueueDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Node       string           `json:"node,omitempty"`
		Durable    bool             `json:"durable"`
		AutoDelete bool             `json:"auto_delete"`
		Arguments  map[string]Value `json:"arguments,omitempty"`
	}{d.Node, d.Durable, d.AutoDelete, d.arguments})
}

// ExchangeDefinition is the document sent when declaring an exchange.
type ExchangeDefinition struct {
	RoutingType RoutingType
	Durable     bool
	AutoDelete  bool
	Internal    bool
	arguments   map[string]Value
}

// Arguments returns a copy of the exchange arguments.
func (d ExchangeDefinition) Arguments() map[string]Value { return cloneValues(d.arguments) }

// MarshalJSON implements json.Marshaler.
func (d ExchangeDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       RoutingType      `json:"type"`
		Durable    bool             `json:"durable"`
		AutoDelete bool             `json:"auto_delete"`
		Internal   bool             `json:"internal"`
		Arguments  map[string]Value `json:"arguments,omitempty"`
	}{d.RoutingType, d.Durable, d.AutoDelete, d.Internal, d.arguments})
}

// PolicyDefinition is the document sent when creating a policy.
type PolicyDefinition struct {
	Pattern  string
	ApplyTo  string
	Priority int
	rules    map[string]Value
}

// Rules returns a copy of the policy's definition map.
func (d PolicyDefinition) Rules() map[string]Value { return cloneValues(d.rules) }

// MarshalJSON implements json.Marshaler.
func (d PolicyDefinition) MarshalJSON() ([]byte, error) {
	rules := d.rules
	if rules == nil {
		rules = map[string]Value{}
	}
	return json.Marshal(struct {
		Pattern    string           `json:"pattern"`
		ApplyTo    string           `json:"apply-to,omitempty"`
		Priority   int              `json:"priority"`
		Definition map[string]Value `json:"definition"`
	}{d.Pattern, d.ApplyTo, d.Priority, rules})
}

// VirtualHostDefinition is the document sent when creating a virtual host.
type VirtualHostDefinition struct {
	Tracing bool `json:"tracing"`
}

// UserDefinition is the document sent when creating a user.
type UserDefinition struct {
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
	Tags         string `json:"tags"`
}

// ParameterDefinition is the document sent when setting a scoped parameter.
type ParameterDefinition struct {
	Component   string `json:"component"`
	VirtualHost string `json:"vhost"`
	Name        string `json:"name"`
	Value       Value  `json:"value"`
}

func cloneValues(in map[string]Value) map[string]Value {
	if in == nil {
		return nil
	}
	out := make(map[string]Value, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
