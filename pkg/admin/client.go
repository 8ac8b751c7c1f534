// Package admin builds, validates and dispatches administrative operations
// against a RabbitMQ management API.
//
// Every operation follows the same pipeline: a fresh action is populated by a
// single configuration callback, sealed, validated, and only then handed to
// the Transport. Operations never return Go errors; they return a Result that
// is either a success or a fault carrying every problem found.
package admin

// Client is the entry point to the resource operations. It is safe for
// concurrent use as long as its Transport and Logger are.
type Client struct {
	core *core
}

// Option customises a Client.
type Option func(*Client)

// WithLogger routes operation log messages to log. A nil logger disables
// logging.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		if log == nil {
			log = noopLogger{}
		}
		c.core.logger = log
	}
}

// New creates a Client that dispatches requests through transport.
func New(transport Transport, opts ...Option) *Client {
	c := &Client{core: &core{transport: transport, logger: noopLogger{}}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VirtualHosts returns the virtual host operations.
func (c *Client) VirtualHosts() *VirtualHosts { return &VirtualHosts{core: c.core} }

// Queues returns the queue operations.
func (c *Client) Queues() *Queues { return &Queues{core: c.core} }

// Exchanges returns the exchange operations.
func (c *Client) Exchanges() *Exchanges { return &Exchanges{core: c.core} }

// Policies returns the policy operations.
func (c *Client) Policies() *Policies { return &Policies{core: c.core} }

// Users returns the user operations.
func (c *Client) Users() *Users { return &Users{core: c.core} }

// Parameters returns the scoped parameter operations.
func (c *Client) Parameters() *Parameters { return &Parameters{core: c.core} }

// Node returns the read-only node level operations.
func (c *Client) Node() *Node { return &Node{core: c.core} }
