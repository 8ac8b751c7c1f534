package admin

// VirtualHostInfo is one entry of api/vhosts.
type VirtualHostInfo struct {
	Name            string            `json:"name"`
	Tracing         bool              `json:"tracing"`
	Messages        int64             `json:"messages"`
	MessagesReady   int64             `json:"messages_ready"`
	MessagesUnacked int64             `json:"messages_unacknowledged"`
	ClusterState    map[string]string `json:"cluster_state,omitempty"`
}

// QueueInfo is one entry of api/queues.
type QueueInfo struct {
	Name          string                 `json:"name"`
	VirtualHost   string                 `json:"vhost"`
	Node          string                 `json:"node"`
	State         string                 `json:"state"`
	Durable       bool                   `json:"durable"`
	AutoDelete    bool                   `json:"auto_delete"`
	Exclusive     bool                   `json:"exclusive"`
	Messages      int64                  `json:"messages"`
	MessagesReady int64                  `json:"messages_ready"`
	Consumers     int64                  `json:"consumers"`
	Memory        int64                  `json:"memory"`
	Policy        string                 `json:"policy,omitempty"`
	Arguments     map[string]interface{} `json:"arguments,omitempty"`
}

// ExchangeInfo is one entry of api/exchanges.
type ExchangeInfo struct {
	Name        string                 `json:"name"`
	VirtualHost string                 `json:"vhost"`
	RoutingType string                 `json:"type"`
	Durable     bool                   `json:"durable"`
	AutoDelete  bool                   `json:"auto_delete"`
	Internal    bool                   `json:"internal"`
	Arguments   map[string]interface{} `json:"arguments,omitempty"`
}

// PolicyInfo is one entry of api/policies.
type PolicyInfo struct {
	Name        string                 `json:"name"`
	VirtualHost string                 `json:"vhost"`
	Pattern     string                 `json:"pattern"`
	ApplyTo     string                 `json:"apply-to"`
	Priority    int                    `json:"priority"`
	Definition  map[string]interface{} `json:"definition,omitempty"`
}

// UserInfo is one entry of api/users.
type UserInfo struct {
	Name             string      `json:"name"`
	PasswordHash     string      `json:"password_hash"`
	HashingAlgorithm string      `json:"hashing_algorithm"`
	Tags             interface{} `json:"tags"`
}

// ParameterInfo is one entry of api/parameters.
type ParameterInfo struct {
	Component   string      `json:"component"`
	VirtualHost string      `json:"vhost"`
	Name        string      `json:"name"`
	Value       interface{} `json:"value"`
}

// ChannelInfo is one entry of api/channels.
type ChannelInfo struct {
	Name              string `json:"name"`
	Node              string `json:"node"`
	Number            int64  `json:"number"`
	User              string `json:"user"`
	VirtualHost       string `json:"vhost"`
	State             string `json:"state"`
	Consumers         int64  `json:"consumer_count"`
	MessagesUnacked   int64  `json:"messages_unacknowledged"`
	PrefetchCount     int64  `json:"prefetch_count"`
	Transactional     bool   `json:"transactional"`
	ConfirmMode       bool   `json:"confirm"`
	ConnectionDetails struct {
		Name     string `json:"name"`
		PeerHost string `json:"peer_host"`
		PeerPort int    `json:"peer_port"`
	} `json:"connection_details"`
}

// ConnectionInfo is one entry of api/connections.
type ConnectionInfo struct {
	Name        string `json:"name"`
	Node        string `json:"node"`
	State       string `json:"state"`
	User        string `json:"user"`
	VirtualHost string `json:"vhost"`
	Protocol    string `json:"protocol"`
	Channels    int64  `json:"channels"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	PeerHost    string `json:"peer_host"`
	PeerPort    int    `json:"peer_port"`
	ConnectedAt int64  `json:"connected_at"`
}

// ConsumerInfo is one entry of api/consumers.
type ConsumerInfo struct {
	ConsumerTag    string `json:"consumer_tag"`
	Exclusive      bool   `json:"exclusive"`
	AckRequired    bool   `json:"ack_required"`
	PrefetchCount  int64  `json:"prefetch_count"`
	Active         bool   `json:"active"`
	ChannelDetails struct {
		Name           string `json:"name"`
		Number         int64  `json:"number"`
		ConnectionName string `json:"connection_name"`
		User           string `json:"user"`
	} `json:"channel_details"`
	Queue struct {
		Name        string `json:"name"`
		VirtualHost string `json:"vhost"`
	} `json:"queue"`
}

// ServerDefinitionInfo is the document returned by api/definitions.
type ServerDefinitionInfo struct {
	RabbitVersion    string                   `json:"rabbit_version"`
	Users            []map[string]interface{} `json:"users"`
	VirtualHosts     []map[string]interface{} `json:"vhosts"`
	Permissions      []map[string]interface{} `json:"permissions"`
	Parameters       []map[string]interface{} `json:"parameters"`
	GlobalParameters []map[string]interface{} `json:"global_parameters"`
	Policies         []map[string]interface{} `json:"policies"`
	Queues           []map[string]interface{} `json:"queues"`
	Exchanges        []map[string]interface{} `json:"exchanges"`
	Bindings         []map[string]interface{} `json:"bindings"`
}

// PeekedMessage is one message returned by a queue peek.
type PeekedMessage struct {
	PayloadBytes    int64                  `json:"payload_bytes"`
	Redelivered     bool                   `json:"redelivered"`
	Exchange        string                 `json:"exchange"`
	RoutingKey      string                 `json:"routing_key"`
	MessageCount    int64                  `json:"message_count"`
	Properties      map[string]interface{} `json:"properties,omitempty"`
	Payload         string                 `json:"payload"`
	PayloadEncoding string                 `json:"payload_encoding"`
}

// ServerHealth is the document returned by api/aliveness-test.
type ServerHealth struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Healthy reports whether the broker passed the aliveness test.
func (h ServerHealth) Healthy() bool { return h.Status == "ok" }

// ClusterInfo is the document returned by api/overview.
type ClusterInfo struct {
	ClusterName       string            `json:"cluster_name"`
	Node              string            `json:"node"`
	RabbitMQVersion   string            `json:"rabbitmq_version"`
	ErlangVersion     string            `json:"erlang_version"`
	ManagementVersion string            `json:"management_version"`
	ObjectTotals      ClusterObjects    `json:"object_totals"`
	Listeners         []ListenerInfo    `json:"listeners"`
	ExchangeTypes     []ExchangeTypeRef `json:"exchange_types,omitempty"`
}

// ClusterObjects counts the objects known to the cluster.
type ClusterObjects struct {
	Queues      int64 `json:"queues"`
	Consumers   int64 `json:"consumers"`
	Exchanges   int64 `json:"exchanges"`
	Connections int64 `json:"connections"`
	Channels    int64 `json:"channels"`
}

// ListenerInfo is one protocol listener of a cluster node.
type ListenerInfo struct {
	Node      string `json:"node"`
	Protocol  string `json:"protocol"`
	IPAddress string `json:"ip_address"`
	Port      int    `json:"port"`
}

// ExchangeTypeRef names an exchange type the cluster supports.
type ExchangeTypeRef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}
