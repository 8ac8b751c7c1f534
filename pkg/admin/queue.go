package admin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// QueueMode selects how a queue stores its messages.
type QueueMode string

const (
	QueueModeDefault QueueMode = "default"
	QueueModeLazy    QueueMode = "lazy"
)

// Queues groups the queue operations.
type Queues struct {
	core *core
}

// GetAll lists every queue on the broker.
func (r *Queues) GetAll(ctx context.Context) Result[[]QueueInfo] {
	return list[QueueInfo](ctx, r.core, "queues")
}

// Create declares the queue described by configure.
func (r *Queues) Create(ctx context.Context, configure func(*QueueCreateAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &QueueCreateAction{args: NewArguments(nil)}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodPut,
		Path:   scopedPath("queues", action.VirtualHost(), action.Name()),
		Body:   action.Definition(),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to create queue",
		"queue", action.Name(), "vhost", action.VirtualHost())
}

// Delete removes the queue named by configure, honouring any delete
// conditions.
func (r *Queues) Delete(ctx context.Context, configure func(*QueueDeleteAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &QueueDeleteAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodDelete,
		Path:   scopedPath("queues", action.VirtualHost(), action.Name()),
		Query:  action.Query(),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to delete queue",
		"queue", action.Name(), "vhost", action.VirtualHost())
}

// Empty purges every message from the queue named by configure.
func (r *Queues) Empty(ctx context.Context, configure func(*QueueEmptyAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &QueueEmptyAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodDelete,
		Path:   scopedPath("queues", action.VirtualHost(), action.Name()) + "/contents",
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to empty queue",
		"queue", action.Name(), "vhost", action.VirtualHost())
}

// Peek fetches messages from the queue named by configure. The default ack
// mode requeues them.
func (r *Queues) Peek(ctx context.Context, configure func(*QueuePeekAction)) Result[[]PeekedMessage] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[[]PeekedMessage](DebugInfo{}, err)
	}

	action := &QueuePeekAction{
		request: PeekDefinition{Count: 1, AckMode: AckModeRequeue, Encoding: PeekEncodingAuto, Truncate: defaultPeekTruncate},
	}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodPost,
		Path:   scopedPath("queues", action.VirtualHost(), action.Name()) + "/get",
		Body:   action.Definition(),
	}
	return execList[PeekedMessage](ctx, r.core, action.Errors(), req, "sent request to peek queue",
		"queue", action.Name(), "vhost", action.VirtualHost())
}

type queueTarget struct {
	Name        string `validate:"present" field:"queue name"`
	VirtualHost string `validate:"present" field:"virtual host name"`
}

// queueRef holds the identifiers shared by every queue action.
type queueRef struct {
	name  string
	vhost string
	node  string

	sealed bool
	errs   []*Error
}

// Queue names the target queue.
func (q *queueRef) Queue(name string) { q.name = name }

// Targeting sets where the queue lives.
func (q *queueRef) Targeting(fn func(*QueueTarget)) {
	if fn != nil {
		fn(&QueueTarget{ref: q})
	}
}

// Name returns the sealed queue name.
func (q *queueRef) Name() string {
	if !q.sealed {
		return ""
	}
	return q.name
}

// VirtualHost returns the sealed virtual host.
func (q *queueRef) VirtualHost() string {
	if !q.sealed {
		return ""
	}
	return q.vhost
}

// Errors returns the validation errors found when the action was sealed.
func (q *queueRef) Errors() []*Error { return append([]*Error(nil), q.errs...) }

func (q *queueRef) seal(extra ...[]*Error) {
	trimIdentifiers(&q.name, &q.vhost)
	q.errs = collect(queueTarget{Name: q.name, VirtualHost: q.vhost}, extra...)
	q.sealed = true
}

// QueueTarget locates a queue.
type QueueTarget struct {
	ref *queueRef
}

// VirtualHost sets the virtual host the queue belongs to.
func (t *QueueTarget) VirtualHost(name string) { t.ref.vhost = name }

// Node pins a new queue to a cluster node. Only create requests use it.
func (t *QueueTarget) Node(name string) { t.ref.node = name }

// QueueCreateAction captures a queue declaration.
type QueueCreateAction struct {
	queueRef

	durable    bool
	autoDelete bool
	args       *Arguments

	definition QueueDefinition
}

// Configure sets the queue options.
func (a *QueueCreateAction) Configure(fn func(*QueueConfigurator)) {
	if fn != nil {
		fn(&QueueConfigurator{action: a})
	}
}

// Definition returns the sealed declaration document.
func (a *QueueCreateAction) Definition() QueueDefinition { return a.definition }

func (a *QueueCreateAction) seal() {
	a.definition = QueueDefinition{
		Node:       strings.TrimSpace(a.node),
		Durable:    a.durable,
		AutoDelete: a.autoDelete,
		arguments:  a.args.Snapshot(),
	}
	a.queueRef.seal(a.args.Errors())
}

// QueueConfigurator exposes the queue options.
type QueueConfigurator struct {
	action *QueueCreateAction
}

// IsDurable makes the queue survive a broker restart.
func (c *QueueConfigurator) IsDurable() { c.action.durable = true }

// AutoDeleteWhenNotInUse deletes the queue once its last consumer leaves.
func (c *QueueConfigurator) AutoDeleteWhenNotInUse() { c.action.autoDelete = true }

// WithArguments attaches queue arguments. Repeated calls add to the same set.
func (c *QueueConfigurator) WithArguments(fn func(*QueueArguments)) {
	if fn != nil {
		fn(&QueueArguments{args: c.action.args})
	}
}

// QueueArguments sets x-arguments on a queue declaration.
type QueueArguments struct {
	args *Arguments
}

// Set stores an arbitrary argument.
func (q *QueueArguments) Set(key string, value Value) { q.args.Set(key, value) }

// SetQueueExpiration deletes the queue after it has been unused for ms milliseconds.
func (q *QueueArguments) SetQueueExpiration(ms int64) { q.args.Set("x-expires", Int(ms)) }

// SetPerQueuedMessageExpiration discards messages older than ms milliseconds.
func (q *QueueArguments) SetPerQueuedMessageExpiration(ms int64) {
	q.args.Set("x-message-ttl", Int(ms))
}

// SetDeadLetterExchange routes rejected or expired messages to exchange.
func (q *QueueArguments) SetDeadLetterExchange(exchange string) {
	q.args.Set("x-dead-letter-exchange", String(strings.TrimSpace(exchange)))
}

// SetDeadLetterExchangeRoutingKey overrides the routing key of dead-lettered messages.
func (q *QueueArguments) SetDeadLetterExchangeRoutingKey(routingKey string) {
	q.args.Set("x-dead-letter-routing-key", String(strings.TrimSpace(routingKey)))
}

// SetAlternateExchange names the exchange that receives unroutable messages.
func (q *QueueArguments) SetAlternateExchange(exchange string) {
	q.args.Set("alternate-exchange", String(strings.TrimSpace(exchange)))
}

// SetMaxLength caps the number of ready messages.
func (q *QueueArguments) SetMaxLength(n int64) { q.args.Set("x-max-length", Int(n)) }

// SetQueueMode selects the storage mode.
func (q *QueueArguments) SetQueueMode(mode QueueMode) { q.args.Set("x-queue-mode", Mode(string(mode))) }

// QueueDeleteAction captures a queue delete request.
type QueueDeleteAction struct {
	queueRef

	ifUnused bool
	ifEmpty  bool
	query    string
}

// WithConditions restricts when the broker may delete the queue.
func (a *QueueDeleteAction) WithConditions(fn func(*QueueDeleteConditions)) {
	if fn != nil {
		fn(&QueueDeleteConditions{action: a})
	}
}

// Query returns the sealed delete conditions as a query string.
func (a *QueueDeleteAction) Query() string { return a.query }

func (a *QueueDeleteAction) seal() {
	var parts []string
	if a.ifUnused {
		parts = append(parts, "if-unused=true")
	}
	if a.ifEmpty {
		parts = append(parts, "if-empty=true")
	}
	a.query = strings.Join(parts, "&")
	a.queueRef.seal()
}

// QueueDeleteConditions lists the delete preconditions.
type QueueDeleteConditions struct {
	action *QueueDeleteAction
}

// HasNoConsumers only deletes a queue nobody consumes from.
func (c *QueueDeleteConditions) HasNoConsumers() { c.action.ifUnused = true }

// IsEmpty only deletes a queue without messages.
func (c *QueueDeleteConditions) IsEmpty() { c.action.ifEmpty = true }

// QueueEmptyAction captures a queue purge request.
type QueueEmptyAction struct {
	queueRef
}

func (a *QueueEmptyAction) seal() { a.queueRef.seal() }

// AckMode controls what the broker does with peeked messages.
type AckMode string

const (
	AckModeRequeue       AckMode = "ack_requeue_true"
	AckModeAck           AckMode = "ack_requeue_false"
	AckModeRejectRequeue AckMode = "reject_requeue_true"
	AckModeReject        AckMode = "reject_requeue_false"
)

// PeekEncoding selects how message payloads are returned.
type PeekEncoding string

const (
	PeekEncodingAuto   PeekEncoding = "auto"
	PeekEncodingBase64 PeekEncoding = "base64"
)

const defaultPeekTruncate = 50000

// PeekDefinition is the body of a queue get request.
type PeekDefinition struct {
	Count    int          `json:"count"`
	AckMode  AckMode      `json:"ackmode"`
	Encoding PeekEncoding `json:"encoding"`
	Truncate int          `json:"truncate,omitempty"`
}

// QueuePeekAction captures a queue get request.
type QueuePeekAction struct {
	queueRef

	request    PeekDefinition
	definition PeekDefinition
}

// Configure sets the peek options.
func (a *QueuePeekAction) Configure(fn func(*PeekConfigurator)) {
	if fn != nil {
		fn(&PeekConfigurator{action: a})
	}
}

// Definition returns the sealed request body.
func (a *QueuePeekAction) Definition() PeekDefinition { return a.definition }

func (a *QueuePeekAction) seal() {
	var invalid []*Error
	if a.request.Count < 1 {
		invalid = append(invalid, newInvalidArgumentError("count",
			fmt.Sprintf("message count must be at least 1, got %d", a.request.Count)))
	}
	switch a.request.AckMode {
	case AckModeRequeue, AckModeAck, AckModeRejectRequeue, AckModeReject:
	default:
		invalid = append(invalid, newInvalidArgumentError("ackmode",
			fmt.Sprintf("unsupported ack mode '%s'", a.request.AckMode)))
	}
	switch a.request.Encoding {
	case PeekEncodingAuto, PeekEncodingBase64:
	default:
		invalid = append(invalid, newInvalidArgumentError("encoding",
			fmt.Sprintf("unsupported payload encoding '%s'", a.request.Encoding)))
	}
	a.definition = a.request
	a.queueRef.seal(invalid)
}

// PeekConfigurator exposes the peek options.
type PeekConfigurator struct {
	action *QueuePeekAction
}

// Take sets how many messages to fetch.
func (c *PeekConfigurator) Take(count int) { c.action.request.Count = count }

// AckMode sets what happens to fetched messages.
func (c *PeekConfigurator) AckMode(mode AckMode) { c.action.request.AckMode = mode }

// Encoding sets the payload encoding.
func (c *PeekConfigurator) Encoding(encoding PeekEncoding) { c.action.request.Encoding = encoding }

// TruncateIfAbove truncates payloads larger than bytes.
func (c *PeekConfigurator) TruncateIfAbove(bytes int) { c.action.request.Truncate = bytes }
