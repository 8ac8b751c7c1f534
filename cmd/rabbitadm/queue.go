package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

type queueTargetOptions struct {
	vhost string
	node  string
}

func (o *queueTargetOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.vhost, "vhost", "/", "Virtual host of the queue")
}

func (o *queueTargetOptions) apply(t *admin.QueueTarget) {
	t.VirtualHost(o.vhost)
	if o.node != "" {
		t.Node(o.node)
	}
}

func newQueueCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "queue",
		Aliases: []string{"queues"},
		Short:   "Manage queues",
	}

	cmd.AddCommand(newQueueListCmd(flags))
	cmd.AddCommand(newQueueCreateCmd(flags))
	cmd.AddCommand(newQueueDeleteCmd(flags))
	cmd.AddCommand(newQueueEmptyCmd(flags))
	cmd.AddCommand(newQueuePeekCmd(flags))

	return cmd
}

func newQueueListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queues across all virtual hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "queue.list", func(s *session) error {
				result := s.client.Queues().GetAll(s.ctx)
				return renderList(cmd, s, "list queues", "queues", result,
					[]string{"VHOST", "NAME", "STATE", "MESSAGES", "CONSUMERS", "DURABLE", "POLICY"},
					func(q admin.QueueInfo) []string {
						return []string{
							q.VirtualHost,
							q.Name,
							valueOrFallback(q.State, "-"),
							strconv.FormatInt(q.Messages, 10),
							strconv.FormatInt(q.Consumers, 10),
							yesNo(q.Durable),
							valueOrFallback(q.Policy, "-"),
						}
					})
			})
		},
	}
}

type queueCreateOptions struct {
	target     queueTargetOptions
	durable    bool
	autoDelete bool
	lazy       bool
	expires    int64
	messageTTL int64
	maxLength  int64
	dlx        string
	dlxKey     string
	alternate  string
	args       []string
}

func newQueueCreateCmd(flags *rootFlags) *cobra.Command {
	opts := &queueCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseArguments(opts.args)
			if err != nil {
				return invalidArgumentsError("create queue", err)
			}
			changed := cmd.Flags().Changed

			return run(cmd, flags, "queue.create", func(s *session) error {
				result := s.client.Queues().Create(s.ctx, func(a *admin.QueueCreateAction) {
					a.Queue(args[0])
					a.Targeting(opts.target.apply)
					a.Configure(func(c *admin.QueueConfigurator) {
						if opts.durable {
							c.IsDurable()
						}
						if opts.autoDelete {
							c.AutoDeleteWhenNotInUse()
						}
						c.WithArguments(func(q *admin.QueueArguments) {
							if changed("expires") {
								q.SetQueueExpiration(opts.expires)
							}
							if changed("message-ttl") {
								q.SetPerQueuedMessageExpiration(opts.messageTTL)
							}
							if changed("max-length") {
								q.SetMaxLength(opts.maxLength)
							}
							if opts.dlx != "" {
								q.SetDeadLetterExchange(opts.dlx)
							}
							if opts.dlxKey != "" {
								q.SetDeadLetterExchangeRoutingKey(opts.dlxKey)
							}
							if opts.alternate != "" {
								q.SetAlternateExchange(opts.alternate)
							}
							if opts.lazy {
								q.SetQueueMode(admin.QueueModeLazy)
							}
							for _, arg := range extra {
								q.Set(arg.key, arg.value)
							}
						})
					})
				})
				return renderDone(cmd, s, "create queue", fmt.Sprintf("queue %q created in %q", args[0], opts.target.vhost), result)
			})
		},
	}

	opts.target.register(cmd)
	cmd.Flags().StringVar(&opts.target.node, "node", "", "Cluster node to host the queue")
	cmd.Flags().BoolVar(&opts.durable, "durable", false, "Survive broker restarts")
	cmd.Flags().BoolVar(&opts.autoDelete, "auto-delete", false, "Delete the queue once its last consumer unsubscribes")
	cmd.Flags().BoolVar(&opts.lazy, "lazy", false, "Keep messages on disk (x-queue-mode=lazy)")
	cmd.Flags().Int64Var(&opts.expires, "expires", 0, "Delete the queue after this many idle milliseconds (x-expires)")
	cmd.Flags().Int64Var(&opts.messageTTL, "message-ttl", 0, "Discard messages older than this many milliseconds (x-message-ttl)")
	cmd.Flags().Int64Var(&opts.maxLength, "max-length", 0, "Maximum number of ready messages (x-max-length)")
	cmd.Flags().StringVar(&opts.dlx, "dead-letter-exchange", "", "Exchange receiving rejected or expired messages")
	cmd.Flags().StringVar(&opts.dlxKey, "dead-letter-routing-key", "", "Routing key used when dead-lettering")
	cmd.Flags().StringVar(&opts.alternate, "alternate-exchange", "", "Alternate exchange for unroutable messages")
	cmd.Flags().StringArrayVar(&opts.args, "arg", nil, "Additional queue argument as key=value (repeatable)")

	return cmd
}

func newQueueDeleteCmd(flags *rootFlags) *cobra.Command {
	var (
		target   queueTargetOptions
		ifUnused bool
		ifEmpty  bool
	)

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "queue.delete", func(s *session) error {
				result := s.client.Queues().Delete(s.ctx, func(a *admin.QueueDeleteAction) {
					a.Queue(args[0])
					a.Targeting(target.apply)
					a.WithConditions(func(c *admin.QueueDeleteConditions) {
						if ifUnused {
							c.HasNoConsumers()
						}
						if ifEmpty {
							c.IsEmpty()
						}
					})
				})
				return renderDone(cmd, s, "delete queue", fmt.Sprintf("queue %q deleted from %q", args[0], target.vhost), result)
			})
		},
	}

	target.register(cmd)
	cmd.Flags().BoolVar(&ifUnused, "if-unused", false, "Only delete when the queue has no consumers")
	cmd.Flags().BoolVar(&ifEmpty, "if-empty", false, "Only delete when the queue holds no messages")

	return cmd
}

func newQueueEmptyCmd(flags *rootFlags) *cobra.Command {
	var target queueTargetOptions

	cmd := &cobra.Command{
		Use:     "empty <name>",
		Aliases: []string{"purge"},
		Short:   "Remove every ready message from a queue",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "queue.empty", func(s *session) error {
				result := s.client.Queues().Empty(s.ctx, func(a *admin.QueueEmptyAction) {
					a.Queue(args[0])
					a.Targeting(target.apply)
				})
				return renderDone(cmd, s, "empty queue", fmt.Sprintf("queue %q emptied", args[0]), result)
			})
		},
	}

	target.register(cmd)

	return cmd
}

func newQueuePeekCmd(flags *rootFlags) *cobra.Command {
	var (
		target   queueTargetOptions
		count    int
		ackMode  string
		encoding string
		truncate int
	)

	cmd := &cobra.Command{
		Use:   "peek <name>",
		Short: "Fetch messages from a queue, requeueing them by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "queue.peek", func(s *session) error {
				result := s.client.Queues().Peek(s.ctx, func(a *admin.QueuePeekAction) {
					a.Queue(args[0])
					a.Targeting(target.apply)
					a.Configure(func(c *admin.PeekConfigurator) {
						c.Take(count)
						c.AckMode(admin.AckMode(ackMode))
						c.Encoding(admin.PeekEncoding(encoding))
						if cmd.Flags().Changed("truncate") {
							c.TruncateIfAbove(truncate)
						}
					})
				})
				return renderList(cmd, s, "peek queue", "messages", result,
					[]string{"EXCHANGE", "ROUTING KEY", "REDELIVERED", "BYTES", "PAYLOAD"},
					func(m admin.PeekedMessage) []string {
						return []string{
							valueOrFallback(m.Exchange, "(default)"),
							m.RoutingKey,
							yesNo(m.Redelivered),
							strconv.FormatInt(m.PayloadBytes, 10),
							m.Payload,
						}
					})
			})
		},
	}

	target.register(cmd)
	cmd.Flags().IntVar(&count, "count", 1, "Number of messages to fetch")
	cmd.Flags().StringVar(&ackMode, "ackmode", string(admin.AckModeRequeue), "Acknowledgement mode: ack_requeue_true, ack_requeue_false, reject_requeue_true or reject_requeue_false")
	cmd.Flags().StringVar(&encoding, "encoding", string(admin.PeekEncodingAuto), "Payload encoding: auto or base64")
	cmd.Flags().IntVar(&truncate, "truncate", 50000, "Truncate payloads larger than this many bytes")

	return cmd
}
