package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

func newPolicyCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "policy",
		Aliases: []string{"policies"},
		Short:   "Manage policies",
	}

	cmd.AddCommand(newPolicyListCmd(flags))
	cmd.AddCommand(newPolicyCreateCmd(flags))
	cmd.AddCommand(newPolicyDeleteCmd(flags))

	return cmd
}

func newPolicyListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List policies across all virtual hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "policy.list", func(s *session) error {
				result := s.client.Policies().GetAll(s.ctx)
				return renderList(cmd, s, "list policies", "policies", result,
					[]string{"VHOST", "NAME", "PATTERN", "APPLY TO", "PRIORITY", "RULES"},
					func(p admin.PolicyInfo) []string {
						return []string{
							p.VirtualHost,
							p.Name,
							p.Pattern,
							valueOrFallback(p.ApplyTo, "all"),
							strconv.Itoa(p.Priority),
							strconv.Itoa(len(p.Definition)),
						}
					})
			})
		},
	}
}

type policyCreateOptions struct {
	vhost       string
	pattern     string
	applyTo     string
	priority    int
	haMode      string
	haParams    int64
	haNodes     []string
	haSyncMode  string
	upstream    string
	upstreamSet string
	messageTTL  int64
	expires     int64
	maxLength   int64
	maxBytes    int64
	dlx         string
	dlxKey      string
	alternate   string
	lazy        bool
	args        []string
}

func newPolicyCreateCmd(flags *rootFlags) *cobra.Command {
	opts := &policyCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create or update a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseArguments(opts.args)
			if err != nil {
				return invalidArgumentsError("create policy", err)
			}
			changed := cmd.Flags().Changed

			return run(cmd, flags, "policy.create", func(s *session) error {
				result := s.client.Policies().Create(s.ctx, func(a *admin.PolicyCreateAction) {
					a.Policy(args[0])
					a.Targeting(func(t *admin.PolicyTarget) { t.VirtualHost(opts.vhost) })
					a.Configure(func(c *admin.PolicyConfigurator) {
						c.UsingPattern(opts.pattern)
						c.HasPriority(opts.priority)
						if opts.applyTo != "" {
							c.AppliedTo(opts.applyTo)
						}
						c.WithArguments(func(p *admin.PolicyArguments) {
							if opts.haMode != "" {
								p.SetHighAvailabilityMode(admin.HighAvailabilityMode(opts.haMode))
							}
							if changed("ha-params") {
								p.SetHighAvailabilityParams(opts.haParams)
							}
							if changed("ha-nodes") {
								p.SetHighAvailabilityNodes(opts.haNodes...)
							}
							if opts.haSyncMode != "" {
								p.SetHighAvailabilitySyncMode(admin.HighAvailabilitySyncMode(opts.haSyncMode))
							}
							if opts.upstream != "" {
								p.SetFederationUpstream(opts.upstream)
							}
							if opts.upstreamSet != "" {
								p.SetFederationUpstreamSet(opts.upstreamSet)
							}
							if changed("message-ttl") {
								p.SetMessageTimeToLive(opts.messageTTL)
							}
							if changed("expires") {
								p.SetExpiry(opts.expires)
							}
							if changed("max-length") {
								p.SetMessageMaxSize(opts.maxLength)
							}
							if changed("max-length-bytes") {
								p.SetMessageMaxSizeInBytes(opts.maxBytes)
							}
							if opts.dlx != "" {
								p.SetDeadLetterExchange(opts.dlx)
							}
							if opts.dlxKey != "" {
								p.SetDeadLetterRoutingKey(opts.dlxKey)
							}
							if opts.alternate != "" {
								p.SetAlternateExchange(opts.alternate)
							}
							if opts.lazy {
								p.SetQueueMode()
							}
							for _, arg := range extra {
								p.Set(arg.key, arg.value)
							}
						})
					})
				})
				return renderDone(cmd, s, "create policy", fmt.Sprintf("policy %q applied to %q", args[0], opts.vhost), result)
			})
		},
	}

	cmd.Flags().StringVar(&opts.vhost, "vhost", "/", "Virtual host of the policy")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "Regular expression matching queue or exchange names")
	cmd.Flags().StringVar(&opts.applyTo, "apply-to", "", "What the policy applies to: queues, exchanges or all")
	cmd.Flags().IntVar(&opts.priority, "priority", 0, "Policy priority")
	cmd.Flags().StringVar(&opts.haMode, "ha-mode", "", "Mirroring mode: all, exactly or nodes")
	cmd.Flags().Int64Var(&opts.haParams, "ha-params", 0, "Mirror count for --ha-mode exactly")
	cmd.Flags().StringSliceVar(&opts.haNodes, "ha-nodes", nil, "Mirror node names for --ha-mode nodes")
	cmd.Flags().StringVar(&opts.haSyncMode, "ha-sync-mode", "", "Mirror synchronisation: manual or automatic")
	cmd.Flags().StringVar(&opts.upstream, "federation-upstream", "", "Federation upstream name")
	cmd.Flags().StringVar(&opts.upstreamSet, "federation-upstream-set", "", "Federation upstream set name")
	cmd.Flags().Int64Var(&opts.messageTTL, "message-ttl", 0, "Message time to live in milliseconds")
	cmd.Flags().Int64Var(&opts.expires, "expires", 0, "Delete idle queues after this many milliseconds")
	cmd.Flags().Int64Var(&opts.maxLength, "max-length", 0, "Maximum number of ready messages")
	cmd.Flags().Int64Var(&opts.maxBytes, "max-length-bytes", 0, "Maximum total size of ready messages in bytes")
	cmd.Flags().StringVar(&opts.dlx, "dead-letter-exchange", "", "Exchange receiving rejected or expired messages")
	cmd.Flags().StringVar(&opts.dlxKey, "dead-letter-routing-key", "", "Routing key used when dead-lettering")
	cmd.Flags().StringVar(&opts.alternate, "alternate-exchange", "", "Alternate exchange for unroutable messages")
	cmd.Flags().BoolVar(&opts.lazy, "lazy", false, "Set queue-mode to lazy")
	cmd.Flags().StringArrayVar(&opts.args, "arg", nil, "Additional policy rule as key=value (repeatable)")

	return cmd
}

func newPolicyDeleteCmd(flags *rootFlags) *cobra.Command {
	var vhost string

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "policy.delete", func(s *session) error {
				result := s.client.Policies().Delete(s.ctx, func(a *admin.PolicyDeleteAction) {
					a.Policy(args[0])
					a.Targeting(func(t *admin.PolicyTarget) { t.VirtualHost(vhost) })
				})
				return renderDone(cmd, s, "delete policy", fmt.Sprintf("policy %q deleted from %q", args[0], vhost), result)
			})
		},
	}

	cmd.Flags().StringVar(&vhost, "vhost", "/", "Virtual host of the policy")

	return cmd
}
