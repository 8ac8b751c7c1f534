package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

func newExchangeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exchange",
		Aliases: []string{"exchanges"},
		Short:   "Manage exchanges",
	}

	cmd.AddCommand(newExchangeListCmd(flags))
	cmd.AddCommand(newExchangeCreateCmd(flags))
	cmd.AddCommand(newExchangeDeleteCmd(flags))

	return cmd
}

func newExchangeListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exchanges across all virtual hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "exchange.list", func(s *session) error {
				result := s.client.Exchanges().GetAll(s.ctx)
				return renderList(cmd, s, "list exchanges", "exchanges", result,
					[]string{"VHOST", "NAME", "TYPE", "DURABLE", "AUTO DELETE", "INTERNAL"},
					func(e admin.ExchangeInfo) []string {
						return []string{
							e.VirtualHost,
							valueOrFallback(e.Name, "(default)"),
							e.RoutingType,
							yesNo(e.Durable),
							yesNo(e.AutoDelete),
							yesNo(e.Internal),
						}
					})
			})
		},
	}
}

func newExchangeCreateCmd(flags *rootFlags) *cobra.Command {
	var (
		vhost       string
		routingType string
		durable     bool
		autoDelete  bool
		internal    bool
		alternate   string
		rawArgs     []string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an exchange",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseArguments(rawArgs)
			if err != nil {
				return invalidArgumentsError("create exchange", err)
			}

			return run(cmd, flags, "exchange.create", func(s *session) error {
				result := s.client.Exchanges().Create(s.ctx, func(a *admin.ExchangeCreateAction) {
					a.Exchange(args[0])
					a.Targeting(func(t *admin.ExchangeTarget) { t.VirtualHost(vhost) })
					a.Configure(func(c *admin.ExchangeConfigurator) {
						c.HasRoutingType(admin.RoutingType(routingType))
						if durable {
							c.IsDurable()
						}
						if autoDelete {
							c.AutoDeleteWhenNotInUse()
						}
						if internal {
							c.IsForInternalUse()
						}
						c.WithArguments(func(e *admin.ExchangeArguments) {
							if alternate != "" {
								e.SetAlternateExchange(alternate)
							}
							for _, arg := range extra {
								e.Set(arg.key, arg.value)
							}
						})
					})
				})
				return renderDone(cmd, s, "create exchange", fmt.Sprintf("exchange %q created in %q", args[0], vhost), result)
			})
		},
	}

	cmd.Flags().StringVar(&vhost, "vhost", "/", "Virtual host of the exchange")
	cmd.Flags().StringVarP(&routingType, "type", "t", "", "Routing type: fanout, direct, topic, headers, federated or match")
	cmd.Flags().BoolVar(&durable, "durable", false, "Survive broker restarts")
	cmd.Flags().BoolVar(&autoDelete, "auto-delete", false, "Delete the exchange once its last binding is removed")
	cmd.Flags().BoolVar(&internal, "internal", false, "Only allow publishing from other exchanges")
	cmd.Flags().StringVar(&alternate, "alternate-exchange", "", "Alternate exchange for unroutable messages")
	cmd.Flags().StringArrayVar(&rawArgs, "arg", nil, "Additional exchange argument as key=value (repeatable)")

	return cmd
}

func newExchangeDeleteCmd(flags *rootFlags) *cobra.Command {
	var (
		vhost    string
		ifUnused bool
	)

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an exchange",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "exchange.delete", func(s *session) error {
				result := s.client.Exchanges().Delete(s.ctx, func(a *admin.ExchangeDeleteAction) {
					a.Exchange(args[0])
					a.Targeting(func(t *admin.ExchangeTarget) { t.VirtualHost(vhost) })
					if ifUnused {
						a.WithConditions(func(c *admin.ExchangeDeleteConditions) { c.IsNotInUse() })
					}
				})
				return renderDone(cmd, s, "delete exchange", fmt.Sprintf("exchange %q deleted from %q", args[0], vhost), result)
			})
		},
	}

	cmd.Flags().StringVar(&vhost, "vhost", "/", "Virtual host of the exchange")
	cmd.Flags().BoolVar(&ifUnused, "if-unused", false, "Only delete when the exchange has no bindings")

	return cmd
}
