package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

func newVirtualHostCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vhost",
		Aliases: []string{"vhosts"},
		Short:   "Manage virtual hosts",
	}

	cmd.AddCommand(newVirtualHostListCmd(flags))
	cmd.AddCommand(newVirtualHostCreateCmd(flags))
	cmd.AddCommand(newVirtualHostDeleteCmd(flags))

	return cmd
}

func newVirtualHostListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List virtual hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "vhost.list", func(s *session) error {
				result := s.client.VirtualHosts().GetAll(s.ctx)
				return renderList(cmd, s, "list virtual hosts", "virtual hosts", result,
					[]string{"NAME", "TRACING", "MESSAGES", "READY", "UNACKED"},
					func(v admin.VirtualHostInfo) []string {
						return []string{
							v.Name,
							yesNo(v.Tracing),
							strconv.FormatInt(v.Messages, 10),
							strconv.FormatInt(v.MessagesReady, 10),
							strconv.FormatInt(v.MessagesUnacked, 10),
						}
					})
			})
		},
	}
}

func newVirtualHostCreateCmd(flags *rootFlags) *cobra.Command {
	var tracing bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "vhost.create", func(s *session) error {
				result := s.client.VirtualHosts().Create(s.ctx, func(a *admin.VirtualHostCreateAction) {
					a.VirtualHost(args[0])
					if tracing {
						a.Configure(func(c *admin.VirtualHostConfigurator) { c.WithTracingEnabled() })
					}
				})
				return renderDone(cmd, s, "create virtual host", fmt.Sprintf("virtual host %q created", args[0]), result)
			})
		},
	}

	cmd.Flags().BoolVar(&tracing, "tracing", false, "Enable message tracing on the virtual host")

	return cmd
}

func newVirtualHostDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "vhost.delete", func(s *session) error {
				result := s.client.VirtualHosts().Delete(s.ctx, func(a *admin.VirtualHostDeleteAction) {
					a.VirtualHost(args[0])
				})
				return renderDone(cmd, s, "delete virtual host", fmt.Sprintf("virtual host %q deleted", args[0]), result)
			})
		},
	}
}
