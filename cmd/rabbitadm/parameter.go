package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

func newParameterCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parameter",
		Aliases: []string{"parameters"},
		Short:   "Manage runtime parameters",
	}

	cmd.AddCommand(newParameterListCmd(flags))
	cmd.AddCommand(newParameterCreateCmd(flags))

	return cmd
}

func newParameterListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List runtime parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "parameter.list", func(s *session) error {
				result := s.client.Parameters().GetAll(s.ctx)
				return renderList(cmd, s, "list parameters", "parameters", result,
					[]string{"COMPONENT", "VHOST", "NAME", "VALUE"},
					func(p admin.ParameterInfo) []string {
						return []string{p.Component, p.VirtualHost, p.Name, compactJSON(p.Value)}
					})
			})
		},
	}
}

func compactJSON(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

func newParameterCreateCmd(flags *rootFlags) *cobra.Command {
	var (
		component string
		vhost     string
	)

	cmd := &cobra.Command{
		Use:   "create <name> <value>",
		Short: "Set a runtime parameter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "parameter.create", func(s *session) error {
				result := s.client.Parameters().Create(s.ctx, func(a *admin.ParameterCreateAction) {
					a.Parameter(args[0], admin.ParseValue(args[1]))
					a.Component(component)
					a.VirtualHost(vhost)
				})
				return renderDone(cmd, s, "create parameter", fmt.Sprintf("parameter %s/%s set in %q", component, args[0], vhost), result)
			})
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Parameter component, e.g. federation-upstream or shovel")
	cmd.Flags().StringVar(&vhost, "vhost", "/", "Virtual host of the parameter")

	return cmd
}
