package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
	"github.com/alexisbeaulieu97/rabbitadm/pkg/diff"
)

func newNodeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Inspect node-wide state",
	}

	cmd.AddCommand(newNodeChannelsCmd(flags))
	cmd.AddCommand(newNodeConnectionsCmd(flags))
	cmd.AddCommand(newNodeConsumersCmd(flags))
	cmd.AddCommand(newNodeDefinitionsCmd(flags))
	cmd.AddCommand(newNodeHealthCmd(flags))
	cmd.AddCommand(newNodeOverviewCmd(flags))

	return cmd
}

func newNodeChannelsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List open channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "node.channels", func(s *session) error {
				result := s.client.Node().Channels(s.ctx)
				return renderList(cmd, s, "list channels", "channels", result,
					[]string{"NAME", "VHOST", "USER", "STATE", "CONSUMERS", "UNACKED", "PREFETCH"},
					func(c admin.ChannelInfo) []string {
						return []string{
							c.Name,
							c.VirtualHost,
							c.User,
							c.State,
							strconv.FormatInt(c.Consumers, 10),
							strconv.FormatInt(c.MessagesUnacked, 10),
							strconv.FormatInt(c.PrefetchCount, 10),
						}
					})
			})
		},
	}
}

func newNodeConnectionsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "connections",
		Short: "List client connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "node.connections", func(s *session) error {
				result := s.client.Node().Connections(s.ctx)
				return renderList(cmd, s, "list connections", "connections", result,
					[]string{"NAME", "VHOST", "USER", "STATE", "PROTOCOL", "CHANNELS"},
					func(c admin.ConnectionInfo) []string {
						return []string{
							c.Name,
							c.VirtualHost,
							c.User,
							c.State,
							c.Protocol,
							strconv.FormatInt(c.Channels, 10),
						}
					})
			})
		},
	}
}

func newNodeConsumersCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "consumers",
		Short: "List consumers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "node.consumers", func(s *session) error {
				result := s.client.Node().Consumers(s.ctx)
				return renderList(cmd, s, "list consumers", "consumers", result,
					[]string{"TAG", "VHOST", "QUEUE", "CHANNEL", "ACK", "PREFETCH"},
					func(c admin.ConsumerInfo) []string {
						return []string{
							c.ConsumerTag,
							c.Queue.VirtualHost,
							c.Queue.Name,
							c.ChannelDetails.Name,
							yesNo(c.AckRequired),
							strconv.FormatInt(c.PrefetchCount, 10),
						}
					})
			})
		},
	}
}

func newNodeDefinitionsCmd(flags *rootFlags) *cobra.Command {
	var compare string

	cmd := &cobra.Command{
		Use:   "definitions",
		Short: "Export the broker definitions document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "node.definitions", func(s *session) error {
				result := s.client.Node().Definitions(s.ctx)
				if result.HasFaulted() {
					return faultedError("export definitions", "reading broker definitions", result.Errors)
				}
				if compare != "" {
					return compareDefinitions(cmd, compare, result.Data)
				}
				if s.flags.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), result.Data)
				}

				d := result.Data
				rows := [][]string{
					{"vhosts", strconv.Itoa(len(d.VirtualHosts))},
					{"users", strconv.Itoa(len(d.Users))},
					{"permissions", strconv.Itoa(len(d.Permissions))},
					{"policies", strconv.Itoa(len(d.Policies))},
					{"parameters", strconv.Itoa(len(d.Parameters))},
					{"global parameters", strconv.Itoa(len(d.GlobalParameters))},
					{"queues", strconv.Itoa(len(d.Queues))},
					{"exchanges", strconv.Itoa(len(d.Exchanges))},
					{"bindings", strconv.Itoa(len(d.Bindings))},
				}
				fmt.Fprintf(cmd.OutOrStdout(), "RabbitMQ %s\n", valueOrFallback(d.RabbitVersion, "(unknown version)"))
				return writeTable(cmd.OutOrStdout(), []string{"SECTION", "COUNT"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&compare, "compare", "", "Compare the live definitions against a previously exported file")

	return cmd
}

func newNodeHealthCmd(flags *rootFlags) *cobra.Command {
	var vhost string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Run the broker aliveness test against a virtual host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "node.health", func(s *session) error {
				result := s.client.Node().HealthCheck(s.ctx, func(a *admin.HealthCheckAction) {
					a.VirtualHost(vhost)
				})
				if result.HasFaulted() {
					return faultedError("check health", fmt.Sprintf("aliveness test on %q", vhost), result.Errors)
				}

				out := cmd.OutOrStdout()
				health := result.Data
				if s.flags.jsonOutput {
					if err := writeJSON(out, health); err != nil {
						return err
					}
				} else if health.Healthy() {
					fmt.Fprintf(out, "%s virtual host %q is alive\n", okMarker(out), vhost)
				}

				if !health.Healthy() {
					return newCommandError("check health", fmt.Sprintf("aliveness test on %q", vhost),
						fmt.Errorf("broker reported %s: %s", valueOrFallback(health.Status, "no status"), valueOrFallback(health.Reason, "no reason given")),
						"Inspect the node logs and alarms with the management UI.")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&vhost, "vhost", "/", "Virtual host used for the aliveness test")

	return cmd
}

func newNodeOverviewCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show cluster details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "node.overview", func(s *session) error {
				result := s.client.Node().Overview(s.ctx)
				if result.HasFaulted() {
					return faultedError("show overview", "reading cluster details", result.Errors)
				}

				out := cmd.OutOrStdout()
				o := result.Data
				if s.flags.jsonOutput {
					return writeJSON(out, o)
				}

				fmt.Fprintf(out, "Cluster %s (RabbitMQ %s, Erlang %s)\n",
					valueOrFallback(o.ClusterName, "(unnamed)"),
					valueOrFallback(o.RabbitMQVersion, "unknown"),
					valueOrFallback(o.ErlangVersion, "unknown"))

				rows := [][]string{
					{"queues", strconv.FormatInt(o.ObjectTotals.Queues, 10)},
					{"exchanges", strconv.FormatInt(o.ObjectTotals.Exchanges, 10)},
					{"consumers", strconv.FormatInt(o.ObjectTotals.Consumers, 10)},
					{"connections", strconv.FormatInt(o.ObjectTotals.Connections, 10)},
					{"channels", strconv.FormatInt(o.ObjectTotals.Channels, 10)},
				}
				if err := writeTable(out, []string{"OBJECT", "TOTAL"}, rows); err != nil {
					return err
				}
				if len(o.Listeners) == 0 {
					return nil
				}

				fmt.Fprintln(out)
				listeners := make([][]string, 0, len(o.Listeners))
				for _, l := range o.Listeners {
					listeners = append(listeners, []string{l.Node, l.Protocol, l.IPAddress, strconv.Itoa(l.Port)})
				}
				return writeTable(out, []string{"NODE", "PROTOCOL", "ADDRESS", "PORT"}, listeners)
			})
		},
	}
}

// compareDefinitions prints a line diff between a saved export and the live
// broker definitions. Both sides are re-encoded so key order and whitespace
// never count as drift.
func compareDefinitions(cmd *cobra.Command, path string, live admin.ServerDefinitionInfo) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return newCommandError("compare definitions", fmt.Sprintf("reading %s", path), err, "Export definitions with 'rabbitadm node definitions --json > file' first.")
	}

	var saved admin.ServerDefinitionInfo
	if err := json.Unmarshal(raw, &saved); err != nil {
		return newCommandError("compare definitions", fmt.Sprintf("decoding %s", path), err, "The file must be a definitions export in JSON format.")
	}

	expected, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	actual, err := json.MarshalIndent(live, "", "  ")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	unified := diff.Unified(append(expected, '\n'), append(actual, '\n'), path, "broker")
	if unified == "" {
		fmt.Fprintf(out, "%s definitions match %s\n", okMarker(out), path)
		return nil
	}

	fmt.Fprint(out, unified)
	inserted, deleted := diff.Changed(expected, actual)
	return newCommandError("compare definitions", path,
		fmt.Errorf("broker definitions drifted: %d lines added, %d lines removed", inserted, deleted),
		"Import the saved definitions or export a fresh copy with --json.")
}
