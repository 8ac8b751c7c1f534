package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rabbitadm/internal/config"
)

type rootFlags struct {
	configPath  string
	verbose     bool
	jsonOutput  bool
	metricsFile string

	lookupEnv config.LookupFunc
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithEnv(os.LookupEnv)
}

func newRootCmdWithEnv(lookup config.LookupFunc) *cobra.Command {
	flags := &rootFlags{lookupEnv: lookup}

	cmd := &cobra.Command{
		Use:           "rabbitadm",
		Short:         "rabbitadm administers RabbitMQ brokers through the management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to the settings file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(&flags.metricsFile, "metrics-file", "", "Write transport metrics in Prometheus text format to this path")

	cmd.AddCommand(newVirtualHostCmd(flags))
	cmd.AddCommand(newQueueCmd(flags))
	cmd.AddCommand(newExchangeCmd(flags))
	cmd.AddCommand(newPolicyCmd(flags))
	cmd.AddCommand(newUserCmd(flags))
	cmd.AddCommand(newParameterCmd(flags))
	cmd.AddCommand(newNodeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
