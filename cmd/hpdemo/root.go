package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Debug   bool
	LogFile string
}

// NewRootCommand creates the root command for the demo CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "hpdemo",
		Short:         "horsepower demo server",
		Long:          "Serves the horsepower example pages, the ajax echo endpoints and a live document.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "also write JSON logs to this file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// NewVersionCommand prints the version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hpdemo version %s\n", version)
			return err
		},
	}
}
