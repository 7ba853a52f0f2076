package main

import (
	"github.com/spf13/cobra"

	"github.com/clarete/pegmatch"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the default settings accepted by `run --set`",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			pegmatch.NewConfig().Debug(cmd.OutOrStdout())
		},
	}
}
