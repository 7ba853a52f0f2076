package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGrammarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammars",
		Short: "List the grammars the run command knows about",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			width := 0
			for _, g := range grammars {
				width = max(width, len(g.name))
			}
			for _, g := range grammars {
				root, err := g.build(nil)
				if err != nil {
					return fmt.Errorf("build grammar %s: %w", g.name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s (root: %s)\n", width, g.name, g.description, root.Label())
			}
			return nil
		},
	}
}
