package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/colbox/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "colbox %s\n", version.String())
			return err
		},
	}
	// runs without loading the config file
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil }
	return cmd
}
