package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the reconciliation service is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := opts.client()
			if err := c.Health(cmd.Context()); err != nil {
				return fmt.Errorf("service at %s is not healthy: %w", c.Endpoint(), err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "service at %s is healthy\n", c.Endpoint())
			return nil
		},
	}
}
