package main

import (
	"github.com/spf13/cobra"
)

func newQuotaCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show the signed-in user and the remaining GraphQL quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Quota(cmd.Context())
		},
	}
}
