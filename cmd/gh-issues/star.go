package main

import (
	"github.com/spf13/cobra"
)

func newStarCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "star [organization/repository]",
		Short: "Star the repository, or unstar it if already starred",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			return a.ToggleStar(cmd.Context(), firstArg(args))
		},
	}
}
