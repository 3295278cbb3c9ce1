package main

import (
	"github.com/spf13/cobra"
)

func newIssuesCommand(c *cli) *cobra.Command {
	var after string

	cmd := &cobra.Command{
		Use:   "issues [organization/repository]",
		Short: "Print one page of open issues",
		Long: `Print up to five open issues with their latest reactions.

Use the cursor printed below the table with --after to get the next page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			return a.ListIssues(cmd.Context(), firstArg(args), after)
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "page cursor (endCursor of the previous page)")

	return cmd
}
