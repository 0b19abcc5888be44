package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cookbook/infrastructure/di"
)

var checkTitleCmd = &cobra.Command{
	Use:   "check-title <title>",
	Short: "Check whether you already published a recipe with this title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(ctx context.Context, c *di.Container) error {
			author, err := resolveAuthor(c.Config)
			if err != nil {
				return err
			}
			conflict, err := c.Workflow.CheckTitleConflict(ctx, args[0], author)
			if err != nil {
				return err
			}
			if conflict.Found {
				fmt.Printf("Conflict: recipe %s already uses this title.\n", conflict.ExistingID)
				fmt.Printf("Use 'cookbook submit --edit %s' to update it.\n", conflict.ExistingID)
				return nil
			}
			fmt.Println("No conflict; the title is free.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(checkTitleCmd)
}
