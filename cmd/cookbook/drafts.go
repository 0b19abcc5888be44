package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cookbook/application/workflow"
	"cookbook/domain/recipe"
	"cookbook/infrastructure/di"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Inspect and retry locally stored drafts",
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(ctx context.Context, c *di.Container) error {
			author, err := resolveAuthor(c.Config)
			if err != nil {
				return err
			}
			drafts, err := c.Drafts.Get(ctx, author)
			if err != nil {
				return err
			}
			if len(drafts) == 0 {
				fmt.Println("No stored drafts.")
				return nil
			}
			for _, d := range drafts {
				fmt.Printf("%s  %-30s  %d ingredients, %d steps  (saved %s)\n",
					d.ID, d.Title, len(d.NamedIngredients()), len(d.Steps),
					d.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			return nil
		})
	},
}

var draftsRetryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Attempt to publish every stored draft",
	Long: `Retry walks your stored drafts in order and attempts to publish each one
independently. Drafts that publish are removed immediately; a failure on one
draft does not stop the rest. On a cellular connection each draft needs the
same explicit decision as a fresh submit.`,
	RunE: runDraftsRetry,
}

func init() {
	draftsRetryCmd.Flags().Bool("publish-on-cellular", false, "publish drafts even on a cellular connection")
	draftsRetryCmd.Flags().Bool("defer-to-wifi", false, "keep drafts stored when on a cellular connection")
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsRetryCmd)
	rootCmd.AddCommand(draftsCmd)
}

func runDraftsRetry(cmd *cobra.Command, args []string) error {
	publishNow, _ := cmd.Flags().GetBool("publish-on-cellular")
	deferToWifi, _ := cmd.Flags().GetBool("defer-to-wifi")
	if publishNow && deferToWifi {
		return fmt.Errorf("--publish-on-cellular and --defer-to-wifi are mutually exclusive")
	}

	return withContainer(func(ctx context.Context, c *di.Container) error {
		author, err := resolveAuthor(c.Config)
		if err != nil {
			return err
		}

		opts := workflow.RetryOptions{}
		if publishNow || deferToWifi {
			decision := workflow.CellularDeferToWifi
			if publishNow {
				decision = workflow.CellularPublishNow
			}
			opts.ConfirmCellular = func(recipe.Draft) workflow.CellularDecision {
				return decision
			}
		}

		outcomes, err := c.Workflow.RetryAllDrafts(ctx, author, opts)
		if err != nil {
			return err
		}
		if len(outcomes) == 0 {
			fmt.Println("No stored drafts.")
			return nil
		}

		failed := 0
		for _, o := range outcomes {
			switch o.Status {
			case workflow.StatusSubmitted:
				fmt.Printf("published  %s  %q\n", o.DraftID, o.Title)
			case workflow.StatusSavedAsDraft:
				fmt.Printf("kept       %s  %q (still waiting for a usable connection)\n", o.DraftID, o.Title)
			case workflow.StatusNeedsCellularConfirmation:
				fmt.Printf("kept       %s  %q (cellular: pass --publish-on-cellular or --defer-to-wifi)\n", o.DraftID, o.Title)
			case workflow.StatusInvalid:
				fmt.Printf("invalid    %s  %q (edit the draft before retrying)\n", o.DraftID, o.Title)
			default:
				failed++
				fmt.Printf("failed     %s  %q: %v\n", o.DraftID, o.Title, o.Err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d draft(s) failed to publish", failed)
		}
		return nil
	})
}
