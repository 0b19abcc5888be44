package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cookbook/application/workflow"
	"cookbook/domain/recipe"
	"cookbook/infrastructure/di"
	pkgerrors "cookbook/pkg/errors"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a recipe from a draft file",
	Long: `Submit reads a recipe draft from a JSON file and runs it through the
publish workflow: the title is checked for a conflict with your own published
recipes, media files are uploaded, and the recipe is created or updated.

When the network is unreachable the recipe is stored as a local draft. On a
cellular connection you must decide explicitly:

  cookbook submit -f draft.json --publish-on-cellular
  cookbook submit -f draft.json --defer-to-wifi`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringP("file", "f", "", "draft JSON file (required)")
	submitCmd.Flags().String("edit", "", "update this existing recipe instead of creating a new one")
	submitCmd.Flags().Bool("skip-conflict-check", false, "skip the title conflict check")
	submitCmd.Flags().Bool("publish-on-cellular", false, "publish even on a cellular connection")
	submitCmd.Flags().Bool("defer-to-wifi", false, "store as draft when on a cellular connection")
	submitCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	editTarget, _ := cmd.Flags().GetString("edit")
	skipCheck, _ := cmd.Flags().GetBool("skip-conflict-check")
	publishNow, _ := cmd.Flags().GetBool("publish-on-cellular")
	deferToWifi, _ := cmd.Flags().GetBool("defer-to-wifi")

	if publishNow && deferToWifi {
		return fmt.Errorf("--publish-on-cellular and --defer-to-wifi are mutually exclusive")
	}

	draft, err := readDraftFile(file)
	if err != nil {
		return err
	}

	return withContainer(func(ctx context.Context, c *di.Container) error {
		author, err := resolveAuthor(c.Config)
		if err != nil {
			return err
		}
		draft.Author = author

		// Create path only: an explicit --edit already resolved the conflict.
		if editTarget == "" && !skipCheck {
			conflict, err := c.Workflow.CheckTitleConflict(ctx, draft.Title, author)
			if err != nil {
				return err
			}
			if conflict.Found {
				fmt.Printf("You already have a recipe titled %q (id %s).\n", draft.Title, conflict.ExistingID)
				fmt.Printf("Re-run with --edit %s to update it, or change the title.\n", conflict.ExistingID)
				return fmt.Errorf("title conflict")
			}
		}

		decision := workflow.CellularAsk
		if publishNow {
			decision = workflow.CellularPublishNow
		} else if deferToWifi {
			decision = workflow.CellularDeferToWifi
		}

		result, _ := c.Workflow.Submit(ctx, draft, workflow.SubmitOptions{
			EditTargetID: editTarget,
			Cellular:     decision,
		})
		return reportSubmitResult(result)
	})
}

func readDraftFile(path string) (recipe.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return recipe.Draft{}, fmt.Errorf("failed to read draft file: %w", err)
	}
	var draft recipe.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return recipe.Draft{}, fmt.Errorf("invalid draft file: %w", err)
	}
	return draft, nil
}

// reportSubmitResult prints the outcome and maps failures to command errors.
func reportSubmitResult(result workflow.SubmitResult) error {
	switch result.Status {
	case workflow.StatusSubmitted:
		fmt.Printf("Recipe %q published (id %s).\n", result.Recipe.Title, result.Recipe.ID)
		return nil

	case workflow.StatusSavedAsDraft:
		fmt.Println("No usable connection; the recipe was saved as a local draft.")
		fmt.Println("Run 'cookbook drafts retry' when you are back on wifi.")
		return nil

	case workflow.StatusNeedsCellularConfirmation:
		fmt.Println("You are on a cellular connection.")
		fmt.Println("Re-run with --publish-on-cellular to publish now, or --defer-to-wifi to store the draft.")
		return fmt.Errorf("cellular confirmation required")

	case workflow.StatusInvalid:
		fmt.Println("The draft is not valid:")
		for _, fe := range result.FieldErrors {
			fmt.Printf("  %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("validation failed")

	default:
		if idx, ok := pkgerrors.MediaUploadStepIndex(result.Err); ok && idx >= 0 {
			fmt.Printf("Upload failed for step %d; the recipe was not submitted.\n", idx+1)
		}
		return result.Err
	}
}
