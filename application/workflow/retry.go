package workflow

import (
	"context"

	"go.uber.org/zap"

	"cookbook/domain/recipe"
	pkgerrors "cookbook/pkg/errors"
)

// RetryOptions tunes a stored-draft retry run.
type RetryOptions struct {
	// ConfirmCellular answers the cellular-data prompt per draft. When nil,
	// drafts encountered on cellular stay stored and are reported as
	// needing confirmation.
	ConfirmCellular func(recipe.Draft) CellularDecision
}

// RetryOutcome is the independent result of one draft's attempt.
type RetryOutcome struct {
	DraftID string
	Title   string
	Status  Status
	Err     error
}

// RetryAllDrafts attempts to submit every stored draft for the author, one at
// a time in stored order, through the same submission path as Submit. Each
// draft fully resolves before the next begins. A failure on one draft never
// stops the run, and a successful draft is removed from the store immediately
// on its own success, so a crash mid-run loses no confirmed progress.
func (w *Workflow) RetryAllDrafts(ctx context.Context, author string, opts RetryOptions) ([]RetryOutcome, error) {
	if author == "" {
		return nil, pkgerrors.NewValidationError("author is required")
	}

	stored, err := w.drafts.Get(ctx, author)
	if err != nil {
		return nil, pkgerrors.NewDraftPersistenceError("read", err)
	}

	outcomes := make([]RetryOutcome, 0, len(stored))
	for _, draft := range stored {
		decision := CellularAsk
		if opts.ConfirmCellular != nil {
			decision = opts.ConfirmCellular(draft)
		}

		result, _ := w.Submit(ctx, draft, SubmitOptions{
			Cellular:      decision,
			StoredDraftID: draft.ID,
		})

		outcomes = append(outcomes, RetryOutcome{
			DraftID: draft.ID,
			Title:   draft.Title,
			Status:  result.Status,
			Err:     result.Err,
		})

		if result.Err != nil {
			w.logger.Warn("stored draft retry failed",
				zap.String("draftId", draft.ID),
				zap.String("title", draft.Title),
				zap.Error(result.Err),
			)
		}
	}
	return outcomes, nil
}
