package workflow

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cookbook/domain/connectivity"
	"cookbook/domain/recipe"
	pkgerrors "cookbook/pkg/errors"
)

// Status is the single authoritative state of a submission attempt.
type Status string

const (
	// Terminal outcomes.
	StatusInvalid      Status = "invalid"
	StatusSavedAsDraft Status = "saved_as_draft"
	StatusSubmitted    Status = "submitted"
	StatusFailed       Status = "failed"

	// NeedsCellularConfirmation pauses the attempt: the network is reachable
	// over cellular and the caller has not said whether to spend data on it.
	// The caller re-submits with an explicit CellularDecision.
	StatusNeedsCellularConfirmation Status = "needs_cellular_confirmation"
)

// CellularDecision is the user's answer to the cellular-data prompt.
type CellularDecision int

const (
	// CellularAsk means no decision was supplied; submission over cellular
	// pauses for confirmation.
	CellularAsk CellularDecision = iota
	// CellularPublishNow proceeds as if on wifi.
	CellularPublishNow
	// CellularDeferToWifi stores the recipe as a draft instead.
	CellularDeferToWifi
)

// SubmitOptions tunes a single submission attempt.
type SubmitOptions struct {
	// EditTargetID, when set, updates that existing recipe instead of
	// creating a new one. It comes from a prior conflict check and lives only
	// for the current editing session.
	EditTargetID string

	// Cellular resolves the cellular-data prompt.
	Cellular CellularDecision

	// StoredDraftID marks the attempt as a replay of a stored draft. On
	// success that draft is removed from the store; when connectivity routes
	// the attempt back to draft storage, the already-stored draft is left
	// as is instead of being appended again.
	StoredDraftID string
}

// SubmitResult reports the outcome of one submission attempt.
type SubmitResult struct {
	Status      Status
	FieldErrors []recipe.FieldError
	Recipe      recipe.Remote
	Err         error
}

// Submit runs one submission attempt through the state machine:
// validate, check connectivity, then save-as-draft, pause for cellular
// confirmation, or upload media and create/update. Validation always precedes
// the connectivity check; all media uploads complete before the create/update
// call is issued. No automatic retries: on failure the draft fields are
// untouched and retrying is the caller's action.
//
// The returned error is non-nil only for StatusFailed and mirrors Result.Err.
func (w *Workflow) Submit(ctx context.Context, draft recipe.Draft, opts SubmitOptions) (SubmitResult, error) {
	if fieldErrs := draft.Validate(); len(fieldErrs) > 0 {
		w.logger.Info("draft rejected by validation",
			zap.String("title", draft.Title),
			zap.Int("errorCount", len(fieldErrs)),
		)
		return SubmitResult{Status: StatusInvalid, FieldErrors: fieldErrs}, nil
	}

	state := w.network.Current()
	switch {
	case !state.Reachable:
		return w.saveAsDraft(ctx, draft, opts)
	case state.Transport == connectivity.TransportCellular:
		switch opts.Cellular {
		case CellularPublishNow:
			// fall through to submission
		case CellularDeferToWifi:
			return w.saveAsDraft(ctx, draft, opts)
		default:
			return SubmitResult{Status: StatusNeedsCellularConfirmation}, nil
		}
	}

	return w.performSubmission(ctx, draft, opts)
}

// saveAsDraft appends the draft to the author's stored list. A replayed
// stored draft is already in the list and is left untouched.
func (w *Workflow) saveAsDraft(ctx context.Context, draft recipe.Draft, opts SubmitOptions) (SubmitResult, error) {
	if opts.StoredDraftID != "" {
		w.logger.Info("stored draft kept for a later retry",
			zap.String("draftId", opts.StoredDraftID),
			zap.String("title", draft.Title),
		)
		return SubmitResult{Status: StatusSavedAsDraft}, nil
	}

	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}

	// Always read the latest persisted list right before mutating; an
	// in-memory copy held across earlier await gaps could lose updates.
	current, err := w.drafts.Get(ctx, draft.Author)
	if err != nil {
		werr := pkgerrors.NewDraftPersistenceError("read", err)
		return SubmitResult{Status: StatusFailed, Err: werr}, werr
	}
	if err := w.drafts.Set(ctx, draft.Author, append(current, draft)); err != nil {
		werr := pkgerrors.NewDraftPersistenceError("write", err)
		return SubmitResult{Status: StatusFailed, Err: werr}, werr
	}

	w.logger.Info("recipe saved as draft",
		zap.String("draftId", draft.ID),
		zap.String("author", draft.Author),
		zap.String("title", draft.Title),
	)
	return SubmitResult{Status: StatusSavedAsDraft}, nil
}

// performSubmission uploads media and issues the create/update call.
func (w *Workflow) performSubmission(ctx context.Context, draft recipe.Draft, opts SubmitOptions) (SubmitResult, error) {
	resolved, err := w.resolveMedia(ctx, draft)
	if err != nil {
		// No create/update was issued; the draft fields stay editable.
		return SubmitResult{Status: StatusFailed, Err: err}, err
	}

	payload := resolved.ToRemote(opts.EditTargetID)

	var (
		created   recipe.Remote
		operation string
	)
	if opts.EditTargetID != "" {
		operation = "update"
		created, err = w.recipes.Update(ctx, payload)
	} else {
		operation = "create"
		created, err = w.recipes.Create(ctx, payload)
	}
	if err != nil {
		w.logger.Warn("recipe submission failed",
			zap.String("operation", operation),
			zap.String("title", draft.Title),
			zap.Error(err),
		)
		werr := pkgerrors.NewSubmissionFailedError(operation, err)
		return SubmitResult{Status: StatusFailed, Err: werr}, werr
	}

	if opts.StoredDraftID != "" {
		w.removeStoredDraft(ctx, draft.Author, opts.StoredDraftID)
	}

	w.logger.Info("recipe submitted",
		zap.String("operation", operation),
		zap.String("recipeId", created.ID),
		zap.String("title", created.Title),
	)
	return SubmitResult{Status: StatusSubmitted, Recipe: created}, nil
}

// removeStoredDraft drops a successfully submitted draft from the store.
// Drafts are never mutated in place: the old entry is filtered out and the
// remaining list written back. The submission already succeeded, so a store
// failure here is logged rather than turned into a failed outcome; the
// duplicate is caught on the next retry pass.
func (w *Workflow) removeStoredDraft(ctx context.Context, author, draftID string) {
	current, err := w.drafts.Get(ctx, author)
	if err != nil {
		w.logger.Error("failed to read drafts after submission",
			zap.String("author", author),
			zap.String("draftId", draftID),
			zap.Error(err),
		)
		return
	}
	remaining := current[:0:0]
	for _, d := range current {
		if d.ID != draftID {
			remaining = append(remaining, d)
		}
	}
	if err := w.drafts.Set(ctx, author, remaining); err != nil {
		w.logger.Error("failed to remove submitted draft",
			zap.String("author", author),
			zap.String("draftId", draftID),
			zap.Error(err),
		)
	}
}
