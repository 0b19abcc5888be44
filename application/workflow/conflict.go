package workflow

import (
	"context"

	"go.uber.org/zap"

	"cookbook/domain/recipe"
	pkgerrors "cookbook/pkg/errors"
)

// Conflict is the outcome of a title conflict check.
type Conflict struct {
	Found      bool   `json:"found"`
	ExistingID string `json:"existingId,omitempty"`
}

// CheckTitleConflict determines whether the author already owns a recipe with
// the given title. Comparison is exact after trim+lowercase normalization on
// both sides; the remote query may return a superset of candidates and the
// first normalized-equal match wins.
//
// A service failure returns a ConflictCheckUnavailable error. It is never
// treated as "no conflict": the caller must surface it and halt instead of
// proceeding to create.
func (w *Workflow) CheckTitleConflict(ctx context.Context, title, author string) (Conflict, error) {
	if recipe.NormalizeTitle(title) == "" {
		return Conflict{}, pkgerrors.NewValidationError("title is required")
	}
	if author == "" {
		return Conflict{}, pkgerrors.NewValidationError("author is required")
	}

	candidates, err := w.recipes.FindByTitleAndAuthor(ctx, title, author)
	if err != nil {
		w.logger.Warn("title conflict check failed",
			zap.String("title", title),
			zap.String("author", author),
			zap.Error(err),
		)
		return Conflict{}, pkgerrors.NewConflictCheckUnavailableError(err)
	}

	for _, candidate := range candidates {
		if candidate.Author != "" && candidate.Author != author {
			continue
		}
		if recipe.TitlesEqual(candidate.Title, title) {
			w.logger.Info("title conflict found",
				zap.String("title", title),
				zap.String("existingId", candidate.ID),
			)
			return Conflict{Found: true, ExistingID: candidate.ID}, nil
		}
	}
	return Conflict{}, nil
}
