package workflow

import (
	"context"

	"go.uber.org/zap"

	"cookbook/domain/recipe"
	pkgerrors "cookbook/pkg/errors"
)

// HydrateFromExisting fetches the conflicting recipe and populates a draft
// from it so the user can edit instead of create. On fetch failure the caller
// stays on the title step: no partial draft is returned, only a
// HydrationFailed error.
func (w *Workflow) HydrateFromExisting(ctx context.Context, id string) (recipe.Draft, error) {
	if id == "" {
		return recipe.Draft{}, pkgerrors.NewValidationError("recipe id is required")
	}

	remote, err := w.recipes.GetByID(ctx, id)
	if err != nil {
		w.logger.Warn("existing recipe fetch failed",
			zap.String("recipeId", id),
			zap.Error(err),
		)
		return recipe.Draft{}, pkgerrors.NewHydrationFailedError(id, err)
	}

	return recipe.DraftFromRemote(remote), nil
}
