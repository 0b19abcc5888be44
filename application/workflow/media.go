package workflow

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cookbook/domain/recipe"
	pkgerrors "cookbook/pkg/errors"
)

// resolveMedia uploads every device-local media reference on the draft and
// returns a copy with remote URLs in place. References that are already
// remote pass through unchanged, which keeps prior media intact on the
// edit-existing path.
//
// Uploads run concurrently since steps are independent; results are written
// by index so step order is preserved regardless of completion order. Any
// single failure aborts the whole attempt with an error naming the offending
// step, and the caller must not issue the create/update call.
func (w *Workflow) resolveMedia(ctx context.Context, draft recipe.Draft) (recipe.Draft, error) {
	resolved := draft
	resolved.Steps = append([]recipe.Step(nil), draft.Steps...)

	g, ctx := errgroup.WithContext(ctx)

	for i := range resolved.Steps {
		if !recipe.IsLocalMedia(resolved.Steps[i].MediaURI) {
			continue
		}
		i := i
		g.Go(func() error {
			url, err := w.media.Upload(ctx, resolved.Steps[i].MediaURI)
			if err != nil {
				return pkgerrors.NewMediaUploadError(i, err)
			}
			resolved.Steps[i].MediaURI = url
			return nil
		})
	}

	if recipe.IsLocalMedia(resolved.FinalPhotoURI) {
		g.Go(func() error {
			url, err := w.media.Upload(ctx, resolved.FinalPhotoURI)
			if err != nil {
				return pkgerrors.NewMediaUploadError(pkgerrors.FinalPhotoIndex, err)
			}
			resolved.FinalPhotoURI = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return recipe.Draft{}, err
	}
	return resolved, nil
}
