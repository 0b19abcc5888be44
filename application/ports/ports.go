package ports

import (
	"context"

	"cookbook/domain/connectivity"
	"cookbook/domain/recipe"
)

// RecipeService is the remote recipe API. The title/author query may return a
// superset of candidates; exact matching is the caller's job.
type RecipeService interface {
	// FindByTitleAndAuthor queries recipes filtered by title and author.
	FindByTitleAndAuthor(ctx context.Context, title, author string) ([]recipe.Remote, error)

	// GetByID retrieves a single recipe record.
	GetByID(ctx context.Context, id string) (recipe.Remote, error)

	// Create publishes a new recipe and returns the created record.
	Create(ctx context.Context, r recipe.Remote) (recipe.Remote, error)

	// Update overwrites an existing recipe identified by r.ID.
	Update(ctx context.Context, r recipe.Remote) (recipe.Remote, error)
}

// MediaUploader pushes a device-local media reference to the remote media
// host and returns the resolved URL. A failed upload has no side effect on
// any recipe record.
type MediaUploader interface {
	Upload(ctx context.Context, localURI string) (string, error)
}

// DraftStore is a durable key-value store of not-yet-submitted drafts, keyed
// by author alias. The per-author list is always read and written as a whole.
type DraftStore interface {
	Get(ctx context.Context, author string) ([]recipe.Draft, error)
	Set(ctx context.Context, author string, drafts []recipe.Draft) error
}

// ConnectivityMonitor reports current network reachability. Current is a
// cached-state read, not a network call. Subscribe registers a callback for
// state changes and returns a cancel function.
type ConnectivityMonitor interface {
	Current() connectivity.State
	Subscribe(fn func(connectivity.State)) (cancel func())
}
