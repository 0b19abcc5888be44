// Package workflow orchestrates recipe submission: title conflict resolution,
// hydration of an existing recipe for editing, media upload, the
// connectivity-aware submission state machine, and the stored-draft retry
// runner. All entry points take the author alias explicitly; nothing here
// reads ambient user state.
package workflow

import (
	"go.uber.org/zap"

	"cookbook/application/ports"
)

// Workflow wires the submission logic to its collaborators.
type Workflow struct {
	recipes ports.RecipeService
	media   ports.MediaUploader
	drafts  ports.DraftStore
	network ports.ConnectivityMonitor
	logger  *zap.Logger
}

// New creates a workflow. A nil logger falls back to a no-op logger.
func New(
	recipes ports.RecipeService,
	media ports.MediaUploader,
	drafts ports.DraftStore,
	network ports.ConnectivityMonitor,
	logger *zap.Logger,
) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		recipes: recipes,
		media:   media,
		drafts:  drafts,
		network: network,
		logger:  logger,
	}
}
