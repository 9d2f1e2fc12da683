package inbound

import (
	"context"

	"photo-story-weaver/domain"
)

type GenerateStoryParams struct {
	StoryID string
	Config  domain.StoryConfig
	// Progress is optional. When set, the pipeline emits coarse stage
	// events on it; sends never block.
	Progress chan<- domain.ProgressEvent
}

// StoryPipelinePort is the sole externally consumed operation of the
// generation core. It resolves or fails exactly once per invocation and
// does not accept mid-run cancellation beyond the context.
type StoryPipelinePort interface {
	GenerateStory(ctx context.Context, params GenerateStoryParams) (*domain.Story, error)
}
