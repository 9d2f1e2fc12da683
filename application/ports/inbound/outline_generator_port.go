package inbound

import (
	"context"

	"photo-story-weaver/domain"
)

// OutlineGeneratorPort produces the structured pre-media story plan. The
// returned outline always has exactly config.PanelCount() panels numbered
// contiguously from 1, even when the upstream model's output is
// unparsable. Only a transport failure is an error.
type OutlineGeneratorPort interface {
	Generate(ctx context.Context, config domain.StoryConfig, characters []domain.CharacterDescription) (domain.StoryOutline, error)
}
