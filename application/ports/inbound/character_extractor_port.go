package inbound

import (
	"context"

	"photo-story-weaver/domain"
)

// CharacterExtractorPort turns each photo into a textual character
// description. Output preserves input order regardless of completion
// order; any single failure fails the whole extraction.
type CharacterExtractorPort interface {
	Extract(ctx context.Context, config domain.StoryConfig) ([]domain.CharacterDescription, error)
}
