package inbound

import (
	"photo-story-weaver/domain"
)

// StoryAssemblerPort merges outline, image handles and best-effort
// narration results into the final Story. Missing audio never fails
// assembly; an outline/image length mismatch always does.
type StoryAssemblerPort interface {
	Assemble(outline domain.StoryOutline, imageURLs []string, narrations []domain.NarrationResult) (*domain.Story, error)
}
