package services

import (
	"fmt"

	"photo-story-weaver/application/ports/inbound"
	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/domain"
)

type storyAssembler struct {
	logger outbound.LoggerPort
}

func NewStoryAssembler(logger outbound.LoggerPort) inbound.StoryAssemblerPort {
	return &storyAssembler{
		logger: logger,
	}
}

// Assemble zips outline panels with image handles strictly by position and
// attaches audio by panel-number lookup. Audio may be missing for any
// panel; a length mismatch between outline and images must not happen and
// fails the assembly.
func (s *storyAssembler) Assemble(outline domain.StoryOutline, imageURLs []string,
	narrations []domain.NarrationResult) (*domain.Story, error) {
	if len(imageURLs) != len(outline.Panels) {
		err := fmt.Errorf("outline has %d panels but %d images were rendered", len(outline.Panels), len(imageURLs))
		s.logger.Error(err, "Story assembly failed")
		return nil, err
	}

	audioByPanel := make(map[int]string, len(narrations))
	for _, n := range narrations {
		audioByPanel[n.PanelNumber] = n.AudioURL
	}

	panels := make([]domain.PanelResult, len(outline.Panels))
	for i, spec := range outline.Panels {
		panels[i] = domain.PanelResult{
			PanelNumber: spec.PanelNumber,
			Description: spec.Description,
			Narration:   spec.Narration,
			ImageURL:    imageURLs[i],
			AudioURL:    audioByPanel[spec.PanelNumber],
		}
	}

	return &domain.Story{
		Title:  outline.Title,
		Panels: panels,
	}, nil
}
