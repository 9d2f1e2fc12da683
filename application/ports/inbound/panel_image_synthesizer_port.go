package inbound

import (
	"context"

	"photo-story-weaver/domain"
)

type SynthesizePanelsParams struct {
	Outline         domain.StoryOutline
	Genre           domain.Genre
	ConsistencyText string
}

// PanelImageSynthesizerPort renders every panel's illustration
// concurrently. The result is index-aligned with the outline, one handle
// URL per panel, no gaps: a failure in any single panel fails the whole
// call and releases anything already rendered.
type PanelImageSynthesizerPort interface {
	Synthesize(ctx context.Context, params SynthesizePanelsParams) ([]string, error)
}
