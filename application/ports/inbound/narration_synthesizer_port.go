package inbound

import (
	"context"

	"photo-story-weaver/domain"
)

// NarrationSynthesizerPort renders spoken narration per panel, strictly
// sequentially to respect the narration service's request-rate ceiling.
// Failed panels are simply absent from the result; the batch never fails
// as a whole. Every returned result carries its panel number.
type NarrationSynthesizerPort interface {
	GenerateBatch(ctx context.Context, panels []domain.PanelSpec, genre domain.Genre) []domain.NarrationResult
	CleanupAudioURLs(results []domain.NarrationResult)
}
