package outbound

import (
	"context"
	"errors"
)

// ErrRateLimited signals an HTTP 429-equivalent rejection from the
// narration service. The caller is expected to cool down and retry once.
var ErrRateLimited = errors.New("narration service rate limited")

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
}

type GenerateNarrationRequest struct {
	Text     string
	VoiceID  string
	Settings VoiceSettings
}

// NarrationGeneratorPort renders one spoken-audio clip. It returns the raw
// audio bytes or an error; failure classification happens in the narration
// service, nowhere else.
type NarrationGeneratorPort interface {
	Generate(ctx context.Context, req GenerateNarrationRequest) ([]byte, error)
}
