package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/config"
)

type elevenLabsRequest struct {
	Text          string                 `json:"text"`
	ModelId       string                 `json:"model_id"`
	VoiceSettings outbound.VoiceSettings `json:"voice_settings"`
}

type elevenLabsNarrationGenerator struct {
	ContentFetcher
	logger           outbound.LoggerPort
	elevenLabsConfig *config.ElevenLabsConfig
}

func NewElevenLabsNarrationGenerator(contentFetcher ContentFetcher, elevenLabsConfig *config.ElevenLabsConfig,
	logger outbound.LoggerPort) outbound.NarrationGeneratorPort {
	return &elevenLabsNarrationGenerator{
		ContentFetcher:   contentFetcher,
		logger:           logger,
		elevenLabsConfig: elevenLabsConfig,
	}
}

func (a *elevenLabsNarrationGenerator) Generate(ctx context.Context, req outbound.GenerateNarrationRequest) ([]byte, error) {
	httpReq, err := a.getRequest(ctx, req)
	if err != nil {
		a.logger.Error(err, "Failed to construct the narration request")
		return nil, err
	}

	audio, err := a.FetchContent(httpReq)
	if err != nil {
		var statusErr *HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %s", outbound.ErrRateLimited, statusErr.Body)
		}
		return nil, err
	}

	return audio, nil
}

func (a *elevenLabsNarrationGenerator) getRequest(ctx context.Context, req outbound.GenerateNarrationRequest) (*http.Request, error) {
	reqBody := elevenLabsRequest{
		Text:          req.Text,
		ModelId:       a.elevenLabsConfig.ModelId,
		VoiceSettings: req.Settings,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		a.logger.Error(err, "Failed to marshal the narration request body")
		return nil, err
	}

	url := a.elevenLabsConfig.ApiUrl + "/text-to-speech/" + req.VoiceID
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		a.logger.ErrorWithFields(err, "Failed to create the narration HTTP request", map[string]interface{}{
			"URL": url,
		})
		return nil, err
	}

	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", a.elevenLabsConfig.ApiKey)

	return httpReq, nil
}
