package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"photo-story-weaver/application/ports/inbound"
	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/domain"
)

const defaultVoiceID = "21m00Tcm4TlvDq8ikWAM" // Rachel

var genreVoices = map[domain.Genre]string{
	domain.AdventureGenre: "21m00Tcm4TlvDq8ikWAM", // Rachel - clear, energetic
	domain.MysteryGenre:   "AZnzlk1XvdvUeBnXmlld", // Domi - deep, mysterious
	domain.RomanceGenre:   "EXAVITQu4vr4xnSDxMaL", // Bella - warm, emotional
	domain.SciFiGenre:     "ErXwobaYiN019PkySvjV", // Antoni - futuristic feel
	domain.FantasyGenre:   "MF3mGyEYCl7XYWbV9V6O", // Elli - ethereal quality
	domain.HorrorGenre:    "TxGEqnHWrfWFTfGW9XjX", // Josh - dark, atmospheric
	domain.ComedyGenre:    "jsCqWAovK2LkecY7zXl4", // Clyde - upbeat, fun
	domain.BedtimeGenre:   "ThT5KcBeYPX3keUQqHPh", // Dorothy - gentle, soothing
}

var genreVoiceSettings = map[domain.Genre]outbound.VoiceSettings{
	domain.AdventureGenre: {Stability: 0.5, SimilarityBoost: 0.75, Style: 0.4},
	domain.MysteryGenre:   {Stability: 0.7, SimilarityBoost: 0.8, Style: 0.3},
	domain.RomanceGenre:   {Stability: 0.6, SimilarityBoost: 0.85, Style: 0.5},
	domain.SciFiGenre:     {Stability: 0.5, SimilarityBoost: 0.7, Style: 0.6},
	domain.FantasyGenre:   {Stability: 0.6, SimilarityBoost: 0.75, Style: 0.5},
	domain.HorrorGenre:    {Stability: 0.8, SimilarityBoost: 0.9, Style: 0.2},
	domain.ComedyGenre:    {Stability: 0.4, SimilarityBoost: 0.7, Style: 0.7},
	domain.BedtimeGenre:   {Stability: 0.75, SimilarityBoost: 0.8, Style: 0.3},
}

var defaultVoiceSettings = outbound.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.75, Style: 0.5}

type narrationSynthesizer struct {
	logger             outbound.LoggerPort
	narrationGenerator outbound.NarrationGeneratorPort
	mediaStore         outbound.MediaStorePort
	requestSpacing     time.Duration
	rateLimitCooldown  time.Duration
}

func NewNarrationSynthesizer(logger outbound.LoggerPort, narrationGenerator outbound.NarrationGeneratorPort,
	mediaStore outbound.MediaStorePort, requestSpacing time.Duration,
	rateLimitCooldown time.Duration) inbound.NarrationSynthesizerPort {
	return &narrationSynthesizer{
		logger:             logger,
		narrationGenerator: narrationGenerator,
		mediaStore:         mediaStore,
		requestSpacing:     requestSpacing,
		rateLimitCooldown:  rateLimitCooldown,
	}
}

// GenerateBatch renders narration strictly one panel at a time. The
// limiter admits the first request immediately and spaces every following
// one; a rate-limit rejection earns a single retry after the longer
// cooldown. A panel whose synthesis still fails is simply absent from the
// result and the batch moves on: narration is cosmetic, never structural.
func (s *narrationSynthesizer) GenerateBatch(ctx context.Context, panels []domain.PanelSpec,
	genre domain.Genre) []domain.NarrationResult {
	voiceID, ok := genreVoices[genre]
	if !ok {
		voiceID = defaultVoiceID
	}
	settings, ok := genreVoiceSettings[genre]
	if !ok {
		settings = defaultVoiceSettings
	}

	limiter := rate.NewLimiter(rate.Every(s.requestSpacing), 1)
	results := make([]domain.NarrationResult, 0, len(panels))

	for _, spec := range panels {
		if err := limiter.Wait(ctx); err != nil {
			s.logger.Warn("Narration batch interrupted")
			break
		}

		audio, err := s.narrationGenerator.Generate(ctx, outbound.GenerateNarrationRequest{
			Text:     spec.Narration,
			VoiceID:  voiceID,
			Settings: settings,
		})
		if errors.Is(err, outbound.ErrRateLimited) {
			s.logger.WarnWithFields("Narration rate limited, cooling down before retry", map[string]interface{}{
				"panel": spec.PanelNumber,
			})
			if !s.coolDown(ctx) {
				break
			}
			audio, err = s.narrationGenerator.Generate(ctx, outbound.GenerateNarrationRequest{
				Text:     spec.Narration,
				VoiceID:  voiceID,
				Settings: settings,
			})
		}
		if err != nil {
			s.logger.ErrorWithFields(err, "Narration failed, panel proceeds without audio", map[string]interface{}{
				"panel": spec.PanelNumber,
			})
			continue
		}

		url, err := s.mediaStore.Save(ctx, outbound.Media{Data: audio, MimeType: "audio/mpeg"})
		if err != nil {
			s.logger.ErrorWithFields(err, "Failed to store narration audio", map[string]interface{}{
				"panel": spec.PanelNumber,
			})
			continue
		}

		results = append(results, domain.NarrationResult{
			PanelNumber: spec.PanelNumber,
			AudioURL:    url,
		})
	}

	return results
}

// CleanupAudioURLs releases every owned audio handle. Safe on an empty
// slice.
func (s *narrationSynthesizer) CleanupAudioURLs(results []domain.NarrationResult) {
	for _, result := range results {
		if result.AudioURL != "" {
			s.mediaStore.Release(result.AudioURL)
		}
	}
}

func (s *narrationSynthesizer) coolDown(ctx context.Context) bool {
	timer := time.NewTimer(s.rateLimitCooldown)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
