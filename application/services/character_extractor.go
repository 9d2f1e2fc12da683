package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"photo-story-weaver/application/ports/inbound"
	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/domain"
)

type characterExtractor struct {
	logger        outbound.LoggerPort
	textGenerator outbound.TextGeneratorPort
	cache         outbound.DescriptionCachePort
	workerPool    outbound.TaskDispatcher
}

func NewCharacterExtractor(logger outbound.LoggerPort, textGenerator outbound.TextGeneratorPort,
	cache outbound.DescriptionCachePort, workerPool outbound.TaskDispatcher) inbound.CharacterExtractorPort {
	return &characterExtractor{
		logger:        logger,
		textGenerator: textGenerator,
		cache:         cache,
		workerPool:    workerPool,
	}
}

// Extract analyzes every photo concurrently and fans the results back in,
// preserving input order. Character descriptions are load-bearing for
// consistency in later stages, so any single failure fails the whole
// extraction.
func (s *characterExtractor) Extract(ctx context.Context, config domain.StoryConfig) ([]domain.CharacterDescription, error) {
	if len(config.Photos) == 0 {
		return nil, fmt.Errorf("no photos to analyze")
	}

	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]domain.CharacterDescription, len(config.Photos))
	errCh := make(chan error, len(config.Photos))

	var wg sync.WaitGroup
	for i, photo := range config.Photos {
		i, photo := i, photo
		wg.Add(1)
		err := s.workerPool.Submit(func() {
			defer wg.Done()
			description, err := s.describe(newCtx, config, photo)
			if err != nil {
				errCh <- err
				cancel()
				return
			}
			results[i] = domain.CharacterDescription{
				Role:        photo.Role,
				Description: description,
			}
		})
		if err != nil {
			wg.Done()
			errCh <- err
			cancel()
		}
	}

	wg.Wait()

	select {
	case err := <-errCh:
		s.logger.Error(err, "Character extraction failed")
		return nil, err
	default:
	}

	return results, nil
}

func (s *characterExtractor) describe(ctx context.Context, config domain.StoryConfig, photo domain.Photo) (string, error) {
	if photo.ID != "" {
		if cached, found := s.cache.Get(photo.ID); found {
			s.logger.DebugWithFields("Using cached character description", map[string]interface{}{
				"photo_id": photo.ID,
			})
			return cached, nil
		}
	}

	payload, err := base64.StdEncoding.DecodeString(photo.Base64)
	if err != nil {
		return "", fmt.Errorf("failed to decode photo payload: %w", err)
	}

	description, err := s.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		Prompt: s.buildPrompt(config, photo),
		Images: []outbound.InlineImage{{Data: payload, MimeType: photo.MimeType}},
	})
	if err != nil {
		return "", err
	}

	description = strings.TrimSpace(description)
	if photo.ID != "" {
		s.cache.Set(photo.ID, description)
	}

	return description, nil
}

func (s *characterExtractor) buildPrompt(config domain.StoryConfig, photo domain.Photo) string {
	var b strings.Builder

	switch photo.Role {
	case domain.SettingRole:
		b.WriteString("Describe the location in this photo as a story setting: its mood, architecture or landscape, time of day, and atmosphere.")
	case domain.ItemRole:
		b.WriteString("Describe the object in this photo as a story artifact: its shape, material, colors, and any distinctive detail.")
	default:
		fmt.Fprintf(&b, "Describe the person in this photo as the story's %s: appearance, clothing, expression, and distinguishing features.", strings.ToLower(string(photo.Role)))
	}

	if config.ProtagonistID != "" && photo.ID == config.ProtagonistID {
		b.WriteString(" This character is the protagonist of the story.")
	}
	if config.StylePhotoID != "" && photo.ID == config.StylePhotoID {
		b.WriteString(" Also describe the visual style of the photo itself, as an art-style reference.")
	}

	b.WriteString(" Answer in two or three sentences of plain prose, no lists.")

	return b.String()
}
