package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"photo-story-weaver/application/ports/inbound"
	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/channel_utils"
	"photo-story-weaver/domain"
)

type storyPipelineOrchestrator struct {
	logger               outbound.LoggerPort
	workerPool           outbound.TaskDispatcher
	characterExtractor   inbound.CharacterExtractorPort
	outlineGenerator     inbound.OutlineGeneratorPort
	panelSynthesizer     inbound.PanelImageSynthesizerPort
	narrationSynthesizer inbound.NarrationSynthesizerPort
	storyAssembler       inbound.StoryAssemblerPort
	mediaStore           outbound.MediaStorePort
}

func NewStoryPipelineOrchestrator(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	characterExtractor inbound.CharacterExtractorPort, outlineGenerator inbound.OutlineGeneratorPort,
	panelSynthesizer inbound.PanelImageSynthesizerPort, narrationSynthesizer inbound.NarrationSynthesizerPort,
	storyAssembler inbound.StoryAssemblerPort, mediaStore outbound.MediaStorePort) inbound.StoryPipelinePort {
	return &storyPipelineOrchestrator{
		logger:               logger,
		workerPool:           workerPool,
		characterExtractor:   characterExtractor,
		outlineGenerator:     outlineGenerator,
		panelSynthesizer:     panelSynthesizer,
		narrationSynthesizer: narrationSynthesizer,
		storyAssembler:       storyAssembler,
		mediaStore:           mediaStore,
	}
}

// GenerateStory runs the whole pipeline: character extraction (fan-out),
// outline generation (single call), then image synthesis and narration as
// two concurrent stages, and finally assembly. Every fatal failure
// releases whatever media the run already allocated and surfaces as the
// one opaque generation error.
func (s *storyPipelineOrchestrator) GenerateStory(ctx context.Context, params inbound.GenerateStoryParams) (*domain.Story, error) {
	config := params.Config
	if len(config.Photos) == 0 || config.PanelCount() <= 0 {
		s.logger.WarnWithFields("Rejecting invalid story configuration", map[string]interface{}{
			"photos": len(config.Photos),
			"panels": config.PanelCount(),
		})
		return nil, domain.ErrGenerationFailed
	}

	s.notify(params, "analyzing", "Analyzing photo context")
	characters, err := s.characterExtractor.Extract(ctx, config)
	if err != nil {
		s.logger.Error(err, "Pipeline failed during character extraction")
		return nil, domain.ErrGenerationFailed
	}

	s.notify(params, "outlining", "Weaving the threads of your story")
	outline, err := s.outlineGenerator.Generate(ctx, config, characters)
	if err != nil {
		s.logger.Error(err, "Pipeline failed during outline generation")
		return nil, domain.ErrGenerationFailed
	}

	s.notify(params, "rendering", "Painting scenes and recording narration")
	imageURLs, narrations, err := s.renderMedia(ctx, config, outline, characters)
	if err != nil {
		s.logger.Error(err, "Pipeline failed during media synthesis")
		s.narrationSynthesizer.CleanupAudioURLs(narrations)
		return nil, domain.ErrGenerationFailed
	}

	s.notify(params, "assembling", "Adding the finishing touches")
	story, err := s.storyAssembler.Assemble(outline, imageURLs, narrations)
	if err != nil {
		s.logger.Error(err, "Pipeline failed during assembly")
		s.releaseImages(imageURLs)
		s.narrationSynthesizer.CleanupAudioURLs(narrations)
		return nil, domain.ErrGenerationFailed
	}

	s.logger.InfoWithFields("Story generated", map[string]interface{}{
		"story_id": params.StoryID,
		"title":    story.Title,
		"panels":   len(story.Panels),
	})

	return story, nil
}

// renderMedia runs image synthesis and narration concurrently. Images are
// all-or-nothing; narration never contributes an error, only absent
// results. Partial narration results are returned even on failure so the
// caller can release them.
func (s *storyPipelineOrchestrator) renderMedia(ctx context.Context, config domain.StoryConfig,
	outline domain.StoryOutline, characters []domain.CharacterDescription) ([]string, []domain.NarrationResult, error) {
	stageCtx, cancelStages := context.WithCancel(ctx)
	defer cancelStages()

	imgErrCh := make(chan error, 1)
	narErrCh := make(chan error, 1)

	var wg sync.WaitGroup
	var imageURLs []string
	var narrations []domain.NarrationResult

	wg.Add(1)
	err := s.workerPool.Submit(func() {
		defer wg.Done()
		defer close(imgErrCh)
		urls, err := s.panelSynthesizer.Synthesize(stageCtx, inbound.SynthesizePanelsParams{
			Outline:         outline,
			Genre:           config.Genre,
			ConsistencyText: consistencyText(characters),
		})
		if err != nil {
			imgErrCh <- err
			cancelStages()
			return
		}
		imageURLs = urls
	})
	if err != nil {
		wg.Done()
		close(imgErrCh)
		close(narErrCh)
		return nil, nil, err
	}

	wg.Add(1)
	err = s.workerPool.Submit(func() {
		defer wg.Done()
		defer close(narErrCh)
		narrations = s.narrationSynthesizer.GenerateBatch(stageCtx, outline.Panels, config.Genre)
	})
	if err != nil {
		// narration absence is never fatal, the image stage decides alone
		wg.Done()
		close(narErrCh)
		s.logger.Error(err, "Failed to schedule narration stage")
	}

	mergedErrCh, mergeErr := channel_utils.MergeChannels(s.workerPool, imgErrCh, narErrCh)
	if mergeErr != nil {
		cancelStages()
		wg.Wait()
		s.releaseImages(imageURLs)
		return nil, narrations, mergeErr
	}

	wg.Wait()

	var stageErr error
	for err := range mergedErrCh {
		if stageErr == nil {
			stageErr = err
		}
	}
	if stageErr != nil {
		return nil, narrations, stageErr
	}

	return imageURLs, narrations, nil
}

func (s *storyPipelineOrchestrator) releaseImages(imageURLs []string) {
	for _, url := range imageURLs {
		if url != "" {
			s.mediaStore.Release(url)
		}
	}
}

func (s *storyPipelineOrchestrator) notify(params inbound.GenerateStoryParams, stage string, message string) {
	if params.Progress == nil {
		return
	}
	select {
	case params.Progress <- domain.ProgressEvent{StoryID: params.StoryID, Stage: stage, Message: message}:
	default:
	}
}

// consistencyText concatenates all character descriptions so every
// image-generation call renders the same cast coherently across panels.
func consistencyText(characters []domain.CharacterDescription) string {
	lines := make([]string, 0, len(characters))
	for _, c := range characters {
		lines = append(lines, fmt.Sprintf("%s: %s", c.Role, c.Description))
	}
	return strings.Join(lines, "\n")
}
