package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/panjf2000/ants/v2"

	"photo-story-weaver/application/ports/inbound"
	"photo-story-weaver/domain"
	"photo-story-weaver/infrastructure/adapters"
)

func quickFantasyConfig() domain.StoryConfig {
	return domain.StoryConfig{
		Mode:   domain.MultiPhotoMode,
		Genre:  domain.FantasyGenre,
		Length: domain.QuickLength,
		Photos: []domain.Photo{
			photoFixture("hero", domain.HeroRole, "hero-bytes"),
			photoFixture("castle", domain.SettingRole, "castle-bytes"),
		},
	}
}

func threePanelOutline() domain.StoryOutline {
	panels := make([]domain.PanelSpec, 3)
	for i := range panels {
		panels[i] = domain.PanelSpec{
			PanelNumber: i + 1,
			Description: fmt.Sprintf("Scene %d", i+1),
			Narration:   fmt.Sprintf("Narration %d", i+1),
			ImagePrompt: fmt.Sprintf("Prompt %d", i+1),
		}
	}
	return domain.StoryOutline{Title: "The Crystal Gate", Panels: panels}
}

type orchestratorFixture struct {
	extractor   *fakeCharacterExtractor
	outliner    *fakeOutlineGenerator
	synthesizer *fakePanelSynthesizer
	narrator    *fakeNarrationSynthesizer
	mediaStore  *fakeMediaStore
}

func newOrchestrator(t *testing.T, fx orchestratorFixture) inbound.StoryPipelinePort {
	t.Helper()
	pool, err := ants.NewPool(10)
	if err != nil {
		t.Fatalf("failed to create worker pool: %v", err)
	}
	t.Cleanup(pool.Release)

	logger := adapters.NewZerologWrapper()
	return NewStoryPipelineOrchestrator(logger, pool, fx.extractor, fx.outliner,
		fx.synthesizer, fx.narrator, NewStoryAssembler(logger), fx.mediaStore)
}

func inboundParams(storyID string, config domain.StoryConfig,
	progress chan domain.ProgressEvent) inbound.GenerateStoryParams {
	return inbound.GenerateStoryParams{StoryID: storyID, Config: config, Progress: progress}
}

func TestStoryPipeline_FullRun(t *testing.T) {
	fx := orchestratorFixture{
		extractor: &fakeCharacterExtractor{characters: []domain.CharacterDescription{
			{Role: domain.HeroRole, Description: "A knight with a silver braid"},
			{Role: domain.SettingRole, Description: "A castle above the clouds"},
		}},
		outliner:    &fakeOutlineGenerator{outline: threePanelOutline()},
		synthesizer: &fakePanelSynthesizer{imageURLs: []string{"mem://img-1", "mem://img-2", "mem://img-3"}},
		narrator: &fakeNarrationSynthesizer{results: []domain.NarrationResult{
			{PanelNumber: 1, AudioURL: "mem://aud-1"},
			{PanelNumber: 2, AudioURL: "mem://aud-2"},
			{PanelNumber: 3, AudioURL: "mem://aud-3"},
		}},
		mediaStore: newFakeMediaStore(),
	}
	orchestrator := newOrchestrator(t, fx)

	progress := make(chan domain.ProgressEvent, 16)
	story, err := orchestrator.GenerateStory(context.Background(), inboundParams("story-1", quickFantasyConfig(), progress))
	if err != nil {
		t.Fatalf("GenerateStory returned error: %v", err)
	}

	if story.Title == "" {
		t.Error("story has no title")
	}
	if len(story.Panels) != 3 {
		t.Fatalf("got %d panels, want 3", len(story.Panels))
	}
	for i, panel := range story.Panels {
		if panel.PanelNumber != i+1 {
			t.Errorf("panel %d numbered %d", i, panel.PanelNumber)
		}
		if panel.ImageURL == "" {
			t.Errorf("panel %d has no image", i+1)
		}
		if panel.AudioURL == "" {
			t.Errorf("panel %d has no audio", i+1)
		}
	}

	close(progress)
	stages := make(map[string]bool)
	for event := range progress {
		if event.StoryID != "story-1" {
			t.Errorf("progress event for %q", event.StoryID)
		}
		stages[event.Stage] = true
	}
	for _, stage := range []string{"analyzing", "outlining", "rendering", "assembling"} {
		if !stages[stage] {
			t.Errorf("missing progress stage %q", stage)
		}
	}
}

func TestStoryPipeline_ImageFailureReleasesNarration(t *testing.T) {
	fx := orchestratorFixture{
		extractor:   &fakeCharacterExtractor{},
		outliner:    &fakeOutlineGenerator{outline: threePanelOutline()},
		synthesizer: &fakePanelSynthesizer{err: errors.New("image model unavailable")},
		narrator: &fakeNarrationSynthesizer{results: []domain.NarrationResult{
			{PanelNumber: 1, AudioURL: "mem://aud-1"},
		}},
		mediaStore: newFakeMediaStore(),
	}
	orchestrator := newOrchestrator(t, fx)

	_, err := orchestrator.GenerateStory(context.Background(), inboundParams("story-2", quickFantasyConfig(), nil))
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("got %v, want ErrGenerationFailed", err)
	}
	if fx.narrator.cleanupCalls() != 1 {
		t.Errorf("narration cleanup called %d times, want 1", fx.narrator.cleanupCalls())
	}
}

func TestStoryPipeline_EmptyNarrationStillProducesStory(t *testing.T) {
	fx := orchestratorFixture{
		extractor:   &fakeCharacterExtractor{},
		outliner:    &fakeOutlineGenerator{outline: threePanelOutline()},
		synthesizer: &fakePanelSynthesizer{imageURLs: []string{"mem://img-1", "mem://img-2", "mem://img-3"}},
		narrator:    &fakeNarrationSynthesizer{},
		mediaStore:  newFakeMediaStore(),
	}
	orchestrator := newOrchestrator(t, fx)

	story, err := orchestrator.GenerateStory(context.Background(), inboundParams("story-3", quickFantasyConfig(), nil))
	if err != nil {
		t.Fatalf("GenerateStory returned error: %v", err)
	}
	for _, panel := range story.Panels {
		if panel.AudioURL != "" {
			t.Errorf("panel %d unexpectedly has audio", panel.PanelNumber)
		}
	}
}

// limitedDispatcher admits a fixed number of submissions, then fails.
type limitedDispatcher struct {
	mu      sync.Mutex
	allowed int
}

func (d *limitedDispatcher) Submit(task func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.allowed <= 0 {
		return errors.New("pool exhausted")
	}
	d.allowed--
	go task()
	return nil
}

func TestStoryPipeline_MergeFailureReleasesRenderedImages(t *testing.T) {
	fx := orchestratorFixture{
		extractor:   &fakeCharacterExtractor{},
		outliner:    &fakeOutlineGenerator{outline: threePanelOutline()},
		synthesizer: &fakePanelSynthesizer{imageURLs: []string{"mem://img-1", "mem://img-2", "mem://img-3"}},
		narrator:    &fakeNarrationSynthesizer{},
		mediaStore:  newFakeMediaStore(),
	}

	logger := adapters.NewZerologWrapper()
	// the two media stages get scheduled, the error-channel merge does not
	orchestrator := NewStoryPipelineOrchestrator(logger, &limitedDispatcher{allowed: 2},
		fx.extractor, fx.outliner, fx.synthesizer, fx.narrator, NewStoryAssembler(logger), fx.mediaStore)

	_, err := orchestrator.GenerateStory(context.Background(), inboundParams("story-6", quickFantasyConfig(), nil))
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("got %v, want ErrGenerationFailed", err)
	}
	if fx.mediaStore.releasedCount() != 3 {
		t.Errorf("released %d image handles, want 3", fx.mediaStore.releasedCount())
	}
	if fx.narrator.cleanupCalls() != 1 {
		t.Errorf("narration cleanup called %d times, want 1", fx.narrator.cleanupCalls())
	}
}

func TestStoryPipeline_RejectsInvalidConfig(t *testing.T) {
	fx := orchestratorFixture{
		extractor:   &fakeCharacterExtractor{},
		outliner:    &fakeOutlineGenerator{},
		synthesizer: &fakePanelSynthesizer{},
		narrator:    &fakeNarrationSynthesizer{},
		mediaStore:  newFakeMediaStore(),
	}
	orchestrator := newOrchestrator(t, fx)

	cases := []struct {
		name   string
		config domain.StoryConfig
	}{
		{"no photos", domain.StoryConfig{Mode: domain.SinglePhotoMode, Genre: domain.ComedyGenre, Length: domain.QuickLength}},
		{"zero length", domain.StoryConfig{Mode: domain.SinglePhotoMode, Genre: domain.ComedyGenre,
			Photos: []domain.Photo{photoFixture("p", domain.HeroRole, "p-bytes")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orchestrator.GenerateStory(context.Background(),
				inboundParams("story-4", tc.config, nil))
			if !errors.Is(err, domain.ErrGenerationFailed) {
				t.Errorf("got %v, want ErrGenerationFailed", err)
			}
		})
	}
}

func TestStoryPipeline_OutlineFailureIsFatal(t *testing.T) {
	fx := orchestratorFixture{
		extractor:   &fakeCharacterExtractor{},
		outliner:    &fakeOutlineGenerator{err: errors.New("language model unavailable")},
		synthesizer: &fakePanelSynthesizer{},
		narrator:    &fakeNarrationSynthesizer{},
		mediaStore:  newFakeMediaStore(),
	}
	orchestrator := newOrchestrator(t, fx)

	_, err := orchestrator.GenerateStory(context.Background(), inboundParams("story-5", quickFantasyConfig(), nil))
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("got %v, want ErrGenerationFailed", err)
	}
}

func TestConsistencyText(t *testing.T) {
	text := consistencyText([]domain.CharacterDescription{
		{Role: domain.HeroRole, Description: "a red fox"},
		{Role: domain.SettingRole, Description: "an autumn forest"},
	})
	want := "Hero: a red fox\nSetting: an autumn forest"
	if text != want {
		t.Errorf("consistency text %q, want %q", text, want)
	}
}
