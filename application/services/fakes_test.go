package services

import (
	"context"
	"fmt"
	"sync"

	"photo-story-weaver/application/ports/inbound"
	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/domain"
)

type fakeTextGenerator struct {
	mu       sync.Mutex
	calls    int
	generate func(ctx context.Context, req outbound.GenerateTextRequest) (string, error)
}

func (f *fakeTextGenerator) Generate(ctx context.Context, req outbound.GenerateTextRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.generate(ctx, req)
}

func (f *fakeTextGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeImageGenerator struct {
	mu       sync.Mutex
	prompts  []string
	generate func(ctx context.Context, prompt string) (outbound.GeneratedImage, error)
}

func (f *fakeImageGenerator) Generate(ctx context.Context, prompt string) (outbound.GeneratedImage, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.generate(ctx, prompt)
}

type fakeNarrationGenerator struct {
	mu       sync.Mutex
	calls    []outbound.GenerateNarrationRequest
	generate func(ctx context.Context, req outbound.GenerateNarrationRequest) ([]byte, error)
}

func (f *fakeNarrationGenerator) Generate(ctx context.Context, req outbound.GenerateNarrationRequest) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	return f.generate(ctx, req)
}

func (f *fakeNarrationGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeMediaStore struct {
	mu       sync.Mutex
	next     int
	saved    map[string]outbound.Media
	released []string
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{saved: make(map[string]outbound.Media)}
}

func (f *fakeMediaStore) Save(_ context.Context, media outbound.Media) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	url := fmt.Sprintf("mem://fake-%d", f.next)
	f.saved[url] = media
	return url, nil
}

func (f *fakeMediaStore) Resolve(url string) (outbound.Media, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	media, found := f.saved[url]
	return media, found
}

func (f *fakeMediaStore) Release(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, url)
	f.released = append(f.released, url)
}

func (f *fakeMediaStore) releasedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.released)
}

type fakeDescriptionCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeDescriptionCache() *fakeDescriptionCache {
	return &fakeDescriptionCache{entries: make(map[string]string)}
}

func (f *fakeDescriptionCache) Get(photoID string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	desc, found := f.entries[photoID]
	return desc, found
}

func (f *fakeDescriptionCache) Set(photoID string, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[photoID] = description
}

type fakeCharacterExtractor struct {
	characters []domain.CharacterDescription
	err        error
}

func (f *fakeCharacterExtractor) Extract(context.Context, domain.StoryConfig) ([]domain.CharacterDescription, error) {
	return f.characters, f.err
}

type fakeOutlineGenerator struct {
	outline domain.StoryOutline
	err     error
}

func (f *fakeOutlineGenerator) Generate(context.Context, domain.StoryConfig, []domain.CharacterDescription) (domain.StoryOutline, error) {
	return f.outline, f.err
}

type fakePanelSynthesizer struct {
	imageURLs []string
	err       error
}

func (f *fakePanelSynthesizer) Synthesize(context.Context, inbound.SynthesizePanelsParams) ([]string, error) {
	return f.imageURLs, f.err
}

type fakeNarrationSynthesizer struct {
	mu         sync.Mutex
	results    []domain.NarrationResult
	cleanedUp  [][]domain.NarrationResult
	batchCalls int
}

func (f *fakeNarrationSynthesizer) GenerateBatch(context.Context, []domain.PanelSpec, domain.Genre) []domain.NarrationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	return f.results
}

func (f *fakeNarrationSynthesizer) CleanupAudioURLs(results []domain.NarrationResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanedUp = append(f.cleanedUp, results)
}

func (f *fakeNarrationSynthesizer) cleanupCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cleanedUp)
}
