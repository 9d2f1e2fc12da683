package adapters

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"photo-story-weaver/application/ports/outbound"
)

const mediaURLScheme = "mem://"

// memoryMediaStore keeps generated media in process memory and hands out
// opaque mem:// handles. Handles live until released by their owner, so
// repeated generation runs must release superseded stories.
type memoryMediaStore struct {
	store  *cache.Cache
	logger outbound.LoggerPort
}

func NewMemoryMediaStore(logger outbound.LoggerPort) outbound.MediaStorePort {
	return &memoryMediaStore{
		store:  cache.New(cache.NoExpiration, 0),
		logger: logger,
	}
}

func (m *memoryMediaStore) Save(_ context.Context, media outbound.Media) (string, error) {
	url := mediaURLScheme + uuid.NewString()
	m.store.Set(url, media, cache.NoExpiration)

	m.logger.DebugWithFields("Stored media handle", map[string]interface{}{
		"url":  url,
		"mime": media.MimeType,
		"size": len(media.Data),
	})

	return url, nil
}

func (m *memoryMediaStore) Resolve(url string) (outbound.Media, bool) {
	if !strings.HasPrefix(url, mediaURLScheme) {
		return outbound.Media{}, false
	}
	val, found := m.store.Get(url)
	if !found {
		return outbound.Media{}, false
	}
	return val.(outbound.Media), true
}

func (m *memoryMediaStore) Release(url string) {
	if !strings.HasPrefix(url, mediaURLScheme) {
		return
	}
	m.store.Delete(url)
}
