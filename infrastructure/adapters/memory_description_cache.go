package adapters

import (
	"time"

	"github.com/patrickmn/go-cache"

	"photo-story-weaver/application/ports/outbound"
)

type memoryDescriptionCache struct {
	store *cache.Cache
}

func NewMemoryDescriptionCache(ttl time.Duration) outbound.DescriptionCachePort {
	return &memoryDescriptionCache{
		store: cache.New(ttl, 2*ttl),
	}
}

func (c *memoryDescriptionCache) Get(photoID string) (string, bool) {
	val, found := c.store.Get(photoID)
	if !found {
		return "", false
	}
	return val.(string), true
}

func (c *memoryDescriptionCache) Set(photoID string, description string) {
	c.store.SetDefault(photoID, description)
}
