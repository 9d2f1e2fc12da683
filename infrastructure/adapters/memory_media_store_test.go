package adapters

import (
	"context"
	"strings"
	"testing"

	"photo-story-weaver/application/ports/outbound"
)

func TestMemoryMediaStore_RoundTrip(t *testing.T) {
	store := NewMemoryMediaStore(NewZerologWrapper())

	media := outbound.Media{Data: []byte("png-bytes"), MimeType: "image/png"}
	url, err := store.Save(context.Background(), media)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !strings.HasPrefix(url, "mem://") {
		t.Fatalf("handle %q lacks mem:// scheme", url)
	}

	got, found := store.Resolve(url)
	if !found {
		t.Fatal("saved media not resolvable")
	}
	if string(got.Data) != "png-bytes" || got.MimeType != "image/png" {
		t.Errorf("resolved %q/%q", got.Data, got.MimeType)
	}

	store.Release(url)
	if _, found := store.Resolve(url); found {
		t.Error("released handle still resolvable")
	}
}

func TestMemoryMediaStore_HandlesAreUnique(t *testing.T) {
	store := NewMemoryMediaStore(NewZerologWrapper())

	first, _ := store.Save(context.Background(), outbound.Media{Data: []byte("a"), MimeType: "audio/mpeg"})
	second, _ := store.Save(context.Background(), outbound.Media{Data: []byte("b"), MimeType: "audio/mpeg"})
	if first == second {
		t.Fatalf("both saves produced handle %q", first)
	}
}

func TestMemoryMediaStore_UnknownAndForeignURLs(t *testing.T) {
	store := NewMemoryMediaStore(NewZerologWrapper())

	if _, found := store.Resolve("mem://does-not-exist"); found {
		t.Error("unknown handle resolved")
	}
	if _, found := store.Resolve("https://example.com/image.png"); found {
		t.Error("foreign URL resolved")
	}

	// must be no-ops
	store.Release("mem://does-not-exist")
	store.Release("https://example.com/image.png")
}
