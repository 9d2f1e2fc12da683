package outbound

// DescriptionCachePort memoises character descriptions per photo so a
// re-run with the same photos skips repeat vision calls.
type DescriptionCachePort interface {
	Get(photoID string) (string, bool)
	Set(photoID string, description string)
}
