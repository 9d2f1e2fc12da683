package outbound

import "context"

type Media struct {
	Data     []byte
	MimeType string
}

// MediaStorePort holds generated media as transient, locally-owned
// handles. Each handle is owned exclusively by the result it resides in
// and must be released once no longer needed, or stored media grows
// without bound across repeated generation runs.
type MediaStorePort interface {
	Save(ctx context.Context, media Media) (string, error)
	Resolve(url string) (Media, bool)
	Release(url string)
}
