package outbound

import (
	"context"
	"errors"
)

// ErrNoImagePayload is returned when the image service responds without an
// inline image part. There is no placeholder fallback: the panel's
// synthesis has failed.
var ErrNoImagePayload = errors.New("no image payload in response")

type GeneratedImage struct {
	Data     []byte
	MimeType string
}

type ImageGeneratorPort interface {
	Generate(ctx context.Context, prompt string) (GeneratedImage, error)
}
