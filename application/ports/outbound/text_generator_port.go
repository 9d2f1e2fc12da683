package outbound

import "context"

// InlineImage is a raw image payload attached to a text-generation request.
type InlineImage struct {
	Data     []byte
	MimeType string
}

type GenerateTextRequest struct {
	Prompt string
	Images []InlineImage
}

// TextGeneratorPort is the vision/text generation service boundary. The
// response is free-form text and may contain a structured payload wrapped
// in prose or code fences; callers own the parsing.
type TextGeneratorPort interface {
	Generate(ctx context.Context, req GenerateTextRequest) (string, error)
}
