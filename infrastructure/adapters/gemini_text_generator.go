package adapters

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/config"
)

type geminiTextGenerator struct {
	client       *genai.Client
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

func NewGeminiTextGenerator(client *genai.Client, geminiConfig *config.GeminiConfig,
	logger outbound.LoggerPort) outbound.TextGeneratorPort {
	return &geminiTextGenerator{
		client:       client,
		logger:       logger,
		geminiConfig: geminiConfig,
	}
}

func (g *geminiTextGenerator) Generate(ctx context.Context, req outbound.GenerateTextRequest) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Images)+1)
	for _, img := range req.Images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: img.MimeType,
				Data:     img.Data,
			},
		})
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	content := &genai.Content{Parts: parts}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.geminiConfig.TextModel,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: floatPtr(0.7),
		},
	)
	if err != nil {
		g.logger.ErrorWithFields(err, "Text generation call failed", map[string]interface{}{
			"model": g.geminiConfig.TextModel,
		})
		return "", err
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", fmt.Errorf("no text in response")
}

func floatPtr(f float64) *float32 {
	f32 := float32(f)
	return &f32
}
