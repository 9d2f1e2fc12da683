package adapters

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/config"
)

type geminiImageGenerator struct {
	client       *genai.Client
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

func NewGeminiImageGenerator(client *genai.Client, geminiConfig *config.GeminiConfig,
	logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &geminiImageGenerator{
		client:       client,
		logger:       logger,
		geminiConfig: geminiConfig,
	}
}

// Generate renders one illustration and returns the first inline
// image-typed part of the response. A response without one is an error for
// the panel, never silently replaced.
func (g *geminiImageGenerator) Generate(ctx context.Context, prompt string) (outbound.GeneratedImage, error) {
	content := &genai.Content{
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.geminiConfig.ImageModel,
		[]*genai.Content{content},
		g.requestConfig(),
	)
	if err != nil {
		g.logger.ErrorWithFields(err, "Image generation call failed", map[string]interface{}{
			"model": g.geminiConfig.ImageModel,
		})
		return outbound.GeneratedImage{}, err
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			if !strings.HasPrefix(part.InlineData.MIMEType, "image/") {
				continue
			}
			return outbound.GeneratedImage{
				Data:     part.InlineData.Data,
				MimeType: part.InlineData.MIMEType,
			}, nil
		}
	}

	g.logger.WarnWithFields("Image response contained no inline image part", map[string]interface{}{
		"model": g.geminiConfig.ImageModel,
	})
	return outbound.GeneratedImage{}, outbound.ErrNoImagePayload
}

// Panels render at 4:3 so a story reads as a consistent strip.
func (g *geminiImageGenerator) requestConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: "4:3",
		},
		Temperature: floatPtr(0.7),
	}
}
