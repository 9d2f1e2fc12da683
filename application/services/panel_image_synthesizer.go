package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"photo-story-weaver/application/ports/inbound"
	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/domain"
)

var genreStyles = map[domain.Genre]string{
	domain.AdventureGenre: "vibrant storybook illustration, sweeping vistas, bold colors",
	domain.MysteryGenre:   "noir illustration, deep shadows, muted palette",
	domain.RomanceGenre:   "soft watercolor illustration, warm pastel tones",
	domain.SciFiGenre:     "retro-futuristic illustration, sleek surfaces, neon accents",
	domain.FantasyGenre:   "richly detailed fantasy painting, luminous magic, epic scale",
	domain.HorrorGenre:    "dark gothic illustration, unsettling atmosphere, high contrast",
	domain.ComedyGenre:    "playful cartoon illustration, exaggerated expressions, bright colors",
	domain.BedtimeGenre:   "gentle children's book illustration, soft edges, calm tones",
}

var genreLighting = map[domain.Genre]string{
	domain.AdventureGenre: "golden hour sunlight",
	domain.MysteryGenre:   "dim lamplight with long shadows",
	domain.RomanceGenre:   "warm diffused evening light",
	domain.SciFiGenre:     "cool artificial glow",
	domain.FantasyGenre:   "ethereal moonlit shimmer",
	domain.HorrorGenre:    "flickering candlelight in darkness",
	domain.ComedyGenre:    "bright cheerful daylight",
	domain.BedtimeGenre:   "soft twilight with starlight",
}

const (
	defaultStyle    = "detailed storybook illustration"
	defaultLighting = "natural balanced lighting"
)

type panelImageSynthesizer struct {
	logger         outbound.LoggerPort
	imageGenerator outbound.ImageGeneratorPort
	mediaStore     outbound.MediaStorePort
}

func NewPanelImageSynthesizer(logger outbound.LoggerPort, imageGenerator outbound.ImageGeneratorPort,
	mediaStore outbound.MediaStorePort) inbound.PanelImageSynthesizerPort {
	return &panelImageSynthesizer{
		logger:         logger,
		imageGenerator: imageGenerator,
		mediaStore:     mediaStore,
	}
}

// Synthesize renders every panel concurrently and waits for all of them.
// The operation is all-or-nothing: the first failure aborts the joint wait
// and anything already rendered is released.
func (s *panelImageSynthesizer) Synthesize(ctx context.Context, params inbound.SynthesizePanelsParams) ([]string, error) {
	panels := params.Outline.Panels
	imageURLs := make([]string, len(panels))

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range panels {
		i, spec := i, spec
		g.Go(func() error {
			prompt := buildPanelPrompt(spec, params.Genre, params.ConsistencyText)

			image, err := s.imageGenerator.Generate(gctx, prompt)
			if err != nil {
				return fmt.Errorf("panel %d: %w", spec.PanelNumber, err)
			}

			url, err := s.mediaStore.Save(gctx, outbound.Media{Data: image.Data, MimeType: image.MimeType})
			if err != nil {
				return fmt.Errorf("panel %d: %w", spec.PanelNumber, err)
			}

			imageURLs[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, url := range imageURLs {
			if url != "" {
				s.mediaStore.Release(url)
			}
		}
		s.logger.Error(err, "Panel image synthesis failed")
		return nil, err
	}

	return imageURLs, nil
}

func buildPanelPrompt(spec domain.PanelSpec, genre domain.Genre, consistencyText string) string {
	style, ok := genreStyles[genre]
	if !ok {
		style = defaultStyle
	}
	lighting, ok := genreLighting[genre]
	if !ok {
		lighting = defaultLighting
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s.\n\n", style, lighting)
	fmt.Fprintf(&b, "Scene: %s\n", spec.ImagePrompt)
	if consistencyText != "" {
		fmt.Fprintf(&b, "\nKeep these characters consistent with their descriptions:\n%s\n", consistencyText)
	}
	b.WriteString("\nDo not include any text, captions, lettering, or watermarks in the image.")

	return b.String()
}
