package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"photo-story-weaver/application/ports/inbound"
	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/domain"
)

type outlineGenerator struct {
	logger        outbound.LoggerPort
	textGenerator outbound.TextGeneratorPort
}

func NewOutlineGenerator(logger outbound.LoggerPort, textGenerator outbound.TextGeneratorPort) inbound.OutlineGeneratorPort {
	return &outlineGenerator{
		logger:        logger,
		textGenerator: textGenerator,
	}
}

// Generate makes one text-generation call and parses the structured
// outline out of the response. A transport failure propagates; an
// unparsable response degrades to the deterministic synthetic outline.
func (s *outlineGenerator) Generate(ctx context.Context, config domain.StoryConfig,
	characters []domain.CharacterDescription) (domain.StoryOutline, error) {
	raw, err := s.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		Prompt: s.buildPrompt(config, characters),
	})
	if err != nil {
		s.logger.Error(err, "Outline generation call failed")
		return domain.StoryOutline{}, err
	}

	outline, ok := parseOutline(raw, config.PanelCount())
	if !ok {
		s.logger.WarnWithFields("Outline response unparsable, using synthetic fallback", map[string]interface{}{
			"genre":  config.Genre,
			"panels": config.PanelCount(),
		})
		return fallbackOutline(config, characters), nil
	}

	return outline, nil
}

func (s *outlineGenerator) buildPrompt(config domain.StoryConfig, characters []domain.CharacterDescription) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a %s story told in exactly %d illustrated panels.\n\n", config.Genre, config.PanelCount())

	b.WriteString("Cast and elements:\n")
	for _, c := range characters {
		fmt.Fprintf(&b, "- %s: %s\n", c.Role, c.Description)
	}

	if config.Mode == domain.SinglePhotoMode {
		b.WriteString("\nThe story centers entirely on the single pictured subject.\n")
	}

	fmt.Fprintf(&b, "\nRespond with a single JSON object and nothing else, in this exact shape:\n"+
		"{\n"+
		"  \"title\": \"story title\",\n"+
		"  \"panels\": [\n"+
		"    {\"panelNumber\": 1, \"description\": \"what the scene shows\", \"narration\": \"one or two spoken sentences\", \"imagePrompt\": \"a visual prompt for an illustrator\"}\n"+
		"  ]\n"+
		"}\n"+
		"The panels array must contain exactly %d entries numbered 1 to %d.",
		config.PanelCount(), config.PanelCount())

	return b.String()
}

// parseOutline locates a JSON payload inside free-form model output,
// tolerating surrounding prose and fenced wrapping. It reports ok=false on
// anything it cannot decode into an outline of the expected panel count.
func parseOutline(raw string, panelCount int) (domain.StoryOutline, bool) {
	payload := extractJSONObjectText(stripCodeFences(raw))
	if payload == "" {
		return domain.StoryOutline{}, false
	}

	var outline domain.StoryOutline
	if err := json.Unmarshal([]byte(payload), &outline); err != nil {
		return domain.StoryOutline{}, false
	}

	if strings.TrimSpace(outline.Title) == "" {
		return domain.StoryOutline{}, false
	}
	if len(outline.Panels) != panelCount {
		return domain.StoryOutline{}, false
	}

	for i := range outline.Panels {
		outline.Panels[i].PanelNumber = i + 1
		if strings.TrimSpace(outline.Panels[i].ImagePrompt) == "" {
			outline.Panels[i].ImagePrompt = outline.Panels[i].Description
		}
	}

	return outline, true
}

// fallbackOutline is the deterministic degradation path: same
// configuration and characters always yield the same outline shape.
func fallbackOutline(config domain.StoryConfig, characters []domain.CharacterDescription) domain.StoryOutline {
	roles := make([]string, 0, len(characters))
	for _, c := range characters {
		roles = append(roles, string(c.Role))
	}
	cast := strings.Join(roles, ", ")

	panels := make([]domain.PanelSpec, config.PanelCount())
	for i := range panels {
		n := i + 1
		description := fmt.Sprintf("Panel %d of an epic %s tale featuring: %s.", n, config.Genre, cast)
		panels[i] = domain.PanelSpec{
			PanelNumber: n,
			Description: description,
			Narration:   fmt.Sprintf("In a world of %s, our story unfolds. Panel %d reveals a new twist in the tale for our heroes.", config.Genre, n),
			ImagePrompt: description,
		}
	}

	return domain.StoryOutline{
		Title:  fmt.Sprintf("The %s of the Brave Hero", config.Genre),
		Panels: panels,
	}
}

func stripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

func extractJSONObjectText(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(raw[start : end+1])
}
