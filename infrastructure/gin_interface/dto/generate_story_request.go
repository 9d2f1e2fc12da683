package dto

import (
	"fmt"

	"photo-story-weaver/domain"
)

type PhotoPayload struct {
	ID       string `json:"id"`
	Role     string `json:"role" binding:"required"`
	Data     string `json:"data" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
}

type GenerateStoryRequest struct {
	Mode          string         `json:"mode" binding:"required"`
	Genre         string         `json:"genre" binding:"required"`
	Length        string         `json:"length" binding:"required"`
	Photos        []PhotoPayload `json:"photos" binding:"required,min=1"`
	ProtagonistID string         `json:"protagonist_id"`
	StylePhotoID  string         `json:"style_photo_id"`
}

var modes = map[string]domain.StoryMode{
	"single": domain.SinglePhotoMode,
	"multi":  domain.MultiPhotoMode,
}

var genres = map[string]domain.Genre{
	"Adventure":     domain.AdventureGenre,
	"Mystery":       domain.MysteryGenre,
	"Romance":       domain.RomanceGenre,
	"Sci-Fi":        domain.SciFiGenre,
	"Fantasy":       domain.FantasyGenre,
	"Horror":        domain.HorrorGenre,
	"Comedy":        domain.ComedyGenre,
	"Bedtime Story": domain.BedtimeGenre,
}

var lengths = map[string]domain.StoryLength{
	"quick":    domain.QuickLength,
	"standard": domain.StandardLength,
	"epic":     domain.EpicLength,
}

var roles = map[string]domain.Role{
	"Hero":         domain.HeroRole,
	"Sidekick":     domain.SidekickRole,
	"Villain":      domain.VillainRole,
	"Setting":      domain.SettingRole,
	"Magical Item": domain.ItemRole,
}

// ToConfig validates the enumerated fields and maps the request onto the
// immutable story configuration.
func (r GenerateStoryRequest) ToConfig() (domain.StoryConfig, error) {
	mode, ok := modes[r.Mode]
	if !ok {
		return domain.StoryConfig{}, fmt.Errorf("unknown mode: %q", r.Mode)
	}
	genre, ok := genres[r.Genre]
	if !ok {
		return domain.StoryConfig{}, fmt.Errorf("unknown genre: %q", r.Genre)
	}
	length, ok := lengths[r.Length]
	if !ok {
		return domain.StoryConfig{}, fmt.Errorf("unknown length: %q", r.Length)
	}

	photos := make([]domain.Photo, len(r.Photos))
	for i, p := range r.Photos {
		role, ok := roles[p.Role]
		if !ok {
			return domain.StoryConfig{}, fmt.Errorf("unknown photo role: %q", p.Role)
		}
		photos[i] = domain.Photo{
			ID:       p.ID,
			Base64:   p.Data,
			MimeType: p.MimeType,
			Role:     role,
		}
	}

	if mode == domain.SinglePhotoMode && len(photos) != 1 {
		return domain.StoryConfig{}, fmt.Errorf("single-photo mode requires exactly one photo, got %d", len(photos))
	}

	return domain.StoryConfig{
		Mode:          mode,
		Genre:         genre,
		Length:        length,
		Photos:        photos,
		ProtagonistID: r.ProtagonistID,
		StylePhotoID:  r.StylePhotoID,
	}, nil
}
