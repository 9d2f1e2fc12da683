package dto

import "photo-story-weaver/domain"

type GenerateStoryResponse struct {
	StoryID string       `json:"story_id"`
	Story   domain.Story `json:"story"`
}
