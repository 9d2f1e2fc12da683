package config

import (
	"fmt"
	"os"
)

const (
	defaultTextModel  = "gemini-2.0-flash"
	defaultImageModel = "gemini-2.5-flash-image"
)

type GeminiConfig struct {
	ApiKey     string
	TextModel  string
	ImageModel string
}

func GetGeminiConfig() (*GeminiConfig, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	textModel := os.Getenv("GEMINI_TEXT_MODEL")
	if textModel == "" {
		textModel = defaultTextModel
	}

	imageModel := os.Getenv("GEMINI_IMAGE_MODEL")
	if imageModel == "" {
		imageModel = defaultImageModel
	}

	return &GeminiConfig{
		ApiKey:     apiKey,
		TextModel:  textModel,
		ImageModel: imageModel,
	}, nil
}
