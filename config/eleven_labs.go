package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultModelId          = "eleven_monolingual_v1"
	defaultRequestSpacingMs = 1500
	defaultCooldownMs       = 5000
)

type ElevenLabsConfig struct {
	ApiUrl  string
	ApiKey  string
	ModelId string
	// RequestSpacing is the idle gap enforced between consecutive
	// narration requests; RateLimitCooldown is the longer wait before the
	// single retry after a 429.
	RequestSpacing    time.Duration
	RateLimitCooldown time.Duration
}

func GetElevenLabsConfig() (*ElevenLabsConfig, error) {
	apiUrl := os.Getenv("ELEVEN_LABS_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("ELEVEN_LABS_API_URL must be set")
	}
	apiKey := os.Getenv("ELEVEN_LABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ELEVEN_LABS_API_KEY must be set")
	}
	modelId := os.Getenv("ELEVEN_LABS_MODEL_ID")
	if modelId == "" {
		modelId = defaultModelId
	}

	spacing, err := durationFromEnvMs("ELEVEN_LABS_REQUEST_SPACING_MS", defaultRequestSpacingMs)
	if err != nil {
		return nil, err
	}

	cooldown, err := durationFromEnvMs("ELEVEN_LABS_COOLDOWN_MS", defaultCooldownMs)
	if err != nil {
		return nil, err
	}

	return &ElevenLabsConfig{
		ApiUrl:            apiUrl,
		ApiKey:            apiKey,
		ModelId:           modelId,
		RequestSpacing:    spacing,
		RateLimitCooldown: cooldown,
	}, nil
}

func durationFromEnvMs(key string, fallbackMs int) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallbackMs) * time.Millisecond, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
