package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"photo-story-weaver/application/services"
	"photo-story-weaver/config"
	"photo-story-weaver/infrastructure/adapters"
	"photo-story-weaver/infrastructure/gin_interface/controllers"
	"photo-story-weaver/middleware"
)

const descriptionCacheTTL = time.Hour

func main() {
	_ = godotenv.Load()

	geminiConfig, err := config.GetGeminiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gemini config")
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  geminiConfig.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create genai client")
	}

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	textGenerator := adapters.NewGeminiTextGenerator(genaiClient, geminiConfig, zeroLogger)
	imageGenerator := adapters.NewGeminiImageGenerator(genaiClient, geminiConfig, zeroLogger)
	narrationGenerator := adapters.NewElevenLabsNarrationGenerator(contentFetcher, elevenLabsConfig, zeroLogger)

	mediaStore := adapters.NewMemoryMediaStore(zeroLogger)
	descriptionCache := adapters.NewMemoryDescriptionCache(descriptionCacheTTL)

	characterExtractor := services.NewCharacterExtractor(zeroLogger, textGenerator, descriptionCache, workerPool)
	outlineGenerator := services.NewOutlineGenerator(zeroLogger, textGenerator)
	panelSynthesizer := services.NewPanelImageSynthesizer(zeroLogger, imageGenerator, mediaStore)
	narrationSynthesizer := services.NewNarrationSynthesizer(zeroLogger, narrationGenerator, mediaStore,
		elevenLabsConfig.RequestSpacing, elevenLabsConfig.RateLimitCooldown)
	storyAssembler := services.NewStoryAssembler(zeroLogger)

	storyPipeline := services.NewStoryPipelineOrchestrator(zeroLogger, workerPool, characterExtractor,
		outlineGenerator, panelSynthesizer, narrationSynthesizer, storyAssembler, mediaStore)

	storyController := controllers.NewStoryController(zeroLogger, workerPool, storyPipeline, mediaStore)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(jwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	storyController.RegisterRoutes(router, middleware.SSEMiddleware())

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
