package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photo-story-weaver/application/ports/inbound"
	"photo-story-weaver/application/ports/outbound"
	"photo-story-weaver/domain"
	"photo-story-weaver/infrastructure/gin_interface/dto"
)

type StoryController interface {
	GenerateStory(c *gin.Context)
	StreamStory(c *gin.Context)
	GetMedia(c *gin.Context)
	ReleaseMedia(c *gin.Context)
	RegisterRoutes(g *gin.Engine, sseMiddleware gin.HandlerFunc)
}

type storyController struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	pipeline   inbound.StoryPipelinePort
	mediaStore outbound.MediaStorePort
}

func NewStoryController(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	pipeline inbound.StoryPipelinePort, mediaStore outbound.MediaStorePort) StoryController {
	return &storyController{
		logger:     logger,
		workerPool: workerPool,
		pipeline:   pipeline,
		mediaStore: mediaStore,
	}
}

func (s *storyController) GenerateStory(c *gin.Context) {
	config, ok := s.bindConfig(c)
	if !ok {
		return
	}

	storyID := uuid.NewString()
	story, err := s.pipeline.GenerateStory(c.Request.Context(), inbound.GenerateStoryParams{
		StoryID: storyID,
		Config:  config,
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": domain.ErrGenerationFailed.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateStoryResponse{
		StoryID: storyID,
		Story:   *story,
	})
}

// StreamStory runs the same pipeline but streams progress events to the
// client before the final story event.
func (s *storyController) StreamStory(c *gin.Context) {
	config, ok := s.bindConfig(c)
	if !ok {
		return
	}

	storyID := uuid.NewString()
	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	progress := make(chan domain.ProgressEvent, 8)
	done := make(chan runOutcome, 1)

	err := s.workerPool.Submit(func() {
		defer close(progress)
		story, err := s.pipeline.GenerateStory(newCtx, inbound.GenerateStoryParams{
			StoryID:  storyID,
			Config:   config,
			Progress: progress,
		})
		done <- runOutcome{story: story, err: err}
	})
	if err != nil {
		s.logger.Error(err, "failed to schedule story generation")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": domain.ErrGenerationFailed.Error()})
		return
	}

	for {
		select {
		case ev, open := <-progress:
			if !open {
				progress = nil
				continue
			}
			c.SSEvent("progress", ev)
			c.Writer.Flush()
		case out := <-done:
			if out.err != nil {
				c.SSEvent("error", gin.H{"error": out.err.Error()})
			} else {
				c.SSEvent("story", dto.GenerateStoryResponse{StoryID: storyID, Story: *out.story})
			}
			c.Writer.Flush()
			return
		case <-newCtx.Done():
			s.reapAbandoned(storyID, done)
			return
		}
	}
}

type runOutcome struct {
	story *domain.Story
	err   error
}

// reapAbandoned waits out a run whose client disconnected mid-stream. A
// run that still completed leaves owned media handles behind with nobody
// left to release them, so they are released here.
func (s *storyController) reapAbandoned(storyID string, done <-chan runOutcome) {
	err := s.workerPool.Submit(func() {
		out := <-done
		if out.story == nil {
			return
		}
		for _, panel := range out.story.Panels {
			if panel.ImageURL != "" {
				s.mediaStore.Release(panel.ImageURL)
			}
			if panel.AudioURL != "" {
				s.mediaStore.Release(panel.AudioURL)
			}
		}
		s.logger.InfoWithFields("Released media for abandoned stream", map[string]interface{}{
			"story_id": storyID,
			"panels":   len(out.story.Panels),
		})
	})
	if err != nil {
		s.logger.Error(err, "Failed to schedule abandoned-stream cleanup")
	}
}

func (s *storyController) GetMedia(c *gin.Context) {
	media, found := s.mediaStore.Resolve(mediaURL(c.Param("id")))
	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown media handle"})
		return
	}
	c.Data(http.StatusOK, media.MimeType, media.Data)
}

// ReleaseMedia lets the consumer free a handle once the panel holding it
// is no longer displayed.
func (s *storyController) ReleaseMedia(c *gin.Context) {
	s.mediaStore.Release(mediaURL(c.Param("id")))
	c.Status(http.StatusNoContent)
}

func (s *storyController) RegisterRoutes(g *gin.Engine, sseMiddleware gin.HandlerFunc) {
	g.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	g.POST("/generate", s.GenerateStory)
	g.POST("/generate/stream", sseMiddleware, s.StreamStory)
	g.GET("/media/:id", s.GetMedia)
	g.DELETE("/media/:id", s.ReleaseMedia)
}

func (s *storyController) bindConfig(c *gin.Context) (domain.StoryConfig, bool) {
	var req dto.GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.StoryConfig{}, false
	}

	config, err := req.ToConfig()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.StoryConfig{}, false
	}

	return config, true
}

func mediaURL(id string) string {
	return "mem://" + strings.TrimPrefix(id, "mem://")
}
