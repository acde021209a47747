package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/quillforge/winnow/internal/config"
	"github.com/quillforge/winnow/internal/core"
	"github.com/quillforge/winnow/internal/core/common"
	"github.com/quillforge/winnow/internal/core/model"
	"github.com/quillforge/winnow/internal/llm"
)

type Server struct {
	Engine *core.Engine
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	// Default to Ollama so a local setup works without keys.
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		cfg.LLM.BaseURL = "http://localhost:11434"
	}

	llmClient, embedderClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	return &Server{
		Engine: core.NewEngine(llmClient, embedderClient, cfg),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/dedupe", s.Dedupe)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type DedupeRequest struct {
	Features []model.Scenario `json:"features"`
	// Strategy overrides the configured default for this request.
	Strategy string `json:"strategy"`
}

func (s *Server) Dedupe(c *gin.Context) {
	var req DedupeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, _, err := s.Engine.Run(c.Request.Context(), req.Strategy, req.Features)
	if err != nil {
		log.Printf("Dedup run failed: %v", err)
		switch {
		case errors.Is(err, common.ErrProviderUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
