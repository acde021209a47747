//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillforge/winnow/internal/config"
	"github.com/quillforge/winnow/internal/core"
	"github.com/quillforge/winnow/internal/core/model"
	"github.com/quillforge/winnow/internal/llm"
)

// TestFullFlow runs a real dedup pass against a live provider. Defaults to a
// local Ollama; set LLM_PROVIDER/LLM_MODEL/LLM_API_KEY to target a hosted
// backend.
func TestFullFlow(t *testing.T) {
	_ = godotenv.Load("../../.env")

	if os.Getenv("RUN_LLM_INTEGRATION") == "" {
		t.Skip("Skipping integration test: RUN_LLM_INTEGRATION not set")
	}

	provider := os.Getenv("LLM_PROVIDER")
	modelName := os.Getenv("LLM_MODEL")
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if provider == "" {
		provider = "ollama"
	}
	if modelName == "" {
		modelName = "gpt-oss:latest"
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	llmCfg := config.LLMConfig{
		Provider:       provider,
		Model:          modelName,
		EmbeddingModel: os.Getenv("LLM_EMBEDDING_MODEL"),
		BaseURL:        baseURL,
		APIKey:         os.Getenv("LLM_API_KEY"),
	}

	ctx := context.Background()
	llmClient, embedder, err := llm.NewClient(ctx, llmCfg)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.LLM = llmCfg
	engine := core.NewEngine(llmClient, embedder, cfg)

	scenarios := []model.Scenario{
		{Given: "the user is logged in", When: "the user clicks the logout button", Then: "the user is redirected to the login page"},
		{Given: "a user has an active session", When: "they select logout", Then: "they are taken back to the login screen"},
		{Given: "the user is on the login page", When: "they enter invalid credentials", Then: "an error message is displayed"},
	}

	for _, strategyName := range []string{"cosine", "llm"} {
		if strategyName == "cosine" && embedder == nil {
			continue
		}
		t.Run(strategyName, func(t *testing.T) {
			result, _, err := engine.Run(ctx, strategyName, scenarios)
			require.NoError(t, err)

			assert.Equal(t, len(scenarios), len(result.Kept)+len(result.Removed))
			assert.NotEmpty(t, result.Kept)
			t.Logf("%s: kept %d, removed %d", strategyName, len(result.Kept), len(result.Removed))
		})
	}
}
