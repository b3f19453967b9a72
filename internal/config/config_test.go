package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig())

	cfg := GetAppConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)

	assert.Equal(t, "gpt-4o-mini", cfg.AI.ChatModel)
	assert.Equal(t, "text-embedding-3-small", cfg.AI.EmbeddingModel)
	assert.Equal(t, 1000, cfg.AI.MaxTokens)
	assert.Equal(t, 60, cfg.AI.RequestTimeoutSeconds)

	assert.Equal(t, 500, cfg.RAG.ChunkSize)
	assert.Equal(t, 100, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 3, cfg.RAG.TopK)
	assert.Equal(t, 0.25, cfg.RAG.MinSimilarityThreshold)
	assert.Equal(t, 0.4, cfg.RAG.LowConfidenceThreshold)
	assert.Equal(t, 0.7, cfg.RAG.HighConfidenceThreshold)
	assert.Equal(t, 4000, cfg.RAG.ExtractMaxChars)

	assert.Equal(t, int64(15728640), cfg.FileUpload.MaxSize)
	assert.Contains(t, cfg.FileUpload.AllowedTypes, ".pdf")
	assert.Contains(t, cfg.FileUpload.AllowedTypes, ".docx")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("OPENAI_API_KEY", "sk-test-123")

	require.NoError(t, LoadConfig())

	cfg := GetAppConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "sk-test-123", cfg.AI.OpenAIAPIKey)
}

func TestConfigValidation(t *testing.T) {
	t.Setenv("ENV", "nonsense")

	// env取值受限于development/staging/production
	assert.Error(t, LoadConfig())
}
