package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/ultradoc/backend-go/internal/config"
)

// fakeEmbedder 返回固定向量的测试桩
type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = f.vector
	}
	return vectors, nil
}

func (f *fakeEmbedder) Dimensions() int { return len(f.vector) }
func (f *fakeEmbedder) Ready() bool     { return f.err == nil }

// fakeGenerator 返回固定文本的测试桩
type fakeGenerator struct {
	response string
	err      error
	ready    bool
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGenerator) Ready() bool { return f.ready }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.AI.RequestTimeoutSeconds = 5
	cfg.RAG.ChunkSize = 500
	cfg.RAG.ChunkOverlap = 100
	cfg.RAG.TopK = 3
	cfg.RAG.MinSimilarityThreshold = 0.25
	cfg.RAG.LowConfidenceThreshold = 0.4
	cfg.RAG.HighConfidenceThreshold = 0.7
	cfg.RAG.ExtractMaxChars = 4000
	cfg.FileUpload.MaxSize = 15 * 1024 * 1024
	return cfg
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
