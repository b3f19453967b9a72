package di

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/ultradoc/backend-go/internal/config"
	"github.com/ultradoc/backend-go/internal/knowledge"
	"github.com/ultradoc/backend-go/internal/logger"
	"github.com/ultradoc/backend-go/internal/services"
	"github.com/ultradoc/backend-go/internal/store"
)

// RegisterProviders 注册所有依赖提供者
func RegisterProviders(container *dig.Container) error {
	providers := []interface{}{
		// 基础设施
		func() (*config.Config, error) {
			cfg := config.GetAppConfig()
			if cfg == nil {
				return nil, fmt.Errorf("config not loaded")
			}
			return cfg, nil
		},
		func() *zap.Logger {
			return logger.GetLogger()
		},

		// 外部能力：向量化与文本生成，API key缺失时自动降级为Noop实现
		func(cfg *config.Config) knowledge.Embedder {
			return knowledge.NewOpenAIEmbedder(cfg.AI.OpenAIAPIKey, cfg.AI.EmbeddingModel)
		},
		func(cfg *config.Config) knowledge.Generator {
			return knowledge.NewOpenAIGenerator(cfg.AI.OpenAIAPIKey, cfg.AI.ChatModel, cfg.AI.MaxTokens)
		},

		// 检索与置信度管线
		knowledge.NewFileParserManager,
		func(cfg *config.Config) *knowledge.Chunker {
			return knowledge.NewChunker(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
		},
		func(cfg *config.Config, embedder knowledge.Embedder) *knowledge.Retriever {
			return knowledge.NewRetriever(embedder, cfg.RAG.TopK)
		},
		func(cfg *config.Config) *knowledge.ConfidenceScorer {
			return knowledge.NewConfidenceScorer(cfg.RAG.LowConfidenceThreshold, cfg.RAG.HighConfidenceThreshold)
		},
		func(cfg *config.Config) *knowledge.GuardrailPolicy {
			return knowledge.NewGuardrailPolicy(cfg.RAG.MinSimilarityThreshold, cfg.RAG.LowConfidenceThreshold)
		},

		// 存储
		store.NewMemoryStore,

		// 服务
		services.NewMetricsService,
		services.NewDocumentService,
		services.NewQAService,
		services.NewExtractionService,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}
