package knowledge

import (
	"context"
	"errors"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder 定义文本向量化接口
// 同一文档生命周期内，建库与查询必须使用同一个Embedder实例
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Ready() bool
}

// NoopEmbedder 默认占位实现
type NoopEmbedder struct{}

func (n *NoopEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embedding provider not configured")
}

func (n *NoopEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("embedding provider not configured")
}

func (n *NoopEmbedder) Dimensions() int {
	return 0
}

func (n *NoopEmbedder) Ready() bool {
	return false
}

var embeddingDimensions = map[string]int{
	"text-embedding-3-large": 3072,
	"text-embedding-3-small": 1536,
	"text-embedding-ada-002": 1536,
}

// OpenAIEmbedder 使用OpenAI Embedding API
type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	dimensions int
	limiter    sync.Mutex
}

// NewOpenAIEmbedder 创建OpenAI嵌入向量生成器
// API key为空时返回NoopEmbedder
func NewOpenAIEmbedder(apiKey, model string) Embedder {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &NoopEmbedder{}
	}
	if model == "" {
		model = "text-embedding-3-small"
	}

	client := openai.NewClient(apiKey)
	dims, ok := embeddingDimensions[model]
	if !ok {
		dims = 1536
	}

	return &OpenAIEmbedder{
		client:     client,
		model:      model,
		dimensions: dims,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch 批量向量化，整批一次API调用
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("texts are empty")
	}
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, errors.New("text is empty")
		}
	}
	if e.client == nil {
		return nil, errors.New("openai client not initialized")
	}

	e.limiter.Lock()
	defer e.limiter.Unlock()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.New("embedding response incomplete")
	}

	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vector := make([]float32, len(data.Embedding))
		copy(vector, data.Embedding)
		vectors[i] = vector
	}
	return vectors, nil
}

func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *OpenAIEmbedder) Ready() bool {
	return e.client != nil
}
