package knowledge

import (
	"context"
	"errors"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// Generator 定义文本生成能力接口
// Ready()为false时调用方应使用降级路径而不是调用Generate
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Ready() bool
}

// NoopGenerator 默认占位实现，未配置生成能力时使用
type NoopGenerator struct{}

func (n *NoopGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("generation provider not configured")
}

func (n *NoopGenerator) Ready() bool {
	return false
}

// OpenAIGenerator 使用OpenAI Chat Completion API
type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int
	limiter   sync.Mutex
}

// NewOpenAIGenerator 创建OpenAI文本生成器
// API key为空时返回NoopGenerator
func NewOpenAIGenerator(apiKey, model string, maxTokens int) Generator {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &NoopGenerator{}
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	return &OpenAIGenerator{
		client:    openai.NewClient(apiKey),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is empty")
	}
	if g.client == nil {
		return "", errors.New("openai client not initialized")
	}

	g.limiter.Lock()
	defer g.limiter.Unlock()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion response empty")
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) Ready() bool {
	return g.client != nil
}
