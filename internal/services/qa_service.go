package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ultradoc/backend-go/internal/config"
	"github.com/ultradoc/backend-go/internal/errors"
	"github.com/ultradoc/backend-go/internal/knowledge"
	"github.com/ultradoc/backend-go/internal/store"
)

// 检索到的块之间的可见分隔符
const contextSeparator = "\n\n---\n\n"

// 无生成能力时降级答案的最大长度（字符）
const fallbackAnswerChars = 200

const answerPromptTemplate = `Based ONLY on the following document excerpts, answer the question.
If the information is not in the excerpts, say "Information not found in document."

Document excerpts:
%s

Question: %s

Provide a direct, concise answer based only on the information above.`

// Answer 问答结果
// 护栏覆盖也是正常响应：通过置信度0和说明文本表达"无法回答"
type Answer struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// QAService 问答服务：检索→生成→置信度→护栏
type QAService struct {
	cfg       *config.Config
	store     store.DocumentStore
	retriever *knowledge.Retriever
	generator knowledge.Generator
	scorer    *knowledge.ConfidenceScorer
	guardrail *knowledge.GuardrailPolicy
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewQAService 创建问答服务
func NewQAService(
	cfg *config.Config,
	docStore store.DocumentStore,
	retriever *knowledge.Retriever,
	generator knowledge.Generator,
	scorer *knowledge.ConfidenceScorer,
	guardrail *knowledge.GuardrailPolicy,
	metrics *MetricsService,
	logger *zap.Logger,
) *QAService {
	return &QAService{
		cfg:       cfg,
		store:     docStore,
		retriever: retriever,
		generator: generator,
		scorer:    scorer,
		guardrail: guardrail,
		metrics:   metrics,
		logger:    logger,
	}
}

// Ask 回答关于指定文档的问题
func (s *QAService) Ask(ctx context.Context, docID, question string) (*Answer, error) {
	start := time.Now()

	doc, ok := s.store.Get(docID)
	if !ok {
		return nil, errors.NewDocumentNotFoundError(docID)
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout())
	defer cancel()

	retrieved, err := s.retriever.Retrieve(reqCtx, question, doc.Chunks, doc.Embeddings)
	if err != nil {
		s.logger.Error("query embedding failed",
			zap.String("doc_id", docID), zap.Error(err))
		return nil, errors.NewGenerationFailureError("embedding", err)
	}

	similarities := make([]float64, len(retrieved))
	sources := make([]string, len(retrieved))
	for i, r := range retrieved {
		similarities[i] = r.Score
		sources[i] = r.Chunk.Text
	}
	groundingContext := strings.Join(sources, contextSeparator)

	answerText := s.synthesizeAnswer(reqCtx, question, groundingContext, sources)

	confidence, reasoning := s.scorer.Score(similarities, answerText, groundingContext)

	outcome := "answered"
	if message, triggered := s.guardrail.Check(similarities, confidence); triggered {
		answerText = message
		confidence = 0
		reasoning = "Guardrail triggered"
		if strings.HasPrefix(message, "NOT_FOUND") {
			outcome = "not_found"
		} else {
			outcome = "low_confidence"
		}
	}

	s.metrics.RecordQuestion(outcome, time.Since(start))
	s.logger.Info("question answered",
		zap.String("doc_id", docID),
		zap.String("outcome", outcome),
		zap.Float64("confidence", confidence))

	return &Answer{
		Answer:     answerText,
		Sources:    sources,
		Confidence: knowledge.Round3(confidence),
		Reasoning:  reasoning,
	}, nil
}

// synthesizeAnswer 生成答案文本
// 生成能力不可用时降级为返回最佳块的截断前缀；
// 生成调用失败转为可见的错误文本而不是请求失败
func (s *QAService) synthesizeAnswer(ctx context.Context, question, groundingContext string, sources []string) string {
	if !s.generator.Ready() {
		if len(sources) == 0 {
			return "Information not found in document."
		}
		return "Based on the retrieved context: " + truncateRunes(sources[0], fallbackAnswerChars) + "..."
	}

	prompt := fmt.Sprintf(answerPromptTemplate, groundingContext, question)
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("answer generation failed", zap.Error(err))
		return fmt.Sprintf("Error generating answer: %v", err)
	}
	return text
}

func (s *QAService) requestTimeout() time.Duration {
	return time.Duration(s.cfg.AI.RequestTimeoutSeconds) * time.Second
}

func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}
