package services

import (
	"bytes"
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ultradoc/backend-go/internal/config"
	"github.com/ultradoc/backend-go/internal/errors"
	"github.com/ultradoc/backend-go/internal/knowledge"
	"github.com/ultradoc/backend-go/internal/store"
)

// DocumentService 文档服务：提取→分块→向量化→入库
type DocumentService struct {
	cfg      *config.Config
	parser   *knowledge.FileParserManager
	chunker  *knowledge.Chunker
	embedder knowledge.Embedder
	store    store.DocumentStore
	metrics  *MetricsService
	logger   *zap.Logger
}

// UploadResult 上传处理结果
type UploadResult struct {
	DocID         string `json:"doc_id"`
	Filename      string `json:"filename"`
	ChunksCreated int    `json:"chunks_created"`
	Status        string `json:"status"`
}

// NewDocumentService 创建文档服务
func NewDocumentService(
	cfg *config.Config,
	parser *knowledge.FileParserManager,
	chunker *knowledge.Chunker,
	embedder knowledge.Embedder,
	docStore store.DocumentStore,
	metrics *MetricsService,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		cfg:      cfg,
		parser:   parser,
		chunker:  chunker,
		embedder: embedder,
		store:    docStore,
		metrics:  metrics,
		logger:   logger,
	}
}

// Upload 处理一次文档上传，完成后文档即可被问答和抽取
func (s *DocumentService) Upload(ctx context.Context, fileBytes []byte, filename string) (*UploadResult, error) {
	start := time.Now()

	if int64(len(fileBytes)) > s.cfg.FileUpload.MaxSize {
		return nil, errors.NewFileTooLargeError(s.cfg.FileUpload.MaxSize)
	}
	if !s.parser.Supports(filename) {
		return nil, errors.NewUnsupportedFormatError(filename)
	}

	text, err := s.parser.ParseFile(bytes.NewReader(fileBytes), filename)
	if err != nil {
		s.logger.Warn("document text extraction failed",
			zap.String("filename", filename), zap.Error(err))
		return nil, errors.NewExtractionFailureError(filename, err)
	}

	chunks := s.chunker.Split(text)

	var embeddings [][]float32
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Text
		}

		embedCtx, cancel := context.WithTimeout(ctx, s.requestTimeout())
		defer cancel()

		embeddings, err = s.embedder.EmbedBatch(embedCtx, texts)
		if err != nil {
			s.logger.Error("chunk embedding failed",
				zap.String("filename", filename), zap.Int("chunks", len(chunks)), zap.Error(err))
			return nil, errors.NewGenerationFailureError("embedding", err)
		}
	}

	doc := &store.Document{
		ID:         store.NewDocumentID(time.Now()),
		Filename:   filename,
		Text:       text,
		Chunks:     chunks,
		Embeddings: embeddings,
		UploadedAt: time.Now(),
	}
	if err := s.store.Put(doc); err != nil {
		return nil, errors.NewSystemError(errors.ErrCodeInternalServer, "failed to store document").WithCause(err)
	}

	s.metrics.RecordUpload(time.Since(start))
	s.logger.Info("document indexed",
		zap.String("doc_id", doc.ID),
		zap.String("filename", filename),
		zap.Int("chunks", len(chunks)))

	return &UploadResult{
		DocID:         doc.ID,
		Filename:      filename,
		ChunksCreated: len(chunks),
		Status:        "success",
	}, nil
}

// ListDocuments 返回已上传文档列表
func (s *DocumentService) ListDocuments() []store.DocumentSummary {
	return s.store.List()
}

func (s *DocumentService) requestTimeout() time.Duration {
	return time.Duration(s.cfg.AI.RequestTimeoutSeconds) * time.Second
}
