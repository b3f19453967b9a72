package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ultradoc/backend-go/internal/config"
	"github.com/ultradoc/backend-go/internal/errors"
	"github.com/ultradoc/backend-go/internal/knowledge"
	"github.com/ultradoc/backend-go/internal/store"
)

// 结构化字段数量，置信度 = 非空字段数 / structuredFieldCount
const structuredFieldCount = 11

const extractionPromptTemplate = `Extract the following logistics information from the document.
Return ONLY a JSON object with these exact fields. Use null if information is not found.

Fields to extract:
- shipment_id: string
- shipper: string (company name)
- consignee: string (company name)
- pickup_datetime: string (ISO format if possible)
- delivery_datetime: string (ISO format if possible)
- equipment_type: string (e.g., "53' Dry Van", "Flatbed")
- mode: string (e.g., "Truckload", "LTL")
- rate: string (numeric value)
- currency: string (e.g., "USD")
- weight: string (with units)
- carrier_name: string

Document:
%s

Return ONLY valid JSON, no other text.`

// StructuredData 从文档中抽取的运单结构化字段
// 文档中没有的字段保持null，不填充占位文本
type StructuredData struct {
	ShipmentID       *string `json:"shipment_id"`
	Shipper          *string `json:"shipper"`
	Consignee        *string `json:"consignee"`
	PickupDatetime   *string `json:"pickup_datetime"`
	DeliveryDatetime *string `json:"delivery_datetime"`
	EquipmentType    *string `json:"equipment_type"`
	Mode             *string `json:"mode"`
	Rate             *string `json:"rate"`
	Currency         *string `json:"currency"`
	Weight           *string `json:"weight"`
	CarrierName      *string `json:"carrier_name"`
	Confidence       float64 `json:"confidence"`
}

// NonNullFields 统计已填充的字段数
func (d *StructuredData) NonNullFields() int {
	count := 0
	for _, field := range []*string{
		d.ShipmentID, d.Shipper, d.Consignee,
		d.PickupDatetime, d.DeliveryDatetime, d.EquipmentType,
		d.Mode, d.Rate, d.Currency, d.Weight, d.CarrierName,
	} {
		if field != nil {
			count++
		}
	}
	return count
}

// ExtractionService 结构化抽取服务
// 任何失败都降级为全null结果，不向调用方抛错
type ExtractionService struct {
	cfg       *config.Config
	store     store.DocumentStore
	generator knowledge.Generator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewExtractionService 创建结构化抽取服务
func NewExtractionService(
	cfg *config.Config,
	docStore store.DocumentStore,
	generator knowledge.Generator,
	metrics *MetricsService,
	logger *zap.Logger,
) *ExtractionService {
	return &ExtractionService{
		cfg:       cfg,
		store:     docStore,
		generator: generator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Extract 从文档全文中抽取结构化运单数据
func (s *ExtractionService) Extract(ctx context.Context, docID string) (*StructuredData, error) {
	start := time.Now()

	doc, ok := s.store.Get(docID)
	if !ok {
		return nil, errors.NewDocumentNotFoundError(docID)
	}

	data := s.extractFromText(ctx, doc.Text)

	status := "ok"
	if data.NonNullFields() == 0 {
		status = "degraded"
	}
	s.metrics.RecordExtraction(status, time.Since(start))

	return data, nil
}

func (s *ExtractionService) extractFromText(ctx context.Context, text string) *StructuredData {
	empty := &StructuredData{Confidence: 0}

	if !s.generator.Ready() {
		return empty
	}

	// 限制送入提示词的文本长度
	truncated := truncateRunes(text, s.cfg.RAG.ExtractMaxChars)
	prompt := fmt.Sprintf(extractionPromptTemplate, truncated)

	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout())
	defer cancel()

	response, err := s.generator.Generate(reqCtx, prompt)
	if err != nil {
		s.logger.Warn("structured extraction generation failed", zap.Error(err))
		return empty
	}

	// 生成器可能在JSON外附加说明文字，取首尾花括号之间的子串
	jsonText, ok := extractJSONObject(response)
	if !ok {
		s.logger.Warn("no JSON object found in extraction response")
		return empty
	}

	var data StructuredData
	if err := json.Unmarshal([]byte(jsonText), &data); err != nil {
		s.logger.Warn("failed to parse extraction response", zap.Error(err))
		return empty
	}

	data.Confidence = knowledge.Round3(float64(data.NonNullFields()) / structuredFieldCount)
	return &data
}

func (s *ExtractionService) requestTimeout() time.Duration {
	return time.Duration(s.cfg.AI.RequestTimeoutSeconds) * time.Second
}

// extractJSONObject 提取响应中第一个花括号包围的JSON对象子串
func extractJSONObject(response string) (string, bool) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return "", false
	}
	return response[startIdx : endIdx+1], true
}
