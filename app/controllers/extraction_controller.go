package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ultradoc/backend-go/internal/di"
	"github.com/ultradoc/backend-go/internal/services"
)

// ExtractionController 结构化数据抽取控制器
type ExtractionController struct {
	BaseController
	extractionService *services.ExtractionService
}

// ExtractRequest 结构化抽取请求
type ExtractRequest struct {
	DocID string `json:"doc_id"`
}

func (c *ExtractionController) Prepare() {
	if c.extractionService == nil {
		_ = di.Invoke(func(s *services.ExtractionService) {
			c.extractionService = s
		})
	}
}

// Extract 从文档中抽取运单结构化字段
// POST /api/documents/extract
func (c *ExtractionController) Extract() {
	if c.extractionService == nil {
		c.JSONError(http.StatusInternalServerError, "extraction service not available")
		return
	}

	var req ExtractRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.DocID) == "" {
		c.JSONError(http.StatusBadRequest, "doc_id is required")
		return
	}

	data, err := c.extractionService.Extract(c.Ctx.Request.Context(), req.DocID)
	if err != nil {
		c.JSONAppError(err)
		return
	}

	c.JSONSuccess(data)
}
