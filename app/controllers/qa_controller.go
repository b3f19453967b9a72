package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ultradoc/backend-go/internal/di"
	"github.com/ultradoc/backend-go/internal/services"
)

// QAController 文档问答控制器
type QAController struct {
	BaseController
	qaService *services.QAService
}

// AskRequest 问答请求
type AskRequest struct {
	DocID    string `json:"doc_id"`
	Question string `json:"question"`
}

func (c *QAController) Prepare() {
	if c.qaService == nil {
		_ = di.Invoke(func(s *services.QAService) {
			c.qaService = s
		})
	}
}

// Ask 针对指定文档提问
// POST /api/documents/ask
func (c *QAController) Ask() {
	if c.qaService == nil {
		c.JSONError(http.StatusInternalServerError, "qa service not available")
		return
	}

	var req AskRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.DocID) == "" || strings.TrimSpace(req.Question) == "" {
		c.JSONError(http.StatusBadRequest, "doc_id and question are required")
		return
	}

	answer, err := c.qaService.Ask(c.Ctx.Request.Context(), req.DocID, req.Question)
	if err != nil {
		c.JSONAppError(err)
		return
	}

	c.JSONSuccess(answer)
}
