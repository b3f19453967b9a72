package controllers

import (
	"io"
	"net/http"

	"github.com/ultradoc/backend-go/internal/di"
	"github.com/ultradoc/backend-go/internal/services"
)

// DocumentController 文档上传与列表控制器
type DocumentController struct {
	BaseController
	documentService *services.DocumentService
}

func (c *DocumentController) Prepare() {
	if c.documentService == nil {
		_ = di.Invoke(func(s *services.DocumentService) {
			c.documentService = s
		})
	}
}

// Upload 上传并处理一个文档
// POST /api/documents/upload
func (c *DocumentController) Upload() {
	if c.documentService == nil {
		c.JSONError(http.StatusInternalServerError, "document service not available")
		return
	}

	file, header, err := c.GetFile("file")
	if err != nil {
		c.JSONError(http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSONError(http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	result, err := c.documentService.Upload(c.Ctx.Request.Context(), fileBytes, header.Filename)
	if err != nil {
		c.JSONAppError(err)
		return
	}

	c.JSONSuccess(result)
}

// List 获取已上传文档列表
// GET /api/documents
func (c *DocumentController) List() {
	if c.documentService == nil {
		c.JSONError(http.StatusInternalServerError, "document service not available")
		return
	}

	c.JSONSuccess(map[string]interface{}{
		"documents": c.documentService.ListDocuments(),
	})
}
