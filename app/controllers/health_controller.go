package controllers

import (
	"github.com/ultradoc/backend-go/internal/di"
	"github.com/ultradoc/backend-go/internal/knowledge"
	"github.com/ultradoc/backend-go/internal/store"
)

// RootController 根控制器
type RootController struct {
	BaseController
}

func (c *RootController) Index() {
	c.JSONSuccess(map[string]string{"message": "Ultra Doc-Intelligence API"})
}

// HealthController 健康检查控制器
type HealthController struct {
	BaseController
	generator knowledge.Generator
	store     store.DocumentStore
}

func (c *HealthController) Prepare() {
	if c.store == nil {
		_ = di.Invoke(func(g knowledge.Generator, s store.DocumentStore) {
			c.generator = g
			c.store = s
		})
	}
}

func (c *HealthController) Health() {
	generationAvailable := c.generator != nil && c.generator.Ready()
	documentCount := 0
	if c.store != nil {
		documentCount = c.store.Count()
	}

	c.JSONSuccess(map[string]interface{}{
		"status":               "healthy",
		"generation_available": generationAvailable,
		"documents_loaded":     documentCount,
	})
}
