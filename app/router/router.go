package router

import (
	"github.com/beego/beego/v2/server/web"

	"github.com/ultradoc/backend-go/app/controllers"
	"github.com/ultradoc/backend-go/app/middleware"
	"github.com/ultradoc/backend-go/internal/services"
)

// Init registers all routes. Must be called after the DI container is ready.
func Init() {
	web.InsertFilter("/*", web.BeforeRouter, middleware.CORSMiddleware)

	web.Router("/", &controllers.RootController{}, "get:Index")
	web.Router("/health", &controllers.HealthController{}, "get:Health")

	// 文档管线路由
	documentController := &controllers.DocumentController{}
	web.Router("/api/documents", documentController, "get:List")
	web.Router("/api/documents/upload", documentController, "post:Upload")

	qaController := &controllers.QAController{}
	web.Router("/api/documents/ask", qaController, "post:Ask")

	extractionController := &controllers.ExtractionController{}
	web.Router("/api/documents/extract", extractionController, "post:Extract")

	// Prometheus指标
	web.Handler("/metrics", services.NewMetricsService().Handler())
}
