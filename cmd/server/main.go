package main

import (
	"log"

	"github.com/beego/beego/v2/server/web"
	"go.uber.org/zap"

	"github.com/ultradoc/backend-go/app/bootstrap"
	"github.com/ultradoc/backend-go/app/router"
	"github.com/ultradoc/backend-go/internal/config"
	"github.com/ultradoc/backend-go/internal/logger"
)

func main() {
	app, err := bootstrap.Init()
	if err != nil {
		log.Fatalf("failed to bootstrap application: %v", err)
	}
	defer app.Shutdown()

	router.Init()

	// 配置Beego全局设置
	web.BConfig.AppName = "Ultra Doc-Intelligence"
	web.BConfig.CopyRequestBody = true
	web.BConfig.Listen.HTTPPort = config.GetAppConfig().Server.Port

	logger.Info("🚀 Starting Ultra Doc-Intelligence API",
		zap.Int("port", web.BConfig.Listen.HTTPPort))
	web.Run()
}
