package middleware

import (
	"github.com/beego/beego/v2/server/web/context"
)

// CORSMiddleware CORS中间件，前端开发服务器跨域访问需要
func CORSMiddleware(ctx *context.Context) {
	origin := ctx.Input.Header("Origin")
	if origin != "" {
		ctx.Output.Header("Access-Control-Allow-Origin", origin)
	}

	ctx.Output.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	ctx.Output.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept, Origin")
	ctx.Output.Header("Access-Control-Allow-Credentials", "true")
	ctx.Output.Header("Access-Control-Max-Age", "3600")

	// 处理OPTIONS预检请求
	if ctx.Input.Method() == "OPTIONS" {
		ctx.Output.SetStatus(204)
		ctx.Output.Body([]byte(""))
	}
}
