package web

import (
	// 外部依赖
	"context"

	cors "github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	// 内部引用
	config "github.com/coldstack/samplestore/internal/config"
	logger "github.com/coldstack/samplestore/pkg/middleware/logger"
)

func NewRouter(ctx context.Context, g *gin.Engine) {
	installMiddleware(g)
	InstallURL(ctx, g)
}

func installMiddleware(g *gin.Engine) {
	g.Use(otelgin.Middleware(config.Global().Server.Service))
	g.Use(logger.LogWithWriter())
	g.Use(gin.Recovery())

	corsConf := cors.DefaultConfig()
	corsConf.AllowAllOrigins = true
	corsConf.AllowHeaders = append(corsConf.AllowHeaders, "Authorization", "X-Actor")
	g.Use(cors.New(corsConf))
}
