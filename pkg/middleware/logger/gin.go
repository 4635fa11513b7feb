package logger

import (
	// 外部依赖
	"time"

	gin "github.com/gin-gonic/gin"
)

// LogWithWriter 访问日志中间件
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		query := ctx.Request.URL.RawQuery

		ctx.Next()

		cost := time.Since(start)
		status := ctx.Writer.Status()
		if len(ctx.Errors) > 0 || status >= 500 {
			Errorf(ctx, "%s %s?%s status=%d cost=%s errs=%v",
				ctx.Request.Method, path, query, status, cost, ctx.Errors.Errors())
			return
		}
		Infof(ctx, "%s %s?%s status=%d cost=%s",
			ctx.Request.Method, path, query, status, cost)
	}
}
