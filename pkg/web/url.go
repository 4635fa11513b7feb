package web

import (
	// 外部依赖
	"context"

	gin "github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// 内部引用
	auth "github.com/coldstack/samplestore/pkg/middleware/auth"
	health "github.com/coldstack/samplestore/pkg/web/views/health"
	location "github.com/coldstack/samplestore/pkg/web/views/location"
	sample "github.com/coldstack/samplestore/pkg/web/views/sample"
)

func InstallURL(_ context.Context, g *gin.Engine) {
	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	locationHandle := location.NewHandle()
	sampleHandle := sample.NewHandle()

	v1 := api.Group("/v1/storage", auth.RequireActor())

	{
		nodes := v1.Group("/nodes")
		nodes.POST("", locationHandle.CreateNode)
		nodes.PUT("", locationHandle.UpdateNode)
		nodes.GET("", locationHandle.GetNode)
		nodes.GET("/children", locationHandle.ListChildren)
		nodes.GET("/can-delete", locationHandle.CanDelete)
		nodes.DELETE("", locationHandle.DeleteNode)
	}

	{
		v1.POST("/resolve", locationHandle.Resolve)
		v1.GET("/barcode", locationHandle.FormatBarcode)
		v1.GET("/barcode/type", locationHandle.BarcodeType)
		v1.GET("/occupancy", locationHandle.Occupancy)
		v1.GET("/occupancy/position", locationHandle.IsOccupied)
	}

	{
		samples := v1.Group("/samples")
		samples.POST("", sampleHandle.Register)
		samples.GET("", sampleHandle.Query)
		samples.GET("/item", sampleHandle.Get)
		samples.GET("/metrics", sampleHandle.Metrics)
		samples.POST("/assign", sampleHandle.Assign)
		samples.POST("/move", sampleHandle.Move)
		samples.POST("/dispose", sampleHandle.Dispose)
		samples.GET("/movements", sampleHandle.Movements)
	}

	{
		plans := v1.Group("/plans")
		plans.POST("", sampleHandle.PlanBulkMove)
		plans.GET("", sampleHandle.GetPlan)
		plans.POST("/commit", sampleHandle.CommitPlan)
	}
}
