// Package router 组装gin引擎:全局中间件、运维路由和/api/v1业务路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/warehouse/internal/interface/http/handler"
	"github.com/xiebiao/warehouse/internal/interface/http/middleware"
	"github.com/xiebiao/warehouse/pkg/response"
)

// Options 路由选项
type Options struct {
	Mode            string // gin运行模式: debug | release | test
	DefaultOperator string // 请求未指明操作员时使用
	EnableSwagger   bool
}

// Handlers 所有HTTP处理器
type Handlers struct {
	Catalog   *handler.CatalogHandler
	Batch     *handler.BatchHandler
	Inventory *handler.InventoryHandler
	Report    *handler.ReportHandler
}

// New 创建gin引擎并注册路由
// 设计说明:
// 1. 中间件顺序:Recovery → Logger → Metrics → Operator,Logger最先拿到request_id
// 2. /ping、/metrics、/swagger 不属于业务接口,挂在根路由
// 3. 没有认证,操作员身份只用于写日志
func New(opts Options, h Handlers) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.Operator(opts.DefaultOperator),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus抓取入口
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档:访问 http://localhost:8080/swagger/index.html
	// 生产环境建议关闭
	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		// 基础资料
		v1.POST("/categories", h.Catalog.CreateCategory)
		v1.GET("/categories", h.Catalog.ListCategories)

		products := v1.Group("/products")
		{
			products.POST("", h.Catalog.CreateProduct)
			products.GET("", h.Catalog.ListProducts)
			products.GET("/:id", h.Catalog.GetProduct)
			products.PUT("/:id", h.Catalog.UpdateProduct)
		}

		racks := v1.Group("/racks")
		{
			racks.POST("", h.Catalog.CreateRack)
			racks.GET("", h.Catalog.ListRacks)
			racks.GET("/:id", h.Catalog.GetRack)
			racks.PUT("/:id", h.Catalog.UpdateRack)
		}

		// 到货与上架
		batches := v1.Group("/batches")
		{
			batches.POST("", h.Batch.ReceiveBatch)
			batches.GET("", h.Batch.ListBatches)
			batches.GET("/:id", h.Batch.GetBatch)
			batches.GET("/:id/suggestions", h.Batch.SuggestRacks)
			batches.POST("/:id/placements", h.Batch.PlaceBatch)
		}

		// 出库与容量
		v1.POST("/issues", h.Inventory.IssueProduct)
		v1.POST("/capacity-checks", h.Inventory.CheckCapacity)

		// 查询
		v1.GET("/journal", h.Report.ListJournal)
		v1.GET("/dashboard", h.Report.Dashboard)
		v1.GET("/search", h.Report.Search)
	}

	return r
}
