//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明:
// 1. Wire在编译期生成代码,零运行时反射
// 2. 运行 `wire gen ./cmd/api` 生成wire_gen.go,其中的InitializeApp与newApp等价
// 3. Provider与手动注入共用providers.go,两种方式的依赖关系保持一致

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/xiebiao/warehouse/internal/application/catalog"
	"github.com/xiebiao/warehouse/internal/application/issue"
	"github.com/xiebiao/warehouse/internal/application/notify"
	appplacement "github.com/xiebiao/warehouse/internal/application/placement"
	"github.com/xiebiao/warehouse/internal/application/receiving"
	"github.com/xiebiao/warehouse/internal/application/report"
	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	"github.com/xiebiao/warehouse/internal/infrastructure/config"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/warehouse/internal/interface/http/handler"
)

// infrastructureSet 数据库、缓存、消息队列
var infrastructureSet = wire.NewSet(
	provideDB,
	provideStatsCache,
	provideJournalPublisher,
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	mysql.NewCategoryRepository,
	mysql.NewProductRepository,
	mysql.NewRackRepository,
	mysql.NewBatchRepository,
	mysql.NewPlacementRepository,
	mysql.NewJournalRepository,
	mysql.NewTxManager,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	product.NewService,
	rack.NewService,
	journal.NewRecorder,
	notify.NewDispatcher,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	catalog.NewCatalogUseCase,
	receiving.NewReceiveBatchUseCase,
	receiving.NewSuggestRacksUseCase,
	receiving.NewCheckCapacityUseCase,
	appplacement.NewPlaceBatchUseCase,
	issue.NewIssueProductUseCase,
	report.NewBatchListUseCase,
	report.NewJournalUseCase,
	report.NewSearchUseCase,
	provideDashboardUseCase,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewCatalogHandler,
	handler.NewBatchHandler,
	handler.NewInventoryHandler,
	handler.NewReportHandler,
)

// InitializeApp 初始化整个应用
// 返回gin引擎和清理函数(关闭数据库、Redis、消息队列)
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideEngine,
	)
	return nil, nil, nil
}
