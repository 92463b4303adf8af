package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/warehouse/internal/application/catalog"
	"github.com/xiebiao/warehouse/internal/application/issue"
	"github.com/xiebiao/warehouse/internal/application/notify"
	appplacement "github.com/xiebiao/warehouse/internal/application/placement"
	"github.com/xiebiao/warehouse/internal/application/receiving"
	"github.com/xiebiao/warehouse/internal/application/report"
	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/internal/domain/placement"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	"github.com/xiebiao/warehouse/internal/infrastructure/config"
	"github.com/xiebiao/warehouse/internal/infrastructure/messaging"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/warehouse/internal/interface/http/handler"
	"github.com/xiebiao/warehouse/internal/interface/http/router"
	"github.com/xiebiao/warehouse/pkg/circuitbreaker"
	"github.com/xiebiao/warehouse/pkg/mq"
)

// 这里的Provider同时服务两种组装方式:
// 1. newApp:手动依赖注入,main.go直接调用
// 2. wire.go:Wire按同一组Provider生成InitializeApp
// 两边使用同一组函数,保证手写版本和生成版本的依赖关系一致

// provideDB 数据库连接及其关闭函数
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { closeDB(db) }, nil
}

// provideStatsCache 看板缓存
// redis.enabled=false时返回NopCache,每次都查库
func provideStatsCache(cfg *config.Config) (notify.Cache, func(), error) {
	if !cfg.Redis.Enabled {
		return notify.NopCache{}, func() {}, nil
	}

	client, err := redis.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			zap.L().Warn("关闭Redis失败", zap.Error(err))
		}
	}
	return redis.NewStatsCache(client, cfg.Warehouse.StatsCacheTTL), cleanup, nil
}

// provideJournalPublisher 日志事件发布
// mq.enabled=false时返回NopPublisher,事件只落库不外发
func provideJournalPublisher(cfg *config.Config) (journal.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		return messaging.NopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}
	zap.L().Info("消息队列连接成功", zap.String("exchange", cfg.MQ.Exchange))

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			zap.L().Warn("关闭消息队列失败", zap.Error(err))
		}
	}
	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name:    "journal-publisher",
		Timeout: cfg.MQ.BreakerTimeout,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= cfg.MQ.BreakerFailures
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			zap.L().Warn("熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	return messaging.NewJournalPublisher(publisher, breaker), cleanup, nil
}

// provideDashboardUseCase 低库存阈值来自配置
func provideDashboardUseCase(
	cfg *config.Config,
	productRepo product.Repository,
	rackRepo rack.Repository,
	placementRepo placement.Repository,
	journalRepo journal.Repository,
	cache notify.Cache,
) *report.DashboardUseCase {
	return report.NewDashboardUseCase(productRepo, rackRepo, placementRepo, journalRepo, cache, cfg.Warehouse.LowStockThreshold)
}

// provideEngine 创建gin引擎
func provideEngine(
	cfg *config.Config,
	catalogHandler *handler.CatalogHandler,
	batchHandler *handler.BatchHandler,
	inventoryHandler *handler.InventoryHandler,
	reportHandler *handler.ReportHandler,
) *gin.Engine {
	return router.New(router.Options{
		Mode:            cfg.Server.Mode,
		DefaultOperator: cfg.Warehouse.DefaultOperator,
		EnableSwagger:   cfg.Server.Mode != gin.ReleaseMode,
	}, router.Handlers{
		Catalog:   catalogHandler,
		Batch:     batchHandler,
		Inventory: inventoryHandler,
		Report:    reportHandler,
	})
}

// newApp 手动依赖注入
// 学习要点:依赖注入链
// Repository ← Service ← UseCase ← Handler ← Engine
func newApp(cfg *config.Config) (*gin.Engine, func(), error) {
	// 1. 基础设施
	db, closeDatabase, err := provideDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cache, closeCache, err := provideStatsCache(cfg)
	if err != nil {
		closeDatabase()
		return nil, nil, err
	}
	publisher, closePublisher, err := provideJournalPublisher(cfg)
	if err != nil {
		closeCache()
		closeDatabase()
		return nil, nil, err
	}
	cleanup := func() {
		closePublisher()
		closeCache()
		closeDatabase()
	}

	// 2. 仓储
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)
	rackRepo := mysql.NewRackRepository(db)
	batchRepo := mysql.NewBatchRepository(db)
	placementRepo := mysql.NewPlacementRepository(db)
	journalRepo := mysql.NewJournalRepository(db)
	txManager := mysql.NewTxManager(db)

	// 3. 领域层
	productService := product.NewService(productRepo, categoryRepo)
	rackService := rack.NewService(rackRepo)
	recorder := journal.NewRecorder(journalRepo)
	dispatcher := notify.NewDispatcher(publisher, cache)

	// 4. 应用层
	catalogUseCase := catalog.NewCatalogUseCase(productService, rackService)
	receiveBatch := receiving.NewReceiveBatchUseCase(batchRepo, productRepo)
	suggestRacks := receiving.NewSuggestRacksUseCase(batchRepo, productRepo, rackRepo)
	checkCapacity := receiving.NewCheckCapacityUseCase(productRepo, rackRepo)
	placeBatch := appplacement.NewPlaceBatchUseCase(batchRepo, rackRepo, productRepo, placementRepo, recorder, txManager, dispatcher)
	issueProduct := issue.NewIssueProductUseCase(productRepo, placementRepo, recorder, txManager, dispatcher)
	batchList := report.NewBatchListUseCase(batchRepo)
	journalList := report.NewJournalUseCase(journalRepo)
	dashboard := provideDashboardUseCase(cfg, productRepo, rackRepo, placementRepo, journalRepo, cache)
	search := report.NewSearchUseCase(productRepo, placementRepo)

	// 5. 接口层
	engine := provideEngine(cfg,
		handler.NewCatalogHandler(catalogUseCase),
		handler.NewBatchHandler(receiveBatch, suggestRacks, placeBatch, batchList),
		handler.NewInventoryHandler(issueProduct, checkCapacity),
		handler.NewReportHandler(journalList, dashboard, search),
	)

	return engine, cleanup, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		zap.L().Warn("关闭数据库失败", zap.Error(err))
	}
}
