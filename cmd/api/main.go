package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/infrastructure/config"
	"github.com/xiebiao/warehouse/pkg/logger"
	"github.com/xiebiao/warehouse/pkg/metrics"
	"github.com/xiebiao/warehouse/pkg/tracing"
)

// @title        仓库库存管理 API
// @version      1.0
// @description  到货登记、货架推荐、上架、先进先出出库、仓库日志与看板
// @BasePath     /

// main 主程序入口
//
// 启动顺序:
// 配置 → 日志 → 指标 → 链路追踪(可选) → 数据库/缓存/消息队列 → 路由 → HTTP服务
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 日志(之后统一使用zap.L())
	l, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = l.Sync() }()

	zap.L().Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("mq", cfg.MQ.Enabled),
	)

	// 3. 指标
	metrics.InitMetrics()

	// 4. 链路追踪
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zap.L().Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				zap.L().Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	// 5. 依赖注入
	engine, cleanup, err := newApp(cfg)
	if err != nil {
		zap.L().Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	// 6. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zap.L().Info("服务启动成功", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	// 7. 优雅关闭:停止接收新请求,等待进行中的事务完成
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("服务强制关闭", zap.Error(err))
	}
	zap.L().Info("服务已关闭")
}
