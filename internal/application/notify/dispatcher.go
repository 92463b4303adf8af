// Package notify 事务提交后的副作用
//
// 上架和出库在事务里只写数据库,提交成功后才:
//  1. 把日志条目发布到消息队列
//  2. 删除看板缓存
//
// 这两步失败都不影响已提交的库存变动,只记录日志和指标。
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/pkg/metrics"
)

// DashboardKey 看板缓存的key
const DashboardKey = "dashboard"

// Cache 统计缓存(由redis.StatsCache实现)
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// NopCache 未启用Redis时使用,永远未命中
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, interface{}) error         { return nil }
func (NopCache) Delete(context.Context, string) error                   { return nil }

// Dispatcher 提交后通知
type Dispatcher struct {
	publisher journal.Publisher
	cache     Cache
}

// NewDispatcher 创建通知器,publisher/cache为nil时不做对应的事
func NewDispatcher(publisher journal.Publisher, cache Cache) *Dispatcher {
	if cache == nil {
		cache = NopCache{}
	}
	return &Dispatcher{publisher: publisher, cache: cache}
}

// Committed 一组日志条目已随事务提交
func (d *Dispatcher) Committed(ctx context.Context, entries ...*journal.Entry) {
	if len(entries) == 0 {
		return
	}

	if d.publisher != nil {
		for _, e := range entries {
			if err := d.publisher.Publish(ctx, e); err != nil {
				metrics.RecordPublishFailure()
				zap.L().Warn("日志事件发布失败",
					zap.Uint("entry_id", e.ID),
					zap.String("routing_key", e.RoutingKey()),
					zap.Error(err))
			}
		}
	}

	if err := d.cache.Delete(ctx, DashboardKey); err != nil {
		zap.L().Warn("删除看板缓存失败", zap.Error(err))
	}
}
