// Package report 只读查询:看板、搜索、日志、批次列表
package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/application/notify"
	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/internal/domain/placement"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	"github.com/xiebiao/warehouse/pkg/metrics"
	"github.com/xiebiao/warehouse/pkg/tracing"
)

const (
	lowStockLimit    = 5  // 低库存最多展示的商品数
	recentEntryLimit = 10 // 最近操作条数
	rackUsageLimit   = 5  // 利用率展示的货架数
)

// Dashboard 看板数据
type Dashboard struct {
	TotalProducts    int              `json:"total_products"`
	ActiveRacks      int              `json:"active_racks"`
	ActivePlacements int64            `json:"active_placements"`
	TotalQuantity    int64            `json:"total_quantity"`
	LowStock         []LowStockItem   `json:"low_stock"`
	RecentEntries    []*journal.Entry `json:"recent_entries"`
	RackUsage        []RackUsage      `json:"rack_usage"`
}

// LowStockItem 低库存商品
type LowStockItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
}

// RackUsage 货架利用率
type RackUsage struct {
	RackID             uint    `json:"rack_id"`
	Name               string  `json:"name"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// DashboardUseCase 看板统计
//
// 教学要点:Cache-Aside
//  1. 先读缓存,命中直接返回
//  2. 未命中查库计算,写回缓存(TTL由缓存实现决定)
//  3. 上架/出库提交后由notify.Dispatcher删除缓存
type DashboardUseCase struct {
	productRepo       product.Repository
	rackRepo          rack.Repository
	placementRepo     placement.Repository
	journalRepo       journal.Repository
	cache             notify.Cache
	lowStockThreshold int
}

// NewDashboardUseCase 创建看板用例
func NewDashboardUseCase(
	productRepo product.Repository,
	rackRepo rack.Repository,
	placementRepo placement.Repository,
	journalRepo journal.Repository,
	cache notify.Cache,
	lowStockThreshold int,
) *DashboardUseCase {
	if cache == nil {
		cache = notify.NopCache{}
	}
	return &DashboardUseCase{
		productRepo:       productRepo,
		rackRepo:          rackRepo,
		placementRepo:     placementRepo,
		journalRepo:       journalRepo,
		cache:             cache,
		lowStockThreshold: lowStockThreshold,
	}
}

// Execute 返回看板数据
func (uc *DashboardUseCase) Execute(ctx context.Context) (d *Dashboard, err error) {
	ctx, span := tracing.StartSpan(ctx, "Dashboard")
	defer func() { tracing.EndSpan(span, err) }()

	// 1. 读缓存;缓存故障时降级为直接查库
	var cached Dashboard
	hit, err := uc.cache.Get(ctx, notify.DashboardKey, &cached)
	if err != nil {
		zap.L().Warn("读取看板缓存失败", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	// 2. 查库计算
	d, err = uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	// 3. 回写缓存
	if err := uc.cache.Set(ctx, notify.DashboardKey, d); err != nil {
		zap.L().Warn("写入看板缓存失败", zap.Error(err))
	}
	return d, nil
}

func (uc *DashboardUseCase) compute(ctx context.Context) (*Dashboard, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	racks, err := uc.rackRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	stats, err := uc.placementRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	quantities, err := uc.placementRepo.ActiveQuantityByProduct(ctx)
	if err != nil {
		return nil, err
	}
	recent, _, err := uc.journalRepo.List(ctx, journal.ListParams{Page: 1, PageSize: recentEntryLimit})
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalProducts:    len(products),
		ActiveRacks:      len(racks),
		ActivePlacements: stats.ActivePlacements,
		TotalQuantity:    stats.TotalQuantity,
		LowStock:         []LowStockItem{},
		RecentEntries:    recent,
		RackUsage:        []RackUsage{},
	}

	// 低库存:有效库存低于阈值(包括没有库存的商品),按商品ID取前5个
	for _, p := range products {
		if len(d.LowStock) == lowStockLimit {
			break
		}
		if qty := quantities[p.ID]; qty < uc.lowStockThreshold {
			d.LowStock = append(d.LowStock, LowStockItem{ProductID: p.ID, Name: p.Name, SKU: p.SKU, Quantity: qty})
		}
	}

	// 利用率:启用货架按名称取前5个;指标刷新全部启用货架
	for i, r := range racks {
		percent := rack.UtilizationPercent(r)
		metrics.SetRackUtilization(r.Name, percent)
		if i < rackUsageLimit {
			d.RackUsage = append(d.RackUsage, RackUsage{RackID: r.ID, Name: r.Name, UtilizationPercent: percent})
		}
	}

	return d, nil
}
