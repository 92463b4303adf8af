package rack

import (
	"context"
)

// Repository 货架仓储接口
// 所有返回*Rack的方法都必须填充Loads(当前有效上架记录),
// 否则容量计算会把货架当成空的
type Repository interface {
	Create(ctx context.Context, rack *Rack) error
	FindByID(ctx context.Context, id uint) (*Rack, error)
	Update(ctx context.Context, rack *Rack) error

	// List 按名称升序返回货架,activeOnly为true时只返回启用的货架
	List(ctx context.Context, activeOnly bool) ([]*Rack, error)

	// LockByID 悲观锁查询货架(SELECT ... FOR UPDATE)
	// 上架时先锁货架再计算可用量,防止两个并发上架都通过容量检查导致超载
	LockByID(ctx context.Context, id uint) (*Rack, error)
}
