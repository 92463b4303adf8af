package placement

import (
	"context"
)

// Repository 上架记录仓储接口
type Repository interface {
	// Create 新增上架记录(回填ID)
	Create(ctx context.Context, placement *Placement) error

	// Update 保存出库后的数量与状态
	// 只允许修改Quantity与IsActive,其余字段创建后不可变
	Update(ctx context.Context, placement *Placement) error

	// LockActiveByProduct 锁定某商品的全部有效上架记录,按FIFO顺序返回
	// SELECT ... WHERE product_id = ? AND is_active ORDER BY date_placed, id FOR UPDATE
	LockActiveByProduct(ctx context.Context, productID uint) ([]*Placement, error)

	// ListActiveByProduct 查询有效上架记录(不加锁,用于展示)
	ListActiveByProduct(ctx context.Context, productID uint) ([]*Placement, error)

	// Stats 有效上架记录的统计
	Stats(ctx context.Context) (Stats, error)

	// ActiveQuantityByProduct 每个商品的有效库存合计(没有有效记录的商品为0)
	ActiveQuantityByProduct(ctx context.Context) (map[uint]int, error)
}

// Stats 看板使用的汇总数据
type Stats struct {
	ActivePlacements int64
	TotalQuantity    int64
}
