package batch

import (
	"context"
)

// Repository 批次仓储接口
// 返回的*Batch都必须填充Totals
type Repository interface {
	Create(ctx context.Context, batch *Batch) error
	FindByID(ctx context.Context, id uint) (*Batch, error)

	// LockByID 悲观锁查询批次(SELECT ... FOR UPDATE)
	// 上架时锁定批次,保证并发上架不会超出批次剩余数量
	LockByID(ctx context.Context, id uint) (*Batch, error)

	// List 按到货时间倒序分页
	List(ctx context.Context, params ListParams) ([]*Batch, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page      int
	PageSize  int
	ProductID uint // 0表示不过滤
}
