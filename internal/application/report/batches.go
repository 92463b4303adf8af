package report

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/batch"
)

// BatchListUseCase 批次查询(含派生数量)
type BatchListUseCase struct {
	batchRepo batch.Repository
}

// NewBatchListUseCase 创建批次查询用例
func NewBatchListUseCase(batchRepo batch.Repository) *BatchListUseCase {
	return &BatchListUseCase{batchRepo: batchRepo}
}

// List 按到货时间倒序分页
func (uc *BatchListUseCase) List(ctx context.Context, params batch.ListParams) ([]*batch.Batch, int64, error) {
	return uc.batchRepo.List(ctx, params)
}

// Get 查询单个批次
func (uc *BatchListUseCase) Get(ctx context.Context, id uint) (*batch.Batch, error) {
	return uc.batchRepo.FindByID(ctx, id)
}
