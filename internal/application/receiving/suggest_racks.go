package receiving

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/warehouse/internal/domain/allocation"
	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	"github.com/xiebiao/warehouse/pkg/tracing"
)

// SuggestRacksUseCase 批次上架推荐
// 对批次剩余待上架数量运行分配算法,结果只是建议,不写库
type SuggestRacksUseCase struct {
	batchRepo   batch.Repository
	productRepo product.Repository
	rackRepo    rack.Repository
}

// NewSuggestRacksUseCase 创建上架推荐用例
func NewSuggestRacksUseCase(batchRepo batch.Repository, productRepo product.Repository, rackRepo rack.Repository) *SuggestRacksUseCase {
	return &SuggestRacksUseCase{batchRepo: batchRepo, productRepo: productRepo, rackRepo: rackRepo}
}

// SuggestRacksResponse 推荐结果
type SuggestRacksResponse struct {
	Batch         *batch.Batch
	Product       *product.Product
	AlreadyPlaced int // 已创建上架记录的初始数量之和
	Plan          allocation.Plan
}

// Execute 为批次生成上架建议
// 已全部上架的批次返回ErrBatchFullyPlaced
func (uc *SuggestRacksUseCase) Execute(ctx context.Context, batchID uint) (resp *SuggestRacksResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "SuggestRacks", attribute.Int64("batch_id", int64(batchID)))
	defer func() { tracing.EndSpan(span, err) }()

	b, err := uc.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b.IsFullyPlaced() {
		return nil, batch.ErrBatchFullyPlaced
	}

	p, err := uc.productRepo.FindByID(ctx, b.ProductID)
	if err != nil {
		return nil, err
	}

	racks, err := uc.rackRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	return &SuggestRacksResponse{
		Batch:         b,
		Product:       p,
		AlreadyPlaced: b.Totals.Placed,
		Plan:          allocation.Suggest(p, b.InitialRemaining(), racks),
	}, nil
}
