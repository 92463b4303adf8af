package receiving

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/warehouse/internal/domain/allocation"
	"github.com/xiebiao/warehouse/internal/domain/placement"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	"github.com/xiebiao/warehouse/pkg/tracing"
)

// CheckCapacityUseCase 容量查询:假设到货quantity件,仓库能不能放下、放在哪
// 与上架推荐使用同一个分配算法,结果一致
type CheckCapacityUseCase struct {
	productRepo product.Repository
	rackRepo    rack.Repository
}

// NewCheckCapacityUseCase 创建容量查询用例
func NewCheckCapacityUseCase(productRepo product.Repository, rackRepo rack.Repository) *CheckCapacityUseCase {
	return &CheckCapacityUseCase{productRepo: productRepo, rackRepo: rackRepo}
}

// CapacityAllocation 单个货架的分配结果及放入后的利用率
type CapacityAllocation struct {
	allocation.Allocation
	UtilizationAfter float64
}

// CheckCapacityResponse 容量查询结果
type CheckCapacityResponse struct {
	Product     *product.Product
	Requested   int
	Allocations []CapacityAllocation
	Unallocated int
	CanStore    bool
}

// Execute 执行容量查询
func (uc *CheckCapacityUseCase) Execute(ctx context.Context, productID uint, quantity int) (resp *CheckCapacityResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "CheckCapacity",
		attribute.Int64("product_id", int64(productID)),
		attribute.Int("quantity", quantity))
	defer func() { tracing.EndSpan(span, err) }()

	if err = placement.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	p, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	racks, err := uc.rackRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	plan := allocation.Suggest(p, quantity, racks)

	resp = &CheckCapacityResponse{
		Product:     p,
		Requested:   quantity,
		Unallocated: plan.Unallocated,
		CanStore:    plan.Satisfiable(),
	}
	for _, a := range plan.Allocations {
		resp.Allocations = append(resp.Allocations, CapacityAllocation{
			Allocation:       a,
			UtilizationAfter: rack.UtilizationAfter(a.Rack, p, a.Quantity),
		})
	}
	return resp, nil
}
