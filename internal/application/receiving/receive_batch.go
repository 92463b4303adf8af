// Package receiving 收货:到货登记、上架推荐、容量查询
package receiving

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/pkg/tracing"
)

// ReceiveBatchUseCase 到货登记用例
type ReceiveBatchUseCase struct {
	batchRepo   batch.Repository
	productRepo product.Repository
}

// NewReceiveBatchUseCase 创建到货登记用例
func NewReceiveBatchUseCase(batchRepo batch.Repository, productRepo product.Repository) *ReceiveBatchUseCase {
	return &ReceiveBatchUseCase{batchRepo: batchRepo, productRepo: productRepo}
}

// ReceiveBatchRequest 到货登记请求
type ReceiveBatchRequest struct {
	ProductID   uint
	Quantity    int
	Supplier    string
	Notes       string
	ArrivalDate time.Time // 零值表示当前时间
}

// Execute 登记一个到货批次
// 到货不写日志:日志只记录货架上的库存变动(上架IN/出库OUT)
func (uc *ReceiveBatchUseCase) Execute(ctx context.Context, req ReceiveBatchRequest) (b *batch.Batch, err error) {
	ctx, span := tracing.StartSpan(ctx, "ReceiveBatch",
		attribute.Int64("product_id", int64(req.ProductID)),
		attribute.Int("quantity", req.Quantity))
	defer func() { tracing.EndSpan(span, err) }()

	// 1. 构造实体(数量、供应商校验)
	b, err = batch.NewBatch(req.ProductID, req.Quantity, req.Supplier, req.Notes, req.ArrivalDate)
	if err != nil {
		return nil, err
	}

	// 2. 商品必须存在
	p, err := uc.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 3. 持久化
	if err = uc.batchRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.ProductName = p.Name

	zap.L().Info("到货登记",
		zap.Uint("batch_id", b.ID),
		zap.String("product", p.Name),
		zap.Int("quantity", b.Quantity),
		zap.String("supplier", b.Supplier))
	return b, nil
}
