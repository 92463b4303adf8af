// Package issue 出库用例
package issue

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/application/notify"
	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/internal/domain/placement"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/warehouse/pkg/metrics"
	"github.com/xiebiao/warehouse/pkg/tracing"
)

// IssueProductUseCase 按先进先出从货架出库
type IssueProductUseCase struct {
	productRepo   product.Repository
	placementRepo placement.Repository
	recorder      *journal.Recorder
	txManager     *mysql.TxManager
	dispatcher    *notify.Dispatcher
}

// NewIssueProductUseCase 创建出库用例
func NewIssueProductUseCase(
	productRepo product.Repository,
	placementRepo placement.Repository,
	recorder *journal.Recorder,
	txManager *mysql.TxManager,
	dispatcher *notify.Dispatcher,
) *IssueProductUseCase {
	return &IssueProductUseCase{
		productRepo:   productRepo,
		placementRepo: placementRepo,
		recorder:      recorder,
		txManager:     txManager,
		dispatcher:    dispatcher,
	}
}

// IssueRequest 出库请求
type IssueRequest struct {
	ProductID uint
	Quantity  int
	Operator  string
}

// IssueResult 出库结果
// 库存不足不是错误:能出多少出多少,Unfulfilled返回缺口
type IssueResult struct {
	ProductID   uint
	Requested   int
	Fulfilled   int
	Unfulfilled int
	Entries     []*journal.Entry // 每条被消耗的上架记录对应一条OUT日志
}

// Partial 是否有未满足的数量
func (r *IssueResult) Partial() bool {
	return r.Unfulfilled > 0
}

func (r *IssueResult) metricResult() string {
	switch {
	case r.Fulfilled == 0:
		return metrics.IssueResultEmpty
	case r.Partial():
		return metrics.IssueResultPartial
	default:
		return metrics.IssueResultFull
	}
}

// Execute 执行出库
//
// 一个事务内:
//  1. 锁定该商品全部有效上架记录(FIFO顺序)
//  2. placement.Drain计算每条记录的出库数量
//  3. 逐条保存记录,并追加OUT日志(部分出库记"Partial issue",整条出库记"Full issue")
//
// 任何一步失败整体回滚:要么全部记录和日志都写入,要么都不写
func (uc *IssueProductUseCase) Execute(ctx context.Context, req IssueRequest) (result *IssueResult, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "IssueProduct",
		attribute.Int64("product_id", int64(req.ProductID)),
		attribute.Int("quantity", req.Quantity))
	defer func() { tracing.EndSpan(span, err) }()

	if err = placement.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	p, err := uc.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	result = &IssueResult{ProductID: p.ID, Requested: req.Quantity}
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定有效上架记录
		placements, err := uc.placementRepo.LockActiveByProduct(txCtx, p.ID)
		if err != nil {
			return err
		}

		// 2. 先进先出
		steps, unfulfilled := placement.Drain(placements, req.Quantity)

		// 3. 持久化每一步
		for _, step := range steps {
			if err := uc.placementRepo.Update(txCtx, step.Placement); err != nil {
				return err
			}

			notes := journal.NotePartialIssue
			if step.Drained {
				notes = journal.NoteFullIssue
			}
			rackID := step.Placement.RackID
			entry, err := uc.recorder.Record(txCtx, journal.OperationOut, p.ID, step.Issued,
				&rackID, step.Placement.BatchID, req.Operator, notes)
			if err != nil {
				return err
			}
			entry.ProductName, entry.RackName = p.Name, step.Placement.RackName
			result.Entries = append(result.Entries, entry)
		}

		result.Unfulfilled = unfulfilled
		result.Fulfilled = req.Quantity - unfulfilled
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordIssue(result.metricResult(), result.Fulfilled, result.Unfulfilled, time.Since(start))
	uc.dispatcher.Committed(ctx, result.Entries...)

	if result.Partial() {
		zap.L().Warn("库存不足,部分出库",
			zap.String("product", p.Name),
			zap.Int("requested", result.Requested),
			zap.Int("fulfilled", result.Fulfilled),
			zap.Int("unfulfilled", result.Unfulfilled),
			zap.String("operator", req.Operator))
	} else {
		zap.L().Info("出库成功",
			zap.String("product", p.Name),
			zap.Int("quantity", result.Fulfilled),
			zap.String("operator", req.Operator))
	}
	return result, nil
}
