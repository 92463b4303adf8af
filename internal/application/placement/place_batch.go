// Package placement 上架用例
package placement

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/application/notify"
	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/internal/domain/placement"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	"github.com/xiebiao/warehouse/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/warehouse/pkg/metrics"
	"github.com/xiebiao/warehouse/pkg/tracing"
)

// PlaceBatchUseCase 把批次的一部分放到货架上
// 教学要点:这是库存写入的入口,涉及事务、悲观锁、多条件校验
type PlaceBatchUseCase struct {
	batchRepo     batch.Repository
	rackRepo      rack.Repository
	productRepo   product.Repository
	placementRepo placement.Repository
	recorder      *journal.Recorder
	txManager     *mysql.TxManager
	dispatcher    *notify.Dispatcher
}

// NewPlaceBatchUseCase 创建上架用例
func NewPlaceBatchUseCase(
	batchRepo batch.Repository,
	rackRepo rack.Repository,
	productRepo product.Repository,
	placementRepo placement.Repository,
	recorder *journal.Recorder,
	txManager *mysql.TxManager,
	dispatcher *notify.Dispatcher,
) *PlaceBatchUseCase {
	return &PlaceBatchUseCase{
		batchRepo:     batchRepo,
		rackRepo:      rackRepo,
		productRepo:   productRepo,
		placementRepo: placementRepo,
		recorder:      recorder,
		txManager:     txManager,
		dispatcher:    dispatcher,
	}
}

// PlaceBatchRequest 上架请求
type PlaceBatchRequest struct {
	BatchID  uint
	RackID   uint
	Quantity int
	Operator string
}

// PlaceBatchResponse 上架结果
type PlaceBatchResponse struct {
	Placement *placement.Placement
	Entry     *journal.Entry
	Batch     *batch.Batch // 上架后的批次(Totals已更新)
	Rack      *rack.Rack   // 上架后的货架(Loads已更新)
}

// Execute 执行上架
//
// 核心问题:两个操作员同时往同一个货架(或从同一个批次)上架
// 错误实现:先查可用容积,再插入记录;两个请求都看到"还够",结果超载
//
// 正确实现(一个事务内):
//  1. SELECT FOR UPDATE 锁定批次,读取最新的已上架合计
//  2. SELECT FOR UPDATE 锁定货架,读取最新的有效上架记录
//  3. 按顺序校验(数量、货架启用、批次剩余、尺寸、承重、容积)
//  4. 插入上架记录
//  5. 追加IN日志
//  6. COMMIT释放锁;任一步失败全部回滚,不留下半条记录
//
// 提交后再发布日志事件、清除看板缓存,这两步失败不影响上架结果
func (uc *PlaceBatchUseCase) Execute(ctx context.Context, req PlaceBatchRequest) (resp *PlaceBatchResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "PlaceBatch",
		attribute.Int64("batch_id", int64(req.BatchID)),
		attribute.Int64("rack_id", int64(req.RackID)),
		attribute.Int("quantity", req.Quantity))
	defer func() { tracing.EndSpan(span, err) }()

	// 数量不合法时不必开事务
	if err = placement.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	resp = &PlaceBatchResponse{}
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定批次(固定先批次后货架的加锁顺序,避免死锁)
		b, err := uc.batchRepo.LockByID(txCtx, req.BatchID)
		if err != nil {
			return err
		}

		// 2. 锁定货架
		r, err := uc.rackRepo.LockByID(txCtx, req.RackID)
		if err != nil {
			return err
		}

		p, err := uc.productRepo.FindByID(txCtx, b.ProductID)
		if err != nil {
			return err
		}

		// 3. 校验
		if err := placement.Validate(placement.PlaceInput{
			Batch:    b,
			Rack:     r,
			Product:  p,
			Quantity: req.Quantity,
		}); err != nil {
			return err
		}

		// 4. 上架记录
		pl := placement.NewPlacement(r.ID, p.ID, &b.ID, req.Quantity, time.Now())
		if err := uc.placementRepo.Create(txCtx, pl); err != nil {
			return err
		}
		pl.RackName, pl.ProductName = r.Name, p.Name

		// 5. IN日志
		entry, err := uc.recorder.Record(txCtx, journal.OperationIn, p.ID, req.Quantity,
			&r.ID, &b.ID, req.Operator, journal.PlacementNote(b.ID))
		if err != nil {
			return err
		}
		entry.ProductName, entry.RackName = p.Name, r.Name

		// 响应使用本事务内的快照,加上本次上架
		b.Totals.Placed += req.Quantity
		b.Totals.ActivePlaced += req.Quantity
		r.Loads = append(r.Loads, rack.Load{
			ProductID:  p.ID,
			Quantity:   req.Quantity,
			UnitVolume: p.Volume(),
			UnitWeight: p.Weight,
		})

		resp.Placement, resp.Entry, resp.Batch, resp.Rack = pl, entry, b, r
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPlacement(req.Quantity)
	metrics.SetRackUtilization(resp.Rack.Name, rack.UtilizationPercent(resp.Rack))
	uc.dispatcher.Committed(ctx, resp.Entry)

	zap.L().Info("上架成功",
		zap.Uint("placement_id", resp.Placement.ID),
		zap.Uint("batch_id", req.BatchID),
		zap.String("rack", resp.Rack.Name),
		zap.Int("quantity", req.Quantity),
		zap.String("operator", resp.Entry.Operator))
	return resp, nil
}
