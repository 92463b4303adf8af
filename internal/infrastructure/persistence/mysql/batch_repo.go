package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/domain/journal"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// batchRepository 批次仓储实现
// 教学要点:
// 批次的剩余数量不落库,每次查询时聚合:
//   - Placed       = SUM(placements.initial_quantity)
//   - ActivePlaced = SUM(placements.quantity WHERE is_active)
//   - Issued       = SUM(warehouse_journal.quantity WHERE operation_type='OUT')
//
// 在上架事务内先LockByID锁住批次行,再聚合,保证读到的是最新值
type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository 创建批次仓储
func NewBatchRepository(db *gorm.DB) batch.Repository {
	return &batchRepository{db: db}
}

// Create 到货登记
func (r *batchRepository) Create(ctx context.Context, b *batch.Batch) error {
	model := &BatchModel{
		ProductID:   b.ProductID,
		Quantity:    b.Quantity,
		ArrivalDate: b.ArrivalDate,
		Supplier:    b.Supplier,
		Notes:       b.Notes,
	}
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建批次失败")
	}
	b.ID = model.ID
	return nil
}

// FindByID 根据ID查找批次(含Totals)
func (r *batchRepository) FindByID(ctx context.Context, id uint) (*batch.Batch, error) {
	return r.findOne(ctx, dbFrom(ctx, r.db), id)
}

// LockByID 悲观锁查询批次
func (r *batchRepository) LockByID(ctx context.Context, id uint) (*batch.Batch, error) {
	db := dbFrom(ctx, r.db)
	return r.findOne(ctx, db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *batchRepository) findOne(ctx context.Context, query *gorm.DB, id uint) (*batch.Batch, error) {
	var model BatchModel
	if err := query.Preload("Product").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, batch.ErrBatchNotFound
		}
		return nil, apperrors.Wrap(err, "查询批次失败")
	}

	batches := []*batch.Batch{toBatchEntity(&model)}
	if err := r.fillTotals(ctx, batches); err != nil {
		return nil, err
	}
	return batches[0], nil
}

// List 按到货时间倒序分页
func (r *batchRepository) List(ctx context.Context, params batch.ListParams) ([]*batch.Batch, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize, 20, 100)

	query := dbFrom(ctx, r.db).Model(&BatchModel{})
	if params.ProductID != 0 {
		query = query.Where("product_id = ?", params.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询批次总数失败")
	}

	var models []BatchModel
	err := query.Preload("Product").
		Order("arrival_date DESC").Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询批次列表失败")
	}

	batches := make([]*batch.Batch, len(models))
	for i := range models {
		batches[i] = toBatchEntity(&models[i])
	}
	if err := r.fillTotals(ctx, batches); err != nil {
		return nil, 0, err
	}
	return batches, total, nil
}

type placedRow struct {
	BatchID      uint
	Placed       int
	ActivePlaced int
}

type issuedRow struct {
	BatchID uint
	Issued  int
}

// fillTotals 批量聚合批次的Totals(两条GROUP BY查询)
func (r *batchRepository) fillTotals(ctx context.Context, batches []*batch.Batch) error {
	if len(batches) == 0 {
		return nil
	}

	ids := make([]uint, len(batches))
	byID := make(map[uint]*batch.Batch, len(batches))
	for i, b := range batches {
		ids[i] = b.ID
		byID[b.ID] = b
		b.Totals = batch.Totals{}
	}

	db := dbFrom(ctx, r.db)

	// 1. 上架汇总
	var placed []placedRow
	err := db.Model(&PlacementModel{}).
		Select("batch_id, SUM(initial_quantity) AS placed, "+
			"SUM(CASE WHEN is_active THEN quantity ELSE 0 END) AS active_placed").
		Where("batch_id IN ?", ids).
		Group("batch_id").
		Scan(&placed).Error
	if err != nil {
		return apperrors.Wrap(err, "汇总批次上架数量失败")
	}
	for _, row := range placed {
		byID[row.BatchID].Totals.Placed = row.Placed
		byID[row.BatchID].Totals.ActivePlaced = row.ActivePlaced
	}

	// 2. 出库汇总
	var issued []issuedRow
	err = db.Model(&JournalModel{}).
		Select("batch_id, SUM(quantity) AS issued").
		Where("operation_type = ? AND batch_id IN ?", string(journal.OperationOut), ids).
		Group("batch_id").
		Scan(&issued).Error
	if err != nil {
		return apperrors.Wrap(err, "汇总批次出库数量失败")
	}
	for _, row := range issued {
		byID[row.BatchID].Totals.Issued = row.Issued
	}

	return nil
}

func toBatchEntity(m *BatchModel) *batch.Batch {
	return &batch.Batch{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.Product.Name,
		Quantity:    m.Quantity,
		ArrivalDate: m.ArrivalDate,
		Supplier:    m.Supplier,
		Notes:       m.Notes,
	}
}
