package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/warehouse/internal/domain/journal"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// journalRepository 仓库日志仓储实现
// 只追加:没有Update/Delete方法
type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository 创建日志仓储
func NewJournalRepository(db *gorm.DB) journal.Repository {
	return &journalRepository{db: db}
}

// Append 追加日志
// 教学要点:必须使用dbFrom(ctx),日志与上架/出库写入同一事务
func (r *journalRepository) Append(ctx context.Context, e *journal.Entry) error {
	model := &JournalModel{
		OperationType: string(e.OperationType),
		ProductID:     e.ProductID,
		Quantity:      e.Quantity,
		RackID:        e.RackID,
		BatchID:       e.BatchID,
		OperationDate: e.OperationDate,
		Operator:      e.Operator,
		Notes:         e.Notes,
	}
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入仓库日志失败")
	}
	e.ID = model.ID
	return nil
}

// List 按操作时间倒序分页,支持类型、商品名称、操作员过滤
func (r *journalRepository) List(ctx context.Context, params journal.ListParams) ([]*journal.Entry, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize, 50, 100)

	db := dbFrom(ctx, r.db)
	query := db.Model(&JournalModel{})

	if params.OperationType != "" {
		query = query.Where("operation_type = ?", string(params.OperationType))
	}
	if params.Product != "" {
		productIDs := db.Session(&gorm.Session{NewDB: true}).
			Model(&ProductModel{}).Select("id").
			Where("LOWER(name) LIKE ?", likePattern(params.Product))
		query = query.Where("product_id IN (?)", productIDs)
	}
	if params.Operator != "" {
		query = query.Where("LOWER(operator) LIKE ?", likePattern(params.Operator))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询日志总数失败")
	}

	var models []JournalModel
	err := query.Preload("Product").Preload("Rack").
		Order("operation_date DESC").Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询日志列表失败")
	}

	entries := make([]*journal.Entry, len(models))
	for i := range models {
		entries[i] = toJournalEntity(&models[i])
	}
	return entries, total, nil
}

type directionRow struct {
	OperationType string
	Total         int
}

// SumByProduct 某商品IN/OUT数量合计
func (r *journalRepository) SumByProduct(ctx context.Context, productID uint) (int, int, error) {
	var rows []directionRow
	err := dbFrom(ctx, r.db).Model(&JournalModel{}).
		Select("operation_type, SUM(quantity) AS total").
		Where("product_id = ?", productID).
		Group("operation_type").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "汇总日志数量失败")
	}

	var in, out int
	for _, row := range rows {
		switch journal.OperationType(row.OperationType) {
		case journal.OperationIn:
			in = row.Total
		case journal.OperationOut:
			out = row.Total
		}
	}
	return in, out, nil
}

func toJournalEntity(m *JournalModel) *journal.Entry {
	e := &journal.Entry{
		ID:            m.ID,
		OperationType: journal.OperationType(m.OperationType),
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		RackID:        m.RackID,
		BatchID:       m.BatchID,
		OperationDate: m.OperationDate,
		Operator:      m.Operator,
		Notes:         m.Notes,
		ProductName:   m.Product.Name,
	}
	if m.Rack != nil {
		e.RackName = m.Rack.Name
	}
	return e
}
