package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/warehouse/internal/domain/placement"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// placementRepository 上架记录仓储实现
type placementRepository struct {
	db *gorm.DB
}

// NewPlacementRepository 创建上架记录仓储
func NewPlacementRepository(db *gorm.DB) placement.Repository {
	return &placementRepository{db: db}
}

// Create 新增上架记录
func (r *placementRepository) Create(ctx context.Context, p *placement.Placement) error {
	model := &PlacementModel{
		RackID:          p.RackID,
		ProductID:       p.ProductID,
		BatchID:         p.BatchID,
		Quantity:        p.Quantity,
		InitialQuantity: p.InitialQuantity,
		IsActive:        p.IsActive,
		DatePlaced:      p.DatePlaced,
	}
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建上架记录失败")
	}
	p.ID = model.ID
	return nil
}

// Update 只更新数量和状态
// UPDATE placements SET quantity = ?, is_active = ? WHERE id = ?
func (r *placementRepository) Update(ctx context.Context, p *placement.Placement) error {
	result := dbFrom(ctx, r.db).Model(&PlacementModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"quantity":  p.Quantity,
			"is_active": p.IsActive,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新上架记录失败")
	}
	return nil
}

// LockActiveByProduct 锁定某商品的有效上架记录(FIFO顺序)
// 教学要点:
// 1. 必须使用dbFrom(ctx)参与出库事务
// 2. FOR UPDATE锁住这些行,两个并发出库不会消耗同一批库存
func (r *placementRepository) LockActiveByProduct(ctx context.Context, productID uint) ([]*placement.Placement, error) {
	db := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.activeByProduct(db, productID)
}

// ListActiveByProduct 查询有效上架记录(不加锁)
func (r *placementRepository) ListActiveByProduct(ctx context.Context, productID uint) ([]*placement.Placement, error) {
	return r.activeByProduct(dbFrom(ctx, r.db), productID)
}

func (r *placementRepository) activeByProduct(db *gorm.DB, productID uint) ([]*placement.Placement, error) {
	var models []PlacementModel
	err := db.Preload("Rack").Preload("Product").
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("date_placed ASC").Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询上架记录失败")
	}

	placements := make([]*placement.Placement, len(models))
	for i := range models {
		placements[i] = toPlacementEntity(&models[i])
	}
	return placements, nil
}

// Stats 有效上架记录数和总数量
func (r *placementRepository) Stats(ctx context.Context) (placement.Stats, error) {
	var stats placement.Stats
	err := dbFrom(ctx, r.db).Model(&PlacementModel{}).
		Select("COUNT(*) AS active_placements, COALESCE(SUM(quantity), 0) AS total_quantity").
		Where("is_active = ?", true).
		Scan(&stats).Error
	if err != nil {
		return placement.Stats{}, apperrors.Wrap(err, "统计上架记录失败")
	}
	return stats, nil
}

type productQuantityRow struct {
	ProductID uint
	Total     int
}

// ActiveQuantityByProduct 每个商品的有效库存合计
func (r *placementRepository) ActiveQuantityByProduct(ctx context.Context) (map[uint]int, error) {
	var rows []productQuantityRow
	err := dbFrom(ctx, r.db).Model(&PlacementModel{}).
		Select("product_id, SUM(quantity) AS total").
		Where("is_active = ?", true).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "汇总商品库存失败")
	}

	totals := make(map[uint]int, len(rows))
	for _, row := range rows {
		totals[row.ProductID] = row.Total
	}
	return totals, nil
}

func toPlacementEntity(m *PlacementModel) *placement.Placement {
	return &placement.Placement{
		ID:              m.ID,
		RackID:          m.RackID,
		ProductID:       m.ProductID,
		BatchID:         m.BatchID,
		Quantity:        m.Quantity,
		InitialQuantity: m.InitialQuantity,
		DatePlaced:      m.DatePlaced,
		IsActive:        m.IsActive,
		RackName:        m.Rack.Name,
		ProductName:     m.Product.Name,
	}
}
