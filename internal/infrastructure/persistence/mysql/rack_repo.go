package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// rackRepository 货架仓储实现
// 教学要点:
// 1. 货架表不存储"已用容积/承重",查询时把有效上架记录JOIN商品尺寸折叠成rack.Load
// 2. 一次查询加载多个货架的Loads,避免N+1
type rackRepository struct {
	db *gorm.DB
}

// NewRackRepository 创建货架仓储
func NewRackRepository(db *gorm.DB) rack.Repository {
	return &rackRepository{db: db}
}

// Create 创建货架
func (r *rackRepository) Create(ctx context.Context, rk *rack.Rack) error {
	model := toRackModel(rk)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return rack.ErrRackNameDuplicate
		}
		return apperrors.Wrap(err, "创建货架失败")
	}
	rk.ID = model.ID
	rk.CreatedAt = model.CreatedAt
	rk.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找货架(含Loads)
func (r *rackRepository) FindByID(ctx context.Context, id uint) (*rack.Rack, error) {
	return r.findOne(ctx, dbFrom(ctx, r.db), id)
}

// LockByID 悲观锁查询货架
// SELECT * FROM racks WHERE id = ? FOR UPDATE
// SQLite不支持行锁,驱动会忽略FOR UPDATE,单连接本身保证了串行
func (r *rackRepository) LockByID(ctx context.Context, id uint) (*rack.Rack, error) {
	db := dbFrom(ctx, r.db)
	return r.findOne(ctx, db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *rackRepository) findOne(ctx context.Context, query *gorm.DB, id uint) (*rack.Rack, error) {
	var model RackModel
	if err := query.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rack.ErrRackNotFound
		}
		return nil, apperrors.Wrap(err, "查询货架失败")
	}

	racks := []*rack.Rack{toRackEntity(&model)}
	if err := r.fillLoads(ctx, racks); err != nil {
		return nil, err
	}
	return racks[0], nil
}

// Update 更新名称与启停状态
func (r *rackRepository) Update(ctx context.Context, rk *rack.Rack) error {
	result := dbFrom(ctx, r.db).Model(&RackModel{}).
		Where("id = ?", rk.ID).
		Updates(map[string]interface{}{
			"name":       rk.Name,
			"is_active":  rk.IsActive,
			"updated_at": rk.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return rack.ErrRackNameDuplicate
		}
		return apperrors.Wrap(result.Error, "更新货架失败")
	}
	return nil
}

// List 按名称升序
func (r *rackRepository) List(ctx context.Context, activeOnly bool) ([]*rack.Rack, error) {
	query := dbFrom(ctx, r.db).Model(&RackModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var models []RackModel
	if err := query.Order("name ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询货架列表失败")
	}

	racks := make([]*rack.Rack, len(models))
	for i := range models {
		racks[i] = toRackEntity(&models[i])
	}
	if err := r.fillLoads(ctx, racks); err != nil {
		return nil, err
	}
	return racks, nil
}

// loadRow 有效上架记录 + 商品尺寸
type loadRow struct {
	RackID    uint
	ProductID uint
	Quantity  int
	Length    float64
	Width     float64
	Height    float64
	Weight    float64
}

// fillLoads 批量填充货架的Loads
// SELECT p.rack_id, p.product_id, p.quantity, pr.length, pr.width, pr.height, pr.weight
// FROM placements p JOIN products pr ON pr.id = p.product_id
// WHERE p.is_active AND p.rack_id IN (...)
func (r *rackRepository) fillLoads(ctx context.Context, racks []*rack.Rack) error {
	if len(racks) == 0 {
		return nil
	}

	ids := make([]uint, len(racks))
	byID := make(map[uint]*rack.Rack, len(racks))
	for i, rk := range racks {
		ids[i] = rk.ID
		byID[rk.ID] = rk
		rk.Loads = nil
	}

	var rows []loadRow
	err := dbFrom(ctx, r.db).Table("placements").
		Select("placements.rack_id, placements.product_id, placements.quantity, "+
			"products.length, products.width, products.height, products.weight").
		Joins("JOIN products ON products.id = placements.product_id").
		Where("placements.is_active = ? AND placements.rack_id IN ?", true, ids).
		Order("placements.id ASC").
		Scan(&rows).Error
	if err != nil {
		return apperrors.Wrap(err, "查询货架占用失败")
	}

	for _, row := range rows {
		unit := product.Product{Length: row.Length, Width: row.Width, Height: row.Height}
		rk := byID[row.RackID]
		rk.Loads = append(rk.Loads, rack.Load{
			ProductID:  row.ProductID,
			Quantity:   row.Quantity,
			UnitVolume: unit.Volume(),
			UnitWeight: row.Weight,
		})
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toRackModel(rk *rack.Rack) *RackModel {
	return &RackModel{
		ID:        rk.ID,
		Name:      rk.Name,
		Length:    rk.Length,
		Width:     rk.Width,
		Height:    rk.Height,
		MaxLoad:   rk.MaxLoad,
		IsActive:  rk.IsActive,
		CreatedAt: rk.CreatedAt,
		UpdatedAt: rk.UpdatedAt,
	}
}

func toRackEntity(m *RackModel) *rack.Rack {
	return &rack.Rack{
		ID:        m.ID,
		Name:      m.Name,
		Length:    m.Length,
		Width:     m.Width,
		Height:    m.Height,
		MaxLoad:   m.MaxLoad,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
