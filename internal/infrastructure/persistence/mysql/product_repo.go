package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/warehouse/internal/domain/product"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// productRepository 商品仓储实现
// 设计说明:
// 1. 实现domain/product/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如SKU重复),转换为业务错误
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	// 1. 领域实体 → GORM模型
	model := toProductModel(p)

	// 2. 插入数据库(关联只读,不级联写入)
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	// 3. 回填自增ID
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := dbFrom(ctx, r.db).Preload("Category").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// Update 更新商品
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "更新商品失败")
	}
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// List 分页查询商品列表
func (r *productRepository) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize, 20, 100)

	query := dbFrom(ctx, r.db).Model(&ProductModel{})
	if params.CategoryID != 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	var models []ProductModel
	err := query.Preload("Category").
		Order("created_at DESC").Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	return toProductEntities(models), total, nil
}

// ListAll 按ID升序返回全部商品
func (r *productRepository) ListAll(ctx context.Context) ([]*product.Product, error) {
	var models []ProductModel
	if err := dbFrom(ctx, r.db).Preload("Category").Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询商品列表失败")
	}
	return toProductEntities(models), nil
}

// Search 按名称、SKU、分类名称模糊搜索
// 分类名称通过子查询匹配,避免JOIN别名在MySQL/SQLite间的差异
func (r *productRepository) Search(ctx context.Context, keyword string) ([]*product.Product, error) {
	db := dbFrom(ctx, r.db)
	kw := likePattern(keyword)

	categoryIDs := db.Session(&gorm.Session{NewDB: true}).
		Model(&CategoryModel{}).Select("id").Where("LOWER(name) LIKE ?", kw)

	var models []ProductModel
	err := db.Preload("Category").
		Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR category_id IN (?)", kw, kw, categoryIDs).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索商品失败")
	}
	return toProductEntities(models), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toProductModel(p *product.Product) *ProductModel {
	return &ProductModel{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		CategoryID: p.CategoryID,
		Length:     p.Length,
		Width:      p.Width,
		Height:     p.Height,
		Weight:     p.Weight,
		ImageURL:   p.ImageURL,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toProductEntity(m *ProductModel) *product.Product {
	return &product.Product{
		ID:           m.ID,
		Name:         m.Name,
		SKU:          m.SKU,
		CategoryID:   m.CategoryID,
		CategoryName: m.Category.Name,
		Length:       m.Length,
		Width:        m.Width,
		Height:       m.Height,
		Weight:       m.Weight,
		ImageURL:     m.ImageURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toProductEntities(models []ProductModel) []*product.Product {
	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products
}

// categoryRepository 分类仓储实现
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) product.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *product.Category) error {
	model := &CategoryModel{Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrCategoryDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*product.Category, error) {
	var model CategoryModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

// List 按名称升序
func (r *categoryRepository) List(ctx context.Context) ([]*product.Category, error) {
	var models []CategoryModel
	if err := dbFrom(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}
	categories := make([]*product.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, nil
}

func toCategoryEntity(m *CategoryModel) *product.Category {
	return &product.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}
