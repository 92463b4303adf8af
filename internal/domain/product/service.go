package product

import (
	"context"
)

// Service 商品领域服务
// 封装跨实体的规则:商品引用的分类必须存在
type Service interface {
	CreateCategory(ctx context.Context, name, description string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	CreateProduct(ctx context.Context, name, sku string, categoryID uint, length, width, height, weight float64, imageURL string) (*Product, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	UpdateProduct(ctx context.Context, id uint, name string, categoryID uint, imageURL string) (*Product, error)
	ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error)
}

type service struct {
	repo         Repository
	categoryRepo CategoryRepository
}

// NewService 创建商品领域服务
func NewService(repo Repository, categoryRepo CategoryRepository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

func (s *service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	c, err := NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateProduct 创建商品
func (s *service) CreateProduct(ctx context.Context, name, sku string, categoryID uint, length, width, height, weight float64, imageURL string) (*Product, error) {
	// 1. 构造实体(尺寸、重量校验)
	p, err := NewProduct(name, sku, categoryID, length, width, height, weight, imageURL)
	if err != nil {
		return nil, err
	}

	// 2. 分类必须存在
	c, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	p.CategoryName = c.Name

	// 3. 持久化(SKU重复由仓储转换为ErrSKUDuplicate)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProduct 只更新描述字段,尺寸与重量保持不变
func (s *service) UpdateProduct(ctx context.Context, id uint, name string, categoryID uint, imageURL string) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if categoryID != 0 && categoryID != p.CategoryID {
		c, err := s.categoryRepo.FindByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryName = c.Name
	}

	p.UpdateInfo(name, categoryID, imageURL)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	return s.repo.List(ctx, params)
}
