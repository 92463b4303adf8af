// Package catalog 基础资料维护:分类、商品、货架
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	"github.com/xiebiao/warehouse/pkg/metrics"
)

// CatalogUseCase 基础资料用例
// 规则都在领域服务里,这里只负责编排、记录日志、补充货架的容量信息
type CatalogUseCase struct {
	products product.Service
	racks    rack.Service
}

// NewCatalogUseCase 创建基础资料用例
func NewCatalogUseCase(products product.Service, racks rack.Service) *CatalogUseCase {
	return &CatalogUseCase{products: products, racks: racks}
}

// RackStatus 货架及其当前容量
type RackStatus struct {
	Rack               *rack.Rack
	AvailableVolume    float64
	AvailableWeight    float64
	UtilizationPercent float64
}

// NewRackStatus 根据货架的Loads计算容量
func NewRackStatus(r *rack.Rack) RackStatus {
	return RackStatus{
		Rack:               r,
		AvailableVolume:    rack.AvailableVolume(r),
		AvailableWeight:    rack.AvailableWeight(r),
		UtilizationPercent: rack.UtilizationPercent(r),
	}
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name       string
	SKU        string
	CategoryID uint
	Length     float64
	Width      float64
	Height     float64
	Weight     float64
	ImageURL   string
}

// UpdateProductRequest 修改商品请求(尺寸、重量不可修改)
type UpdateProductRequest struct {
	Name       string
	CategoryID uint
	ImageURL   string
}

// CreateRackRequest 创建货架请求
type CreateRackRequest struct {
	Name    string
	Length  float64
	Width   float64
	Height  float64
	MaxLoad float64
}

// UpdateRackRequest 修改货架请求,nil/空值表示不修改
type UpdateRackRequest struct {
	Name     string
	IsActive *bool
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, name, description string) (*product.Category, error) {
	c, err := uc.products.CreateCategory(ctx, name, description)
	if err != nil {
		return nil, err
	}
	zap.L().Info("创建分类", zap.Uint("category_id", c.ID), zap.String("name", c.Name))
	return c, nil
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*product.Category, error) {
	return uc.products.ListCategories(ctx)
}

func (uc *CatalogUseCase) CreateProduct(ctx context.Context, req CreateProductRequest) (*product.Product, error) {
	p, err := uc.products.CreateProduct(ctx, req.Name, req.SKU, req.CategoryID,
		req.Length, req.Width, req.Height, req.Weight, req.ImageURL)
	if err != nil {
		return nil, err
	}
	zap.L().Info("创建商品", zap.Uint("product_id", p.ID), zap.String("sku", p.SKU))
	return p, nil
}

func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, id uint, req UpdateProductRequest) (*product.Product, error) {
	return uc.products.UpdateProduct(ctx, id, req.Name, req.CategoryID, req.ImageURL)
}

func (uc *CatalogUseCase) GetProduct(ctx context.Context, id uint) (*product.Product, error) {
	return uc.products.GetProduct(ctx, id)
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	return uc.products.ListProducts(ctx, params)
}

func (uc *CatalogUseCase) CreateRack(ctx context.Context, req CreateRackRequest) (RackStatus, error) {
	r, err := uc.racks.CreateRack(ctx, req.Name, req.Length, req.Width, req.Height, req.MaxLoad)
	if err != nil {
		return RackStatus{}, err
	}
	zap.L().Info("创建货架", zap.Uint("rack_id", r.ID), zap.String("name", r.Name))
	return NewRackStatus(r), nil
}

// UpdateRack 修改名称或启停
func (uc *CatalogUseCase) UpdateRack(ctx context.Context, id uint, req UpdateRackRequest) (RackStatus, error) {
	r, err := uc.racks.UpdateRack(ctx, id, req.Name, req.IsActive)
	if err != nil {
		return RackStatus{}, err
	}
	if req.IsActive != nil {
		zap.L().Info("货架状态变更", zap.String("rack", r.Name), zap.Bool("active", r.IsActive))
	}
	return NewRackStatus(r), nil
}

func (uc *CatalogUseCase) GetRack(ctx context.Context, id uint) (RackStatus, error) {
	r, err := uc.racks.GetRack(ctx, id)
	if err != nil {
		return RackStatus{}, err
	}
	return NewRackStatus(r), nil
}

// ListRacks 货架列表,同时刷新利用率指标
func (uc *CatalogUseCase) ListRacks(ctx context.Context, activeOnly bool) ([]RackStatus, error) {
	racks, err := uc.racks.ListRacks(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	statuses := make([]RackStatus, len(racks))
	for i, r := range racks {
		statuses[i] = NewRackStatus(r)
		metrics.SetRackUtilization(r.Name, statuses[i].UtilizationPercent)
	}
	return statuses, nil
}
