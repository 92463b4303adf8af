package dto

import (
	"github.com/xiebiao/warehouse/internal/application/catalog"
	"github.com/xiebiao/warehouse/internal/domain/product"
)

// =========================================
// 分类
// =========================================

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Accessories"`
	Description string `json:"description" binding:"max=1000" example:"手机配件"`
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"Accessories"`
	Description string `json:"description" example:"手机配件"`
}

// NewCategoryResponse 实体 → 响应
func NewCategoryResponse(c *product.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

// =========================================
// 商品
// =========================================

// CreateProductRequest 创建商品请求
// 尺寸单位cm,重量单位kg,都必须大于0
type CreateProductRequest struct {
	Name       string  `json:"name" binding:"required,max=200" example:"Phone Case"`
	SKU        string  `json:"sku" binding:"required,max=64" example:"PC-001"`
	CategoryID uint    `json:"category_id" binding:"required" example:"1"`
	Length     float64 `json:"length" binding:"required,gt=0" example:"15"`
	Width      float64 `json:"width" binding:"required,gt=0" example:"7"`
	Height     float64 `json:"height" binding:"required,gt=0" example:"1"`
	Weight     float64 `json:"weight" binding:"required,gt=0" example:"0.2"`
	ImageURL   string  `json:"image_url" binding:"omitempty,url,max=500" example:"https://example.com/case.jpg"`
}

// UpdateProductRequest 修改商品请求(尺寸和重量不可修改)
type UpdateProductRequest struct {
	Name       string `json:"name" binding:"max=200" example:"Slim Phone Case"`
	CategoryID uint   `json:"category_id" example:"1"`
	ImageURL   string `json:"image_url" binding:"omitempty,url,max=500"`
}

// ListProductsRequest 商品列表请求
type ListProductsRequest struct {
	PageQuery
	CategoryID uint `form:"category_id" example:"1"`
}

// ProductResponse 商品响应
type ProductResponse struct {
	ID           uint    `json:"id" example:"1"`
	Name         string  `json:"name" example:"Phone Case"`
	SKU          string  `json:"sku" example:"PC-001"`
	CategoryID   uint    `json:"category_id" example:"1"`
	CategoryName string  `json:"category_name" example:"Accessories"`
	Length       float64 `json:"length" example:"15"`
	Width        float64 `json:"width" example:"7"`
	Height       float64 `json:"height" example:"1"`
	Weight       float64 `json:"weight" example:"0.2"`
	Volume       float64 `json:"volume" example:"105"` // cm³
	ImageURL     string  `json:"image_url,omitempty"`
	CreatedAt    string  `json:"created_at" example:"2024-01-15 10:30:00"`
}

// NewProductResponse 实体 → 响应
func NewProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Length:       p.Length,
		Width:        p.Width,
		Height:       p.Height,
		Weight:       p.Weight,
		Volume:       p.Volume(),
		ImageURL:     p.ImageURL,
		CreatedAt:    FormatTime(p.CreatedAt),
	}
}

// =========================================
// 货架
// =========================================

// CreateRackRequest 创建货架请求
type CreateRackRequest struct {
	Name    string  `json:"name" binding:"required,max=100" example:"A-01"`
	Length  float64 `json:"length" binding:"required,gt=0" example:"100"`
	Width   float64 `json:"width" binding:"required,gt=0" example:"50"`
	Height  float64 `json:"height" binding:"required,gt=0" example:"200"`
	MaxLoad float64 `json:"max_load" binding:"required,gt=0" example:"100"`
}

// UpdateRackRequest 修改货架请求,省略的字段不修改
type UpdateRackRequest struct {
	Name     string `json:"name" binding:"max=100" example:"A-01"`
	IsActive *bool  `json:"is_active" example:"false"`
}

// ListRacksRequest 货架列表请求
type ListRacksRequest struct {
	ActiveOnly bool `form:"active_only" example:"true"`
}

// RackResponse 货架响应(含当前容量)
type RackResponse struct {
	ID                 uint    `json:"id" example:"1"`
	Name               string  `json:"name" example:"A-01"`
	Length             float64 `json:"length" example:"100"`
	Width              float64 `json:"width" example:"50"`
	Height             float64 `json:"height" example:"200"`
	MaxLoad            float64 `json:"max_load" example:"100"`
	IsActive           bool    `json:"is_active" example:"true"`
	Volume             float64 `json:"volume" example:"1000000"`
	AvailableVolume    float64 `json:"available_volume" example:"995800"`
	AvailableWeight    float64 `json:"available_weight" example:"92"`
	UtilizationPercent float64 `json:"utilization_percent" example:"0.4"`
}

// NewRackResponse 货架状态 → 响应
func NewRackResponse(s catalog.RackStatus) RackResponse {
	r := s.Rack
	return RackResponse{
		ID:                 r.ID,
		Name:               r.Name,
		Length:             r.Length,
		Width:              r.Width,
		Height:             r.Height,
		MaxLoad:            r.MaxLoad,
		IsActive:           r.IsActive,
		Volume:             r.Volume(),
		AvailableVolume:    s.AvailableVolume,
		AvailableWeight:    s.AvailableWeight,
		UtilizationPercent: s.UtilizationPercent,
	}
}
