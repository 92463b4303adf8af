package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category 商品分类
type Category struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewCategory 创建分类
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Category{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// Product 商品实体(聚合根)
// DDD设计说明:
// 1. SKU作为业务唯一标识(数据库层保证唯一性)
// 2. 长宽高、重量决定商品能否放上某个货架,单位统一(cm / kg)
// 3. 尺寸与重量一旦有上架记录引用就不可修改,只允许改名称、分类、图片等描述字段
type Product struct {
	ID           uint
	Name         string
	SKU          string
	CategoryID   uint
	CategoryName string // 只读,由仓储查询时填充
	Length       float64
	Width        float64
	Height       float64
	Weight       float64
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProduct 创建商品(工厂方法)
// 业务规则:名称、SKU非空;长宽高、重量必须>0
func NewProduct(name, sku string, categoryID uint, length, width, height, weight float64, imageURL string) (*Product, error) {
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)
	if name == "" || sku == "" {
		return nil, ErrEmptyName
	}
	if length <= 0 || width <= 0 || height <= 0 || weight <= 0 {
		return nil, ErrInvalidSize
	}

	now := time.Now()
	return &Product{
		Name:       name,
		SKU:        sku,
		CategoryID: categoryID,
		Length:     length,
		Width:      width,
		Height:     height,
		Weight:     weight,
		ImageURL:   imageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Volume 单件体积 = 长 * 宽 * 高
// 用decimal相乘,避免0.1*0.2*0.3这类浮点误差在后续floor计算中被放大
func (p *Product) Volume() float64 {
	return decimal.NewFromFloat(p.Length).
		Mul(decimal.NewFromFloat(p.Width)).
		Mul(decimal.NewFromFloat(p.Height)).
		InexactFloat64()
}

// UpdateInfo 更新描述字段(空值表示不修改)
func (p *Product) UpdateInfo(name string, categoryID uint, imageURL string) {
	if name = strings.TrimSpace(name); name != "" {
		p.Name = name
	}
	if categoryID != 0 {
		p.CategoryID = categoryID
	}
	if imageURL != "" {
		p.ImageURL = imageURL
	}
	p.UpdatedAt = time.Now()
}
