package rack

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rack 货架实体
// 设计说明:
//  1. 长宽高决定能放下哪些商品(按轴对齐包围盒比较,不考虑旋转)
//  2. MaxLoad为最大承重(kg)
//  3. Loads是当前所有有效上架记录的快照,由仓储在查询时填充,
//     可用容积/承重都从它折叠计算,货架本身不存储"剩余量"
type Rack struct {
	ID        uint
	Name      string
	Length    float64
	Width     float64
	Height    float64
	MaxLoad   float64
	IsActive  bool
	Loads     []Load
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Load 货架上的一条有效上架记录
type Load struct {
	ProductID  uint
	Quantity   int
	UnitVolume float64
	UnitWeight float64
}

// NewRack 创建货架(默认启用)
func NewRack(name string, length, width, height, maxLoad float64) (*Rack, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if length <= 0 || width <= 0 || height <= 0 || maxLoad <= 0 {
		return nil, ErrInvalidSize
	}

	now := time.Now()
	return &Rack{
		Name:      name,
		Length:    length,
		Width:     width,
		Height:    height,
		MaxLoad:   maxLoad,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Volume 货架容积
func (r *Rack) Volume() float64 {
	return r.volume().InexactFloat64()
}

func (r *Rack) volume() decimal.Decimal {
	return decimal.NewFromFloat(r.Length).
		Mul(decimal.NewFromFloat(r.Width)).
		Mul(decimal.NewFromFloat(r.Height))
}

// Rename 修改名称
func (r *Rack) Rename(name string) {
	if name = strings.TrimSpace(name); name != "" {
		r.Name = name
		r.UpdatedAt = time.Now()
	}
}

// SetActive 启用/停用货架
// 停用后不再参与推荐,也不能新增上架;已有库存仍可出库
func (r *Rack) SetActive(active bool) {
	r.IsActive = active
	r.UpdatedAt = time.Now()
}
