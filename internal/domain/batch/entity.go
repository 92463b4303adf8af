package batch

import (
	"strings"
	"time"
)

// Batch 到货批次
// 设计说明:
// 1. Quantity为到货数量,创建后不可修改
// 2. "剩余待上架""可出库"等数量都是派生值,从Totals计算,不落库
// 3. Totals由仓储聚合查询填充(SUM),对应原先隐式的ORM聚合
type Batch struct {
	ID          uint
	ProductID   uint
	ProductName string // 只读,由仓储查询时填充
	Quantity    int
	ArrivalDate time.Time
	Supplier    string
	Notes       string
	Totals      Totals
}

// Totals 批次的聚合数据
type Totals struct {
	// Placed 该批次创建过的全部上架记录的初始数量之和(无论是否仍有效)
	// 使用上架时的初始数量而非当前数量,出库不会让它变小
	Placed int
	// ActivePlaced 有效上架记录的当前数量之和
	ActivePlaced int
	// Issued 关联该批次的OUT日志数量之和
	Issued int
}

// NewBatch 到货登记(工厂方法)
func NewBatch(productID uint, quantity int, supplier, notes string, arrivalDate time.Time) (*Batch, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	supplier = strings.TrimSpace(supplier)
	if supplier == "" {
		return nil, ErrEmptySupplier
	}
	if arrivalDate.IsZero() {
		arrivalDate = time.Now()
	}
	return &Batch{
		ProductID:   productID,
		Quantity:    quantity,
		ArrivalDate: arrivalDate,
		Supplier:    supplier,
		Notes:       notes,
	}, nil
}

// InitialRemaining 剩余待上架数量 = 到货数量 - 已创建上架记录的初始数量之和
// 单调不增:上架只会增加Placed,出库不影响
func (b *Batch) InitialRemaining() int {
	return nonNegative(b.Quantity - b.Totals.Placed)
}

// ActualRemaining 到货数量 - 有效上架记录当前数量之和
func (b *Batch) ActualRemaining() int {
	return nonNegative(b.Quantity - b.Totals.ActivePlaced)
}

// AvailableForIssue 已上架总量 - 已出库总量
func (b *Batch) AvailableForIssue() int {
	return nonNegative(b.Totals.Placed - b.Totals.Issued)
}

// IsFullyPlaced 是否已全部上架
func (b *Batch) IsFullyPlaced() bool {
	return b.InitialRemaining() <= 0
}

// IsFullyProcessed 全部上架且全部出库
func (b *Batch) IsFullyProcessed() bool {
	return b.IsFullyPlaced() && b.AvailableForIssue() == 0
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
