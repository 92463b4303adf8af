package placement

import (
	"time"
)

// Placement 上架记录:某批次的一部分商品放在某个货架上
// 设计说明:
// 1. Quantity只由出库(FIFO)向下修改,初始值由上架写入
// 2. InitialQuantity是上架时的数量,永不修改,批次的"已上架总量"基于它汇总
// 3. DatePlaced是FIFO排序键,创建后不可修改
// 4. IsActive只会从true变为false一次(库存全部出库时),记录从不删除
type Placement struct {
	ID              uint
	RackID          uint
	ProductID       uint
	BatchID         *uint
	Quantity        int
	InitialQuantity int
	DatePlaced      time.Time
	IsActive        bool

	// 只读展示字段,由仓储查询时填充
	RackName    string
	ProductName string
}

// NewPlacement 创建有效上架记录
func NewPlacement(rackID, productID uint, batchID *uint, quantity int, placedAt time.Time) *Placement {
	return &Placement{
		RackID:          rackID,
		ProductID:       productID,
		BatchID:         batchID,
		Quantity:        quantity,
		InitialQuantity: quantity,
		DatePlaced:      placedAt,
		IsActive:        true,
	}
}
