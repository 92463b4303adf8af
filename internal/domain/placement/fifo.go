package placement

import (
	"cmp"
	"slices"
)

// Step 一条上架记录在本次出库中的变化
type Step struct {
	Placement *Placement // 已按出库结果修改
	Issued    int        // 本条记录出库数量
	Drained   bool       // true: 全部出库,记录已停用
}

// Drain 先进先出消耗有效上架记录
//
// 规则:
// 1. 按DatePlaced升序(相同时按ID升序)逐条消耗,最早入库的先出
// 2. 记录数量 > 剩余需求: 扣减数量,记录保持有效,需求清零
// 3. 记录数量 <= 剩余需求: 整条出库并停用,数量保持原值不清零(IsActive才是"有货"的标志)
// 4. 需求清零或记录耗尽即停止
//
// 纯函数,只修改传入的记录;返回每一步的变化和未满足的数量。
// 持久化由调用方在同一个事务里完成。
func Drain(placements []*Placement, quantity int) ([]Step, int) {
	ordered := make([]*Placement, 0, len(placements))
	for _, p := range placements {
		if p.IsActive {
			ordered = append(ordered, p)
		}
	}
	SortFIFO(ordered)

	remaining := quantity
	var steps []Step
	for _, p := range ordered {
		if remaining <= 0 {
			break
		}

		if p.Quantity > remaining {
			p.Quantity -= remaining
			steps = append(steps, Step{Placement: p, Issued: remaining})
			remaining = 0
			break
		}

		remaining -= p.Quantity
		p.IsActive = false
		steps = append(steps, Step{Placement: p, Issued: p.Quantity, Drained: true})
	}

	return steps, remaining
}

// SortFIFO 按DatePlaced升序、ID升序排序
func SortFIFO(placements []*Placement) {
	slices.SortStableFunc(placements, func(a, b *Placement) int {
		if c := a.DatePlaced.Compare(b.DatePlaced); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
