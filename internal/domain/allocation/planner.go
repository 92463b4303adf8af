// Package allocation 货架推荐:把一批商品按容积与承重分摊到多个货架
//
// 新到批次的上架建议与"还能存多少"的容量查询共用同一个Suggest,
// 两处结果必须一致。
package allocation

import (
	"cmp"
	"slices"

	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
)

// Allocation 单个货架的分配结果
type Allocation struct {
	Rack        *rack.Rack
	Quantity    int // 建议放在该货架的数量
	MaxPossible int // 该货架按剩余容积/承重最多能放的数量
}

// Plan 推荐结果
type Plan struct {
	Requested   int
	Allocations []Allocation
	Unallocated int // 0表示全部数量都能分配
}

// Satisfiable 是否能全部放下
func (p Plan) Satisfiable() bool {
	return p.Unallocated == 0
}

// Suggest 贪心分配
//
// 步骤:
//  1. 过滤:只保留启用且商品尺寸放得进的货架
//  2. 排序:按可用容积降序,相同时保持输入顺序(稳定排序)
//  3. 依次计算 max = min(floor(可用容积/单件体积), floor(可用承重/单件重量)),
//     max<=0跳过,否则分配 min(max, 未分配数量)
//  4. 未分配数量为0时提前结束
func Suggest(p *product.Product, quantity int, racks []*rack.Rack) Plan {
	plan := Plan{Requested: quantity, Unallocated: quantity}
	if quantity <= 0 {
		plan.Unallocated = 0
		return plan
	}

	// 1. 过滤
	type candidate struct {
		rack      *rack.Rack
		available float64
	}
	candidates := make([]candidate, 0, len(racks))
	for _, r := range racks {
		if !r.IsActive || !rack.Fits(r, p, 1) {
			continue
		}
		candidates = append(candidates, candidate{rack: r, available: rack.AvailableVolume(r)})
	}

	// 2. 排序
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Compare(b.available, a.available)
	})

	// 3. 贪心分配
	for _, c := range candidates {
		if plan.Unallocated == 0 {
			break
		}

		maxPossible := rack.MaxUnits(c.rack, p)
		if maxPossible <= 0 {
			continue
		}

		qty := min(maxPossible, plan.Unallocated)
		plan.Allocations = append(plan.Allocations, Allocation{
			Rack:        c.rack,
			Quantity:    qty,
			MaxPossible: maxPossible,
		})
		plan.Unallocated -= qty
	}

	return plan
}
