package rack

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/warehouse/internal/domain/product"
)

// 容量计算
// 教学要点:
// 1. 全部是纯函数,输入货架(含Loads快照)和商品,不访问数据库
// 2. 中间结果用decimal累加,避免 1.0 - 7*0.1 = 0.29999... 这类误差
//    影响后续的floor(可用容积/单件体积)
// 3. 可用量可能为负(绕过校验的并发写入),原样返回,调用方视为"不能再放"

// Fits 静态装载检查
// 条件:商品长宽高分别不超过货架对应尺寸,且 weight*quantity 不超过货架最大承重
// 注意:比较的是货架总承重,不是剩余承重;剩余量请用AvailableWeight/AvailableVolume
func Fits(r *Rack, p *product.Product, quantity int) bool {
	if p.Length > r.Length || p.Width > r.Width || p.Height > r.Height {
		return false
	}
	total := decimal.NewFromFloat(p.Weight).Mul(decimal.NewFromInt(int64(quantity)))
	return total.LessThanOrEqual(decimal.NewFromFloat(r.MaxLoad))
}

// AvailableVolume 可用容积 = 货架容积 - Σ(有效上架数量 * 单件体积)
func AvailableVolume(r *Rack) float64 {
	return availableVolume(r).InexactFloat64()
}

// AvailableWeight 可用承重 = 最大承重 - Σ(有效上架数量 * 单件重量)
func AvailableWeight(r *Rack) float64 {
	return availableWeight(r).InexactFloat64()
}

// UtilizationPercent 容积利用率(%)
// 取值:100 * 已占用容积 / 货架容积,保留1位小数(四舍五入,0.5远离零进位)
// 货架容积为0时返回0
func UtilizationPercent(r *Rack) float64 {
	vol := r.volume()
	if vol.IsZero() {
		return 0
	}
	occupied := vol.Sub(availableVolume(r))
	return occupied.Div(vol).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}

// MaxUnits 按剩余容积和剩余承重计算最多还能放多少件
// max = min(floor(可用容积/单件体积), floor(可用承重/单件重量)),可能<=0
func MaxUnits(r *Rack, p *product.Product) int {
	byVolume := floorDiv(availableVolume(r), decimal.NewFromFloat(p.Volume()))
	byWeight := floorDiv(availableWeight(r), decimal.NewFromFloat(p.Weight))
	if byWeight < byVolume {
		return byWeight
	}
	return byVolume
}

// FloorUnits floor(available/unit):可用量available最多容纳多少个单位量unit
func FloorUnits(available, unit float64) int {
	return floorDiv(decimal.NewFromFloat(available), decimal.NewFromFloat(unit))
}

func availableVolume(r *Rack) decimal.Decimal {
	occupied := decimal.Zero
	for _, l := range r.Loads {
		occupied = occupied.Add(decimal.NewFromFloat(l.UnitVolume).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return r.volume().Sub(occupied)
}

func availableWeight(r *Rack) decimal.Decimal {
	occupied := decimal.Zero
	for _, l := range r.Loads {
		occupied = occupied.Add(decimal.NewFromFloat(l.UnitWeight).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return decimal.NewFromFloat(r.MaxLoad).Sub(occupied)
}

// floorDiv 向下取整除法;除数为0时不限制
func floorDiv(a, b decimal.Decimal) int {
	if !b.IsPositive() {
		return int(^uint(0) >> 1)
	}
	return int(a.Div(b).Floor().IntPart())
}

// UtilizationAfter 假设再放入quantity件商品后的容积利用率(%),保留1位小数
func UtilizationAfter(r *Rack, p *product.Product, quantity int) float64 {
	vol := r.volume()
	if vol.IsZero() {
		return 0
	}
	added := decimal.NewFromFloat(p.Volume()).Mul(decimal.NewFromInt(int64(quantity)))
	occupied := vol.Sub(availableVolume(r)).Add(added)
	return occupied.Div(vol).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}
