package rack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/warehouse/internal/domain/product"
)

func emptyRack() *Rack {
	// 100×50×200 cm = 1,000,000 cm³, 最大承重100kg
	return &Rack{ID: 1, Name: "A-01", Length: 100, Width: 50, Height: 200, MaxLoad: 100, IsActive: true}
}

func phoneCase() *product.Product {
	// 15×7×1 = 105 cm³, 0.2kg
	return &product.Product{ID: 1, SKU: "CASE-1", Length: 15, Width: 7, Height: 1, Weight: 0.2}
}

func TestCapacity_EmptyRack(t *testing.T) {
	r := emptyRack()
	p := phoneCase()

	assert.Equal(t, 1_000_000.0, r.Volume())
	assert.Equal(t, 1_000_000.0, AvailableVolume(r))
	assert.Equal(t, 100.0, AvailableWeight(r))
	assert.True(t, Fits(r, p, 1))
	assert.Equal(t, 0.0, UtilizationPercent(r))
}

func TestFits(t *testing.T) {
	r := emptyRack()

	tests := []struct {
		name     string
		p        *product.Product
		quantity int
		want     bool
	}{
		{"尺寸刚好相等", &product.Product{Length: 100, Width: 50, Height: 200, Weight: 1}, 1, true},
		{"长度超出", &product.Product{Length: 101, Width: 1, Height: 1, Weight: 1}, 1, false},
		{"宽度超出", &product.Product{Length: 1, Width: 51, Height: 1, Weight: 1}, 1, false},
		{"高度超出", &product.Product{Length: 1, Width: 1, Height: 201, Weight: 1}, 1, false},
		{"总重量等于承重", &product.Product{Length: 1, Width: 1, Height: 1, Weight: 0.2}, 500, true},
		{"总重量超过承重", &product.Product{Length: 1, Width: 1, Height: 1, Weight: 0.2}, 501, false},
		{"不考虑旋转", &product.Product{Length: 50, Width: 100, Height: 1, Weight: 1}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fits(r, tt.p, tt.quantity))
		})
	}
}

func TestFits_IgnoresCurrentLoad(t *testing.T) {
	r := emptyRack()
	r.Loads = []Load{{ProductID: 9, Quantity: 1, UnitVolume: 1, UnitWeight: 99}}

	// 静态检查只看总承重,剩余承重只有1kg也返回true
	assert.True(t, Fits(r, &product.Product{Length: 1, Width: 1, Height: 1, Weight: 50}, 1))
}

func TestAvailable_WithLoads(t *testing.T) {
	r := emptyRack()
	p := phoneCase()
	r.Loads = []Load{
		{ProductID: p.ID, Quantity: 30, UnitVolume: p.Volume(), UnitWeight: p.Weight},
		{ProductID: 2, Quantity: 2, UnitVolume: 1000, UnitWeight: 10},
	}

	assert.Equal(t, 1_000_000.0-30*105-2000, AvailableVolume(r))
	assert.Equal(t, 74.0, AvailableWeight(r))

	// 幂等:无变更时重复计算结果一致
	assert.Equal(t, AvailableVolume(r), AvailableVolume(r))
	assert.Equal(t, AvailableWeight(r), AvailableWeight(r))
}

func TestAvailable_Negative(t *testing.T) {
	r := &Rack{Length: 10, Width: 10, Height: 10, MaxLoad: 5}
	r.Loads = []Load{{Quantity: 2, UnitVolume: 600, UnitWeight: 3}}

	assert.Equal(t, -200.0, AvailableVolume(r))
	assert.Equal(t, -1.0, AvailableWeight(r))
	assert.LessOrEqual(t, MaxUnits(r, &product.Product{Length: 1, Width: 1, Height: 1, Weight: 1}), 0)
}

func TestUtilizationPercent(t *testing.T) {
	tests := []struct {
		name     string
		occupied float64
		want     float64
	}{
		{"空货架", 0, 0},
		{"四分之一", 250, 25},
		{"1/3向下舍", 1000.0 / 3, 33.3},
		{"0.05进位", 0.5, 0.1},
		{"0.45进位到0.5", 4.5, 0.5},
		{"满载", 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Rack{Length: 10, Width: 10, Height: 10, MaxLoad: 100}
			if tt.occupied > 0 {
				r.Loads = []Load{{Quantity: 1, UnitVolume: tt.occupied}}
			}
			assert.Equal(t, tt.want, UtilizationPercent(r))
		})
	}
}

func TestUtilizationPercent_ZeroVolume(t *testing.T) {
	assert.Equal(t, 0.0, UtilizationPercent(&Rack{MaxLoad: 10}))
}

func TestMaxUnits(t *testing.T) {
	r := &Rack{Length: 10, Width: 10, Height: 10, MaxLoad: 1000}
	p := &product.Product{Length: 1, Width: 1, Height: 10, Weight: 1}

	// 按容积: 1000/10 = 100; 按承重: 1000/1 = 1000
	assert.Equal(t, 100, MaxUnits(r, p))

	r.MaxLoad = 35
	assert.Equal(t, 35, MaxUnits(r, p))

	// decimal避免 0.3/0.1 = 2.9999... 向下取整成2
	tiny := &Rack{Length: 1, Width: 1, Height: 1, MaxLoad: 0.3}
	assert.Equal(t, 3, MaxUnits(tiny, &product.Product{Length: 0.1, Width: 0.1, Height: 0.1, Weight: 0.1}))
}

func TestUtilizationAfter(t *testing.T) {
	r := &Rack{Length: 10, Width: 10, Height: 10, MaxLoad: 100}
	r.Loads = []Load{{Quantity: 1, UnitVolume: 250}}
	p := &product.Product{Length: 5, Width: 5, Height: 2, Weight: 1} // 50 cm³

	assert.Equal(t, 25.0, UtilizationPercent(r))
	assert.Equal(t, 50.0, UtilizationAfter(r, p, 5))
	assert.Equal(t, 25.0, UtilizationAfter(r, p, 0))
}
