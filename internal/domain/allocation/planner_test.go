package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
)

// cube 10×10×10 的货架,预先占用1000-available的容积
func cube(id uint, available float64) *rack.Rack {
	r := &rack.Rack{ID: id, Length: 10, Width: 10, Height: 10, MaxLoad: 1_000_000, IsActive: true}
	if used := 1000 - available; used > 0 {
		r.Loads = []rack.Load{{ProductID: 99, Quantity: 1, UnitVolume: used}}
	}
	return r
}

// 10 cm³/件,重量可忽略
var unit10 = &product.Product{ID: 1, Length: 1, Width: 1, Height: 10, Weight: 0.001}

func TestSuggest_LargerRackFirst(t *testing.T) {
	small := cube(1, 300)
	large := cube(2, 500)

	plan := Suggest(unit10, 60, []*rack.Rack{small, large})

	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, uint(2), plan.Allocations[0].Rack.ID)
	assert.Equal(t, 50, plan.Allocations[0].Quantity)
	assert.Equal(t, 50, plan.Allocations[0].MaxPossible)
	assert.Equal(t, uint(1), plan.Allocations[1].Rack.ID)
	assert.Equal(t, 10, plan.Allocations[1].Quantity)
	assert.Equal(t, 30, plan.Allocations[1].MaxPossible)
	assert.Zero(t, plan.Unallocated)
	assert.True(t, plan.Satisfiable())
}

func TestSuggest_Unallocated(t *testing.T) {
	plan := Suggest(unit10, 100, []*rack.Rack{cube(1, 300), cube(2, 200)})

	assert.Equal(t, 50, plan.Unallocated)
	assert.False(t, plan.Satisfiable())
	total := 0
	for _, a := range plan.Allocations {
		total += a.Quantity
	}
	assert.Equal(t, 50, total)
}

func TestSuggest_StopsEarly(t *testing.T) {
	plan := Suggest(unit10, 20, []*rack.Rack{cube(1, 500), cube(2, 400)})

	require.Len(t, plan.Allocations, 1)
	assert.Equal(t, 20, plan.Allocations[0].Quantity)
}

func TestSuggest_StableOnTies(t *testing.T) {
	a, b, c := cube(3, 100), cube(1, 100), cube(2, 100)

	plan := Suggest(unit10, 25, []*rack.Rack{a, b, c})

	require.Len(t, plan.Allocations, 3)
	assert.Equal(t, []uint{3, 1, 2}, []uint{
		plan.Allocations[0].Rack.ID, plan.Allocations[1].Rack.ID, plan.Allocations[2].Rack.ID,
	})
	assert.Equal(t, 5, plan.Allocations[2].Quantity)
}

func TestSuggest_Filters(t *testing.T) {
	inactive := cube(1, 1000)
	inactive.IsActive = false

	tooLow := &rack.Rack{ID: 2, Length: 10, Width: 10, Height: 5, MaxLoad: 100, IsActive: true}
	full := cube(3, 5) // 放不下1件

	heavy := cube(4, 1000)
	heavy.MaxLoad = 0.0025 // 按承重只能放2件

	plan := Suggest(unit10, 10, []*rack.Rack{inactive, tooLow, full, heavy})

	require.Len(t, plan.Allocations, 1)
	assert.Equal(t, uint(4), plan.Allocations[0].Rack.ID)
	assert.Equal(t, 2, plan.Allocations[0].Quantity)
	assert.Equal(t, 2, plan.Allocations[0].MaxPossible)
	assert.Equal(t, 8, plan.Unallocated)
}

func TestSuggest_NoRacks(t *testing.T) {
	plan := Suggest(unit10, 7, nil)
	assert.Empty(t, plan.Allocations)
	assert.Equal(t, 7, plan.Unallocated)
}

func TestSuggest_DoesNotMutateRacks(t *testing.T) {
	r := cube(1, 500)
	before := rack.AvailableVolume(r)

	Suggest(unit10, 30, []*rack.Rack{r})

	assert.Equal(t, before, rack.AvailableVolume(r))
}
