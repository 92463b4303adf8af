package placement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func newActive(id uint, quantity int, placed time.Time) *Placement {
	p := NewPlacement(1, 1, nil, quantity, placed)
	p.ID = id
	return p
}

func TestDrain_PartialFulfilment(t *testing.T) {
	p := newActive(1, 10, t0)

	steps, unfulfilled := Drain([]*Placement{p}, 15)

	assert.Equal(t, 5, unfulfilled)
	require.Len(t, steps, 1)
	assert.Equal(t, 10, steps[0].Issued)
	assert.True(t, steps[0].Drained)
	assert.False(t, p.IsActive)
	assert.Equal(t, 10, p.Quantity, "清空的记录数量保持原值")
}

func TestDrain_ShrinksPlacement(t *testing.T) {
	p := newActive(1, 20, t0)

	steps, unfulfilled := Drain([]*Placement{p}, 5)

	assert.Zero(t, unfulfilled)
	require.Len(t, steps, 1)
	assert.Equal(t, 5, steps[0].Issued)
	assert.False(t, steps[0].Drained)
	assert.True(t, p.IsActive)
	assert.Equal(t, 15, p.Quantity)
	assert.Equal(t, 20, p.InitialQuantity)
}

func TestDrain_ExactQuantityDeactivates(t *testing.T) {
	p := newActive(1, 8, t0)

	steps, unfulfilled := Drain([]*Placement{p}, 8)

	assert.Zero(t, unfulfilled)
	require.Len(t, steps, 1)
	assert.True(t, steps[0].Drained)
	assert.False(t, p.IsActive)
}

func TestDrain_FIFOOrder(t *testing.T) {
	newest := newActive(1, 10, t0.Add(2*time.Hour))
	oldest := newActive(2, 10, t0)
	middle := newActive(3, 10, t0.Add(time.Hour))

	steps, unfulfilled := Drain([]*Placement{newest, oldest, middle}, 25)

	assert.Zero(t, unfulfilled)
	require.Len(t, steps, 3)
	assert.Equal(t, []uint{2, 3, 1}, []uint{steps[0].Placement.ID, steps[1].Placement.ID, steps[2].Placement.ID})
	assert.False(t, oldest.IsActive)
	assert.False(t, middle.IsActive)
	assert.True(t, newest.IsActive)
	assert.Equal(t, 5, newest.Quantity)
}

func TestDrain_TieBrokenByID(t *testing.T) {
	b := newActive(7, 5, t0)
	a := newActive(3, 5, t0)

	steps, _ := Drain([]*Placement{b, a}, 5)

	require.Len(t, steps, 1)
	assert.Equal(t, uint(3), steps[0].Placement.ID)
	assert.True(t, b.IsActive)
}

func TestDrain_SkipsInactiveAndEmpty(t *testing.T) {
	inactive := newActive(1, 10, t0)
	inactive.IsActive = false

	steps, unfulfilled := Drain([]*Placement{inactive}, 4)
	assert.Empty(t, steps)
	assert.Equal(t, 4, unfulfilled)

	steps, unfulfilled = Drain(nil, 4)
	assert.Empty(t, steps)
	assert.Equal(t, 4, unfulfilled)
}

func TestDrain_Conservation(t *testing.T) {
	placements := []*Placement{
		newActive(1, 7, t0),
		newActive(2, 3, t0.Add(time.Minute)),
		newActive(3, 12, t0.Add(2*time.Minute)),
	}
	before := 22

	for _, q := range []int{1, 6, 4, 20} {
		steps, unfulfilled := Drain(placements, q)

		issued := 0
		for _, s := range steps {
			issued += s.Issued
		}
		assert.Equal(t, q, issued+unfulfilled)

		active := 0
		for _, p := range placements {
			if p.IsActive {
				active += p.Quantity
			}
		}
		assert.Equal(t, before-issued, active)
		before = active
	}
}
