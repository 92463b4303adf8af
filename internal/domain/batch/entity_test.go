package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatch(t *testing.T) {
	b, err := NewBatch(1, 100, "供应商A", "", time.Time{})
	require.NoError(t, err)
	assert.False(t, b.ArrivalDate.IsZero())
	assert.Equal(t, 100, b.InitialRemaining())

	_, err = NewBatch(1, 0, "供应商A", "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewBatch(1, 10, " ", "", time.Now())
	assert.ErrorIs(t, err, ErrEmptySupplier)
}

func TestBatch_PlaceInTwoSteps(t *testing.T) {
	b := &Batch{Quantity: 100}

	b.Totals.Placed, b.Totals.ActivePlaced = 30, 30
	assert.Equal(t, 70, b.InitialRemaining())
	assert.False(t, b.IsFullyPlaced())

	b.Totals.Placed, b.Totals.ActivePlaced = 100, 100
	assert.Equal(t, 0, b.InitialRemaining())
	assert.True(t, b.IsFullyPlaced())
	assert.False(t, b.IsFullyProcessed())
}

func TestBatch_DerivedAfterIssue(t *testing.T) {
	// 全部上架100,出库40(一条记录被清空30,另一条缩减10)
	b := &Batch{Quantity: 100, Totals: Totals{Placed: 100, ActivePlaced: 60, Issued: 40}}

	assert.Equal(t, 0, b.InitialRemaining(), "出库不会恢复剩余待上架数量")
	assert.Equal(t, 40, b.ActualRemaining())
	assert.Equal(t, 60, b.AvailableForIssue())
	assert.False(t, b.IsFullyProcessed())

	b.Totals.ActivePlaced, b.Totals.Issued = 0, 100
	assert.Equal(t, 0, b.AvailableForIssue())
	assert.True(t, b.IsFullyProcessed())
}

func TestBatch_ClampsToZero(t *testing.T) {
	b := &Batch{Quantity: 10, Totals: Totals{Placed: 12, ActivePlaced: 12, Issued: 15}}

	assert.Equal(t, 0, b.InitialRemaining())
	assert.Equal(t, 0, b.ActualRemaining())
	assert.Equal(t, 0, b.AvailableForIssue())
}
