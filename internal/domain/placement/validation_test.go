package placement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

func validInput() PlaceInput {
	return PlaceInput{
		Batch:    &batch.Batch{ID: 1, ProductID: 1, Quantity: 100},
		Rack:     &rack.Rack{ID: 1, Length: 100, Width: 50, Height: 200, MaxLoad: 100, IsActive: true},
		Product:  &product.Product{ID: 1, Length: 15, Width: 7, Height: 1, Weight: 0.2},
		Quantity: 30,
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(validInput()))
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *PlaceInput)
		want   Violation
		code   int
	}{
		{"数量为0", func(in *PlaceInput) { in.Quantity = 0 }, ViolationQuantityNotPositive, apperrors.ErrCodeInvalidQuantity},
		{"货架停用", func(in *PlaceInput) { in.Rack.IsActive = false }, ViolationRackInactive, apperrors.ErrCodeRackInactive},
		{"超出批次剩余", func(in *PlaceInput) {
			in.Batch.Totals.Placed = 80
		}, ViolationExceedsBatchRemaining, apperrors.ErrCodeExceedsBatchRemaining},
		{"尺寸超出", func(in *PlaceInput) { in.Product.Height = 201 }, ViolationDimensionsExceeded, apperrors.ErrCodeDimensionsExceeded},
		{"超出剩余承重", func(in *PlaceInput) {
			in.Rack.Loads = []rack.Load{{Quantity: 1, UnitVolume: 1, UnitWeight: 95}}
		}, ViolationWeightExceeded, apperrors.ErrCodeWeightExceeded},
		{"超出剩余容积", func(in *PlaceInput) {
			in.Rack.Loads = []rack.Load{{Quantity: 1, UnitVolume: 999_000, UnitWeight: 1}}
		}, ViolationVolumeExceeded, apperrors.ErrCodeVolumeExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)

			err := Validate(in)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.want, ve.Violation)
			assert.Equal(t, tt.code, apperrors.GetAppError(err).Code)
		})
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	in := validInput()
	in.Rack.IsActive = false
	in.Quantity = 1000 // 同时超出批次剩余

	var ve *ValidationError
	require.True(t, errors.As(Validate(in), &ve))
	assert.Equal(t, ViolationRackInactive, ve.Violation)
}

func TestValidate_BoundaryIsInclusive(t *testing.T) {
	in := validInput()
	// 剩余承重刚好 30*0.2 = 6kg
	in.Rack.Loads = []rack.Load{{Quantity: 1, UnitVolume: 1, UnitWeight: 94}}
	assert.NoError(t, Validate(in))

	// 剩余待上架刚好30
	in = validInput()
	in.Batch.Totals.Placed = 70
	assert.NoError(t, Validate(in))
}

func TestValidationError_IsByCode(t *testing.T) {
	in := validInput()
	in.Batch.Totals.Placed = 90

	err := Validate(in)
	assert.ErrorIs(t, err, ErrExceedsBatchRemaining)
	assert.NotErrorIs(t, err, ErrVolumeExceeded)
	assert.Contains(t, apperrors.GetAppError(err).Message, "10")
}
