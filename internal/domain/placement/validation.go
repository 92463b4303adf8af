package placement

import (
	"fmt"

	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/domain/rack"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// Violation 校验失败的类型
type Violation string

const (
	ViolationQuantityNotPositive   Violation = "quantity_not_positive"
	ViolationRackInactive          Violation = "rack_inactive"
	ViolationExceedsBatchRemaining Violation = "exceeds_batch_remaining"
	ViolationDimensionsExceeded    Violation = "dimensions_exceeded"
	ViolationWeightExceeded        Violation = "weight_exceeded"
	ViolationVolumeExceeded        Violation = "volume_exceeded"
)

// ValidationError 上架/出库前置条件校验失败
// Requested为请求数量,Available为对应约束下的可用量(件/kg/cm³,取决于Violation)
type ValidationError struct {
	Violation Violation
	Requested int
	Available float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: requested %d, available %g", e.Violation, e.Requested, e.Available)
}

// Unwrap 转换为带业务错误码的AppError,HTTP层无需了解领域类型
func (e *ValidationError) Unwrap() error {
	switch e.Violation {
	case ViolationQuantityNotPositive:
		return apperrors.Newf(apperrors.ErrCodeInvalidQuantity, "数量必须大于0,当前: %d", e.Requested)
	case ViolationRackInactive:
		return ErrRackInactive
	case ViolationExceedsBatchRemaining:
		return apperrors.Newf(apperrors.ErrCodeExceedsBatchRemaining,
			"不能超过批次剩余待上架数量,可用: %d", int(e.Available))
	case ViolationDimensionsExceeded:
		return ErrDimensionsExceeded
	case ViolationWeightExceeded:
		return apperrors.Newf(apperrors.ErrCodeWeightExceeded, "超出货架剩余承重,可用: %.2f kg", e.Available)
	case ViolationVolumeExceeded:
		return apperrors.Newf(apperrors.ErrCodeVolumeExceeded, "超出货架剩余容积,可用: %.2f L", e.Available/1000)
	default:
		return apperrors.ErrInvalidParams
	}
}

// PlaceInput 上架校验的输入
// Batch.Totals与Rack.Loads必须是事务内加锁后读取的最新数据
type PlaceInput struct {
	Batch    *batch.Batch
	Rack     *rack.Rack
	Product  *product.Product
	Quantity int
}

// Validate 按固定顺序执行上架前置条件检查,返回第一个失败项
// 顺序:
// 1. 数量必须>=1
// 2. 货架必须启用
// 3. 不超过批次剩余待上架数量
// 4. 商品尺寸放得进货架
// 5. 不超过货架剩余承重
// 6. 不超过货架剩余容积
func Validate(in PlaceInput) error {
	if err := ValidateQuantity(in.Quantity); err != nil {
		return err
	}

	if !in.Rack.IsActive {
		return &ValidationError{Violation: ViolationRackInactive, Requested: in.Quantity}
	}

	if remaining := in.Batch.InitialRemaining(); in.Quantity > remaining {
		return &ValidationError{
			Violation: ViolationExceedsBatchRemaining,
			Requested: in.Quantity,
			Available: float64(remaining),
		}
	}

	if !rack.Fits(in.Rack, in.Product, 1) {
		return &ValidationError{Violation: ViolationDimensionsExceeded, Requested: in.Quantity}
	}

	if !quantityWithin(in.Quantity, in.Product.Weight, rack.AvailableWeight(in.Rack)) {
		return &ValidationError{
			Violation: ViolationWeightExceeded,
			Requested: in.Quantity,
			Available: rack.AvailableWeight(in.Rack),
		}
	}

	if !quantityWithin(in.Quantity, in.Product.Volume(), rack.AvailableVolume(in.Rack)) {
		return &ValidationError{
			Violation: ViolationVolumeExceeded,
			Requested: in.Quantity,
			Available: rack.AvailableVolume(in.Rack),
		}
	}

	return nil
}

// ValidateQuantity 数量必须为正整数(上架与出库共用)
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return &ValidationError{Violation: ViolationQuantityNotPositive, Requested: quantity}
	}
	return nil
}

// quantityWithin quantity*unit <= available
// 转成floor(available/unit)比较,与推荐算法的MaxUnits保持一致
func quantityWithin(quantity int, unit, available float64) bool {
	return quantity <= rack.FloorUnits(available, unit)
}
