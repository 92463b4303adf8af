package placement

import (
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// 上架校验失败对应的业务错误
// ValidationError通过Unwrap转换成这些错误码,errors.Is按错误码匹配
var (
	ErrInvalidQuantity       = apperrors.ErrInvalidQuantity
	ErrRackInactive          = apperrors.New(apperrors.ErrCodeRackInactive, "货架已停用")
	ErrExceedsBatchRemaining = apperrors.New(apperrors.ErrCodeExceedsBatchRemaining, "超出批次剩余待上架数量")
	ErrDimensionsExceeded    = apperrors.New(apperrors.ErrCodeDimensionsExceeded, "商品尺寸超出货架")
	ErrWeightExceeded        = apperrors.New(apperrors.ErrCodeWeightExceeded, "超出货架剩余承重")
	ErrVolumeExceeded        = apperrors.New(apperrors.ErrCodeVolumeExceeded, "超出货架剩余容积")

	ErrPlacementNotFound = apperrors.New(apperrors.ErrCodePlacementNotFound, "上架记录不存在")
)
