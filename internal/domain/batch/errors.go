package batch

import (
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

var (
	ErrBatchNotFound    = apperrors.New(apperrors.ErrCodeBatchNotFound, "批次不存在")
	ErrBatchFullyPlaced = apperrors.New(apperrors.ErrCodeBatchFullyPlaced, "该批次已全部上架")
	ErrInvalidQuantity  = apperrors.ErrInvalidQuantity
	ErrEmptySupplier    = apperrors.New(apperrors.ErrCodeInvalidParams, "供应商不能为空")
)
