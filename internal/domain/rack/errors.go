package rack

import (
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

var (
	ErrRackNotFound      = apperrors.New(apperrors.ErrCodeRackNotFound, "货架不存在")
	ErrRackNameDuplicate = apperrors.New(apperrors.ErrCodeRackNameDuplicate, "货架名称已存在")
	ErrEmptyName         = apperrors.New(apperrors.ErrCodeInvalidParams, "货架名称不能为空")
	ErrInvalidSize       = apperrors.ErrInvalidSize
)
