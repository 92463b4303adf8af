package journal

import (
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

var (
	ErrInvalidOperation = apperrors.New(apperrors.ErrCodeInvalidParams, "操作类型必须为IN或OUT")
	ErrMissingField     = apperrors.New(apperrors.ErrCodeInvalidParams, "日志缺少商品、数量或操作员")
)
