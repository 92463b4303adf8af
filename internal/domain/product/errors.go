package product

import (
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// 商品领域错误定义
var (
	ErrProductNotFound  = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrSKUDuplicate SKU已存在
	ErrSKUDuplicate = apperrors.New(apperrors.ErrCodeSKUDuplicate, "SKU已存在")

	// ErrCategoryDuplicate 分类名称已存在
	ErrCategoryDuplicate = apperrors.New(apperrors.ErrCodeCategoryDuplicate, "分类名称已存在")

	ErrEmptyName   = apperrors.New(apperrors.ErrCodeInvalidParams, "名称和SKU不能为空")
	ErrInvalidSize = apperrors.ErrInvalidSize
)
