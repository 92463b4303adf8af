package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 同一业务错误码的AppError视为同一种错误，即使Message里带了上下文（如可用数量）
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Code != ErrCodeInternal
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeMQError       = 50003 // 消息队列错误

	// 资源错误（40400-40499）
	ErrCodeNotFound          = 40400 // 资源不存在(通用)
	ErrCodeProductNotFound   = 40401 // 商品不存在
	ErrCodeRackNotFound      = 40402 // 货架不存在
	ErrCodeBatchNotFound     = 40403 // 批次不存在
	ErrCodeCategoryNotFound  = 40404 // 分类不存在
	ErrCodePlacementNotFound = 40405 // 上架记录不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError         = 40000 // 业务错误(通用)
	ErrCodeExceedsBatchRemaining = 40001 // 超出批次剩余待上架数量
	ErrCodeDimensionsExceeded    = 40002 // 商品尺寸超出货架
	ErrCodeWeightExceeded        = 40003 // 超出货架剩余承重
	ErrCodeVolumeExceeded        = 40004 // 超出货架剩余容积
	ErrCodeRackInactive          = 40005 // 货架已停用
	ErrCodeBatchFullyPlaced      = 40006 // 批次已全部上架
	ErrCodeSKUDuplicate          = 40007 // SKU已存在
	ErrCodeRackNameDuplicate     = 40008 // 货架名称已存在
	ErrCodeDuplicateEntry        = 40009 // 重复记录(通用)
	ErrCodeCategoryDuplicate     = 40010 // 分类名称已存在

	// 参数错误（40900-40999）
	ErrCodeInvalidParams   = 40900 // 参数错误
	ErrCodeBindError       = 40901 // 参数绑定失败
	ErrCodeInvalidQuantity = 40902 // 数量必须为正整数
	ErrCodeInvalidSize     = 40903 // 尺寸/重量必须为正数
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 资源不存在
	ErrNotFound = New(ErrCodeNotFound, "资源不存在")

	// 参数错误
	ErrInvalidParams   = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError       = New(ErrCodeBindError, "参数格式错误")
	ErrInvalidQuantity = New(ErrCodeInvalidQuantity, "数量必须大于0")
	ErrInvalidSize     = New(ErrCodeInvalidSize, "尺寸和重量必须大于0")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// IsNotFound 判断是否为资源不存在类错误（404xx）
func IsNotFound(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code >= ErrCodeNotFound && appErr.Code < ErrCodeNotFound+100
}
