package journal

import (
	"context"
)

// Repository 日志仓储接口
// 只提供追加和查询,没有更新和删除
type Repository interface {
	Append(ctx context.Context, entry *Entry) error

	// List 按operation_date倒序(相同时按ID倒序)分页查询
	List(ctx context.Context, params ListParams) ([]*Entry, int64, error)

	// SumByProduct 某商品IN、OUT数量合计
	SumByProduct(ctx context.Context, productID uint) (in int, out int, err error)
}

// ListParams 查询条件,空值表示不过滤
type ListParams struct {
	Page          int
	PageSize      int
	OperationType OperationType
	Product       string // 商品名称模糊匹配
	Operator      string // 操作员模糊匹配
}

// Publisher 日志事件发布(事务提交后调用)
type Publisher interface {
	Publish(ctx context.Context, entry *Entry) error
}
