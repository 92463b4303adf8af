package product

import (
	"context"
)

// Repository 商品仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现
type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	Update(ctx context.Context, product *Product) error

	// List 分页查询商品列表,按创建时间倒序
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// ListAll 按ID升序返回全部商品(看板低库存统计)
	ListAll(ctx context.Context) ([]*Product, error)

	// Search 按名称、SKU、分类名称模糊搜索(不区分大小写)
	Search(ctx context.Context, keyword string) ([]*Product, error)
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page       int  // 页码(从1开始)
	PageSize   int  // 每页数量
	CategoryID uint // 按分类过滤,0表示不过滤
}
