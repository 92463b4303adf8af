package report

import (
	"context"
	"strings"

	"github.com/xiebiao/warehouse/internal/domain/placement"
	"github.com/xiebiao/warehouse/internal/domain/product"
)

// SearchResult 一个商品及其当前所在货架
type SearchResult struct {
	Product       *product.Product
	Placements    []*placement.Placement
	TotalQuantity int
}

// SearchUseCase 库存搜索
type SearchUseCase struct {
	productRepo   product.Repository
	placementRepo placement.Repository
}

// NewSearchUseCase 创建搜索用例
func NewSearchUseCase(productRepo product.Repository, placementRepo placement.Repository) *SearchUseCase {
	return &SearchUseCase{productRepo: productRepo, placementRepo: placementRepo}
}

// Execute 按名称、SKU或分类名称搜索(不区分大小写),空关键词返回空结果
func (uc *SearchUseCase) Execute(ctx context.Context, keyword string) ([]SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []SearchResult{}, nil
	}

	products, err := uc.productRepo.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(products))
	for _, p := range products {
		placements, err := uc.placementRepo.ListActiveByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, pl := range placements {
			total += pl.Quantity
		}
		results = append(results, SearchResult{Product: p, Placements: placements, TotalQuantity: total})
	}
	return results, nil
}
