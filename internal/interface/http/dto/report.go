package dto

import (
	"github.com/xiebiao/warehouse/internal/application/report"
	"github.com/xiebiao/warehouse/internal/domain/journal"
)

// ListJournalRequest 日志查询请求
type ListJournalRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"50"`
	OperationType string `form:"operation_type" binding:"omitempty,oneof=IN OUT" example:"OUT"`
	Product       string `form:"product" binding:"max=200" example:"case"`
	Operator      string `form:"operator" binding:"max=100" example:"alice"`
}

// JournalResponse 日志条目响应
type JournalResponse struct {
	ID            uint   `json:"id" example:"1"`
	OperationType string `json:"operation_type" example:"IN"`
	ProductID     uint   `json:"product_id" example:"1"`
	ProductName   string `json:"product_name,omitempty" example:"Phone Case"`
	Quantity      int    `json:"quantity" example:"30"`
	RackID        *uint  `json:"rack_id,omitempty" example:"1"`
	RackName      string `json:"rack_name,omitempty" example:"A-01"`
	BatchID       *uint  `json:"batch_id,omitempty" example:"1"`
	OperationDate string `json:"operation_date" example:"2024-01-15 10:30:00"`
	Operator      string `json:"operator" example:"alice"`
	Notes         string `json:"notes,omitempty" example:"Placement of batch #1"`
}

// NewJournalResponse 实体 → 响应
func NewJournalResponse(e *journal.Entry) JournalResponse {
	return JournalResponse{
		ID:            e.ID,
		OperationType: string(e.OperationType),
		ProductID:     e.ProductID,
		ProductName:   e.ProductName,
		Quantity:      e.Quantity,
		RackID:        e.RackID,
		RackName:      e.RackName,
		BatchID:       e.BatchID,
		OperationDate: FormatTime(e.OperationDate),
		Operator:      e.Operator,
		Notes:         e.Notes,
	}
}

// NewJournalResponses 批量转换
func NewJournalResponses(entries []*journal.Entry) []JournalResponse {
	list := make([]JournalResponse, len(entries))
	for i, e := range entries {
		list[i] = NewJournalResponse(e)
	}
	return list
}

// DashboardResponse 看板响应
type DashboardResponse struct {
	TotalProducts    int                   `json:"total_products" example:"12"`
	ActiveRacks      int                   `json:"active_racks" example:"6"`
	ActivePlacements int64                 `json:"active_placements" example:"20"`
	TotalQuantity    int64                 `json:"total_quantity" example:"640"`
	LowStock         []report.LowStockItem `json:"low_stock"`
	RecentEntries    []JournalResponse     `json:"recent_entries"`
	RackUsage        []report.RackUsage    `json:"rack_usage"`
}

// NewDashboardResponse 看板数据 → 响应
func NewDashboardResponse(d *report.Dashboard) DashboardResponse {
	return DashboardResponse{
		TotalProducts:    d.TotalProducts,
		ActiveRacks:      d.ActiveRacks,
		ActivePlacements: d.ActivePlacements,
		TotalQuantity:    d.TotalQuantity,
		LowStock:         d.LowStock,
		RecentEntries:    NewJournalResponses(d.RecentEntries),
		RackUsage:        d.RackUsage,
	}
}

// SearchResultResponse 搜索结果
type SearchResultResponse struct {
	Product       ProductResponse     `json:"product"`
	TotalQuantity int                 `json:"total_quantity" example:"10"`
	Placements    []PlacementResponse `json:"placements"`
}

// NewSearchResponse 搜索结果 → 响应
func NewSearchResponse(results []report.SearchResult) []SearchResultResponse {
	list := make([]SearchResultResponse, len(results))
	for i, r := range results {
		placements := make([]PlacementResponse, len(r.Placements))
		for j, p := range r.Placements {
			placements[j] = NewPlacementResponse(p)
		}
		list[i] = SearchResultResponse{
			Product:       NewProductResponse(r.Product),
			TotalQuantity: r.TotalQuantity,
			Placements:    placements,
		}
	}
	return list
}
