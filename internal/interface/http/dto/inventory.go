package dto

import (
	"fmt"

	"github.com/xiebiao/warehouse/internal/application/issue"
	"github.com/xiebiao/warehouse/internal/application/receiving"
	"github.com/xiebiao/warehouse/internal/domain/allocation"
	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/domain/placement"
	"github.com/xiebiao/warehouse/internal/domain/rack"
)

// =========================================
// 批次
// =========================================

// ReceiveBatchRequest 到货登记请求
type ReceiveBatchRequest struct {
	ProductID uint   `json:"product_id" binding:"required" example:"1"`
	Quantity  int    `json:"quantity" binding:"required,min=1" example:"100"`
	Supplier  string `json:"supplier" binding:"required,max=200" example:"ACME"`
	Notes     string `json:"notes" binding:"max=2000"`
}

// ListBatchesRequest 批次列表请求
type ListBatchesRequest struct {
	PageQuery
	ProductID uint `form:"product_id" example:"1"`
}

// BatchResponse 批次响应(含派生数量)
type BatchResponse struct {
	ID                uint   `json:"id" example:"1"`
	ProductID         uint   `json:"product_id" example:"1"`
	ProductName       string `json:"product_name" example:"Phone Case"`
	Quantity          int    `json:"quantity" example:"100"`
	ArrivalDate       string `json:"arrival_date" example:"2024-01-15 10:30:00"`
	Supplier          string `json:"supplier" example:"ACME"`
	Notes             string `json:"notes,omitempty"`
	Placed            int    `json:"placed" example:"30"`
	InitialRemaining  int    `json:"initial_remaining" example:"70"`
	ActualRemaining   int    `json:"actual_remaining" example:"70"`
	AvailableForIssue int    `json:"available_for_issue" example:"30"`
	IsFullyPlaced     bool   `json:"is_fully_placed" example:"false"`
	IsFullyProcessed  bool   `json:"is_fully_processed" example:"false"`
}

// NewBatchResponse 实体 → 响应
func NewBatchResponse(b *batch.Batch) BatchResponse {
	return BatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		ProductName:       b.ProductName,
		Quantity:          b.Quantity,
		ArrivalDate:       FormatTime(b.ArrivalDate),
		Supplier:          b.Supplier,
		Notes:             b.Notes,
		Placed:            b.Totals.Placed,
		InitialRemaining:  b.InitialRemaining(),
		ActualRemaining:   b.ActualRemaining(),
		AvailableForIssue: b.AvailableForIssue(),
		IsFullyPlaced:     b.IsFullyPlaced(),
		IsFullyProcessed:  b.IsFullyProcessed(),
	}
}

// =========================================
// 上架推荐 / 容量查询
// =========================================

// AllocationResponse 单个货架的建议数量
type AllocationResponse struct {
	RackID           uint     `json:"rack_id" example:"2"`
	RackName         string   `json:"rack_name" example:"A-02"`
	Quantity         int      `json:"quantity" example:"50"`
	MaxPossible      int      `json:"max_possible" example:"50"`
	AvailableVolume  float64  `json:"available_volume" example:"500"`
	UtilizationAfter *float64 `json:"utilization_after,omitempty" example:"100"`
}

func newAllocationResponse(a allocation.Allocation) AllocationResponse {
	return AllocationResponse{
		RackID:      a.Rack.ID,
		RackName:    a.Rack.Name,
		Quantity:    a.Quantity,
		MaxPossible: a.MaxPossible,
		// 分配结果里的货架是推荐前的快照
		AvailableVolume: rack.AvailableVolume(a.Rack),
	}
}

// SuggestionResponse 上架推荐响应
type SuggestionResponse struct {
	Batch         BatchResponse        `json:"batch"`
	AlreadyPlaced int                  `json:"already_placed" example:"0"`
	Requested     int                  `json:"requested" example:"60"`
	Allocations   []AllocationResponse `json:"allocations"`
	Unallocated   int                  `json:"unallocated" example:"0"`
}

// NewSuggestionResponse 推荐结果 → 响应
func NewSuggestionResponse(r *receiving.SuggestRacksResponse) SuggestionResponse {
	resp := SuggestionResponse{
		Batch:         NewBatchResponse(r.Batch),
		AlreadyPlaced: r.AlreadyPlaced,
		Requested:     r.Plan.Requested,
		Allocations:   make([]AllocationResponse, 0, len(r.Plan.Allocations)),
		Unallocated:   r.Plan.Unallocated,
	}
	for _, a := range r.Plan.Allocations {
		resp.Allocations = append(resp.Allocations, newAllocationResponse(a))
	}
	return resp
}

// CapacityCheckRequest 容量查询请求
type CapacityCheckRequest struct {
	ProductID uint `json:"product_id" binding:"required" example:"1"`
	Quantity  int  `json:"quantity" binding:"required,min=1" example:"60"`
}

// CapacityCheckResponse 容量查询响应
type CapacityCheckResponse struct {
	Product     ProductResponse      `json:"product"`
	Requested   int                  `json:"requested" example:"60"`
	Allocations []AllocationResponse `json:"allocations"`
	Unallocated int                  `json:"unallocated" example:"0"`
	CanStore    bool                 `json:"can_store" example:"true"`
}

// NewCapacityCheckResponse 容量查询结果 → 响应
func NewCapacityCheckResponse(r *receiving.CheckCapacityResponse) CapacityCheckResponse {
	resp := CapacityCheckResponse{
		Product:     NewProductResponse(r.Product),
		Requested:   r.Requested,
		Allocations: make([]AllocationResponse, 0, len(r.Allocations)),
		Unallocated: r.Unallocated,
		CanStore:    r.CanStore,
	}
	for _, a := range r.Allocations {
		item := newAllocationResponse(a.Allocation)
		after := a.UtilizationAfter
		item.UtilizationAfter = &after
		resp.Allocations = append(resp.Allocations, item)
	}
	return resp
}

// =========================================
// 上架
// =========================================

// PlaceBatchRequest 上架请求
// operator为空时依次使用X-Operator请求头、配置的默认操作员
type PlaceBatchRequest struct {
	RackID   uint   `json:"rack_id" binding:"required" example:"1"`
	Quantity int    `json:"quantity" binding:"required,min=1" example:"30"`
	Operator string `json:"operator" binding:"max=100" example:"alice"`
}

// PlacementResponse 上架记录响应
type PlacementResponse struct {
	ID              uint   `json:"id" example:"1"`
	RackID          uint   `json:"rack_id" example:"1"`
	RackName        string `json:"rack_name" example:"A-01"`
	ProductID       uint   `json:"product_id" example:"1"`
	ProductName     string `json:"product_name" example:"Phone Case"`
	BatchID         *uint  `json:"batch_id,omitempty" example:"1"`
	Quantity        int    `json:"quantity" example:"30"`
	InitialQuantity int    `json:"initial_quantity" example:"30"`
	DatePlaced      string `json:"date_placed" example:"2024-01-15 10:30:00"`
	IsActive        bool   `json:"is_active" example:"true"`
}

// NewPlacementResponse 实体 → 响应
func NewPlacementResponse(p *placement.Placement) PlacementResponse {
	return PlacementResponse{
		ID:              p.ID,
		RackID:          p.RackID,
		RackName:        p.RackName,
		ProductID:       p.ProductID,
		ProductName:     p.ProductName,
		BatchID:         p.BatchID,
		Quantity:        p.Quantity,
		InitialQuantity: p.InitialQuantity,
		DatePlaced:      FormatTime(p.DatePlaced),
		IsActive:        p.IsActive,
	}
}

// PlaceBatchResponse 上架结果
type PlaceBatchResponse struct {
	Placement PlacementResponse `json:"placement"`
	Entry     JournalResponse   `json:"journal_entry"`
	Batch     BatchResponse     `json:"batch"`
}

// =========================================
// 出库
// =========================================

// IssueRequest 出库请求
type IssueRequest struct {
	ProductID uint   `json:"product_id" binding:"required" example:"1"`
	Quantity  int    `json:"quantity" binding:"required,min=1" example:"15"`
	Operator  string `json:"operator" binding:"max=100" example:"alice"`
}

// IssueResponse 出库结果
// 库存不足时仍返回成功(code=0),warning说明缺口
type IssueResponse struct {
	ProductID   uint              `json:"product_id" example:"1"`
	Requested   int               `json:"requested" example:"15"`
	Fulfilled   int               `json:"fulfilled" example:"10"`
	Unfulfilled int               `json:"unfulfilled" example:"5"`
	Warning     string            `json:"warning,omitempty" example:"库存不足,仅出库10件,缺少5件"`
	Entries     []JournalResponse `json:"entries"`
}

// NewIssueResponse 出库结果 → 响应
func NewIssueResponse(r *issue.IssueResult) IssueResponse {
	resp := IssueResponse{
		ProductID:   r.ProductID,
		Requested:   r.Requested,
		Fulfilled:   r.Fulfilled,
		Unfulfilled: r.Unfulfilled,
		Entries:     make([]JournalResponse, 0, len(r.Entries)),
	}
	if r.Partial() {
		resp.Warning = fmt.Sprintf("库存不足,仅出库%d件,缺少%d件", r.Fulfilled, r.Unfulfilled)
	}
	for _, e := range r.Entries {
		resp.Entries = append(resp.Entries, NewJournalResponse(e))
	}
	return resp
}
