package handler

import (
	"github.com/gin-gonic/gin"

	appplacement "github.com/xiebiao/warehouse/internal/application/placement"
	"github.com/xiebiao/warehouse/internal/application/receiving"
	"github.com/xiebiao/warehouse/internal/application/report"
	"github.com/xiebiao/warehouse/internal/domain/batch"
	"github.com/xiebiao/warehouse/internal/interface/http/dto"
	"github.com/xiebiao/warehouse/internal/interface/http/middleware"
	"github.com/xiebiao/warehouse/pkg/response"
)

// BatchHandler 到货批次:登记、查询、上架推荐、上架
type BatchHandler struct {
	receiveBatch *receiving.ReceiveBatchUseCase
	suggestRacks *receiving.SuggestRacksUseCase
	placeBatch   *appplacement.PlaceBatchUseCase
	batches      *report.BatchListUseCase
}

// NewBatchHandler 创建批次处理器
func NewBatchHandler(
	receiveBatch *receiving.ReceiveBatchUseCase,
	suggestRacks *receiving.SuggestRacksUseCase,
	placeBatch *appplacement.PlaceBatchUseCase,
	batches *report.BatchListUseCase,
) *BatchHandler {
	return &BatchHandler{
		receiveBatch: receiveBatch,
		suggestRacks: suggestRacks,
		placeBatch:   placeBatch,
		batches:      batches,
	}
}

// ReceiveBatch 到货登记
// @Summary      登记到货批次
// @Description  到货只登记批次,不写仓库日志;商品上架时才记录IN
// @Tags         批次
// @Accept       json
// @Produce      json
// @Param        request body dto.ReceiveBatchRequest true "批次信息"
// @Success      200 {object} response.Response{data=dto.BatchResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/batches [post]
func (h *BatchHandler) ReceiveBatch(c *gin.Context) {
	var req dto.ReceiveBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.receiveBatch.Execute(c.Request.Context(), receiving.ReceiveBatchRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Supplier:  req.Supplier,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBatchResponse(b))
}

// ListBatches 批次列表(按到货时间倒序)
// @Summary      批次列表
// @Tags         批次
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        product_id query int false "商品ID"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.BatchResponse}}
// @Router       /api/v1/batches [get]
func (h *BatchHandler) ListBatches(c *gin.Context) {
	var req dto.ListBatchesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	page, size := normalizePage(req.PageQuery, defaultPageSize)

	batches, total, err := h.batches.List(c.Request.Context(), batch.ListParams{
		Page:      page,
		PageSize:  size,
		ProductID: req.ProductID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BatchResponse, len(batches))
	for i, b := range batches {
		list[i] = dto.NewBatchResponse(b)
	}
	response.SuccessWithPage(c, list, total, page, size)
}

// GetBatch 批次详情
// @Summary      批次详情(含已上架、待上架、可出库数量)
// @Tags         批次
// @Produce      json
// @Param        id path int true "批次ID"
// @Success      200 {object} response.Response{data=dto.BatchResponse}
// @Failure      404 {object} response.Response "批次不存在"
// @Router       /api/v1/batches/{id} [get]
func (h *BatchHandler) GetBatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	b, err := h.batches.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBatchResponse(b))
}

// SuggestRacks 上架推荐
// @Summary      上架推荐
// @Description  按剩余容积从大到小贪心分配批次的剩余待上架数量,只读不落库
// @Tags         批次
// @Produce      json
// @Param        id path int true "批次ID"
// @Success      200 {object} response.Response{data=dto.SuggestionResponse}
// @Failure      400 {object} response.Response "批次已全部上架"
// @Failure      404 {object} response.Response "批次不存在"
// @Router       /api/v1/batches/{id}/suggestions [get]
func (h *BatchHandler) SuggestRacks(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.suggestRacks.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewSuggestionResponse(result))
}

// PlaceBatch 上架
// @Summary      把批次的一部分放到货架上
// @Description  同一事务内校验批次剩余、货架启用、尺寸、承重、容积,写入上架记录和IN日志
// @Tags         批次
// @Accept       json
// @Produce      json
// @Param        id path int true "批次ID"
// @Param        X-Operator header string false "操作员(请求体未填写时使用)"
// @Param        request body dto.PlaceBatchRequest true "上架信息"
// @Success      200 {object} response.Response{data=dto.PlaceBatchResponse}
// @Failure      400 {object} response.Response "校验失败(超出剩余/尺寸/承重/容积/货架停用)"
// @Failure      404 {object} response.Response "批次或货架不存在"
// @Router       /api/v1/batches/{id}/placements [post]
func (h *BatchHandler) PlaceBatch(c *gin.Context) {
	// 1. 参数绑定
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.PlaceBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// 2. 调用用例
	result, err := h.placeBatch.Execute(c.Request.Context(), appplacement.PlaceBatchRequest{
		BatchID:  id,
		RackID:   req.RackID,
		Quantity: req.Quantity,
		Operator: middleware.ResolveOperator(c, req.Operator),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 响应里的名称在创建时还没有,用已加载的批次和货架补齐
	p := dto.NewPlacementResponse(result.Placement)
	p.RackName = result.Rack.Name
	p.ProductName = result.Batch.ProductName
	entry := dto.NewJournalResponse(result.Entry)
	entry.RackName = result.Rack.Name
	entry.ProductName = result.Batch.ProductName

	response.Success(c, dto.PlaceBatchResponse{
		Placement: p,
		Entry:     entry,
		Batch:     dto.NewBatchResponse(result.Batch),
	})
}
