package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/application/issue"
	"github.com/xiebiao/warehouse/internal/application/receiving"
	"github.com/xiebiao/warehouse/internal/interface/http/dto"
	"github.com/xiebiao/warehouse/internal/interface/http/middleware"
	"github.com/xiebiao/warehouse/pkg/response"
)

// InventoryHandler 出库与容量查询
type InventoryHandler struct {
	issueProduct  *issue.IssueProductUseCase
	checkCapacity *receiving.CheckCapacityUseCase
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(issueProduct *issue.IssueProductUseCase, checkCapacity *receiving.CheckCapacityUseCase) *InventoryHandler {
	return &InventoryHandler{issueProduct: issueProduct, checkCapacity: checkCapacity}
}

// IssueProduct 出库
// @Summary      按先进先出出库
// @Description  按上架时间从早到晚扣减库存。库存不足时尽量出库并返回warning,code仍为0
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        X-Operator header string false "操作员(请求体未填写时使用)"
// @Param        request body dto.IssueRequest true "出库信息"
// @Success      200 {object} response.Response{data=dto.IssueResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/issues [post]
func (h *InventoryHandler) IssueProduct(c *gin.Context) {
	var req dto.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.issueProduct.Execute(c.Request.Context(), issue.IssueRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Operator:  middleware.ResolveOperator(c, req.Operator),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.NewIssueResponse(result)
	if resp.Warning != "" {
		zap.L().Info("部分出库",
			zap.Uint("product_id", req.ProductID),
			zap.Int("unfulfilled", result.Unfulfilled),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
	response.Success(c, resp)
}

// CheckCapacity 容量查询
// @Summary      查询某商品还能存放多少
// @Description  与上架推荐使用同一套分配规则,额外给出每个货架放入后的利用率
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        request body dto.CapacityCheckRequest true "商品和数量"
// @Success      200 {object} response.Response{data=dto.CapacityCheckResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/capacity-checks [post]
func (h *InventoryHandler) CheckCapacity(c *gin.Context) {
	var req dto.CapacityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.checkCapacity.Execute(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCapacityCheckResponse(result))
}
