package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/warehouse/internal/application/report"
	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/internal/interface/http/dto"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
	"github.com/xiebiao/warehouse/pkg/response"
)

// ReportHandler 只读查询:日志、看板、搜索
type ReportHandler struct {
	journal   *report.JournalUseCase
	dashboard *report.DashboardUseCase
	search    *report.SearchUseCase
}

// NewReportHandler 创建查询处理器
func NewReportHandler(journalUseCase *report.JournalUseCase, dashboard *report.DashboardUseCase, search *report.SearchUseCase) *ReportHandler {
	return &ReportHandler{journal: journalUseCase, dashboard: dashboard, search: search}
}

// ListJournal 仓库日志
// @Summary      仓库日志(最新在前)
// @Tags         查询
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(50)
// @Param        operation_type query string false "操作类型" Enums(IN, OUT)
// @Param        product query string false "商品名称(模糊)"
// @Param        operator query string false "操作员(模糊)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.JournalResponse}}
// @Router       /api/v1/journal [get]
func (h *ReportHandler) ListJournal(c *gin.Context) {
	var req dto.ListJournalRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	page, size := normalizePage(dto.PageQuery{Page: req.Page, PageSize: req.PageSize}, defaultJournalPageSize)

	entries, total, err := h.journal.Execute(c.Request.Context(), journal.ListParams{
		Page:          page,
		PageSize:      size,
		OperationType: journal.OperationType(req.OperationType),
		Product:       strings.TrimSpace(req.Product),
		Operator:      strings.TrimSpace(req.Operator),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewJournalResponses(entries), total, page, size)
}

// Dashboard 看板
// @Summary      看板统计
// @Description  商品数、启用货架数、有效上架记录、总库存、低库存商品、最近操作、货架利用率
// @Tags         查询
// @Produce      json
// @Success      200 {object} response.Response{data=dto.DashboardResponse}
// @Router       /api/v1/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewDashboardResponse(d))
}

// Search 搜索商品及其货架位置
// @Summary      搜索商品
// @Description  按名称、SKU或分类名称模糊匹配(不区分大小写),返回每个商品的有效上架记录
// @Tags         查询
// @Produce      json
// @Param        q query string true "关键字"
// @Success      200 {object} response.Response{data=[]dto.SearchResultResponse}
// @Failure      400 {object} response.Response "缺少关键字"
// @Router       /api/v1/search [get]
func (h *ReportHandler) Search(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "请输入搜索关键字")
		return
	}

	results, err := h.search.Execute(c.Request.Context(), keyword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewSearchResponse(results))
}
