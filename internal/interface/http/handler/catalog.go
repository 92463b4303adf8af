package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/warehouse/internal/application/catalog"
	"github.com/xiebiao/warehouse/internal/domain/product"
	"github.com/xiebiao/warehouse/internal/interface/http/dto"
	"github.com/xiebiao/warehouse/pkg/response"
)

// CatalogHandler 分类、商品、货架的维护接口
type CatalogHandler struct {
	catalog *catalog.CatalogUseCase
}

// NewCatalogHandler 创建基础资料处理器
func NewCatalogHandler(catalogUseCase *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalog: catalogUseCase}
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         基础资料
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      400 {object} response.Response "参数错误或名称重复"
// @Router       /api/v1/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	category, err := h.catalog.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCategoryResponse(category))
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         基础资料
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.CategoryResponse, len(categories))
	for i, category := range categories {
		list[i] = dto.NewCategoryResponse(category)
	}
	response.Success(c, list)
}

// CreateProduct 创建商品
// @Summary      创建商品
// @Description  尺寸(cm)和重量(kg)创建后不可修改,所有容量计算都基于它们
// @Tags         基础资料
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      400 {object} response.Response "参数错误或SKU重复"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.catalog.CreateProduct(c.Request.Context(), catalog.CreateProductRequest{
		Name:       req.Name,
		SKU:        req.SKU,
		CategoryID: req.CategoryID,
		Length:     req.Length,
		Width:      req.Width,
		Height:     req.Height,
		Weight:     req.Weight,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewProductResponse(p))
}

// UpdateProduct 修改商品
// @Summary      修改商品名称、分类、图片
// @Tags         基础资料
// @Accept       json
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdateProductRequest true "修改内容"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      404 {object} response.Response "商品或分类不存在"
// @Router       /api/v1/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, catalog.UpdateProductRequest{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewProductResponse(p))
}

// GetProduct 商品详情
// @Summary      商品详情
// @Tags         基础资料
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewProductResponse(p))
}

// ListProducts 商品列表
// @Summary      商品列表
// @Tags         基础资料
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        category_id query int false "分类ID"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.ProductResponse}}
// @Router       /api/v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	page, size := normalizePage(req.PageQuery, defaultPageSize)

	products, total, err := h.catalog.ListProducts(c.Request.Context(), product.ListParams{
		Page:       page,
		PageSize:   size,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		list[i] = dto.NewProductResponse(p)
	}
	response.SuccessWithPage(c, list, total, page, size)
}

// CreateRack 创建货架
// @Summary      创建货架
// @Tags         基础资料
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateRackRequest true "货架信息"
// @Success      200 {object} response.Response{data=dto.RackResponse}
// @Failure      400 {object} response.Response "参数错误或名称重复"
// @Router       /api/v1/racks [post]
func (h *CatalogHandler) CreateRack(c *gin.Context) {
	var req dto.CreateRackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	status, err := h.catalog.CreateRack(c.Request.Context(), catalog.CreateRackRequest{
		Name:    req.Name,
		Length:  req.Length,
		Width:   req.Width,
		Height:  req.Height,
		MaxLoad: req.MaxLoad,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewRackResponse(status))
}

// UpdateRack 修改货架
// @Summary      重命名或启用/停用货架
// @Description  停用的货架不再出现在上架推荐中,已有库存仍可出库
// @Tags         基础资料
// @Accept       json
// @Produce      json
// @Param        id path int true "货架ID"
// @Param        request body dto.UpdateRackRequest true "修改内容"
// @Success      200 {object} response.Response{data=dto.RackResponse}
// @Failure      404 {object} response.Response "货架不存在"
// @Router       /api/v1/racks/{id} [put]
func (h *CatalogHandler) UpdateRack(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	status, err := h.catalog.UpdateRack(c.Request.Context(), id, catalog.UpdateRackRequest{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewRackResponse(status))
}

// GetRack 货架详情(含剩余容积、剩余承重、利用率)
// @Summary      货架详情
// @Tags         基础资料
// @Produce      json
// @Param        id path int true "货架ID"
// @Success      200 {object} response.Response{data=dto.RackResponse}
// @Failure      404 {object} response.Response "货架不存在"
// @Router       /api/v1/racks/{id} [get]
func (h *CatalogHandler) GetRack(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, err := h.catalog.GetRack(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewRackResponse(status))
}

// ListRacks 货架列表
// @Summary      货架列表
// @Tags         基础资料
// @Produce      json
// @Param        active_only query bool false "只看启用的货架"
// @Success      200 {object} response.Response{data=[]dto.RackResponse}
// @Router       /api/v1/racks [get]
func (h *CatalogHandler) ListRacks(c *gin.Context) {
	var req dto.ListRacksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	statuses, err := h.catalog.ListRacks(c.Request.Context(), req.ActiveOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.RackResponse, len(statuses))
	for i, s := range statuses {
		list[i] = dto.NewRackResponse(s)
	}
	response.Success(c, list)
}
