package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_v1_202508/internal/api/dto"
	"storefront_v1_202508/internal/service"
)

// CatalogController 店面公开接口：目录查询、商品详情、评价
type CatalogController struct {
	catalogService *service.CatalogService
	productService *service.ProductService
	reviewService  *service.ReviewService
}

func NewCatalogController(
	catalogService *service.CatalogService,
	productService *service.ProductService,
	reviewService *service.ReviewService,
) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		productService: productService,
		reviewService:  reviewService,
	}
}

// ==================== 目录 ====================

// GetCatalog 目录查询
// @Summary 店面商品目录 (过滤 + 搜索排序 + 分页)
// @Tags Catalog
// @Param store_id query int true "店铺ID"
// @Param search query string false "搜索词"
// @Param category query string false "分类精确匹配"
// @Param brand query string false "品牌精确匹配"
// @Param min_price query string false "最低价"
// @Param max_price query string false "最高价"
// @Param in_stock query string false "仅显示有货 (true)"
// @Param categories query string false "逗号分隔的多分类"
// @Param sort_by query string false "created|price|rating|name|reviews"
// @Param sort_order query string false "asc|desc" default(desc)
// @Param limit query int false "页大小" default(20)
// @Param offset query int false "偏移量" default(0)
// @Param minimal query bool false "精简响应"
// @Success 200 {object} dto.CatalogListResp
// @Router /api/catalog [get]
func (ctrl *CatalogController) GetCatalog(c *gin.Context) {
	storeIDStr := c.Query("store_id")
	storeID, err := strconv.ParseInt(storeIDStr, 10, 64)
	if err != nil || storeID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的 store_id"})
		return
	}

	var query dto.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数格式错误: " + err.Error()})
		return
	}

	resp, err := ctrl.catalogService.Query(c.Request.Context(), storeID, &query)
	if err != nil {
		// 存储层故障对外只暴露通用错误
		c.JSON(500, gin.H{"code": 500, "message": "商品目录暂时不可用"})
		return
	}

	c.JSON(200, resp)
}

// GetProduct 商品详情
// @Summary 店面商品详情 (含变体和图集)
// @Tags Catalog
// @Param id path int true "商品ID"
// @Param store_id query int true "店铺ID"
// @Success 200 {object} dto.CatalogProduct
// @Router /api/products/{id} [get]
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}
	storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的 store_id"})
		return
	}

	product, err := ctrl.productService.GetProduct(c.Request.Context(), storeID, id)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    service.ToCatalogProduct(product, false),
	})
}

// ==================== 评价 ====================

// GetReviews 获取商品评价列表
// @Summary 分页获取商品评价
// @Tags Review
// @Param id path int true "商品ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ReviewListResp
// @Router /api/products/{id}/reviews [get]
func (ctrl *CatalogController) GetReviews(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	reviews, total, err := ctrl.reviewService.ListReviews(c.Request.Context(), productID, page, pageSize)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	respList := make([]dto.ReviewResp, 0, len(reviews))
	for _, r := range reviews {
		respList = append(respList, dto.ReviewResp{
			ID:        r.ID,
			ProductID: r.ProductID,
			Rating:    r.Rating,
			Title:     r.Title,
			Content:   r.Content,
			Author:    r.Author,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(200, dto.ReviewListResp{
		Code:     0,
		Message:  "success",
		Data:     respList,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// CreateReview 提交商品评价
// @Summary 提交商品评价
// @Tags Review
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param store_id query int true "店铺ID"
// @Param body body dto.CreateReviewReq true "评价内容"
// @Success 200 {object} dto.ReviewResp
// @Router /api/products/{id}/reviews [post]
func (ctrl *CatalogController) CreateReview(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}
	storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的 store_id"})
		return
	}

	var req dto.CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	review, err := ctrl.reviewService.CreateReview(c.Request.Context(), storeID, productID, &req)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.ReviewResp{
			ID:        review.ID,
			ProductID: review.ProductID,
			Rating:    review.Rating,
			Title:     review.Title,
			Content:   review.Content,
			Author:    review.Author,
			CreatedAt: review.CreatedAt.Format(time.RFC3339),
		},
	})
}
