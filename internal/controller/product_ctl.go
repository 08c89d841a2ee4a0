package controller

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_v1_202508/internal/api/dto"
	"storefront_v1_202508/internal/service"
)

// 图片上传大小上限 10MB
const maxImageUploadSize = 10 << 20

// ProductController 运营端商品管理接口
type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 商品 CRUD ====================

// CreateProduct 创建商品
// @Summary 创建商品及变体
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateProductReq true "商品内容"
// @Success 200 {object} dto.CatalogProduct
// @Router /api/admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    service.ToCatalogProduct(product, false),
	})
}

// UpdateProduct 更新商品
// @Summary 更新商品 (传 variants 时整体替换变体)
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Param body body dto.UpdateProductReq true "更新内容"
// @Success 200 {object} dto.CatalogProduct
// @Router /api/admin/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	var req dto.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}
	req.ID = id

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), &req)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    service.ToCatalogProduct(product, false),
	})
}

// DeleteProduct 删除商品
// @Summary 删除商品 (连带变体和图片)
// @Tags Product
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Param store_id query int true "店铺ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
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

	if err := ctrl.productService.DeleteProduct(c.Request.Context(), storeID, id); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ==================== 图片上传 ====================

// UploadImage 上传商品图片
// @Summary 上传商品图片到对象存储
// @Tags Product
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Param store_id query int true "店铺ID"
// @Param file formData file true "图片文件"
// @Param alt_text formData string false "替代文本"
// @Param rank formData int false "排序序号"
// @Success 200 {object} dto.ProductImageResp
// @Router /api/admin/products/{id}/images [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "缺少图片文件"})
		return
	}
	if fileHeader.Size > maxImageUploadSize {
		c.JSON(400, gin.H{"code": 400, "message": "图片超过大小限制 (10MB)"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "文件读取失败"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "文件读取失败"})
		return
	}

	rank, _ := strconv.Atoi(c.DefaultPostForm("rank", "0"))
	altText := c.PostForm("alt_text")

	image, err := ctrl.productService.UploadProductImage(
		c.Request.Context(), storeID, productID, data, fileHeader.Filename, altText, rank)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.ProductImageResp{
			ID:      image.ID,
			Url:     image.Url,
			Rank:    image.Rank,
			AltText: image.AltText,
			Width:   image.Width,
			Height:  image.Height,
		},
	})
}

// ==================== AI 文案 ====================

// GenerateCopy AI 生成商品文案
// @Summary 调用 AI 生成商品文案草稿
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GenerateCopyReq true "生成参数"
// @Success 200 {object} dto.GenerateCopyResp
// @Router /api/admin/products/ai/copy [post]
func (ctrl *ProductController) GenerateCopy(c *gin.Context) {
	var req dto.GenerateCopyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	result, err := ctrl.productService.GenerateListingCopy(c.Request.Context(), &req)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "文案生成失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    result,
	})
}
