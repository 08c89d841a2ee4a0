package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_v1_202508/internal/api/dto"
	"storefront_v1_202508/internal/model"
	"storefront_v1_202508/internal/service"
)

// StoreController 运营端店铺管理接口
type StoreController struct {
	storeService *service.StoreService
}

func NewStoreController(storeService *service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

// GetStores 获取店铺列表
// @Summary 获取店铺列表
// @Tags Store
// @Security BearerAuth
// @Param only_active query bool false "仅返回启用的店铺"
// @Success 200 {array} dto.StoreResp
// @Router /api/admin/stores [get]
func (ctrl *StoreController) GetStores(c *gin.Context) {
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("only_active", "false"))

	stores, err := ctrl.storeService.ListStores(c.Request.Context(), onlyActive)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	respList := make([]dto.StoreResp, 0, len(stores))
	for i := range stores {
		respList = append(respList, toStoreResp(&stores[i]))
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    respList,
	})
}

// GetStore 获取店铺详情
// @Summary 获取单个店铺详情
// @Tags Store
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {object} dto.StoreResp
// @Router /api/admin/stores/{id} [get]
func (ctrl *StoreController) GetStore(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的店铺ID"})
		return
	}

	store, err := ctrl.storeService.GetStore(c.Request.Context(), id)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "店铺不存在"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    toStoreResp(store),
	})
}

// CreateStore 创建店铺
// @Summary 创建店铺
// @Tags Store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateStoreReq true "店铺内容"
// @Success 200 {object} dto.StoreResp
// @Router /api/admin/stores [post]
func (ctrl *StoreController) CreateStore(c *gin.Context) {
	var req dto.CreateStoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	store, err := ctrl.storeService.CreateStore(c.Request.Context(), &req)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    toStoreResp(store),
	})
}

func toStoreResp(s *model.Store) dto.StoreResp {
	return dto.StoreResp{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		Domain:    s.Domain,
		Currency:  s.Currency,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}
