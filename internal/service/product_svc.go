package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"gorm.io/datatypes"

	"storefront_v1_202508/internal/api/dto"
	"storefront_v1_202508/internal/middleware"
	"storefront_v1_202508/internal/model"
	"storefront_v1_202508/internal/repository"
	"storefront_v1_202508/pkg/cache"
)

// ProductService 运营端商品管理服务
// 商品变更负责清理对应店铺的目录缓存，并向店铺配置的 Webhook 发事件
type ProductService struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	cache       cache.Cache
	storage     *StorageService // 可为 nil (未配置对象存储)
	webhook     *WebhookService // 可为 nil
	ai          *AIService      // 可为 nil
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	c cache.Cache,
	storage *StorageService,
	webhook *WebhookService,
	ai *AIService,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storeRepo:   storeRepo,
		cache:       c,
		storage:     storage,
		webhook:     webhook,
		ai:          ai,
	}
}

// ==================== 查询 ====================

// GetProduct 获取商品详情 (含变体和图片)
func (s *ProductService) GetProduct(ctx context.Context, storeID, id int64) (*model.Product, error) {
	return s.productRepo.GetByID(ctx, storeID, id)
}

// ==================== 写入 ====================

// CreateProduct 创建商品及其变体
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.CreateProductReq) (*model.Product, error) {
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("店铺不存在: %w", err)
	}

	product := &model.Product{
		StoreID:       store.ID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Brand:         req.Brand,
		SKU:           req.SKU,
		Model:         req.Model,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		StockQuantity: req.StockQuantity,
		FastDelivery:  req.FastDelivery,
		FreeShipping:  req.FreeShipping,
		Image:         req.Image,
		Gallery:       req.Gallery,
		Tags:          req.Tags,
	}
	product.CreatedBy = middleware.GetAuditUserID(ctx)
	if req.Specifications != nil {
		product.Specifications = datatypes.JSONMap(req.Specifications)
	}

	err = s.productRepo.Transaction(ctx, func(txRepo repository.ProductRepository) error {
		if err := txRepo.Create(ctx, product); err != nil {
			return err
		}
		variants, err := buildVariants(store.ID, product.ID, req.Variants)
		if err != nil {
			return err
		}
		return txRepo.BatchUpsertVariants(ctx, variants)
	})
	if err != nil {
		return nil, fmt.Errorf("商品创建失败: %w", err)
	}

	s.afterMutation(ctx, store, product.ID, "product.created")
	return s.productRepo.GetByID(ctx, store.ID, product.ID)
}

// UpdateProduct 更新商品；Variants 非 nil 时整体替换变体
func (s *ProductService) UpdateProduct(ctx context.Context, req *dto.UpdateProductReq) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, req.StoreID, req.ID)
	if err != nil {
		return nil, fmt.Errorf("商品不存在: %w", err)
	}

	applyProductUpdate(product, req)
	product.UpdatedBy = middleware.GetAuditUserID(ctx)

	err = s.productRepo.Transaction(ctx, func(txRepo repository.ProductRepository) error {
		if err := txRepo.Update(ctx, product); err != nil {
			return err
		}
		if req.Variants == nil {
			return nil
		}
		if err := txRepo.DeleteVariantsByProductID(ctx, product.ID); err != nil {
			return err
		}
		variants, err := buildVariants(product.StoreID, product.ID, req.Variants)
		if err != nil {
			return err
		}
		return txRepo.BatchUpsertVariants(ctx, variants)
	})
	if err != nil {
		return nil, fmt.Errorf("商品更新失败: %w", err)
	}

	s.notifyStore(ctx, req.StoreID, product.ID, "product.updated")
	return s.productRepo.GetByID(ctx, req.StoreID, product.ID)
}

// DeleteProduct 删除商品 (变体和图片一起删除)
func (s *ProductService) DeleteProduct(ctx context.Context, storeID, id int64) error {
	if _, err := s.productRepo.GetByID(ctx, storeID, id); err != nil {
		return fmt.Errorf("商品不存在: %w", err)
	}
	if err := s.productRepo.Delete(ctx, storeID, id); err != nil {
		return fmt.Errorf("商品删除失败: %w", err)
	}
	s.notifyStore(ctx, storeID, id, "product.deleted")
	return nil
}

// ==================== 图片 ====================

// UploadProductImage 上传商品图片到对象存储并登记
func (s *ProductService) UploadProductImage(ctx context.Context, storeID, productID int64, data []byte, filename, altText string, rank int) (*model.ProductImage, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("对象存储未配置")
	}

	product, err := s.productRepo.GetByID(ctx, storeID, productID)
	if err != nil {
		return nil, fmt.Errorf("商品不存在: %w", err)
	}

	url, err := s.storage.Upload(ctx, data, filename, contentTypeByExt(filename))
	if err != nil {
		return nil, fmt.Errorf("图片上传失败: %w", err)
	}

	image := &model.ProductImage{
		ProductID: product.ID,
		StoreID:   storeID,
		Url:       url,
		Rank:      rank,
		AltText:   altText,
	}
	if err := s.productRepo.CreateImage(ctx, image); err != nil {
		return nil, fmt.Errorf("图片登记失败: %w", err)
	}

	// 首图兜底：商品还没有主图时直接用这张
	if product.Image == "" {
		if err := s.productRepo.UpdateFields(ctx, product.ID, map[string]interface{}{"image": url}); err != nil {
			log.Printf("[Product] 主图回填失败: %v", err)
		}
	}

	s.notifyStore(ctx, storeID, productID, "product.updated")
	return image, nil
}

// ==================== AI 文案 ====================

// GenerateListingCopy 调用 AI 生成商品文案草稿
func (s *ProductService) GenerateListingCopy(ctx context.Context, req *dto.GenerateCopyReq) (*dto.GenerateCopyResp, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("AI 服务未配置")
	}
	result, err := s.ai.GenerateListingCopy(ctx, req.ProductName, req.StyleHint)
	if err != nil {
		return nil, err
	}
	return &dto.GenerateCopyResp{
		Name:        result.Name,
		Description: result.Description,
		Tags:        result.Tags,
	}, nil
}

// ==================== 内部辅助 ====================

// afterMutation 缓存清理 + Webhook 通知
func (s *ProductService) afterMutation(ctx context.Context, store *model.Store, productID int64, event string) {
	s.cache.DeletePrefix(CacheKeyPrefix(store.ID))
	if s.webhook != nil && store.WebhookURL != "" {
		s.webhook.NotifyProductChange(ctx, store.WebhookURL, event, store.ID, productID)
	}
}

func (s *ProductService) notifyStore(ctx context.Context, storeID, productID int64, event string) {
	s.cache.DeletePrefix(CacheKeyPrefix(storeID))
	if s.webhook == nil {
		return
	}
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil || store.WebhookURL == "" {
		return
	}
	s.webhook.NotifyProductChange(ctx, store.WebhookURL, event, storeID, productID)
}

func buildVariants(storeID, productID int64, reqs []dto.VariantReq) ([]model.ProductVariant, error) {
	variants := make([]model.ProductVariant, 0, len(reqs))
	for _, vr := range reqs {
		variant := model.ProductVariant{
			ProductID:        productID,
			StoreID:          storeID,
			SKU:              vr.SKU,
			Model:            vr.Model,
			PrimaryAttribute: vr.PrimaryAttribute,
			Price:            vr.Price,
			Quantity:         vr.Quantity,
			IsEnabled:        true,
		}
		if len(vr.PrimaryValues) > 0 {
			raw, err := json.Marshal(vr.PrimaryValues)
			if err != nil {
				return nil, fmt.Errorf("变体主属性序列化失败: %w", err)
			}
			variant.PrimaryValues = raw
		}
		if len(vr.MultiValues) > 0 {
			raw, err := json.Marshal(vr.MultiValues)
			if err != nil {
				return nil, fmt.Errorf("变体多值属性序列化失败: %w", err)
			}
			variant.MultiValues = raw
		}
		variants = append(variants, variant)
	}
	return variants, nil
}

func applyProductUpdate(product *model.Product, req *dto.UpdateProductReq) {
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Model != nil {
		product.Model = *req.Model
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.ClearStock {
		product.StockQuantity = nil
	} else if req.StockQuantity != nil {
		product.StockQuantity = req.StockQuantity
	}
	if req.FastDelivery != nil {
		product.FastDelivery = *req.FastDelivery
	}
	if req.FreeShipping != nil {
		product.FreeShipping = *req.FreeShipping
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Gallery != nil {
		product.Gallery = req.Gallery
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Specifications != nil {
		product.Specifications = datatypes.JSONMap(req.Specifications)
	}
}

func contentTypeByExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
