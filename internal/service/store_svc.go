package service

import (
	"context"
	"fmt"

	"storefront_v1_202508/internal/api/dto"
	"storefront_v1_202508/internal/model"
	"storefront_v1_202508/internal/repository"
)

// StoreService 店铺管理服务
type StoreService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// CreateStore 创建店铺，slug 全局唯一
func (s *StoreService) CreateStore(ctx context.Context, req *dto.CreateStoreReq) (*model.Store, error) {
	if existing, err := s.storeRepo.GetBySlug(ctx, req.Slug); err == nil && existing != nil {
		return nil, fmt.Errorf("店铺标识已存在: %s", req.Slug)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	store := &model.Store{
		Name:       req.Name,
		Slug:       req.Slug,
		Domain:     req.Domain,
		Currency:   currency,
		IsActive:   true,
		WebhookURL: req.WebhookURL,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("店铺创建失败: %w", err)
	}
	return store, nil
}

// GetStore 获取店铺详情
func (s *StoreService) GetStore(ctx context.Context, id int64) (*model.Store, error) {
	return s.storeRepo.GetByID(ctx, id)
}

// ListStores 获取店铺列表
func (s *StoreService) ListStores(ctx context.Context, onlyActive bool) ([]model.Store, error) {
	return s.storeRepo.List(ctx, onlyActive)
}
