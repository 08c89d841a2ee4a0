package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront_v1_202508/internal/model"
)

// StoreRepository 店铺仓储接口
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	GetBySlug(ctx context.Context, slug string) (*model.Store, error)
	Update(ctx context.Context, store *model.Store) error
	List(ctx context.Context, onlyActive bool) ([]model.Store, error)
}

type storeRepo struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓储
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepo{db: db}
}

func (r *storeRepo) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepo) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetBySlug(ctx context.Context, slug string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) Update(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *storeRepo) List(ctx context.Context, onlyActive bool) ([]model.Store, error) {
	var stores []model.Store
	query := r.db.WithContext(ctx).Model(&model.Store{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("created_at DESC").Find(&stores).Error
	return stores, err
}
