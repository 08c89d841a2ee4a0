package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront_v1_202508/internal/model"
)

// ReviewAggregate 单个商品的评分汇总结果
type ReviewAggregate struct {
	ProductID   int64
	AvgRating   float64
	ReviewCount int64
}

// ReviewRepository 评价仓储接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByProduct(ctx context.Context, productID int64, page, pageSize int) ([]model.Review, int64, error)

	// AggregateByProduct 按商品聚合评分，评分汇总任务使用
	AggregateByProduct(ctx context.Context) ([]ReviewAggregate, error)
}

type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepo) ListByProduct(ctx context.Context, productID int64, page, pageSize int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Review{}).Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&reviews).Error

	return reviews, total, err
}

func (r *reviewRepo) AggregateByProduct(ctx context.Context) ([]ReviewAggregate, error) {
	var results []ReviewAggregate
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("product_id, AVG(rating) as avg_rating, COUNT(*) as review_count").
		Group("product_id").
		Scan(&results).Error
	return results, err
}
