package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront_v1_202508/internal/api/dto"
	"storefront_v1_202508/internal/model"
	"storefront_v1_202508/internal/repository"
	"storefront_v1_202508/pkg/cache"
)

// ReviewService 商品评价服务
// 评价提交即时落库；商品上的 rating/review_count 由汇总任务定期刷新，
// 避免每条评价都触发商品行更新和缓存抖动
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	cache       cache.Cache
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, c cache.Cache) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		cache:       c,
	}
}

// CreateReview 提交商品评价
func (s *ReviewService) CreateReview(ctx context.Context, storeID, productID int64, req *dto.CreateReviewReq) (*model.Review, error) {
	if _, err := s.productRepo.GetByID(ctx, storeID, productID); err != nil {
		return nil, fmt.Errorf("商品不存在: %w", err)
	}

	review := &model.Review{
		StoreID:   storeID,
		ProductID: productID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("评价提交失败: %w", err)
	}
	return review, nil
}

// ListReviews 分页获取商品评价
func (s *ReviewService) ListReviews(ctx context.Context, productID int64, page, pageSize int) ([]model.Review, int64, error) {
	return s.reviewRepo.ListByProduct(ctx, productID, page, pageSize)
}

// RollupRatings 把评价聚合写回商品行，并清理目录缓存
// 评分汇总任务调用；返回更新的商品数
func (s *ReviewService) RollupRatings(ctx context.Context) (int, error) {
	aggregates, err := s.reviewRepo.AggregateByProduct(ctx)
	if err != nil {
		return 0, fmt.Errorf("评分聚合失败: %w", err)
	}

	updated := 0
	for _, agg := range aggregates {
		err := s.productRepo.UpdateFields(ctx, agg.ProductID, map[string]interface{}{
			"rating":       roundRating(agg.AvgRating),
			"review_count": agg.ReviewCount,
			"updated_at":   time.Now(),
		})
		if err != nil {
			log.Printf("[Review] 商品评分回写失败 product=%d: %v", agg.ProductID, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		s.cache.DeletePrefix("catalog:")
	}
	return updated, nil
}

// roundRating 评分保留一位小数
func roundRating(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
