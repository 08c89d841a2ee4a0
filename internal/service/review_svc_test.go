package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront_v1_202508/internal/api/dto"
	"storefront_v1_202508/internal/model"
	"storefront_v1_202508/internal/repository"
	"storefront_v1_202508/pkg/cache"
)

// ==================== 测试替身 ====================

type fakeReviewRepo struct {
	reviews    []model.Review
	aggregates []repository.ReviewAggregate
	aggErr     error
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *model.Review) error {
	review.ID = int64(len(f.reviews) + 1)
	review.CreatedAt = time.Now()
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) ListByProduct(ctx context.Context, productID int64, page, pageSize int) ([]model.Review, int64, error) {
	var out []model.Review
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) AggregateByProduct(ctx context.Context) ([]repository.ReviewAggregate, error) {
	return f.aggregates, f.aggErr
}

// fakeProductRepo 嵌入接口，只实现评价服务触达的方法
type fakeProductRepo struct {
	repository.ProductRepository

	existing      map[int64]bool
	updatedFields map[int64]map[string]interface{}
}

func (f *fakeProductRepo) GetByID(ctx context.Context, storeID, id int64) (*model.Product, error) {
	if !f.existing[id] {
		return nil, errors.New("record not found")
	}
	return &model.Product{BaseModel: model.BaseModel{ID: id}, StoreID: storeID}, nil
}

func (f *fakeProductRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if f.updatedFields == nil {
		f.updatedFields = make(map[int64]map[string]interface{})
	}
	f.updatedFields[id] = fields
	return nil
}

// ==================== 用例 ====================

func TestCreateReviewRejectsMissingProduct(t *testing.T) {
	svc := NewReviewService(
		&fakeReviewRepo{},
		&fakeProductRepo{existing: map[int64]bool{}},
		cache.NewMemoryCache(),
	)

	_, err := svc.CreateReview(context.Background(), 1, 99, &dto.CreateReviewReq{Rating: 5})
	if err == nil {
		t.Error("商品不存在时应拒绝评价")
	}
}

func TestCreateReview(t *testing.T) {
	reviewRepo := &fakeReviewRepo{}
	svc := NewReviewService(
		reviewRepo,
		&fakeProductRepo{existing: map[int64]bool{10: true}},
		cache.NewMemoryCache(),
	)

	review, err := svc.CreateReview(context.Background(), 1, 10, &dto.CreateReviewReq{
		Rating: 4, Title: "不错", Author: "买家",
	})
	if err != nil {
		t.Fatalf("创建评价失败: %v", err)
	}
	if review.ProductID != 10 || review.Rating != 4 || review.StoreID != 1 {
		t.Errorf("评价字段错误: %+v", review)
	}
	if len(reviewRepo.reviews) != 1 {
		t.Error("评价应落库")
	}
}

func TestRollupRatings(t *testing.T) {
	productRepo := &fakeProductRepo{existing: map[int64]bool{}}
	memCache := cache.NewMemoryCache()
	memCache.Set("catalog:1|x", "cached", time.Minute)

	svc := NewReviewService(&fakeReviewRepo{
		aggregates: []repository.ReviewAggregate{
			{ProductID: 10, AvgRating: 4.46, ReviewCount: 13},
			{ProductID: 20, AvgRating: 2.0, ReviewCount: 1},
		},
	}, productRepo, memCache)

	updated, err := svc.RollupRatings(context.Background())
	if err != nil {
		t.Fatalf("汇总失败: %v", err)
	}
	if updated != 2 {
		t.Errorf("应更新 2 个商品，实际 %d", updated)
	}

	fields := productRepo.updatedFields[10]
	if fields == nil {
		t.Fatal("商品 10 未回写")
	}
	// 评分保留一位小数
	if fields["rating"] != 4.5 || fields["review_count"] != int64(13) {
		t.Errorf("回写字段错误: %+v", fields)
	}

	if _, ok := memCache.Get("catalog:1|x"); ok {
		t.Error("汇总后应清理目录缓存")
	}
}

func TestRollupRatingsAggregateError(t *testing.T) {
	svc := NewReviewService(
		&fakeReviewRepo{aggErr: errors.New("db down")},
		&fakeProductRepo{},
		cache.NewMemoryCache(),
	)

	if _, err := svc.RollupRatings(context.Background()); err == nil {
		t.Error("聚合失败应向上返回错误")
	}
}

func TestRoundRating(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{4.46, 4.5},
		{4.44, 4.4},
		{5.0, 5.0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundRating(tt.in); got != tt.want {
			t.Errorf("roundRating(%v) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}
