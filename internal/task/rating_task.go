package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"storefront_v1_202508/internal/service"
)

// RatingRollupTask 评分汇总任务
// 把评价表的聚合结果回写到商品行的 rating/review_count，
// 排序引擎只读商品行上的冗余字段，不在查询路径上做聚合
type RatingRollupTask struct {
	ReviewService *service.ReviewService
	Cron          *cron.Cron
}

func NewRatingRollupTask(reviewService *service.ReviewService) *RatingRollupTask {
	return &RatingRollupTask{
		ReviewService: reviewService,
		Cron:          cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *RatingRollupTask) Start() {
	// 首次执行：服务重启后立即对齐一次评分
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次评分汇总...")
		t.rollupJob(ctx)
	}()

	// 每天凌晨3点跑全量汇总
	_, err := t.Cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.rollupJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动评分汇总任务: %v", err)
	}

	t.Cron.Start()
	log.Println("评分汇总任务已启动 (每天凌晨3点)")
}

// Stop 停止任务
func (t *RatingRollupTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}

// RollupNow 手动触发一次汇总
func (t *RatingRollupTask) RollupNow(ctx context.Context) (int, error) {
	return t.ReviewService.RollupRatings(ctx)
}

func (t *RatingRollupTask) rollupJob(ctx context.Context) {
	updated, err := t.ReviewService.RollupRatings(ctx)
	if err != nil {
		log.Printf("[Cron] 评分汇总失败: %v", err)
		return
	}
	log.Printf("[Cron] 评分汇总完成，更新商品 %d 个", updated)
}
