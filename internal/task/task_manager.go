package task

import (
	"log"

	"storefront_v1_202508/internal/service"
	"storefront_v1_202508/pkg/cache"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台任务
// 管理范围：缓存清扫、评分汇总
type TaskManager struct {
	janitorTask *CacheJanitorTask
	ratingTask  *RatingRollupTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	Cache         cache.Cache
	ReviewService *service.ReviewService
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	JanitorEnabled bool
	RatingEnabled  bool
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		JanitorEnabled: true,
		RatingEnabled:  true,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{}

	if cfg.JanitorEnabled && deps.Cache != nil {
		tm.janitorTask = NewCacheJanitorTask(deps.Cache)
	}
	if cfg.RatingEnabled && deps.ReviewService != nil {
		tm.ratingTask = NewRatingRollupTask(deps.ReviewService)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() {
	log.Println("[TaskManager] 正在启动后台任务...")

	if tm.janitorTask != nil {
		tm.janitorTask.Start()
	}
	if tm.ratingTask != nil {
		tm.ratingTask.Start()
	}

	log.Println("[TaskManager] 后台任务已全部启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	log.Println("[TaskManager] 正在停止后台任务...")

	if tm.janitorTask != nil {
		tm.janitorTask.Stop()
	}
	if tm.ratingTask != nil {
		tm.ratingTask.Stop()
	}

	log.Println("[TaskManager] 后台任务已全部停止")
}
