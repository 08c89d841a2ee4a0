package task

import (
	"log"

	"github.com/robfig/cron/v3"

	"storefront_v1_202508/pkg/cache"
)

// CacheJanitorTask 缓存清扫任务
// MemoryCache 的过期是读时惰性判定的，长期没人读的键会一直占内存，
// 定期全量扫一遍把过期项清掉
type CacheJanitorTask struct {
	Cache cache.Cache
	Cron  *cron.Cron
}

func NewCacheJanitorTask(c cache.Cache) *CacheJanitorTask {
	return &CacheJanitorTask{
		Cache: c,
		Cron:  cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务 (每10分钟清扫一次)
func (t *CacheJanitorTask) Start() {
	_, err := t.Cron.AddFunc("0 */10 * * * *", func() {
		removed := t.Cache.Sweep()
		if removed > 0 {
			log.Printf("[Cron] 缓存清扫完成，移除过期项 %d 个", removed)
		}
	})
	if err != nil {
		log.Fatalf("无法启动缓存清扫任务: %v", err)
	}

	t.Cron.Start()
	log.Println("缓存清扫任务已启动 (每10分钟一次)")
}

// Stop 停止任务
func (t *CacheJanitorTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}
