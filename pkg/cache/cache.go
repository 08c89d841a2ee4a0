package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache 响应缓存抽象，注入给目录引擎，测试时可替换为确定性实现
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
	DeletePrefix(prefix string) int
	Sweep() int
}

// cacheItem 内部结构，包含值和过期时间 (UnixNano)
type cacheItem struct {
	value      interface{}
	expiration int64
}

// MemoryCache 进程内 TTL 缓存
// 使用 sync.Map 保证并发安全；同一 key 的读写是独立的原子操作，
// 不做跨请求加锁，刚过期的 key 被并发重算属于接受的行为
type MemoryCache struct {
	entries sync.Map
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Get 获取缓存并验证是否过期 (懒删除)
func (c *MemoryCache) Get(key string) (interface{}, bool) {
	val, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}

	item := val.(cacheItem)
	if time.Now().UnixNano() > item.expiration {
		c.entries.Delete(key)
		return nil, false
	}

	return item.value, true
}

// Set 设置缓存，每条记录独立 TTL
func (c *MemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.entries.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	})
}

// Delete 删除缓存
func (c *MemoryCache) Delete(key string) {
	c.entries.Delete(key)
}

// DeletePrefix 删除指定前缀的所有记录，商品变更后按店铺清理目录缓存
func (c *MemoryCache) DeletePrefix(prefix string) int {
	removed := 0
	c.entries.Range(func(key, _ interface{}) bool {
		if k, ok := key.(string); ok && strings.HasPrefix(k, prefix) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Sweep 清理所有已过期记录，返回清理数量 (定时任务调用)
func (c *MemoryCache) Sweep() int {
	now := time.Now().UnixNano()
	removed := 0
	c.entries.Range(func(key, val interface{}) bool {
		if item, ok := val.(cacheItem); ok && now > item.expiration {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
