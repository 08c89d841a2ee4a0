package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront_v1_202508/internal/model"
)

func setupStoreRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Store{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func TestStoreRepoCreateAndLookup(t *testing.T) {
	repo := NewStoreRepository(setupStoreRepoTestDB(t))
	ctx := context.Background()

	store := &model.Store{Name: "主站", Slug: "main", Currency: "USD", IsActive: true}
	if err := repo.Create(ctx, store); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	byID, err := repo.GetByID(ctx, store.ID)
	if err != nil || byID.Slug != "main" {
		t.Errorf("按 ID 查询失败: %v", err)
	}

	bySlug, err := repo.GetBySlug(ctx, "main")
	if err != nil || bySlug.ID != store.ID {
		t.Errorf("按 Slug 查询失败: %v", err)
	}

	if _, err := repo.GetBySlug(ctx, "missing"); err == nil {
		t.Error("不存在的 Slug 应返回错误")
	}
}

func TestStoreRepoListOnlyActive(t *testing.T) {
	repo := NewStoreRepository(setupStoreRepoTestDB(t))
	ctx := context.Background()

	repo.Create(ctx, &model.Store{Name: "A", Slug: "a", IsActive: true})
	repo.Create(ctx, &model.Store{Name: "B", Slug: "b", IsActive: false})

	all, err := repo.List(ctx, false)
	if err != nil || len(all) != 2 {
		t.Errorf("全量查询错误: err=%v got=%d", err, len(all))
	}

	active, err := repo.List(ctx, true)
	if err != nil || len(active) != 1 || active[0].Slug != "a" {
		t.Errorf("仅启用查询错误: err=%v got=%d", err, len(active))
	}
}

func TestStoreRepoSlugUnique(t *testing.T) {
	repo := NewStoreRepository(setupStoreRepoTestDB(t))
	ctx := context.Background()

	repo.Create(ctx, &model.Store{Name: "A", Slug: "dup"})
	if err := repo.Create(ctx, &model.Store{Name: "B", Slug: "dup"}); err == nil {
		t.Error("重复 Slug 应被唯一索引拒绝")
	}
}
