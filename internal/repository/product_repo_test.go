package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront_v1_202508/internal/model"
)

// ==================== 测试辅助 ====================

// 生产库用 Postgres (GIN 索引、text[] 列)，sqlite 的 AutoMigrate 建不出来，
// 测试里手工建表，列类型按 sqlite 的动态类型放宽
func setupProductRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	ddl := []string{
		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			created_by INTEGER DEFAULT 0, updated_by INTEGER DEFAULT 0,
			store_id INTEGER NOT NULL,
			name TEXT, description TEXT, category TEXT, brand TEXT, sku TEXT, model TEXT,
			price REAL DEFAULT 0, original_price REAL DEFAULT 0,
			rating REAL DEFAULT 0, review_count INTEGER DEFAULT 0,
			in_stock BOOLEAN DEFAULT 1, stock_quantity INTEGER,
			fast_delivery BOOLEAN DEFAULT 0, free_shipping BOOLEAN DEFAULT 0,
			image TEXT, gallery TEXT, tags TEXT, specifications TEXT
		)`,
		`CREATE TABLE product_variants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			created_by INTEGER DEFAULT 0, updated_by INTEGER DEFAULT 0,
			product_id INTEGER NOT NULL, store_id INTEGER,
			sku TEXT, model TEXT,
			primary_attribute TEXT, primary_values TEXT, multi_values TEXT,
			price REAL DEFAULT 0, quantity INTEGER DEFAULT 0, is_enabled BOOLEAN DEFAULT 1
		)`,
		`CREATE UNIQUE INDEX uniq_variant_product_sku ON product_variants(product_id, sku)`,
		`CREATE TABLE product_images (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
			created_by INTEGER DEFAULT 0, updated_by INTEGER DEFAULT 0,
			product_id INTEGER NOT NULL, store_id INTEGER,
			url TEXT, local_path TEXT,
			rank INTEGER DEFAULT 99, alt_text TEXT,
			width INTEGER DEFAULT 0, height INTEGER DEFAULT 0
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("建表失败: %v", err)
		}
	}

	return db
}

func seedProduct(t *testing.T, repo ProductRepository, p *model.Product) *model.Product {
	t.Helper()
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("写入测试商品失败: %v", err)
	}
	return p
}

func intPtr(v int) *int         { return &v }
func floatPtr(v float64) *float64 { return &v }

// ==================== CRUD ====================

func TestProductRepoCreateAndGet(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	p := seedProduct(t, repo, &model.Product{
		StoreID:  1,
		Name:     "Arduino Uno R3",
		Category: "开发板",
		Price:    99.9,
	})

	if err := repo.BatchUpsertVariants(ctx, []model.ProductVariant{
		{ProductID: p.ID, StoreID: 1, SKU: "UNO-R3-BLUE"},
	}); err != nil {
		t.Fatalf("写入变体失败: %v", err)
	}

	got, err := repo.GetByID(ctx, 1, p.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if got.Name != "Arduino Uno R3" || len(got.Variants) != 1 {
		t.Errorf("查询结果错误: name=%q variants=%d", got.Name, len(got.Variants))
	}
}

func TestProductRepoGetByIDStoreIsolation(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	p := seedProduct(t, repo, &model.Product{StoreID: 1, Name: "A"})

	if _, err := repo.GetByID(ctx, 2, p.ID); err == nil {
		t.Error("跨店铺查询应返回未找到")
	}
}

func TestProductRepoInStockHook(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	outOfStock := seedProduct(t, repo, &model.Product{StoreID: 1, Name: "售罄", StockQuantity: intPtr(0)})
	untracked := seedProduct(t, repo, &model.Product{StoreID: 1, Name: "不跟踪"})

	got1, _ := repo.GetByID(ctx, 1, outOfStock.ID)
	got2, _ := repo.GetByID(ctx, 1, untracked.ID)

	if got1.InStock {
		t.Error("库存为 0 的商品应标记无货")
	}
	if !got2.InStock {
		t.Error("不跟踪库存的商品应视为有货")
	}
}

// ==================== 目录查询 ====================

func TestProductRepoListCatalogFilters(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, &model.Product{StoreID: 1, Name: "A", Category: "tools", Brand: "x", Price: 10})
	seedProduct(t, repo, &model.Product{StoreID: 1, Name: "B", Category: "tools", Brand: "y", Price: 50})
	seedProduct(t, repo, &model.Product{StoreID: 1, Name: "C", Category: "toys", Brand: "x", Price: 30})
	seedProduct(t, repo, &model.Product{StoreID: 2, Name: "D", Category: "tools", Brand: "x", Price: 10})

	tests := []struct {
		name   string
		filter CatalogFilter
		want   int
	}{
		{"按店铺隔离", CatalogFilter{StoreID: 1}, 3},
		{"按分类", CatalogFilter{StoreID: 1, Category: "tools"}, 2},
		{"按品牌", CatalogFilter{StoreID: 1, Brand: "x"}, 2},
		{"价格区间", CatalogFilter{StoreID: 1, MinPrice: floatPtr(20), MaxPrice: floatPtr(40)}, 1},
		{"多分类", CatalogFilter{StoreID: 1, Categories: []string{"tools", "toys"}}, 3},
		{"组合条件", CatalogFilter{StoreID: 1, Category: "tools", Brand: "y"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListCatalog(ctx, tt.filter)
			if err != nil {
				t.Fatalf("查询失败: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("命中 %d 条，期望 %d", len(got), tt.want)
			}
		})
	}
}

func TestProductRepoListCatalogSortAndPage(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, &model.Product{StoreID: 1, Name: "低", Price: 10})
	seedProduct(t, repo, &model.Product{StoreID: 1, Name: "高", Price: 90})
	seedProduct(t, repo, &model.Product{StoreID: 1, Name: "中", Price: 50})

	got, err := repo.ListCatalog(ctx, CatalogFilter{
		StoreID: 1, SortColumn: "price", SortDesc: true, Limit: 2,
	})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(got) != 2 || got[0].Price != 90 || got[1].Price != 50 {
		t.Errorf("降序分页结果错误: %+v", got)
	}
}

func TestProductRepoCountIgnoresPaging(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedProduct(t, repo, &model.Product{StoreID: 1, Name: "P"})
	}

	total, err := repo.CountCatalog(ctx, CatalogFilter{StoreID: 1, Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("计数失败: %v", err)
	}
	if total != 5 {
		t.Errorf("计数应忽略分页字段: total=%d", total)
	}
}

func TestProductRepoSubstringSearch(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, &model.Product{StoreID: 1, Name: "Arduino Uno R3"})
	seedProduct(t, repo, &model.Product{StoreID: 1, Name: "继电器", Description: "兼容 ARDUINO 生态"})
	seedProduct(t, repo, &model.Product{StoreID: 1, Name: "树莓派"})

	got, err := repo.SubstringSearch(ctx, CatalogFilter{StoreID: 1}, "ArDuInO", 100)
	if err != nil {
		t.Fatalf("子串检索失败: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("大小写不敏感检索应命中 2 条，实际 %d", len(got))
	}
}

func TestProductRepoFullTextSearchUnsupportedDialect(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))

	// sqlite 没有 to_tsvector，全文检索应返回错误而非崩溃，
	// 上层据此降级为子串查询
	_, err := repo.FullTextSearch(context.Background(), CatalogFilter{StoreID: 1}, "x", 10)
	if err == nil {
		t.Error("不支持的方言应返回错误")
	}
}

// ==================== 变体 ====================

func TestProductRepoBatchUpsertVariants(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	p := seedProduct(t, repo, &model.Product{StoreID: 1, Name: "P"})

	if err := repo.BatchUpsertVariants(ctx, []model.ProductVariant{
		{ProductID: p.ID, SKU: "SKU-A", Price: 10, Quantity: 5},
	}); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}

	// 同一 (product_id, sku) 再写入应走更新而非报错
	if err := repo.BatchUpsertVariants(ctx, []model.ProductVariant{
		{ProductID: p.ID, SKU: "SKU-A", Price: 20, Quantity: 3},
	}); err != nil {
		t.Fatalf("重复写入应更新: %v", err)
	}

	got, _ := repo.GetByID(ctx, 1, p.ID)
	if len(got.Variants) != 1 {
		t.Fatalf("变体应只有 1 条，实际 %d", len(got.Variants))
	}
	if got.Variants[0].Price != 20 || got.Variants[0].Quantity != 3 {
		t.Errorf("冲突更新未生效: %+v", got.Variants[0])
	}
}

func TestProductRepoVariantReplace(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	p := seedProduct(t, repo, &model.Product{StoreID: 1, Name: "P"})
	repo.BatchUpsertVariants(ctx, []model.ProductVariant{
		{ProductID: p.ID, SKU: "OLD-1"},
		{ProductID: p.ID, SKU: "OLD-2"},
	})

	// 整体替换：删旧插新，旧 SKU 可被复用
	if err := repo.DeleteVariantsByProductID(ctx, p.ID); err != nil {
		t.Fatalf("删除变体失败: %v", err)
	}
	if err := repo.BatchUpsertVariants(ctx, []model.ProductVariant{
		{ProductID: p.ID, SKU: "OLD-1"},
		{ProductID: p.ID, SKU: "NEW-1"},
	}); err != nil {
		t.Fatalf("替换写入失败: %v", err)
	}

	got, _ := repo.GetByID(ctx, 1, p.ID)
	if len(got.Variants) != 2 {
		t.Errorf("替换后应有 2 条变体，实际 %d", len(got.Variants))
	}
}

// ==================== 删除 ====================

func TestProductRepoDeleteCascades(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	p := seedProduct(t, repo, &model.Product{StoreID: 1, Name: "P"})
	repo.BatchUpsertVariants(ctx, []model.ProductVariant{{ProductID: p.ID, SKU: "S"}})
	repo.CreateImage(ctx, &model.ProductImage{ProductID: p.ID, StoreID: 1, Url: "a.jpg"})

	if err := repo.Delete(ctx, 1, p.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	if _, err := repo.GetByID(ctx, 1, p.ID); err == nil {
		t.Error("删除后的商品不应可查")
	}
	images, _ := repo.GetImagesByProductID(ctx, p.ID)
	if len(images) != 0 {
		t.Errorf("商品图片应连带删除，残留 %d 条", len(images))
	}
}

func TestProductRepoUpdateFields(t *testing.T) {
	repo := NewProductRepository(setupProductRepoTestDB(t))
	ctx := context.Background()

	p := seedProduct(t, repo, &model.Product{StoreID: 1, Name: "P", Rating: 0})

	err := repo.UpdateFields(ctx, p.ID, map[string]interface{}{
		"rating":       4.5,
		"review_count": 12,
	})
	if err != nil {
		t.Fatalf("字段更新失败: %v", err)
	}

	got, _ := repo.GetByID(ctx, 1, p.ID)
	if got.Rating != 4.5 || got.ReviewCount != 12 {
		t.Errorf("更新未生效: rating=%v reviews=%d", got.Rating, got.ReviewCount)
	}
}
