package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront_v1_202508/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, storeID, id int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, storeID, id int64) error

	// 目录查询 (Catalog 引擎的存储层契约)
	ListCatalog(ctx context.Context, filter CatalogFilter) ([]model.Product, error)
	CountCatalog(ctx context.Context, filter CatalogFilter) (int64, error)
	FullTextSearch(ctx context.Context, filter CatalogFilter, term string, limit int) ([]model.Product, error)
	SubstringSearch(ctx context.Context, filter CatalogFilter, term string, limit int) ([]model.Product, error)

	// 变体操作
	BatchUpsertVariants(ctx context.Context, variants []model.ProductVariant) error
	DeleteVariantsByProductID(ctx context.Context, productID int64) error

	// 图片操作
	CreateImage(ctx context.Context, image *model.ProductImage) error
	GetImagesByProductID(ctx context.Context, productID int64) ([]model.ProductImage, error)
	DeleteImage(ctx context.Context, id int64) error

	// 事务
	WithTx(tx *gorm.DB) ProductRepository
	Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error
}

// ==================== 过滤条件 ====================

// CatalogFilter 目录查询过滤条件
// 取数与计数共用同一组 Where 条件；排序/分页字段只对取数生效，
// CountCatalog 一律忽略它们
type CatalogFilter struct {
	StoreID    int64
	Category   string
	Brand      string
	MinPrice   *float64
	MaxPrice   *float64
	InStock    bool
	Categories []string

	SortColumn string // 由 service 层校验过的列名
	SortDesc   bool
	Limit      int
	Offset     int
}

func (f CatalogFilter) apply(query *gorm.DB) *gorm.DB {
	query = query.Where("store_id = ?", f.StoreID)
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Brand != "" {
		query = query.Where("brand = ?", f.Brand)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStock {
		query = query.Where("in_stock = ?", true)
	}
	if len(f.Categories) > 0 {
		query = query.Where("category IN ?", f.Categories)
	}
	return query
}

// 商品核心字段的拼接表达式，子串检索和全文检索共用同一组字段
const searchableColumns = "coalesce(name,'') || ' ' || coalesce(description,'') || ' ' || coalesce(category,'') || ' ' || coalesce(brand,'') || ' ' || coalesce(sku,'')"

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, storeID, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images").
		Where("store_id = ?", storeID).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete 删除商品及其归属的变体和图片 (Product 拥有 Variants，一起删除)
func (r *productRepo) Delete(ctx context.Context, storeID, id int64) error {
	return r.Transaction(ctx, func(txRepo ProductRepository) error {
		tx := txRepo.(*productRepo).db
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Where("store_id = ?", storeID).Delete(&model.Product{}, id).Error
	})
}

func (r *productRepo) ListCatalog(ctx context.Context, filter CatalogFilter) ([]model.Product, error) {
	var products []model.Product

	query := filter.apply(r.db.WithContext(ctx).Model(&model.Product{})).
		Preload("Variants")

	if filter.SortColumn != "" {
		direction := "ASC"
		if filter.SortDesc {
			direction = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.SortColumn, direction))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.Find(&products).Error
	return products, err
}

func (r *productRepo) CountCatalog(ctx context.Context, filter CatalogFilter) (int64, error) {
	var total int64
	err := filter.apply(r.db.WithContext(ctx).Model(&model.Product{})).
		Count(&total).Error
	return total, err
}

// FullTextSearch 分词全文检索 (Postgres websearch 语法)
func (r *productRepo) FullTextSearch(ctx context.Context, filter CatalogFilter, term string, limit int) ([]model.Product, error) {
	var products []model.Product
	err := filter.apply(r.db.WithContext(ctx).Model(&model.Product{})).
		Preload("Variants").
		Where("to_tsvector('simple', "+searchableColumns+") @@ websearch_to_tsquery('simple', ?)", term).
		Limit(limit).
		Find(&products).Error
	return products, err
}

// SubstringSearch 大小写不敏感的子串检索，同时作为全文检索的降级路径
func (r *productRepo) SubstringSearch(ctx context.Context, filter CatalogFilter, term string, limit int) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + strings.ToLower(term) + "%"
	err := filter.apply(r.db.WithContext(ctx).Model(&model.Product{})).
		Preload("Variants").
		Where("LOWER("+searchableColumns+") LIKE ?", pattern).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) BatchUpsertVariants(ctx context.Context, variants []model.ProductVariant) error {
	if len(variants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"model", "primary_attribute", "primary_values", "multi_values",
			"price", "quantity", "is_enabled", "updated_at",
		}),
	}).Create(&variants).Error
}

// DeleteVariantsByProductID 物理删除商品变体。变体整体替换会按 (product_id, sku)
// 重新插入，软删除的残留行会占住唯一索引，这里必须硬删
func (r *productRepo) DeleteVariantsByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("product_id = ?", productID).
		Delete(&model.ProductVariant{}).Error
}

func (r *productRepo) CreateImage(ctx context.Context, image *model.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *productRepo) GetImagesByProductID(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	var images []model.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("rank ASC").
		Find(&images).Error
	return images, err
}

func (r *productRepo) DeleteImage(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ProductImage{}, id).Error
}

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{db: tx}
}

func (r *productRepo) Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
