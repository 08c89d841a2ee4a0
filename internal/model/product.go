package model

import (
	"encoding/json"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	// --- 内部管理字段 ---
	BaseModel
	StoreID int64  `gorm:"index:idx_store_category;not null"` // 店铺 ID (多租户隔离核心)
	Store   *Store `gorm:"foreignKey:StoreID"`

	// --- 商品基本信息 ---
	Name        string `gorm:"size:255;index:idx_name_search,type:GIN,expression:name gin_trgm_ops"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:100;index:idx_store_category"`
	Brand       string `gorm:"size:100;index"`
	SKU         string `gorm:"size:100;index"`
	Model       string `gorm:"size:100"`

	// --- 价格 ---
	Price         float64 `gorm:"not null;default:0;index"`
	OriginalPrice float64 `gorm:"default:0"`

	// --- 评价数据 (由 Review 汇总任务回填，打分器的人气输入) ---
	Rating      float64 `gorm:"default:0"` // 0-5
	ReviewCount int     `gorm:"default:0;index"`

	// --- 库存 ---
	// StockQuantity 为 nil 表示不跟踪库存
	InStock       bool `gorm:"default:true;index"`
	StockQuantity *int

	// --- 配送标记 ---
	FastDelivery bool `gorm:"default:false"`
	FreeShipping bool `gorm:"default:false"`

	// --- 媒体 ---
	Image   string         `gorm:"size:512"`
	Gallery pq.StringArray `gorm:"type:text[]"`

	// --- 标签与规格 ---
	Tags           pq.StringArray    `gorm:"type:text[]"`
	Specifications datatypes.JSONMap `gorm:"type:jsonb"`

	// --- 关联关系 (Product 拥有 Variants，级联删除) ---
	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeSave 维护库存不变量：数量为 nil (不跟踪) 或 > 0 时视为有货
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.InStock = p.StockQuantity == nil || *p.StockQuantity > 0
	return nil
}

// VariantPrimaryValue 变体主属性取值 (attribute/value/quantity 三元组)
type VariantPrimaryValue struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Quantity  int    `json:"quantity"`
}

type ProductVariant struct {
	BaseModel
	// --- 关联 ---
	ProductID int64    `gorm:"uniqueIndex:uniq_variant_product_sku;not null"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	StoreID   int64    `gorm:"index"`

	// --- 标识 (product_id + sku 唯一，变体整体替换按此做 Upsert) ---
	SKU   string `gorm:"size:100;uniqueIndex:uniq_variant_product_sku"`
	Model string `gorm:"size:100"`

	// --- 规格组合 ---
	PrimaryAttribute string         `gorm:"size:100"`
	PrimaryValues    datatypes.JSON `gorm:"type:jsonb"` // [{"attribute":"Color","value":"Red","quantity":3}]
	MultiValues      datatypes.JSON `gorm:"type:jsonb"` // {"Size":["S","M","L"]}

	// --- 销售数据 ---
	Price     float64 `gorm:"default:0"`
	Quantity  int     `gorm:"default:0"`
	IsEnabled bool    `gorm:"default:true"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// DecodedPrimaryValues 解析主属性取值，解析失败返回空切片
func (v *ProductVariant) DecodedPrimaryValues() []VariantPrimaryValue {
	if len(v.PrimaryValues) == 0 {
		return nil
	}
	var out []VariantPrimaryValue
	if err := json.Unmarshal(v.PrimaryValues, &out); err != nil {
		return nil
	}
	return out
}

// DecodedMultiValues 解析多值属性表，解析失败返回空表
func (v *ProductVariant) DecodedMultiValues() map[string][]string {
	if len(v.MultiValues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	if err := json.Unmarshal(v.MultiValues, &out); err != nil {
		return nil
	}
	return out
}

type ProductImage struct {
	BaseModel

	// --- 关联关系 ---
	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	StoreID   int64    `gorm:"index"`

	// --- 资源地址 ---
	Url       string `gorm:"size:512"`
	LocalPath string `gorm:"size:255"`

	// --- 展示信息 ---
	Rank    int    `gorm:"default:99"`
	AltText string `gorm:"size:255"`
	Width   int    `gorm:"default:0"`
	Height  int    `gorm:"default:0"`
}

func (*ProductImage) TableName() string {
	return "product_images"
}
