package dto

// ==================== 请求 DTO ====================

// VariantReq 变体写入请求
type VariantReq struct {
	SKU              string                `json:"sku" binding:"required,max=100"`
	Model            string                `json:"model" binding:"max=100"`
	PrimaryAttribute string                `json:"primary_attribute" binding:"max=100"`
	PrimaryValues    []CatalogVariantValue `json:"primary_values"`
	MultiValues      map[string][]string   `json:"multi_values"`
	Price            float64               `json:"price" binding:"gte=0"`
	Quantity         int                   `json:"quantity" binding:"gte=0"`
}

// CreateProductReq 创建商品请求
type CreateProductReq struct {
	StoreID int64 `json:"store_id" binding:"required"`

	// 基础信息
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"max=100"`
	Brand       string `json:"brand" binding:"max=100"`
	SKU         string `json:"sku" binding:"max=100"`
	Model       string `json:"model" binding:"max=100"`

	// 价格与库存
	Price         float64 `json:"price" binding:"required,gte=0"`
	OriginalPrice float64 `json:"original_price" binding:"gte=0"`
	StockQuantity *int    `json:"stock_quantity"` // null 表示不跟踪库存

	// 配送
	FastDelivery bool `json:"fast_delivery"`
	FreeShipping bool `json:"free_shipping"`

	// 媒体与规格
	Image          string                 `json:"image"`
	Gallery        []string               `json:"gallery"`
	Tags           []string               `json:"tags" binding:"max=20"`
	Specifications map[string]interface{} `json:"specifications"`

	Variants []VariantReq `json:"variants"`
}

// UpdateProductReq 更新商品请求
type UpdateProductReq struct {
	ID      int64 `json:"id" binding:"required"`
	StoreID int64 `json:"store_id" binding:"required"`

	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	SKU         *string `json:"sku,omitempty"`
	Model       *string `json:"model,omitempty"`

	Price         *float64 `json:"price,omitempty"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	ClearStock    bool     `json:"clear_stock,omitempty"` // 置 true 时改回不跟踪库存

	FastDelivery *bool `json:"fast_delivery,omitempty"`
	FreeShipping *bool `json:"free_shipping,omitempty"`

	Image          *string                `json:"image,omitempty"`
	Gallery        []string               `json:"gallery,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`

	// 传非 nil 时整体替换变体
	Variants []VariantReq `json:"variants,omitempty"`
}

// GenerateCopyReq AI 生成商品文案请求
type GenerateCopyReq struct {
	ProductName string `json:"product_name" binding:"required,max=255"`
	StyleHint   string `json:"style_hint"`
}

// CreateStoreReq 创建店铺请求
type CreateStoreReq struct {
	Name       string `json:"name" binding:"required,max=100"`
	Slug       string `json:"slug" binding:"required,max=100"`
	Domain     string `json:"domain" binding:"max=255"`
	Currency   string `json:"currency" binding:"max=5"`
	WebhookURL string `json:"webhook_url" binding:"max=512"`
}

// ==================== 响应 DTO ====================

// ProductImageResp 图片响应
type ProductImageResp struct {
	ID      int64  `json:"id"`
	Url     string `json:"url"`
	Rank    int    `json:"rank"`
	AltText string `json:"alt_text"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// StoreResp 店铺响应
type StoreResp struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Domain    string `json:"domain"`
	Currency  string `json:"currency"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// GenerateCopyResp AI 文案响应
type GenerateCopyResp struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}
