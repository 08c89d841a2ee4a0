package dto

// ==================== 请求 DTO ====================

// CatalogQuery 目录查询请求
// 所有参数均为可选，非法取值一律静默忽略，保证目录在畸形输入下仍可浏览
type CatalogQuery struct {
	Search     string `form:"search"`     // 自由文本搜索词
	Category   string `form:"category"`   // 精确匹配
	Brand      string `form:"brand"`      // 精确匹配
	MinPrice   string `form:"min_price"`  // 含边界，仅在解析为 >=0 的有限数时生效
	MaxPrice   string `form:"max_price"`  // 同上
	InStock    string `form:"in_stock"`   // 仅在显式传 true 时过滤有货
	Categories string `form:"categories"` // 逗号分隔的分类列表
	SortBy     string `form:"sort_by"`    // created|price|rating|name|reviews
	SortOrder  string `form:"sort_order"` // asc|desc，默认 desc
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
	Minimal    bool   `form:"minimal"` // 精简响应，省略重字段
}

// CreateReviewReq 提交商品评价请求
type CreateReviewReq struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Title   string `json:"title" binding:"max=255"`
	Content string `json:"content"`
	Author  string `json:"author" binding:"max=100"`
}

// ==================== 响应 DTO ====================

// CatalogVariantValue 变体主属性取值
type CatalogVariantValue struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Quantity  int    `json:"quantity"`
}

// CatalogVariant 变体摘要，精简模式下也保留，前端选规格需要
type CatalogVariant struct {
	ID               int64                 `json:"id"`
	SKU              string                `json:"sku"`
	Model            string                `json:"model"`
	PrimaryAttribute string                `json:"primary_attribute"`
	PrimaryValues    []CatalogVariantValue `json:"primary_values"`
	MultiValues      map[string][]string   `json:"multi_values,omitempty"`
	Price            float64               `json:"price"`
	Quantity         int                   `json:"quantity"`
}

// CatalogProduct 目录商品响应 (归一化后的稳定形状)
type CatalogProduct struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	SKU           string  `json:"sku"`
	Model         string  `json:"model,omitempty"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	InStock       bool    `json:"in_stock"`
	StockQuantity int     `json:"stock_quantity"`
	FastDelivery  bool    `json:"fast_delivery"`
	FreeShipping  bool    `json:"free_shipping"`
	Image         string  `json:"image"`

	// 精简模式下省略
	Gallery        []string               `json:"gallery,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`

	Variants  []CatalogVariant `json:"variants"`
	CreatedAt string           `json:"created_at"`
}

// SearchMetadata 搜索元信息，仅在提供搜索词时返回
type SearchMetadata struct {
	Term           string `json:"term"`
	MatchedCount   int    `json:"matched_count"`
	SearchPoolSize int    `json:"search_pool_size"`
}

// Pagination 分页元信息
type Pagination struct {
	Limit          int             `json:"limit"`
	Offset         int             `json:"offset"`
	Total          int64           `json:"total"`
	HasMore        bool            `json:"has_more"`
	CurrentPage    int             `json:"current_page"`
	TotalPages     int             `json:"total_pages"`
	Returned       int             `json:"returned"`
	SearchMetadata *SearchMetadata `json:"search_metadata,omitempty"`
}

// CatalogListResp 目录查询响应
type CatalogListResp struct {
	Products   []CatalogProduct `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// ReviewResp 评价响应
type ReviewResp struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// ReviewListResp 评价列表响应
type ReviewListResp struct {
	Code     int          `json:"code"`
	Message  string       `json:"message"`
	Data     []ReviewResp `json:"data"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}
