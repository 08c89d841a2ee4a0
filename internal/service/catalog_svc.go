package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"storefront_v1_202508/internal/api/dto"
	"storefront_v1_202508/internal/model"
	"storefront_v1_202508/internal/repository"
	"storefront_v1_202508/pkg/cache"
)

// ==================== 存储层契约 ====================

// CatalogStore 目录引擎依赖的存储层窄接口，由 repository.ProductRepository 满足
type CatalogStore interface {
	ListCatalog(ctx context.Context, filter repository.CatalogFilter) ([]model.Product, error)
	CountCatalog(ctx context.Context, filter repository.CatalogFilter) (int64, error)
	FullTextSearch(ctx context.Context, filter repository.CatalogFilter, term string, limit int) ([]model.Product, error)
	SubstringSearch(ctx context.Context, filter repository.CatalogFilter, term string, limit int) ([]model.Product, error)
}

// ==================== 常量 ====================

const (
	// 搜索候选池上限：排序必须先看到完整池子，不能按调用方页大小取数
	searchPoolLimit = 1000

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// 排序字段白名单，非法或缺失回退 created_at
var sortColumns = map[string]string{
	"created": "created_at",
	"price":   "price",
	"rating":  "rating",
	"name":    "name",
	"reviews": "review_count",
}

// ==================== 服务 ====================

// CatalogService 目录查询与相关度排序引擎
type CatalogService struct {
	store CatalogStore
	cache cache.Cache

	browseTTL   time.Duration // 正常结果缓存时长
	emptyTTL    time.Duration // 空结果缓存时长
	callTimeout time.Duration // 单次存储层调用超时
}

// NewCatalogService 创建目录服务
func NewCatalogService(store CatalogStore, c cache.Cache) *CatalogService {
	return &CatalogService{
		store:       store,
		cache:       c,
		browseTTL:   5 * time.Minute,
		emptyTTL:    30 * time.Second,
		callTimeout: 3 * time.Second,
	}
}

// SetTTL 调整缓存时长 (启动配置使用)
func (s *CatalogService) SetTTL(browse, empty time.Duration) {
	if browse > 0 {
		s.browseTTL = browse
	}
	if empty > 0 {
		s.emptyTTL = empty
	}
}

// Query 执行一次目录查询：构建过滤条件 → 查缓存 → 取数/检索排序 → 组装分页 → 回写缓存
func (s *CatalogService) Query(ctx context.Context, storeID int64, q *dto.CatalogQuery) (*dto.CatalogListResp, error) {
	limit, offset := normalizePage(q.Limit, q.Offset)
	term := sanitizeSearchTerm(q.Search)
	filter := buildCatalogFilter(storeID, q)

	key := catalogCacheKey(storeID, q, term, filter, limit, offset)
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.(*dto.CatalogListResp); ok {
			return resp, nil
		}
	}

	var resp *dto.CatalogListResp
	var err error
	if term == "" {
		resp, err = s.queryPlain(ctx, filter, limit, offset, q.Minimal)
	} else {
		resp, err = s.querySearch(ctx, filter, term, limit, offset, q.Minimal)
	}
	if err != nil {
		return nil, err
	}

	ttl := s.browseTTL
	if len(resp.Products) == 0 {
		ttl = s.emptyTTL
	}
	s.cache.Set(key, resp, ttl)

	return resp, nil
}

// ==================== 过滤条件构建 ====================

// buildCatalogFilter 把请求参数翻译为存储层过滤条件
// 纯转换，无副作用；所有非法取值静默忽略
func buildCatalogFilter(storeID int64, q *dto.CatalogQuery) repository.CatalogFilter {
	filter := repository.CatalogFilter{StoreID: storeID}

	filter.Category = strings.TrimSpace(q.Category)
	filter.Brand = strings.TrimSpace(q.Brand)

	if v, ok := parsePriceBound(q.MinPrice); ok {
		filter.MinPrice = &v
	}
	if v, ok := parsePriceBound(q.MaxPrice); ok {
		filter.MaxPrice = &v
	}

	// 仅在显式请求有货时过滤
	if inStock, err := strconv.ParseBool(q.InStock); err == nil && inStock {
		filter.InStock = true
	}

	if q.Categories != "" {
		for _, c := range strings.Split(q.Categories, ",") {
			if c = strings.TrimSpace(c); c != "" {
				filter.Categories = append(filter.Categories, c)
			}
		}
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	filter.SortColumn = column
	filter.SortDesc = !strings.EqualFold(q.SortOrder, "asc")

	return filter
}

// parsePriceBound 价格边界仅在解析为 >=0 的有限数时生效
func parsePriceBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// catalogCacheKey 规范化序列化：序列化相同的两次请求命中同一条缓存
func catalogCacheKey(storeID int64, q *dto.CatalogQuery, term string, f repository.CatalogFilter, limit, offset int) string {
	minPrice, maxPrice := "", ""
	if f.MinPrice != nil {
		minPrice = strconv.FormatFloat(*f.MinPrice, 'f', -1, 64)
	}
	if f.MaxPrice != nil {
		maxPrice = strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64)
	}
	return fmt.Sprintf("catalog:%d|t=%s|c=%s|b=%s|pmin=%s|pmax=%s|stock=%t|cats=%s|sort=%s|desc=%t|l=%d|o=%d|min=%t",
		storeID, term, f.Category, f.Brand, minPrice, maxPrice, f.InStock,
		strings.Join(f.Categories, ","), f.SortColumn, f.SortDesc, limit, offset, q.Minimal)
}

// CacheKeyPrefix 指定店铺的目录缓存键前缀，商品变更后按此前缀清理
func CacheKeyPrefix(storeID int64) string {
	return fmt.Sprintf("catalog:%d|", storeID)
}

// ==================== 无搜索词：分页下推存储层 ====================

func (s *CatalogService) queryPlain(ctx context.Context, filter repository.CatalogFilter, limit, offset int, minimal bool) (*dto.CatalogListResp, error) {
	// 计数查询与取数查询相互独立，并发执行；计数复用同一组过滤条件但永不带分页/排序
	type countResult struct {
		total int64
		err   error
	}
	countCh := make(chan countResult, 1)
	go func() {
		cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		total, err := s.store.CountCatalog(cctx, filter)
		countCh <- countResult{total, err}
	}()

	fetch := filter
	fetch.Limit = limit
	fetch.Offset = offset

	fctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	products, err := s.store.ListCatalog(fctx, fetch)

	count := <-countCh

	// 基础取数/计数失败对请求是致命的：没有基础商品集就无从排序和分页
	if err != nil {
		return nil, fmt.Errorf("商品目录获取失败: %w", err)
	}
	if count.err != nil {
		return nil, fmt.Errorf("商品目录计数失败: %w", count.err)
	}

	resp := &dto.CatalogListResp{
		Products:   normalizeProducts(products, minimal),
		Pagination: buildPagination(limit, offset, count.total, len(products), len(products) > 0),
	}
	return resp, nil
}

// ==================== 有搜索词：内存排序后切片 ====================

func (s *CatalogService) querySearch(ctx context.Context, filter repository.CatalogFilter, term string, limit, offset int, minimal bool) (*dto.CatalogListResp, error) {
	// 候选池取完整的过滤结果 (设上限)，忽略调用方的分页与排序
	poolFilter := filter
	poolFilter.SortColumn = ""
	poolFilter.Limit = searchPoolLimit
	poolFilter.Offset = 0

	fctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	pool, err := s.store.ListCatalog(fctx, poolFilter)
	if err != nil {
		return nil, fmt.Errorf("商品目录获取失败: %w", err)
	}

	candidates := s.resolveSearch(ctx, filter, term, pool)
	ranked := rankCandidates(candidates, term)

	// 排序后的池子即为权威结果集：total 取池大小，分页是内存切片
	total := len(ranked)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	page := ranked[start:end]

	resp := &dto.CatalogListResp{
		Products:   normalizeProducts(page, minimal),
		Pagination: buildPagination(limit, offset, int64(total), len(page), len(pool) > 0),
	}
	resp.Pagination.SearchMetadata = &dto.SearchMetadata{
		Term:           term,
		MatchedCount:   total,
		SearchPoolSize: len(pool),
	}
	return resp, nil
}

// ==================== 分页与归一化 ====================

// buildPagination 组装分页元信息
// total 为 0 时：池子本身为空是合法的零结果页 (totalPages=0)；
// 池子非空但搜索词无命中时 totalPages 取 1
func buildPagination(limit, offset int, total int64, returned int, poolNonEmpty bool) dto.Pagination {
	p := dto.Pagination{
		Limit:       limit,
		Offset:      offset,
		Total:       total,
		Returned:    returned,
		HasMore:     int64(offset+returned) < total,
		CurrentPage: offset/limit + 1,
	}
	if total == 0 {
		if poolNonEmpty {
			p.TotalPages = 1
		}
		return p
	}
	p.TotalPages = int(math.Ceil(float64(total) / float64(limit)))
	return p
}

// ToCatalogProduct 商品详情接口复用的归一化转换
func ToCatalogProduct(p *model.Product, minimal bool) dto.CatalogProduct {
	return normalizeProduct(p, minimal)
}

func normalizeProducts(products []model.Product, minimal bool) []dto.CatalogProduct {
	out := make([]dto.CatalogProduct, 0, len(products))
	for i := range products {
		out = append(out, normalizeProduct(&products[i], minimal))
	}
	return out
}

// normalizeProduct 把存储层行映射为稳定的响应形状
// 精简模式省略描述、图集和规格表，但变体摘要始终保留
func normalizeProduct(p *model.Product, minimal bool) dto.CatalogProduct {
	out := dto.CatalogProduct{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Brand:         p.Brand,
		SKU:           p.SKU,
		Model:         p.Model,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		InStock:       p.StockQuantity == nil || *p.StockQuantity > 0,
		FastDelivery:  p.FastDelivery,
		FreeShipping:  p.FreeShipping,
		Image:         p.Image,
		Variants:      make([]dto.CatalogVariant, 0, len(p.Variants)),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}

	if p.StockQuantity != nil {
		out.StockQuantity = *p.StockQuantity
	}

	if !minimal {
		out.Description = p.Description
		out.Gallery = []string(p.Gallery)
		out.Specifications = map[string]interface{}(p.Specifications)
	}

	for i := range p.Variants {
		out.Variants = append(out.Variants, normalizeVariant(&p.Variants[i]))
	}

	return out
}

func normalizeVariant(v *model.ProductVariant) dto.CatalogVariant {
	out := dto.CatalogVariant{
		ID:               v.ID,
		SKU:              v.SKU,
		Model:            v.Model,
		PrimaryAttribute: v.PrimaryAttribute,
		PrimaryValues:    make([]dto.CatalogVariantValue, 0),
		MultiValues:      v.DecodedMultiValues(),
		Price:            v.Price,
		Quantity:         v.Quantity,
	}
	for _, pv := range v.DecodedPrimaryValues() {
		out.PrimaryValues = append(out.PrimaryValues, dto.CatalogVariantValue{
			Attribute: pv.Attribute,
			Value:     pv.Value,
			Quantity:  pv.Quantity,
		})
	}
	return out
}
