package service

import (
	"context"
	"log"
	"math"
	"regexp"
	"sort"
	"strings"

	"storefront_v1_202508/internal/model"
	"storefront_v1_202508/internal/repository"
)

// ==================== 搜索词清洗 ====================

// 搜索词上限，防止超长输入拖垮内存扫描
const maxSearchTermLength = 100

// sanitizeSearchTerm 清洗搜索词：去首尾空白、剔除类标记字符、截断长度
func sanitizeSearchTerm(raw string) string {
	term := strings.TrimSpace(raw)
	if term == "" {
		return ""
	}

	term = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'', '`', '\\':
			return -1
		}
		return r
	}, term)

	if runes := []rune(term); len(runes) > maxSearchTermLength {
		term = string(runes[:maxSearchTermLength])
	}

	return strings.TrimSpace(term)
}

// ==================== 分层检索 ====================

// resolveSearch 分层检索：A 层全文、B 层变体扫描、C 层子串扫描，
// 按 A→B→C 合并去重。任何一层失败都不影响整次请求；
// 整体异常时兜底执行一次子串查询，仍失败则返回空集，绝不向上抛
func (s *CatalogService) resolveSearch(ctx context.Context, filter repository.CatalogFilter, term string, pool []model.Product) (matches []model.Product) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Catalog] 搜索解析异常，兜底执行子串查询: %v", r)
			matches = s.lastResortSearch(ctx, filter, term)
		}
	}()

	tierA := s.fullTextTier(ctx, filter, term)

	matched := make(map[int64]bool, len(tierA))
	for _, p := range tierA {
		matched[p.ID] = true
	}

	tierB := variantScanTier(pool, matched, term)
	tierC := substringScanTier(pool, term)

	matches = dedupeUnion(tierA, tierB, tierC)
	return matches
}

// fullTextTier A 层：分词全文检索，存储层报错时降级为子串查询
func (s *CatalogService) fullTextTier(ctx context.Context, filter repository.CatalogFilter, term string) []model.Product {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	products, err := s.store.FullTextSearch(cctx, filter, term, searchPoolLimit)
	if err == nil {
		return products
	}
	log.Printf("[Catalog] 全文检索失败，降级为子串查询: %v", err)

	cctx2, cancel2 := context.WithTimeout(ctx, s.callTimeout)
	defer cancel2()

	products, err = s.store.SubstringSearch(cctx2, filter, term, searchPoolLimit)
	if err != nil {
		log.Printf("[Catalog] 子串降级查询同样失败，A 层候选为空: %v", err)
		return nil
	}
	return products
}

// variantScanTier B 层：扫描候选池中未被 A 层命中的商品的全部变体文本。
// 完整搜索词或其任一空白分隔的单词出现在变体文本拼接中即命中
func variantScanTier(pool []model.Product, matched map[int64]bool, term string) []model.Product {
	lower := strings.ToLower(term)
	words := strings.Fields(lower)

	var out []model.Product
	for i := range pool {
		p := &pool[i]
		if matched[p.ID] {
			continue
		}
		for j := range p.Variants {
			if variantMatches(&p.Variants[j], lower, words) {
				out = append(out, *p)
				break
			}
		}
	}
	return out
}

func variantMatches(v *model.ProductVariant, lowerTerm string, words []string) bool {
	haystack := variantSearchText(v)
	if strings.Contains(haystack, lowerTerm) {
		return true
	}
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}

// variantSearchText 变体可检索文本：SKU、型号、主属性、
// 序列化的主属性取值 (含逐条 attribute/value) 和多值表 (含逐项取值)
func variantSearchText(v *model.ProductVariant) string {
	var b strings.Builder

	b.WriteString(v.SKU)
	b.WriteByte(' ')
	b.WriteString(v.Model)
	b.WriteByte(' ')
	b.WriteString(v.PrimaryAttribute)
	b.WriteByte(' ')

	if len(v.PrimaryValues) > 0 {
		b.Write(v.PrimaryValues)
		b.WriteByte(' ')
	}
	for _, pv := range v.DecodedPrimaryValues() {
		b.WriteString(pv.Attribute)
		b.WriteByte(' ')
		b.WriteString(pv.Value)
		b.WriteByte(' ')
	}

	if len(v.MultiValues) > 0 {
		b.Write(v.MultiValues)
		b.WriteByte(' ')
	}
	for attr, values := range v.DecodedMultiValues() {
		b.WriteString(attr)
		b.WriteByte(' ')
		for _, val := range values {
			b.WriteString(val)
			b.WriteByte(' ')
		}
	}

	return strings.ToLower(b.String())
}

// substringScanTier C 层：对候选池做完整词的朴素子串扫描，
// 兜住分词查询会当作噪音丢掉的超短词
func substringScanTier(pool []model.Product, term string) []model.Product {
	lower := strings.ToLower(term)

	var out []model.Product
	for i := range pool {
		p := &pool[i]
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category + " " + p.Brand)
		if strings.Contains(haystack, lower) {
			out = append(out, *p)
		}
	}
	return out
}

// dedupeUnion 按层序合并并按商品 ID 去重，保留首次出现的顺序
func dedupeUnion(tiers ...[]model.Product) []model.Product {
	seen := make(map[int64]bool)
	var out []model.Product
	for _, tier := range tiers {
		for _, p := range tier {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out
}

// lastResortSearch 整体异常后的最终兜底，失败则返回空集
func (s *CatalogService) lastResortSearch(ctx context.Context, filter repository.CatalogFilter, term string) []model.Product {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	products, err := s.store.SubstringSearch(cctx, filter, term, searchPoolLimit)
	if err != nil {
		log.Printf("[Catalog] 兜底子串查询失败，返回空结果: %v", err)
		return nil
	}
	return products
}

// ==================== 相关度打分 ====================

// 打分权重
const (
	scoreNamePrefix       = 120 // 名称以首词开头
	scoreNameWordBoundary = 80  // 名称按词边界包含首词
	scoreNameContains     = 60  // 名称包含完整词
	scoreSKUPrefix        = 40  // SKU/型号以首词开头
	scoreBrandPrefix      = 30  // 品牌/分类以首词开头
	scoreBrandContains    = 20  // 品牌/分类包含完整词
	scoreDescContains     = 10  // 描述包含完整词
	scoreVariantPrefix    = 25  // 任一变体 SKU/型号以首词开头
	scoreVariantContains  = 10  // 任一变体文本包含完整词
	maxRatingBonus        = 10
	maxPopularityBonus    = 10
)

type searchCandidate struct {
	product model.Product
	score   float64
}

// rankCandidates 按相关度降序排序候选池，稳定排序保证同分时沿用分层合并顺序
func rankCandidates(pool []model.Product, term string) []model.Product {
	lower := strings.ToLower(strings.TrimSpace(term))
	if lower == "" || len(pool) == 0 {
		return pool
	}

	head := lower
	if fields := strings.Fields(lower); len(fields) > 0 {
		head = fields[0]
	}

	candidates := make([]searchCandidate, len(pool))
	for i := range pool {
		candidates[i] = searchCandidate{
			product: pool[i],
			score:   scoreProduct(&pool[i], lower, head),
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	ranked := make([]model.Product, len(candidates))
	for i := range candidates {
		ranked[i] = candidates[i].product
	}
	return ranked
}

// scoreProduct 加权启发式打分，纯内存计算，无错误路径
func scoreProduct(p *model.Product, term, head string) float64 {
	name := strings.ToLower(p.Name)
	brand := strings.ToLower(p.Brand)
	category := strings.ToLower(p.Category)
	sku := strings.ToLower(p.SKU)
	mdl := strings.ToLower(p.Model)
	desc := strings.ToLower(p.Description)

	var score float64

	if strings.HasPrefix(name, head) {
		score += scoreNamePrefix
	}
	if containsWord(name, head) {
		score += scoreNameWordBoundary
	}
	if strings.Contains(name, term) {
		score += scoreNameContains
	}
	if strings.HasPrefix(sku, head) || strings.HasPrefix(mdl, head) {
		score += scoreSKUPrefix
	}
	if strings.HasPrefix(brand, head) || strings.HasPrefix(category, head) {
		score += scoreBrandPrefix
	}
	if strings.Contains(brand, term) || strings.Contains(category, term) {
		score += scoreBrandContains
	}
	if strings.Contains(desc, term) {
		score += scoreDescContains
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		if strings.HasPrefix(strings.ToLower(v.SKU), head) ||
			strings.HasPrefix(strings.ToLower(v.Model), head) {
			score += scoreVariantPrefix
			break
		}
	}
	// 变体文本命中只计一次，首个命中即停
	for i := range p.Variants {
		if strings.Contains(variantSearchText(&p.Variants[i]), term) {
			score += scoreVariantContains
			break
		}
	}

	score += math.Min(maxRatingBonus, p.Rating*1.5)
	score += math.Min(maxPopularityBonus, math.Log10(float64(p.ReviewCount)+1)*3)

	return score
}

// containsWord 词边界匹配，正则不可用时回退普通子串包含
func containsWord(text, word string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return strings.Contains(text, word)
	}
	return re.MatchString(text)
}
