package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront_v1_202508/internal/model"
	"storefront_v1_202508/internal/repository"
	"storefront_v1_202508/internal/service"
	"storefront_v1_202508/pkg/cache"
)

// ==================== 测试替身 ====================

type stubCatalogStore struct {
	products []model.Product
	failAll  bool
}

func (s *stubCatalogStore) ListCatalog(ctx context.Context, filter repository.CatalogFilter) ([]model.Product, error) {
	if s.failAll {
		return nil, errors.New("db down")
	}
	return s.products, nil
}

func (s *stubCatalogStore) CountCatalog(ctx context.Context, filter repository.CatalogFilter) (int64, error) {
	if s.failAll {
		return 0, errors.New("db down")
	}
	return int64(len(s.products)), nil
}

func (s *stubCatalogStore) FullTextSearch(ctx context.Context, filter repository.CatalogFilter, term string, limit int) ([]model.Product, error) {
	return nil, errors.New("unsupported")
}

func (s *stubCatalogStore) SubstringSearch(ctx context.Context, filter repository.CatalogFilter, term string, limit int) ([]model.Product, error) {
	return s.products, nil
}

func setupCatalogRouter(store *stubCatalogStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	catalogSvc := service.NewCatalogService(store, cache.NewMemoryCache())
	ctl := NewCatalogController(catalogSvc, nil, nil)

	r := gin.New()
	r.GET("/api/catalog", ctl.GetCatalog)
	return r
}

// ==================== 目录接口 ====================

func TestGetCatalogRequiresStoreID(t *testing.T) {
	r := setupCatalogRouter(&stubCatalogStore{})

	for _, path := range []string{"/api/catalog", "/api/catalog?store_id=abc", "/api/catalog?store_id=-1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGetCatalogReturnsProducts(t *testing.T) {
	r := setupCatalogRouter(&stubCatalogStore{
		products: []model.Product{
			{BaseModel: model.BaseModel{ID: 1}, StoreID: 1, Name: "Arduino Uno"},
			{BaseModel: model.BaseModel{ID: 2}, StoreID: 1, Name: "树莓派"},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/catalog?store_id=1&limit=20", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"products"`
		Pagination struct {
			Total    int64 `json:"total"`
			Returned int   `json:"returned"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	assert.Len(t, resp.Products, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Returned)
}

func TestGetCatalogHidesStorageFailure(t *testing.T) {
	r := setupCatalogRouter(&stubCatalogStore{failAll: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/catalog?store_id=1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// 对外不暴露底层错误细节
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestGetCatalogSearchMetadata(t *testing.T) {
	r := setupCatalogRouter(&stubCatalogStore{
		products: []model.Product{
			{BaseModel: model.BaseModel{ID: 1}, StoreID: 1, Name: "Arduino Uno"},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/catalog?store_id=1&search=arduino", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"search_metadata"`)
	assert.Contains(t, w.Body.String(), `"term":"arduino"`)
}
