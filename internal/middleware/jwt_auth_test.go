package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateAccessToken(42, "operator", "admin")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "operator" || claims.Role != "admin" {
		t.Errorf("Claims 内容错误: %+v", claims)
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	token, _ := GenerateAccessToken(1, "u", "admin")

	if _, err := ParseToken(token + "x"); err == nil {
		t.Error("被篡改的 Token 应解析失败")
	}
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Error("非法格式应解析失败")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	old := jwtConfig
	SetJWTConfig(&JWTConfig{
		SecretKey:      old.SecretKey,
		AccessTokenTTL: -time.Minute,
		Issuer:         old.Issuer,
	})
	defer SetJWTConfig(old)

	token, _ := GenerateAccessToken(1, "u", "admin")
	if _, err := ParseToken(token); err == nil {
		t.Error("过期 Token 应解析失败")
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuth())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": GetUserID(c)})
	})

	t.Run("缺少认证头", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("格式错误", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Basic abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("合法 Token", func(t *testing.T) {
		token, _ := GenerateAccessToken(7, "op", "admin")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuth(), RequireRole("admin"))
	r.GET("/admin", func(c *gin.Context) { c.Status(200) })

	t.Run("角色不符", func(t *testing.T) {
		token, _ := GenerateAccessToken(1, "u", "viewer")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("角色匹配", func(t *testing.T) {
		token, _ := GenerateAccessToken(1, "u", "admin")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuditContext(t *testing.T) {
	ctx := WithAuditInfo(context.Background(), 99, "op")
	if got := GetAuditUserID(ctx); got != 99 {
		t.Errorf("GetAuditUserID = %d, 期望 99", got)
	}
	if got := GetAuditUserID(context.Background()); got != 0 {
		t.Errorf("无审计信息时应返回 0，实际 %d", got)
	}
}
