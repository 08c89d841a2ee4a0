package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront_v1_202508/internal/controller"
	"storefront_v1_202508/internal/middleware"

	_ "storefront_v1_202508/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Catalog *controller.CatalogController
	Product *controller.ProductController
	Store   *controller.StoreController
}

// SetupRouter 注册所有路由
func SetupRouter(ctls *Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestAudit())

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 店面公开接口 (无需鉴权)
	api := r.Group("/api")
	{
		// 目录查询
		api.GET("/catalog", ctls.Catalog.GetCatalog)

		// 商品详情 & 评价
		products := api.Group("/products")
		{
			products.GET("/:id", ctls.Catalog.GetProduct)
			products.GET("/:id/reviews", ctls.Catalog.GetReviews)
			products.POST("/:id/reviews", ctls.Catalog.CreateReview)
		}
	}

	// 3. 运营端接口 (JWT 鉴权 + 审计上下文)
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.AuditContext())
	{
		// 商品管理
		adminProducts := admin.Group("/products")
		{
			adminProducts.POST("", ctls.Product.CreateProduct)
			adminProducts.PUT("/:id", ctls.Product.UpdateProduct)
			adminProducts.DELETE("/:id", ctls.Product.DeleteProduct)
			adminProducts.POST("/:id/images", ctls.Product.UploadImage)
			adminProducts.POST("/ai/copy", ctls.Product.GenerateCopy)
		}

		// 店铺管理
		stores := admin.Group("/stores")
		{
			stores.GET("", ctls.Store.GetStores)
			stores.GET("/:id", ctls.Store.GetStore)
			stores.POST("", ctls.Store.CreateStore)
		}
	}

	return r
}
