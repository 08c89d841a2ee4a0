package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront_v1_202508/internal/controller"
	"storefront_v1_202508/internal/model"
	"storefront_v1_202508/internal/repository"
	"storefront_v1_202508/internal/router"
	"storefront_v1_202508/internal/service"
	"storefront_v1_202508/internal/task"
	"storefront_v1_202508/pkg/cache"
	"storefront_v1_202508/pkg/database"
)

// @title Storefront API
// @version 1.0
// @description 多店铺店面目录查询与运营管理接口
// @host localhost:8080
// @BasePath /
func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动后台任务
	tm := initTasks(deps)
	defer tm.Stop()

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Cache       cache.Cache
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Product repository.ProductRepository
	Store   repository.StoreRepository
	Review  repository.ReviewRepository
}

// Services 服务集合
type Services struct {
	Catalog *service.CatalogService
	Product *service.ProductService
	Store   *service.StoreService
	Review  *service.ReviewService
	Storage *service.StorageService
	Webhook *service.WebhookService
	AI      *service.AIService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=storefront port=5432 sslmode=disable TimeZone=UTC")

	return database.InitDB(dsn,
		// Store
		&model.Store{},
		// Product
		&model.Product{}, &model.ProductVariant{}, &model.ProductImage{},
		// Review
		&model.Review{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Product: repository.NewProductRepository(db),
		Store:   repository.NewStoreRepository(db),
		Review:  repository.NewReviewRepository(db),
	}

	// -------- 缓存 --------
	memCache := cache.NewMemoryCache()

	// -------- 外围服务 --------
	storageSvc := initStorageService()
	webhookSvc := service.NewWebhookService()
	var aiSvc *service.AIService
	if apiKey := getEnv("GEMINI_API_KEY", ""); apiKey != "" {
		aiSvc = service.NewAIService(&service.AIConfig{
			ApiKey:    apiKey,
			TextModel: getEnv("GEMINI_TEXT_MODEL", ""),
		})
	}

	// -------- 业务服务 --------
	services := &Services{
		Storage: storageSvc,
		Webhook: webhookSvc,
		AI:      aiSvc,
	}
	services.Catalog = service.NewCatalogService(repos.Product, memCache)
	services.Catalog.SetTTL(
		getDurationEnv("CATALOG_CACHE_TTL", 0),
		getDurationEnv("CATALOG_EMPTY_CACHE_TTL", 0),
	)
	services.Product = service.NewProductService(repos.Product, repos.Store, memCache, storageSvc, webhookSvc, aiSvc)
	services.Store = service.NewStoreService(repos.Store)
	services.Review = service.NewReviewService(repos.Review, repos.Product, memCache)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(services.Catalog, services.Product, services.Review),
		Product: controller.NewProductController(services.Product),
		Store:   controller.NewStoreController(services.Store),
	}

	return &Dependencies{
		DB:          db,
		Cache:       memCache,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorageService 初始化存储服务
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "storefront"),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return nil
	}
	return storageSvc
}

// initTasks 初始化后台任务
func initTasks(deps *Dependencies) *task.TaskManager {
	tm := task.NewTaskManager(&task.TaskManagerDeps{
		Cache:         deps.Cache,
		ReviewService: deps.Services.Review,
	}, nil)
	tm.Start()
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
