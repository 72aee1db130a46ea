package router

import (
	"fmt"
	"strings"

	"github.com/balju-mate/internal/cache"
	"github.com/balju-mate/internal/config"
	"github.com/balju-mate/internal/constants"
	"github.com/balju-mate/internal/http/handlers"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 라우팅 초기화
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := handlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	// 스캔/검색은 본사 브리지까지 두드리므로 포스기 단위로 빈도를 제한한다
	lookupRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:lookup", redisPrefix),
		WindowSeconds: cfg.Security.LookupRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LookupRateLimit.MaxRequests,
	}

	// 미들웨어
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 라우트 그룹
	apiV1 := r.Group("/api/v1")
	{
		// 상품 마스터 / 카탈로그
		products := apiV1.Group("/products")
		{
			products.GET("", RateLimitMiddleware(redisClient, lookupRule, KeyByRegister), h.ListProducts)
			products.POST("", h.CreateProduct)
			products.GET("/:barcode", h.GetProduct)
			products.PUT("/:barcode", h.UpdateProduct)
			products.DELETE("/:barcode", h.DeleteProduct)
		}
		apiV1.POST("/scan", RateLimitMiddleware(redisClient, lookupRule, KeyByRegister), h.Scan)
		apiV1.POST("/catalog/sync", h.StartCatalogSync)
		apiV1.GET("/catalog/sync", h.CatalogSyncStatus)

		// 발주 작업본 (포스기 단위)
		draft := apiV1.Group("/draft")
		{
			draft.GET("", h.GetDraft)
			draft.DELETE("", h.DiscardDraft)
			draft.POST("/items", h.AddDraftItem)
			draft.PATCH("/items/:barcode", h.UpdateDraftItem)
			draft.DELETE("/items/:barcode", h.RemoveDraftItem)
			draft.POST("/reorder", h.ReorderDraft)
			draft.PUT("/customer", h.SetDraftCustomer)
			draft.POST("/reopen", h.ReopenDraft)
			draft.POST("/finalize", h.FinalizeDraft)
		}

		// 확정 발주
		orders := apiV1.Group("/orders")
		{
			orders.GET("", h.ListOrders)
			orders.GET("/:id", h.GetOrder)
			orders.DELETE("/:id", h.DeleteOrder)
			orders.POST("/:id/complete", h.CompleteOrder)
			orders.DELETE("/:id/complete", h.UncompleteOrder)
			orders.GET("/:id/dispatch", h.OrderDispatchPreview)
		}

		// 행사
		events := apiV1.Group("/events")
		{
			events.POST("", h.CreateEvent)
			events.GET("", h.ListEvents)
			events.GET("/:junno", h.GetEvent)
			events.DELETE("/:junno", h.DeleteEvent)
			events.POST("/:junno/apply", h.ApplyEvent)
			events.POST("/:junno/stop", h.StopEvent)
			events.POST("/:junno/end", h.EndEvent)
			events.PUT("/:junno/period", h.ChangeEventPeriod)
			events.POST("/:junno/items", h.UpsertEventItem)
			events.DELETE("/:junno/items/:barcode", h.RemoveEventItem)
		}

		// 거래처
		suppliers := apiV1.Group("/suppliers")
		{
			suppliers.GET("", h.ListSuppliers)
			suppliers.POST("", h.CreateSupplier)
			suppliers.PUT("/:id", h.UpdateSupplier)
			suppliers.DELETE("/:id", h.DeleteSupplier)
		}

		// 현황 / 매장 설정
		apiV1.GET("/dashboard", h.Dashboard)
		apiV1.GET("/settings/store", h.GetStoreSettings)
		apiV1.PUT("/settings/store", h.UpdateStoreSettings)
	}

	// 헬스 체크
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
