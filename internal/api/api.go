package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopmetrics/pricecast/internal/api/handlers"
	"github.com/shopmetrics/pricecast/internal/api/middleware"
	"github.com/shopmetrics/pricecast/internal/service"
)

type Services struct {
	ProductService  *service.ProductService
	ForecastService *service.ForecastService
	PricingService  *service.PricingService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ProductService != nil {
			productHandler := handlers.NewProductHandler(services.ProductService)
			productGroup := apiGroup.Group("/products")
			{
				productGroup.GET("", productHandler.List)
				productGroup.POST("", productHandler.Create)
				productGroup.GET("/categories/list", productHandler.Categories)
				productGroup.POST("/bulk_price_update", productHandler.BulkUpdatePrices)
				productGroup.GET("/:id", productHandler.Get)
				productGroup.PUT("/:id", productHandler.Update)
				productGroup.DELETE("/:id", productHandler.Delete)
			}
		}

		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService)
			forecastGroup := apiGroup.Group("/forecast")
			{
				forecastGroup.GET("/products/:id", forecastHandler.Forecast)
				forecastGroup.GET("/products/:id/projection", forecastHandler.Projection)
			}
		}

		if services.PricingService != nil {
			pricingHandler := handlers.NewPricingHandler(services.PricingService)
			pricingGroup := apiGroup.Group("/pricing")
			{
				pricingGroup.GET("/products/:id", pricingHandler.Detail)
				pricingGroup.POST("/summary", pricingHandler.Summary)
				pricingGroup.POST("/summary/export", pricingHandler.ExportSummary)
				pricingGroup.GET("/summary/exports", pricingHandler.ListExports)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
