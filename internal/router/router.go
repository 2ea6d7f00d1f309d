package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yhkang/stylehub-backend/config"
	"github.com/yhkang/stylehub-backend/internal/app/controller"
	"github.com/yhkang/stylehub-backend/internal/middleware"
)

type Router struct {
	catalogController *controller.CatalogController
	variantController *controller.VariantController
	exportController  *controller.ExportController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	variantController *controller.VariantController,
	exportController *controller.ExportController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController: catalogController,
		variantController: variantController,
		exportController:  exportController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "StyleHub API is running",
		})
	})

	manageProducts := r.authMiddleware.RequirePermission(middleware.PermissionManageProducts)

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.catalogController.ListProducts)
			products.GET("/:id", r.catalogController.GetProduct)
			products.GET("/:id/variants", r.variantController.ListVariants)

			products.POST("/:id/variants",
				r.authMiddleware.Authenticate(),
				manageProducts,
				r.variantController.CreateVariant,
			)
			products.POST("/:id/variants/bulk",
				r.authMiddleware.Authenticate(),
				manageProducts,
				r.variantController.BulkCreateVariants,
			)
		}

		variants := v1.Group("/variants")
		{
			variants.GET("/export",
				r.authMiddleware.Authenticate(),
				manageProducts,
				r.exportController.ExportVariants,
			)
			variants.GET("/:id", r.variantController.GetVariant)

			mutations := variants.Group("")
			mutations.Use(r.authMiddleware.Authenticate(), manageProducts)
			{
				mutations.PUT("/:id", r.variantController.UpdateVariant)
				mutations.DELETE("/:id", r.variantController.DeleteVariant)
				mutations.POST("/:id/stocks", r.variantController.CreateStocks)
				mutations.PUT("/:id/stocks", r.variantController.UpdateStocks)
				mutations.DELETE("/:id/stocks", r.variantController.DeleteStocks)
				mutations.PUT("/:id/channel-listings", r.variantController.UpdateChannelListings)
			}
		}

		v1.GET("/attributes", r.catalogController.ListAttributes)
		v1.GET("/channels", r.catalogController.ListChannels)
		v1.GET("/warehouses", r.catalogController.ListWarehouses)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
