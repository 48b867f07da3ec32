package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/handlers"
	"github.com/01moynul/storefront-golang/internal/middleware"
)

// SetupRouter builds the route table. Every /api/admin route and every
// catalog mutation sits behind RequireAdmin; the brand and shipping-zone
// admin groups drop the guard only when PUBLIC_CATALOG_WRITES is set.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(h.Log))

	// --- APPLY THE CORS GUARD ---
	router.Use(middleware.CORS(h.Config.CORSOrigin))

	router.Static("/uploads", h.Config.UploadDir)

	requireAdmin := middleware.RequireAdmin(h.Tokens)

	api := router.Group("/api")
	{
		// --- Public Routes ---
		api.GET("/health", h.Health)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)

		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/categories", h.ListCategories)
		api.GET("/categories/:id", h.GetCategory)

		api.GET("/brands", h.ListBrands)
		api.GET("/shop", h.Shop)

		api.POST("/shipping/quote", h.QuoteShipping)
		api.POST("/orders", h.PlaceOrder)

		// --- Catalog Mutations (Admin) ---
		catalog := api.Group("/")
		catalog.Use(requireAdmin)
		{
			catalog.POST("/products", h.CreateProduct)
			catalog.PUT("/products/:id", h.UpdateProduct)
			catalog.DELETE("/products/:id", h.DeleteProduct)
			catalog.PUT("/products/:id/images/:imageId/primary", h.SetPrimaryImage)

			catalog.POST("/categories", h.CreateCategory)
			catalog.PUT("/categories/:id", h.UpdateCategory)
			catalog.DELETE("/categories/:id", h.DeleteCategory)
		}

		// --- Admin Console ---
		admin := api.Group("/admin")
		admin.Use(requireAdmin)
		{
			admin.GET("/me", h.Me)
			admin.GET("/stats", h.GetStats)
			admin.POST("/upload", h.UploadFile)
			admin.POST("/products/bulk-delete", h.BulkDeleteProducts)

			admin.GET("/orders", h.ListOrders)
			admin.GET("/orders/:id", h.GetOrder)
			admin.PATCH("/orders/:id", h.UpdateOrder)
		}

		// --- Brands & Shipping Zones ---
		catalogAdmin := api.Group("/admin")
		if !h.Config.PublicCatalogWrites {
			catalogAdmin.Use(requireAdmin)
		}
		{
			catalogAdmin.GET("/brands", h.AdminListBrands)
			catalogAdmin.POST("/brands", h.CreateBrand)
			catalogAdmin.GET("/brands/:id", h.GetBrand)
			catalogAdmin.PUT("/brands/:id", h.UpdateBrand)
			catalogAdmin.DELETE("/brands/:id", h.DeleteBrand)

			catalogAdmin.GET("/shipping/zones", h.ListZones)
			catalogAdmin.POST("/shipping/zones", h.CreateZone)
			catalogAdmin.GET("/shipping/zones/:id", h.GetZone)
			catalogAdmin.PUT("/shipping/zones/:id", h.UpdateZone)
			catalogAdmin.DELETE("/shipping/zones/:id", h.DeleteZone)
		}
	}

	return router
}
