package routes

import (
	"grocerystore/controllers"
	"grocerystore/middleware"

	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes. Catalog writes are
// admin-only; reads live in the user routes.
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// Category management
		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		// Product management
		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)

		// Promotion management
		admin.POST("/promotions", controllers.CreatePromotion)
		admin.PUT("/promotions/:id", controllers.UpdatePromotion)
		admin.DELETE("/promotions/:id", controllers.DeletePromotion)
		admin.POST("/promotions/link", controllers.LinkPromotion)
		admin.POST("/promotions/unlink", controllers.UnlinkPromotion)

		// Clients and reports
		admin.GET("/clients", controllers.ListClients)
		admin.GET("/reports/holdings/excel", controllers.DownloadHoldingsReportExcel)
		admin.GET("/reports/holdings/pdf", controllers.DownloadHoldingsReportPDF)
	}
}
