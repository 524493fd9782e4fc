package routes

import (
	"grocerystore/controllers"
	"grocerystore/middleware"

	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-related routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)

	// Protected routes: reads require authentication
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// Catalog
		protected.GET("/categories", controllers.ListCategories)
		protected.GET("/categories/:id", controllers.GetCategory)
		protected.GET("/products", controllers.ListProducts)
		protected.GET("/products/:id", controllers.GetProduct)
		protected.GET("/products/:id/reviews", controllers.GetProductReviews)
		protected.GET("/promotions", controllers.ListPromotions)
		protected.GET("/promotions/:id", controllers.GetPromotion)

		// Reviews
		protected.POST("/reviews", controllers.CreateReview)
		protected.DELETE("/reviews/:id", controllers.DeleteReview)

		// Profile and wallet
		protected.GET("/profile", controllers.GetProfile)
		protected.POST("/profile/funds", controllers.AddFunds)

		// Ordering
		protected.POST("/orders/quote", controllers.QuoteOrder)
		protected.POST("/orders", controllers.PlaceOrder)
		protected.POST("/orders/cancel", controllers.CancelOrder)
	}
}
