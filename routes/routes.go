package routes

import (
	"time"

	"carstor-backend/handlers"
	"carstor-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	carHandler := &handlers.CarHandler{DB: db}
	accessoryHandler := &handlers.AccessoryHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	checkoutHandler := &handlers.CheckoutHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db}
	notificationHandler := &handlers.NotificationHandler{DB: db}
	wishlistHandler := &handlers.WishlistHandler{DB: db}
	contactHandler := &handlers.ContactHandler{DB: db}

	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	contactLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)

		// Public car routes
		api.GET("/cars", carHandler.GetCars)
		api.GET("/cars/:id", carHandler.GetCar)
		api.GET("/cars/:id/reviews", carHandler.GetReviews)
		api.POST("/cars/:id/inquiries", carHandler.CreateInquiry)

		// Public accessory routes
		api.GET("/accessories", accessoryHandler.GetAccessories)
		api.GET("/accessories/:id", accessoryHandler.GetAccessory)

		// Public category routes
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)

		// Contact form
		api.POST("/contact", contactLimiter.Middleware(), contactHandler.SubmitMessage)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// User profile
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)

		// Cart routes
		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart/add/:id", cartHandler.AddToCart)
		protected.PUT("/cart", cartHandler.UpdateCart)
		protected.DELETE("/cart/items/:id", cartHandler.RemoveFromCart)
		protected.DELETE("/cart", cartHandler.ClearCart)

		// Checkout
		protected.POST("/checkout/process", checkoutHandler.ProcessCheckout)
		protected.POST("/cars/:id/checkout", checkoutHandler.CarCheckout)
		protected.GET("/orders/success", checkoutHandler.OrderSuccess)

		// Order routes
		protected.GET("/orders", orderHandler.GetOrders)
		protected.GET("/orders/:id", orderHandler.GetOrder)
		protected.POST("/orders/:id/approve", orderHandler.ApproveOrder)
		protected.POST("/orders/:id/decline", orderHandler.DeclineOrder)
		protected.POST("/car-orders/:id/approve", orderHandler.ApproveCarOrder)
		protected.POST("/car-orders/:id/decline", orderHandler.DeclineCarOrder)

		// Seller dashboard
		protected.GET("/dashboard", orderHandler.GetDashboard)
		protected.GET("/cars/:id/inquiries", carHandler.GetInquiries)

		// Seller listing management
		protected.POST("/cars", carHandler.CreateCar)
		protected.PUT("/cars/:id", carHandler.UpdateCar)
		protected.DELETE("/cars/:id", carHandler.DeleteCar)
		protected.POST("/accessories", accessoryHandler.CreateAccessory)
		protected.PUT("/accessories/:id", accessoryHandler.UpdateAccessory)
		protected.DELETE("/accessories/:id", accessoryHandler.DeleteAccessory)

		// Reviews
		protected.POST("/cars/:id/reviews", carHandler.CreateReview)

		// Wishlist
		protected.GET("/wishlist", wishlistHandler.GetWishlist)
		protected.POST("/wishlist/cars/:id", wishlistHandler.ToggleCar)
		protected.POST("/wishlist/accessories/:id", wishlistHandler.ToggleAccessory)
		protected.POST("/wishlist/add-all-to-cart", wishlistHandler.AddAllToCart)

		// Notifications
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.GetUnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.DELETE("/notifications/:id", notificationHandler.DeleteNotification)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		// Order management
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)

		// Contact messages
		admin.GET("/contact-messages", contactHandler.GetMessages)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
