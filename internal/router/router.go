// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/config"
	"github.com/shopora/backend/internal/handlers"
	"github.com/shopora/backend/internal/middleware"
	"github.com/shopora/backend/internal/services"
	"github.com/shopora/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)
	paymentService := services.NewPaymentService(cfg)

	authService := services.NewAuthService(db, cfg, notificationService)
	userService := services.NewUserService(db, storageService)
	categoryService := services.NewCategoryService(db, storageService)
	productService := services.NewProductService(db, storageService)
	cartService := services.NewCartService(db)
	couponService := services.NewCouponService(db, cartService)
	shippingService := services.NewShippingService(db)
	orderService := services.NewOrderService(db, cfg, cartService, shippingService, paymentService, notificationService)
	reviewService := services.NewReviewService(db)
	wishlistService := services.NewWishlistService(db)
	analyticsService := services.NewAnalyticsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	couponHandler := handlers.NewCouponHandler(couponService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	shippingHandler := handlers.NewShippingHandler(shippingService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/verify-email/:token", authHandler.VerifyEmail)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.PUT("/reset-password/:token", authHandler.ResetPassword)
		auth.GET("/check-auth", middleware.AuthRequired(), authHandler.CheckAuth)
	}

	// Public catalog. OptionalAuth attaches identity for request logs when a
	// token is present without gating access.
	v1.Use(middleware.OptionalAuth())
	v1.GET("/products", productHandler.GetProducts)
	v1.GET("/products/:id", productHandler.GetProduct)
	v1.GET("/categories", categoryHandler.GetCategories)
	v1.GET("/categories/:id", categoryHandler.GetCategory)
	v1.GET("/reviews/:productId", reviewHandler.GetProductReviews)
	v1.GET("/shipping", shippingHandler.GetRates)
	v1.GET("/shipping/price", shippingHandler.GetPriceForCity)

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(middleware.AuthRequired())
	{
		// Profile
		authed.GET("/users/me", userHandler.GetMe)
		authed.PUT("/users/me", userHandler.UpdateMe)
		authed.PUT("/users/me/password", userHandler.UpdatePassword)
		authed.PUT("/users/me/avatar", middleware.UploadRateLimit(), userHandler.UpdateAvatar)
		authed.DELETE("/users/me", userHandler.DeleteMe)

		// Addresses
		authed.GET("/users/me/addresses", userHandler.ListAddresses)
		authed.POST("/users/me/addresses", userHandler.CreateAddress)
		authed.PUT("/users/me/addresses/:id", userHandler.UpdateAddress)
		authed.DELETE("/users/me/addresses/:id", userHandler.DeleteAddress)

		// Cart. The clear route is registered before the parameterized one so
		// "clear" is never parsed as a product id.
		authed.GET("/cart", cartHandler.GetCart)
		authed.POST("/cart", cartHandler.AddItem)
		authed.DELETE("/cart/clear", cartHandler.ClearCart)
		authed.PUT("/cart/:productId", cartHandler.UpdateItem)
		authed.DELETE("/cart/:productId", cartHandler.RemoveItem)

		// Coupon probe and application
		authed.GET("/coupons/apply/:code", couponHandler.ProbeCoupon)
		authed.POST("/coupons/apply/:code", couponHandler.ApplyCoupon)

		// Orders
		authed.POST("/orders", orderHandler.CreateOrder)
		authed.GET("/orders/my-orders", orderHandler.GetMyOrders)
		authed.GET("/orders/:id", orderHandler.GetOrder)
		authed.PUT("/orders/:id/pay", orderHandler.PayOrder)

		// Reviews
		authed.POST("/reviews", reviewHandler.CreateReview)
		authed.PUT("/reviews/:id", reviewHandler.UpdateReview)
		authed.DELETE("/reviews/:id", reviewHandler.DeleteReview)

		// Wishlist
		authed.GET("/wishlist", wishlistHandler.GetWishlist)
		authed.POST("/wishlist/:productId", wishlistHandler.AddProduct)
		authed.DELETE("/wishlist/:productId", wishlistHandler.RemoveProduct)
	}

	// Admin routes
	admin := v1.Group("")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/users", userHandler.GetUsers)
		admin.GET("/users/:id", userHandler.GetUser)
		admin.PUT("/users/:id", userHandler.UpdateUser)
		admin.DELETE("/users/:id", userHandler.DeleteUser)

		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.PUT("/categories/:id/image", middleware.UploadRateLimit(), categoryHandler.SetImage)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.PUT("/products/:id/images", middleware.UploadRateLimit(), productHandler.ReplaceImages)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.POST("/coupons", couponHandler.CreateCoupon)
		admin.GET("/coupons", couponHandler.GetCoupons)
		admin.PUT("/coupons/:id", couponHandler.UpdateCoupon)
		admin.DELETE("/coupons/:id", couponHandler.DeleteCoupon)

		admin.GET("/orders", orderHandler.GetOrders)
		admin.PUT("/orders/:id", orderHandler.UpdateOrderStatus)
		admin.DELETE("/orders/:id", orderHandler.DeleteOrder)

		admin.POST("/shipping", shippingHandler.CreateRate)
		admin.PUT("/shipping/:id", shippingHandler.UpdateRate)
		admin.DELETE("/shipping/:id", shippingHandler.DeleteRate)

		admin.GET("/analytics/top-products", analyticsHandler.TopProducts)
		admin.GET("/analytics/top-customers", analyticsHandler.TopCustomers)
		admin.GET("/analytics/sales-stats", analyticsHandler.SalesStats)
	}

	return r
}
