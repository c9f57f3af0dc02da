package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront/config"
	"storefront/controllers"
	"storefront/logger"
	"storefront/middleware"
	"storefront/repository"
	"storefront/services"
)

// Register wires repositories, services, and controllers onto the router.
func Register(r *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg config.Config) {
	cartRepo := repository.NewRedisCartRepository(redisClient, cfg.CartTTL)
	productRepo := repository.NewGormProductRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	jwtService := services.NewJWTService(cfg.JWTSecret)
	cartService := services.NewCartService(cartRepo, productRepo, logger.Log)
	orderService := services.NewOrderService(orderRepo, cartService, logger.Log)
	authService := services.NewAuthService(userRepo, jwtService, logger.Log)
	productService := services.NewProductService(productRepo, logger.Log)

	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(orderService)
	authController := controllers.NewAuthController(authService, cartService, cfg.CookieDomain)
	productController := controllers.NewProductController(productService)

	// Two independent fixed-window limiters guard the auth endpoints.
	signInLimiter := middleware.NewRateLimiter(
		newCounterStore(redisClient, cfg.RateLimitUseRedis, "ratelimit:signin"),
		cfg.SignInMaxAttempts, cfg.SignInWindow)
	signUpLimiter := middleware.NewRateLimiter(
		newCounterStore(redisClient, cfg.RateLimitUseRedis, "ratelimit:signup"),
		cfg.SignUpMaxAttempts, cfg.SignUpWindow)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/register", middleware.RateLimit(signUpLimiter), authController.Register)
	r.POST("/login", middleware.RateLimit(signInLimiter), authController.Login)
	r.POST("/logout", authController.Logout)

	cart := r.Group("/cart")
	{
		cart.GET("", cartController.GetCart)
		cart.GET("/detailed", cartController.GetDetailedCart)
		cart.POST("/add", cartController.AddItem)
		cart.DELETE("/remove/:product_slug", cartController.RemoveItem)
		cart.DELETE("/clear", cartController.ClearCart)
	}

	r.POST("/checkout", orderController.Checkout)
	r.GET("/orders", middleware.RequireAuth(), orderController.GetOrderHistory)

	r.GET("/products/:slug", productController.GetProduct)
	r.GET("/search", productController.Search)
	r.GET("/subcategories/:slug/products", productController.ListSubcategory)
}

func newCounterStore(redisClient *redis.Client, useRedis bool, prefix string) middleware.CounterStore {
	if useRedis {
		return middleware.NewRedisCounterStore(redisClient, prefix)
	}
	return middleware.NewMemoryCounterStore()
}
