package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/velora-shop/storefront-api/pkg/cart"
	"github.com/velora-shop/storefront-api/pkg/global"
	"github.com/velora-shop/storefront-api/pkg/mongo"
	"github.com/velora-shop/storefront-api/pkg/payment"
)

var Router *gin.Engine

func InitEngine() {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	Router = gin.Default()

	// The payment gateway expects 405 for non-POST webhook deliveries.
	Router.HandleMethodNotAllowed = true

	Router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(global.GetEnvOrDefault("CORS_ORIGINS", "http://localhost:3000"), ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-Id", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes() {
	cartService := &cart.Service{
		Catalog: mongo.ProductStore{},
		Users:   mongo.UserStore{},
		Carts:   mongo.CartStore{},
	}
	reconciler := &payment.Reconciler{Orders: mongo.OrderStore{}}

	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		products := api.Group("/products")
		{
			products.GET("/", SearchProducts)
			products.GET("/top-selling", GetTopSellingProducts)
			products.GET("/new-arrivals", GetNewArrivals)
			products.GET("/featured", GetFeaturedProducts)
			products.GET("/slug/:slug", GetProductBySlug)
			products.GET("/:id", GetProductByID)
		}

		cartRoutes := api.Group("/cart")
		{
			cartRoutes.PUT("/", RefreshCart(cartService))
			cartRoutes.POST("/", RequireUser(), SaveCart(cartService))
			cartRoutes.GET("/", RequireUser(), FetchCart(cartService))
		}

		orders := api.Group("/orders")
		orders.Use(RequireUser())
		{
			orders.POST("/", PlaceOrder)
			orders.GET("/", GetMyOrders)
			orders.GET("/:id", GetOrderByID)
		}

		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/stripe", PaymentWebhook(reconciler, payment.WebhookSecret()))
		}
	}
}
