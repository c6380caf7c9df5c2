package router

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/velora-shop/storefront-api/pkg/global"
	"github.com/velora-shop/storefront-api/pkg/mongo"
	"github.com/velora-shop/storefront-api/pkg/redis"
)

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

// GetProductByID retrieves a product by id with Redis caching.
func GetProductByID(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	// Try Redis cache first
	product, err := redis.ProductFromCache(ctx, id)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(product))
		return
	}

	// Cache miss, check MongoDB
	product, err = mongo.ProductByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching product from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch product", nil))
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "id", Message: "No product exists with this ID", Code: "not_found"},
		}))
		return
	}

	if cacheErr := redis.CacheProduct(ctx, product); cacheErr != nil {
		log.Printf("Warning: Failed to cache product in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

// GetProductBySlug retrieves a product by its unique slug.
func GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	product, err := redis.ProductBySlugFromCache(ctx, slug)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(product))
		return
	}

	product, err = mongo.ProductBySlug(ctx, slug)
	if err != nil {
		log.Printf("Error fetching product from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch product", nil))
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "slug", Message: "No product exists with this slug", Code: "not_found"},
		}))
		return
	}

	if cacheErr := redis.CacheProduct(ctx, product); cacheErr != nil {
		log.Printf("Warning: Failed to cache product in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

// SearchProducts runs a text search, optionally narrowed by category.
func SearchProducts(c *gin.Context) {
	products, err := mongo.SearchProducts(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		log.Printf("Product search failed: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to search products", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func GetTopSellingProducts(c *gin.Context) {
	products, err := mongo.TopSellingProducts(c.Request.Context(), listLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch top-selling products", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func GetNewArrivals(c *gin.Context) {
	products, err := mongo.NewArrivals(c.Request.Context(), listLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch new arrivals", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func GetFeaturedProducts(c *gin.Context) {
	products, err := mongo.FeaturedProducts(c.Request.Context(), listLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch featured products", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func listLimit(c *gin.Context) int64 {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if limit < 1 || limit > 100 {
		limit = 12
	}
	return int64(limit)
}
