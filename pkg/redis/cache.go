package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/velora-shop/storefront-api/pkg/models"
)

const productTTL = 24 * time.Hour

// CacheProduct stores a product in the read cache keyed by id and slug.
// The slug key maps to the id so both read paths share one JSON value.
func CacheProduct(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.ID.Hex(), err)
	}

	pipe := client.TxPipeline()

	productKey := fmt.Sprintf("product:%s", product.ID.Hex())
	pipe.Set(ctx, productKey, productJSON, productTTL)

	slugKey := fmt.Sprintf("slug:%s", product.Slug)
	pipe.Set(ctx, slugKey, product.ID.Hex(), productTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute Redis pipeline for product %s: %w", product.ID.Hex(), err)
	}

	return nil
}

// ProductFromCache returns a cached product by id hex.
func ProductFromCache(ctx context.Context, id string) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	productKey := fmt.Sprintf("product:%s", id)
	productJSON, err := client.Get(ctx, productKey).Result()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

// ProductBySlugFromCache resolves the slug mapping and returns the cached
// product.
func ProductBySlugFromCache(ctx context.Context, slug string) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	slugKey := fmt.Sprintf("slug:%s", slug)
	id, err := client.Get(ctx, slugKey).Result()
	if err != nil {
		return nil, err
	}

	return ProductFromCache(ctx, id)
}

// RemoveProductFromCache drops a product's cache entries.
func RemoveProductFromCache(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	pipe := client.TxPipeline()
	pipe.Del(ctx, fmt.Sprintf("product:%s", product.ID.Hex()))
	pipe.Del(ctx, fmt.Sprintf("slug:%s", product.Slug))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove product from Redis cache: %w", err)
	}

	return nil
}
