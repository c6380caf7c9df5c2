package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/velora-shop/storefront-api/pkg/models"
)

// ProductByID fetches one product. Returns (nil, nil) when the id is not
// a valid ObjectID or no product exists for it; the distinction does not
// matter to callers, either way the reference cannot be resolved.
func ProductByID(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var product models.Product
	err = GetCollection("products").FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Embedded variants are validated at the storage boundary rather than
	// trusted from the schema.
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductBySlug fetches one product by its unique slug, (nil, nil) when
// absent.
func ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := GetCollection("products").FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProducts runs a text search over name/description, optionally
// narrowed to a category.
func SearchProducts(ctx context.Context, query, categoryID string) ([]models.Product, error) {
	filter := bson.M{}
	if query != "" {
		filter["$text"] = bson.M{"$search": query}
	}
	if categoryID != "" {
		objectID, err := bson.ObjectIDFromHex(categoryID)
		if err == nil {
			filter["category"] = objectID
		}
	}
	return findProducts(ctx, filter, nil, 0)
}

// TopSellingProducts returns products ordered by lifetime variant sales.
func TopSellingProducts(ctx context.Context, limit int64) ([]models.Product, error) {
	return findProducts(ctx, bson.M{}, bson.D{{Key: "subProducts.sold", Value: -1}}, limit)
}

// NewArrivals returns the most recently added products.
func NewArrivals(ctx context.Context, limit int64) ([]models.Product, error) {
	return findProducts(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}}, limit)
}

// FeaturedProducts returns products flagged for the homepage.
func FeaturedProducts(ctx context.Context, limit int64) ([]models.Product, error) {
	return findProducts(ctx, bson.M{"featured": true}, bson.D{{Key: "createdAt", Value: -1}}, limit)
}

func findProducts(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]models.Product, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := GetCollection("products").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductStore adapts the package functions to the catalog.Store
// interface consumed by the pricing core.
type ProductStore struct{}

func (ProductStore) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	return ProductByID(ctx, id)
}
