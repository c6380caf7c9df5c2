package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/velora-shop/storefront-api/pkg/models"
)

type stubStore struct {
	products map[string]*models.Product
	err      error
}

func (s stubStore) ProductByID(_ context.Context, id string) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products[id], nil
}

func testProduct(name string) *models.Product {
	return &models.Product{
		ID:       bson.NewObjectID(),
		Name:     name,
		Slug:     name,
		Shipping: 4.50,
		SubProducts: []models.SubProduct{
			{
				SKU:    "SKU-1",
				Images: []models.Image{{URL: "https://cdn.example.com/p1.jpg"}},
				Color:  models.Color{Color: "black"},
				Sizes: []models.Size{
					{Size: "S", Qty: 3, Price: 19.99},
					{Size: "M", Qty: 10, Price: 50.00},
				},
				Discount: 0,
			},
			{
				SKU:      "SKU-2",
				Color:    models.Color{Color: "red"},
				Sizes:    []models.Size{{Size: "M", Qty: 2, Price: 50.00}},
				Discount: 10,
			},
		},
	}
}

func TestResolve(t *testing.T) {
	product := testProduct("Linen Shirt")
	store := stubStore{products: map[string]*models.Product{product.ID.Hex(): product}}

	info, err := Resolve(context.Background(), store, product.ID.Hex(), 0, "M")
	require.NoError(t, err)
	require.Equal(t, 50.00, info.UnitPrice)
	require.Equal(t, 50.00, info.EffectivePrice)
	require.Equal(t, 10, info.AvailableQty)
	require.Equal(t, 4.50, info.ShippingFee)
	require.Equal(t, product.Name, info.Product.Name)
}

func TestResolveAppliesDiscount(t *testing.T) {
	product := testProduct("Linen Shirt")
	store := stubStore{products: map[string]*models.Product{product.ID.Hex(): product}}

	info, err := Resolve(context.Background(), store, product.ID.Hex(), 1, "M")
	require.NoError(t, err)
	require.Equal(t, 50.00, info.UnitPrice)
	require.Equal(t, 10.0, info.DiscountPercent)
	require.Equal(t, 45.00, info.EffectivePrice)
}

func TestResolveProductNotFound(t *testing.T) {
	store := stubStore{products: map[string]*models.Product{}}

	missing := bson.NewObjectID().Hex()
	_, err := Resolve(context.Background(), store, missing, 0, "M")
	require.ErrorIs(t, err, ErrProductNotFound)
	require.Contains(t, err.Error(), missing)
}

func TestResolveInvalidStyle(t *testing.T) {
	product := testProduct("Linen Shirt")
	store := stubStore{products: map[string]*models.Product{product.ID.Hex(): product}}

	_, err := Resolve(context.Background(), store, product.ID.Hex(), 5, "M")
	require.ErrorIs(t, err, ErrInvalidStyle)
	require.Contains(t, err.Error(), "Linen Shirt")

	_, err = Resolve(context.Background(), store, product.ID.Hex(), -1, "M")
	require.ErrorIs(t, err, ErrInvalidStyle)
}

func TestResolveInvalidSize(t *testing.T) {
	product := testProduct("Linen Shirt")
	store := stubStore{products: map[string]*models.Product{product.ID.Hex(): product}}

	_, err := Resolve(context.Background(), store, product.ID.Hex(), 0, "XXL")
	require.ErrorIs(t, err, ErrInvalidSize)
	require.Contains(t, err.Error(), `"XXL"`)
	require.Contains(t, err.Error(), "Linen Shirt")
}

func TestResolvePropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := stubStore{err: storeErr}

	_, err := Resolve(context.Background(), store, bson.NewObjectID().Hex(), 0, "M")
	require.ErrorIs(t, err, storeErr)
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 50.00, 0, 50.00},
		{"ten percent", 50.00, 10, 45.00},
		{"rounds to cents", 19.99, 15, 16.99},
		{"full discount", 30.00, 100, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EffectivePrice(tt.price, tt.discount))
		})
	}
}
