// Package catalog resolves untrusted product/variant/size references to
// authoritative pricing and stock data.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/velora-shop/storefront-api/pkg/global"
	"github.com/velora-shop/storefront-api/pkg/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidStyle    = errors.New("style not found")
	ErrInvalidSize     = errors.New("size not found")
)

// Store is the read-only product source. ProductByID returns (nil, nil)
// when no product exists for the id.
type Store interface {
	ProductByID(ctx context.Context, id string) (*models.Product, error)
}

// PriceInfo is the authoritative pricing answer for one
// (product, variant, size) reference.
type PriceInfo struct {
	Product         *models.Product
	SubProduct      *models.SubProduct
	UnitPrice       float64
	DiscountPercent float64
	EffectivePrice  float64
	AvailableQty    int
	ShippingFee     float64
}

// Resolve looks up the size entry at (productID, styleIndex, sizeLabel)
// and computes the discounted unit price. Errors wrap the sentinel values
// above and name the offending identifier so pricing failures can be
// reported verbatim to the caller.
func Resolve(ctx context.Context, store Store, productID string, styleIndex int, sizeLabel string) (*PriceInfo, error) {
	product, err := store.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product with ID %s", ErrProductNotFound, productID)
	}

	subProduct := product.SubProductAt(styleIndex)
	if subProduct == nil {
		return nil, fmt.Errorf("%w: style index %d for product %q", ErrInvalidStyle, styleIndex, product.Name)
	}

	sizeEntry := subProduct.SizeEntry(sizeLabel)
	if sizeEntry == nil {
		return nil, fmt.Errorf("%w: size %q in product %q (style index %d)", ErrInvalidSize, sizeLabel, product.Name, styleIndex)
	}

	return &PriceInfo{
		Product:         product,
		SubProduct:      subProduct,
		UnitPrice:       sizeEntry.Price,
		DiscountPercent: subProduct.Discount,
		EffectivePrice:  EffectivePrice(sizeEntry.Price, subProduct.Discount),
		AvailableQty:    sizeEntry.Qty,
		ShippingFee:     product.Shipping,
	}, nil
}

// EffectivePrice applies a percentage discount to a unit price, rounded
// to cents.
func EffectivePrice(unitPrice, discountPercent float64) float64 {
	if discountPercent > 0 {
		return global.Round2(unitPrice - unitPrice*discountPercent/100)
	}
	return global.Round2(unitPrice)
}
