// Package cart implements server-side cart pricing and persistence. The
// client's cart is untrusted input; every save reprices each line against
// the live catalog before anything is written.
package cart

import (
	"context"

	"github.com/velora-shop/storefront-api/pkg/catalog"
	"github.com/velora-shop/storefront-api/pkg/global"
	"github.com/velora-shop/storefront-api/pkg/models"
)

// PriceLines reprices the given lines against the catalog, preserving
// input order. The first lookup failure aborts the whole pass; no partial
// result is ever returned. An empty input yields an empty slice and a
// zero total, which is a valid (empty) cart state.
func PriceLines(ctx context.Context, store catalog.Store, lines []models.CartLine) ([]models.PricedLine, float64, error) {
	priced := make([]models.PricedLine, 0, len(lines))

	for _, line := range lines {
		info, err := catalog.Resolve(ctx, store, line.ProductID, line.Style, line.Size)
		if err != nil {
			return nil, 0, err
		}

		image := ""
		if len(info.SubProduct.Images) > 0 {
			image = info.SubProduct.Images[0].URL
		}

		priced = append(priced, models.PricedLine{
			Product:  info.Product.ID,
			Name:     info.Product.Name,
			Image:    image,
			Size:     line.Size,
			Qty:      line.Qty,
			Color:    line.Color,
			Vendor:   line.Vendor,
			VendorID: line.Vendor.ID,
			Price:    info.EffectivePrice,
		})
	}

	return priced, Total(priced), nil
}

// Total sums price*qty across lines, rounded to cents.
func Total(lines []models.PricedLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Qty)
	}
	return global.Round2(total)
}
