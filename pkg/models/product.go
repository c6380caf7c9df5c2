package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Color describes a variant's color swatch.
type Color struct {
	Color string `json:"color" bson:"color"`
	Image string `json:"image" bson:"image"`
}

// Image is a hosted asset reference.
type Image struct {
	URL string `json:"url" bson:"url"`
}

// Size is one purchasable entry within a variant: label, live stock,
// base unit price and lifetime sold count.
type Size struct {
	Size  string  `json:"size" bson:"size"`
	Qty   int     `json:"qty" bson:"qty"`
	Price float64 `json:"price" bson:"price"`
	Sold  int     `json:"sold" bson:"sold"`
}

// SubProduct is a color/SKU variant of a product. Discount is a percentage
// (0-100) applied uniformly to every size of the variant.
type SubProduct struct {
	SKU      string  `json:"sku" bson:"sku"`
	Images   []Image `json:"images" bson:"images"`
	Color    Color   `json:"color" bson:"color"`
	Sizes    []Size  `json:"sizes" bson:"sizes"`
	Discount float64 `json:"discount" bson:"discount"`
	Sold     int     `json:"sold" bson:"sold"`
}

// SizeEntry returns the size entry with the given label, nil if absent.
func (sp *SubProduct) SizeEntry(label string) *Size {
	for i := range sp.Sizes {
		if sp.Sizes[i].Size == label {
			return &sp.Sizes[i]
		}
	}
	return nil
}

// Product is a catalog entity. Read-only from the storefront's
// perspective; catalog management lives elsewhere.
type Product struct {
	ID            bson.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name          string          `json:"name" bson:"name"`
	Description   string          `json:"description" bson:"description"`
	Brand         string          `json:"brand" bson:"brand,omitempty"`
	Slug          string          `json:"slug" bson:"slug"`
	Category      bson.ObjectID   `json:"category" bson:"category"`
	SubCategories []bson.ObjectID `json:"subCategories" bson:"subCategories,omitempty"`
	Rating        float64         `json:"rating" bson:"rating"`
	NumReviews    int             `json:"numReviews" bson:"numReviews"`
	Vendor        Vendor          `json:"vendor" bson:"vendor,omitempty"`
	SubProducts   []SubProduct    `json:"subProducts" bson:"subProducts"`
	Shipping      float64         `json:"shipping" bson:"shipping"`
	Featured      bool            `json:"featured" bson:"featured"`
	CreatedAt     time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// Vendor identifies the merchant selling a product.
type Vendor struct {
	ID   string `json:"_id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name,omitempty"`
}

// SubProductAt returns the variant at index i, nil when out of range.
func (p *Product) SubProductAt(i int) *SubProduct {
	if i < 0 || i >= len(p.SubProducts) {
		return nil
	}
	return &p.SubProducts[i]
}

// Validate enforces the embedded-document invariants at the storage
// boundary: size labels unique per variant, discount within 0-100.
func (p *Product) Validate() error {
	for vi := range p.SubProducts {
		sp := &p.SubProducts[vi]
		if sp.Discount < 0 || sp.Discount > 100 {
			return fmt.Errorf("product %q variant %d: discount %.2f out of range", p.Name, vi, sp.Discount)
		}
		seen := make(map[string]struct{}, len(sp.Sizes))
		for _, s := range sp.Sizes {
			if _, dup := seen[s.Size]; dup {
				return fmt.Errorf("product %q variant %d: duplicate size %q", p.Name, vi, s.Size)
			}
			seen[s.Size] = struct{}{}
		}
	}
	return nil
}
