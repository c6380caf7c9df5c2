package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartLine is a client-supplied cart entry. It references catalog data by
// product id, variant index and size label and carries no trusted price;
// everything monetary is recomputed server-side before persisting.
type CartLine struct {
	ProductID string `json:"_id" binding:"required"`
	Style     int    `json:"style"`
	Size      string `json:"size" binding:"required"`
	Qty       int    `json:"qty" binding:"required,min=1"`
	Color     Color  `json:"color"`
	Vendor    Vendor `json:"vendor"`
}

// PricedLine is a cart line after authoritative price resolution, with
// catalog snapshots copied in so later catalog edits do not rewrite
// history.
type PricedLine struct {
	Product  bson.ObjectID `json:"product" bson:"product"`
	Name     string        `json:"name" bson:"name"`
	Image    string        `json:"image" bson:"image"`
	Size     string        `json:"size" bson:"size"`
	Qty      int           `json:"qty" bson:"qty"`
	Color    Color         `json:"color" bson:"color"`
	Vendor   Vendor        `json:"vendor" bson:"vendor"`
	VendorID string        `json:"vendorId" bson:"vendorId"`
	Price    float64       `json:"price" bson:"price"`
}

// RefreshedLine annotates a client-held cart line with live catalog state.
// Nothing is persisted on refresh; the client reconciles its own copy.
type RefreshedLine struct {
	CartLine
	PriceBefore float64 `json:"priceBefore"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	Quantity    int     `json:"quantity"`
	ShippingFee float64 `json:"shippingFee"`
}

// Cart is the single durable cart per user. Replaced wholesale on every
// save; superseded when an order is placed.
type Cart struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	User      bson.ObjectID `json:"user" bson:"user"`
	Products  []PricedLine  `json:"products" bson:"products"`
	CartTotal float64       `json:"cartTotal" bson:"cartTotal"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// SetTimestamps sets createdAt on first call and always bumps updatedAt.
func (c *Cart) SetTimestamps() {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
