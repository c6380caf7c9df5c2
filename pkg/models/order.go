package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const OrderLineStatusNotProcessed = "Not Processed"

// OrderLine is a single ordered item. Price is the authoritative unit
// price fixed at confirmation time and never recomputed afterwards.
type OrderLine struct {
	Product     bson.ObjectID `json:"product" bson:"product"`
	Name        string        `json:"name" bson:"name"`
	Vendor      Vendor        `json:"vendor" bson:"vendor"`
	Image       string        `json:"image" bson:"image"`
	Size        string        `json:"size" bson:"size"`
	Qty         int           `json:"qty" bson:"qty" binding:"required,min=1"`
	Color       Color         `json:"color" bson:"color"`
	Price       float64       `json:"price" bson:"price"`
	Status      string        `json:"status" bson:"status"`
	CompletedAt *time.Time    `json:"productCompletedAt" bson:"productCompletedAt"`
}

// ShippingAddress is the address snapshot frozen into the order.
type ShippingAddress struct {
	FirstName   string `json:"firstName" bson:"firstName"`
	LastName    string `json:"lastName" bson:"lastName"`
	PhoneNumber string `json:"phoneNumber" bson:"phoneNumber"`
	Address1    string `json:"address1" bson:"address1"`
	Address2    string `json:"address2" bson:"address2,omitempty"`
	City        string `json:"city" bson:"city"`
	State       string `json:"state" bson:"state"`
	ZipCode     string `json:"zipCode" bson:"zipCode"`
	Country     string `json:"country" bson:"country"`
}

// PaymentResult holds gateway correlation identifiers.
type PaymentResult struct {
	ID     string `json:"id" bson:"id,omitempty"`
	Status string `json:"status" bson:"status,omitempty"`
	Email  string `json:"email" bson:"email,omitempty"`
}

// Order is an immutable commercial transaction record. Created once at
// checkout with IsPaid=false; only payment reconciliation flips IsPaid,
// and only fulfillment (elsewhere) touches per-line status.
type Order struct {
	ID                  bson.ObjectID   `json:"id" bson:"_id,omitempty"`
	OrderNumber         string          `json:"orderNumber" bson:"orderNumber"`
	User                bson.ObjectID   `json:"user" bson:"user"`
	Products            []OrderLine     `json:"products" bson:"products"`
	ShippingAddress     ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod       string          `json:"paymentMethod" bson:"paymentMethod"`
	PaymentResult       PaymentResult   `json:"paymentResult" bson:"paymentResult,omitempty"`
	Total               float64         `json:"total" bson:"total"`
	TotalBeforeDiscount float64         `json:"totalBeforeDiscount" bson:"totalBeforeDiscount"`
	TotalSaved          float64         `json:"totalSaved" bson:"totalSaved"`
	CouponApplied       string          `json:"couponApplied" bson:"couponApplied,omitempty"`
	ShippingPrice       float64         `json:"shippingPrice" bson:"shippingPrice"`
	TaxPrice            float64         `json:"taxPrice" bson:"taxPrice"`
	IsPaid              bool            `json:"isPaid" bson:"isPaid"`
	CheckoutSessionID   string          `json:"checkoutSessionId" bson:"checkoutSessionId,omitempty"`
	PaymentIntentID     string          `json:"paymentIntentId" bson:"paymentIntentId,omitempty"`
	PaidAt              *time.Time      `json:"paidAt" bson:"paidAt,omitempty"`
	DeliveredAt         *time.Time      `json:"deliveredAt" bson:"deliveredAt,omitempty"`
	CreatedAt           time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// SetTimestamps sets createdAt on first call and always bumps updatedAt.
func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

// ItemCount returns the total quantity across all lines.
func (o *Order) ItemCount() int {
	var count int
	for _, line := range o.Products {
		count += line.Qty
	}
	return count
}

// GenerateOrderNumber produces a short human-readable order reference.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return "ORD-" + time.Now().Format("20060102") + "-" + suffix
}
