// Package checkout finalizes a priced cart into an immutable order.
// Prices arrive already resolved by the cart service and are never
// recomputed here, so an order keeps its price even if the catalog
// changes a second later.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/velora-shop/storefront-api/pkg/global"
	"github.com/velora-shop/storefront-api/pkg/models"
)

var (
	ErrEmptyOrder         = errors.New("cannot place an order with no items")
	ErrInconsistentTotals = errors.New("order totals are inconsistent")
)

// OrderStore persists finalized orders.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error)
}

// Request carries everything checkout needs: the confirmed lines with
// their authoritative prices, the address/payment snapshot and the
// discount breakdown.
type Request struct {
	Products        []models.OrderLine     `json:"products" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
	CouponApplied   string                 `json:"couponApplied"`
	CouponDiscount  float64                `json:"couponDiscount" binding:"min=0"`
	ShippingPrice   float64                `json:"shippingPrice" binding:"min=0"`
	TaxPrice        float64                `json:"taxPrice" binding:"min=0"`
}

// BuildOrder constructs the unpaid order record for a user. Totals:
//
//	total = round2(sum(price*qty) + shipping + tax - couponDiscount)
//
// with totalBeforeDiscount - totalSaved == total checked before anything
// is returned.
func BuildOrder(user *models.User, req *Request) (*models.Order, error) {
	if len(req.Products) == 0 {
		return nil, ErrEmptyOrder
	}

	var subtotal float64
	lines := make([]models.OrderLine, len(req.Products))
	for i, line := range req.Products {
		line.Status = models.OrderLineStatusNotProcessed
		line.CompletedAt = nil
		lines[i] = line
		subtotal += line.Price * float64(line.Qty)
	}

	totalBefore := global.Round2(subtotal + req.ShippingPrice + req.TaxPrice)
	totalSaved := global.Round2(req.CouponDiscount)
	total := global.Round2(subtotal + req.ShippingPrice + req.TaxPrice - req.CouponDiscount)

	if err := CheckTotals(totalBefore, totalSaved, total); err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:         models.GenerateOrderNumber(),
		User:                user.ID,
		Products:            lines,
		ShippingAddress:     req.ShippingAddress,
		PaymentMethod:       req.PaymentMethod,
		Total:               total,
		TotalBeforeDiscount: totalBefore,
		TotalSaved:          totalSaved,
		CouponApplied:       req.CouponApplied,
		ShippingPrice:       req.ShippingPrice,
		TaxPrice:            req.TaxPrice,
		IsPaid:              false,
		PaidAt:              nil,
	}
	order.SetTimestamps()
	return order, nil
}

// CheckTotals verifies the breakdown invariant modulo cent rounding.
func CheckTotals(totalBeforeDiscount, totalSaved, total float64) error {
	if math.Abs(global.Round2(totalBeforeDiscount-totalSaved)-total) > 0.01 {
		return fmt.Errorf("%w: %.2f - %.2f != %.2f", ErrInconsistentTotals, totalBeforeDiscount, totalSaved, total)
	}
	return nil
}

// PlaceOrder builds and persists the order.
func PlaceOrder(ctx context.Context, store OrderStore, user *models.User, req *Request) (*models.Order, error) {
	order, err := BuildOrder(user, req)
	if err != nil {
		return nil, err
	}
	return store.InsertOrder(ctx, order)
}
