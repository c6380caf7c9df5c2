// Package payment integrates the Stripe gateway: checkout-session
// creation on the way out, signed-webhook reconciliation on the way back.
package payment

import (
	"math"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/velora-shop/storefront-api/pkg/global"
	"github.com/velora-shop/storefront-api/pkg/models"
)

// InitStripe configures the gateway client from the environment.
func InitStripe() {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		log.Fatal("STRIPE_SECRET_KEY is not set in environment variables")
	}
	stripe.Key = key
}

// WebhookSecret returns the shared secret used to verify inbound events.
func WebhookSecret() string {
	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		log.Fatal("STRIPE_WEBHOOK_SECRET is not set in environment variables")
	}
	return secret
}

// VerifyEvent checks the gateway signature over the raw payload and
// decodes the event. Any failure means the payload is untrusted and must
// be discarded.
func VerifyEvent(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

// CreateCheckoutSession opens a hosted payment page for the order. The
// order id rides along in session metadata so the completion webhook can
// correlate the payment back to the order.
func CreateCheckoutSession(order *models.Order, customerEmail string) (*stripe.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.Products))
	currency := global.GetEnvOrDefault("STRIPE_CURRENCY", "usd")

	for _, line := range order.Products {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(line.Qty)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(toCents(line.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
		})
	}

	// Shipping and tax are charged as their own line so the session total
	// matches the persisted order total.
	if extra := order.ShippingPrice + order.TaxPrice - order.TotalSaved; extra > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(toCents(extra)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Shipping & taxes"),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:     lineItems,
		CustomerEmail: stripe.String(customerEmail),
		SuccessURL:    stripe.String(global.GetEnvOrDefault("CHECKOUT_SUCCESS_URL", "http://localhost:3000/order/success")),
		CancelURL:     stripe.String(global.GetEnvOrDefault("CHECKOUT_CANCEL_URL", "http://localhost:3000/checkout")),
	}
	params.AddMetadata("orderId", order.ID.Hex())

	return session.New(params)
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
