package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"

	"github.com/velora-shop/storefront-api/pkg/models"
)

// OrderStore is the order access the reconciler needs. OrderByID returns
// (nil, nil) when no order exists for the id. MarkOrderPaid performs a
// single-document update setting isPaid/paidAt; re-applying it to an
// already-paid order overwrites, which keeps webhook replays safe.
type OrderStore interface {
	OrderByID(ctx context.Context, id string) (*models.Order, error)
	MarkOrderPaid(ctx context.Context, id string, paidAt time.Time) error
}

// Reconciler transitions orders to paid on verified gateway events.
type Reconciler struct {
	Orders OrderStore
}

// HandleEvent processes an already-verified gateway event and returns the
// HTTP status to answer with. The status drives the gateway's retry
// policy: 503 asks it to retry later (missing metadata, store trouble),
// 404 tells it retrying is pointless, 200 acknowledges receipt.
func (r *Reconciler) HandleEvent(ctx context.Context, event stripe.Event) int {
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		log.Printf("Unhandled event type: %s", event.Type)
		return http.StatusOK
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Printf("Failed to decode checkout session from event %s: %v", event.ID, err)
		return http.StatusServiceUnavailable
	}

	orderID := session.Metadata["orderId"]
	if orderID == "" {
		log.Printf("Checkout session %s missing orderId in metadata", session.ID)
		return http.StatusServiceUnavailable
	}

	order, err := r.Orders.OrderByID(ctx, orderID)
	if err != nil {
		log.Printf("Order lookup failed for %s: %v", orderID, err)
		return http.StatusServiceUnavailable
	}
	if order == nil {
		log.Printf("Checkout session %s references unknown order %s", session.ID, orderID)
		return http.StatusNotFound
	}

	if err := r.Orders.MarkOrderPaid(ctx, orderID, time.Now()); err != nil {
		log.Printf("Failed to mark order %s paid: %v", orderID, err)
		return http.StatusServiceUnavailable
	}

	log.Printf("Order %s marked as paid", orderID)
	return http.StatusOK
}
