package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/velora-shop/storefront-api/pkg/models"
)

type memOrders struct {
	orders    map[string]*models.Order
	paidCalls int
}

func newMemOrders(orders ...*models.Order) *memOrders {
	byID := make(map[string]*models.Order, len(orders))
	for _, o := range orders {
		byID[o.ID.Hex()] = o
	}
	return &memOrders{orders: byID}
}

func (m *memOrders) OrderByID(_ context.Context, id string) (*models.Order, error) {
	return m.orders[id], nil
}

func (m *memOrders) MarkOrderPaid(_ context.Context, id string, paidAt time.Time) error {
	order, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("no order %s", id)
	}
	order.IsPaid = true
	t := paidAt
	order.PaidAt = &t
	m.paidCalls++
	return nil
}

func unpaidOrder() *models.Order {
	return &models.Order{ID: bson.NewObjectID(), Total: 109.97, IsPaid: false}
}

func completedEvent(orderID string) stripe.Event {
	raw, _ := json.Marshal(map[string]interface{}{
		"id":       "cs_test_123",
		"object":   "checkout.session",
		"metadata": map[string]string{"orderId": orderID},
	})
	return stripe.Event{
		ID:   "evt_test_123",
		Type: stripe.EventTypeCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestHandleEventMarksOrderPaid(t *testing.T) {
	order := unpaidOrder()
	store := newMemOrders(order)
	reconciler := &Reconciler{Orders: store}

	before := time.Now()
	status := reconciler.HandleEvent(context.Background(), completedEvent(order.ID.Hex()))

	require.Equal(t, http.StatusOK, status)
	require.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	require.False(t, order.PaidAt.Before(before))
}

func TestHandleEventReplayIsSafe(t *testing.T) {
	order := unpaidOrder()
	store := newMemOrders(order)
	reconciler := &Reconciler{Orders: store}

	event := completedEvent(order.ID.Hex())
	require.Equal(t, http.StatusOK, reconciler.HandleEvent(context.Background(), event))
	firstPaidAt := *order.PaidAt

	// Gateway redelivery of the same event overwrites, never errors.
	require.Equal(t, http.StatusOK, reconciler.HandleEvent(context.Background(), event))
	require.True(t, order.IsPaid)
	require.False(t, order.PaidAt.Before(firstPaidAt))
	require.Equal(t, 2, store.paidCalls)
}

func TestHandleEventMissingOrderMetadata(t *testing.T) {
	order := unpaidOrder()
	store := newMemOrders(order)
	reconciler := &Reconciler{Orders: store}

	event := completedEvent(order.ID.Hex())
	raw, _ := json.Marshal(map[string]interface{}{"id": "cs_test_123", "object": "checkout.session"})
	event.Data.Raw = raw

	status := reconciler.HandleEvent(context.Background(), event)
	require.Equal(t, http.StatusServiceUnavailable, status)
	require.False(t, order.IsPaid)
	require.Zero(t, store.paidCalls)
}

func TestHandleEventUnknownOrder(t *testing.T) {
	store := newMemOrders()
	reconciler := &Reconciler{Orders: store}

	status := reconciler.HandleEvent(context.Background(), completedEvent(bson.NewObjectID().Hex()))
	require.Equal(t, http.StatusNotFound, status)
	require.Zero(t, store.paidCalls)
}

func TestHandleEventIgnoresOtherTypes(t *testing.T) {
	order := unpaidOrder()
	store := newMemOrders(order)
	reconciler := &Reconciler{Orders: store}

	event := stripe.Event{
		ID:   "evt_test_456",
		Type: stripe.EventTypePaymentIntentCreated,
		Data: &stripe.EventData{Raw: json.RawMessage(`{}`)},
	}

	// Acknowledged so the gateway stops retrying, but nothing changes.
	status := reconciler.HandleEvent(context.Background(), event)
	require.Equal(t, http.StatusOK, status)
	require.False(t, order.IsPaid)
	require.Zero(t, store.paidCalls)
}
