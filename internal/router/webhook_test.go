package router

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/velora-shop/storefront-api/pkg/models"
	"github.com/velora-shop/storefront-api/pkg/payment"
)

const testWebhookSecret = "whsec_test_secret"

type hookOrders struct {
	orders    map[string]*models.Order
	paidCalls int
}

func (m *hookOrders) OrderByID(_ context.Context, id string) (*models.Order, error) {
	return m.orders[id], nil
}

func (m *hookOrders) MarkOrderPaid(_ context.Context, id string, paidAt time.Time) error {
	order := m.orders[id]
	order.IsPaid = true
	t := paidAt
	order.PaidAt = &t
	m.paidCalls++
	return nil
}

func webhookEngine(store *hookOrders) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.POST("/api/webhooks/stripe", PaymentWebhook(&payment.Reconciler{Orders: store}, testWebhookSecret))
	return engine
}

// signPayload builds a Stripe-Signature header over the raw body, the
// same scheme the gateway uses: HMAC-SHA256 of "<timestamp>.<payload>".
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func completedEventPayload(orderID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"metadata": {"orderId": %q}
			}
		}
	}`, orderID))
}

func deliver(engine *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestWebhookMarksOrderPaid(t *testing.T) {
	order := &models.Order{ID: bson.NewObjectID(), IsPaid: false}
	store := &hookOrders{orders: map[string]*models.Order{order.ID.Hex(): order}}
	engine := webhookEngine(store)

	payload := completedEventPayload(order.ID.Hex())
	before := time.Now()
	rec := deliver(engine, payload, signPayload(payload, testWebhookSecret))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	require.False(t, order.PaidAt.Before(before))
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	order := &models.Order{ID: bson.NewObjectID(), IsPaid: false}
	store := &hookOrders{orders: map[string]*models.Order{order.ID.Hex(): order}}
	engine := webhookEngine(store)

	payload := completedEventPayload(order.ID.Hex())
	rec := deliver(engine, payload, signPayload(payload, "whsec_wrong_secret"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, order.IsPaid)
	require.Zero(t, store.paidCalls)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	store := &hookOrders{orders: map[string]*models.Order{}}
	engine := webhookEngine(store)

	payload := completedEventPayload(bson.NewObjectID().Hex())
	rec := deliver(engine, payload, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookUnknownOrder(t *testing.T) {
	store := &hookOrders{orders: map[string]*models.Order{}}
	engine := webhookEngine(store)

	payload := completedEventPayload(bson.NewObjectID().Hex())
	rec := deliver(engine, payload, signPayload(payload, testWebhookSecret))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, store.paidCalls)
}

func TestWebhookMissingOrderMetadata(t *testing.T) {
	store := &hookOrders{orders: map[string]*models.Order{}}
	engine := webhookEngine(store)

	payload := []byte(`{
		"id": "evt_test_2",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_2", "object": "checkout.session"}}
	}`)
	rec := deliver(engine, payload, signPayload(payload, testWebhookSecret))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWebhookAcknowledgesOtherEventTypes(t *testing.T) {
	store := &hookOrders{orders: map[string]*models.Order{}}
	engine := webhookEngine(store)

	payload := []byte(`{
		"id": "evt_test_3",
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_test_1", "object": "payment_intent"}}
	}`)
	rec := deliver(engine, payload, signPayload(payload, testWebhookSecret))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, store.paidCalls)
}

func TestWebhookRejectsNonPOST(t *testing.T) {
	store := &hookOrders{orders: map[string]*models.Order{}}
	engine := webhookEngine(store)

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/stripe", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
