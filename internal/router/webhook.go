package router

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/velora-shop/storefront-api/pkg/payment"
)

const maxWebhookBody = 64 * 1024

// PaymentWebhook receives signed gateway events. The signature is checked
// over the raw body before anything else happens; an unverifiable payload
// is discarded with 400 and the gateway retries delivery on its own.
func PaymentWebhook(reconciler *payment.Reconciler, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
		if err != nil {
			c.String(http.StatusBadRequest, "Webhook Error")
			return
		}

		event, err := payment.VerifyEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Printf("Webhook signature verification failed: %v", err)
			c.String(http.StatusBadRequest, "Webhook Error")
			return
		}

		c.Status(reconciler.HandleEvent(c.Request.Context(), event))
	}
}
