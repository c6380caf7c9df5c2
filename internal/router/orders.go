package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/velora-shop/storefront-api/pkg/checkout"
	"github.com/velora-shop/storefront-api/pkg/global"
	"github.com/velora-shop/storefront-api/pkg/mongo"
	"github.com/velora-shop/storefront-api/pkg/payment"
)

// PlaceOrder finalizes a confirmed cart into an unpaid order and opens a
// gateway checkout session for it. Line prices arrive from the saved cart
// and are recorded as-is; the catalog is not consulted again.
func PlaceOrder(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := mongo.UserByExternalID(ctx, c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to resolve user", nil))
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", []global.ValidationError{
			{Field: "X-User-Id", Message: "No user exists with this identity", Code: "not_found"},
		}))
		return
	}

	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid order data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	order, err := checkout.PlaceOrder(ctx, mongo.OrderStore{}, user, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, checkout.ErrEmptyOrder) || errors.Is(err, checkout.ErrInconsistentTotals) {
			status = http.StatusBadRequest
		}
		log.Printf("placeOrder error for user %s: %v", user.ID.Hex(), err)
		c.JSON(status, global.ErrorResponse(err.Error(), nil))
		return
	}

	// The cart is conceptually consumed by the order.
	if err := mongo.DeleteCartForUser(ctx, user.ID); err != nil {
		log.Printf("Warning: failed to clear cart for user %s: %v", user.ID.Hex(), err)
	}

	session, err := payment.CreateCheckoutSession(order, user.Email)
	if err != nil {
		log.Printf("Checkout session creation failed for order %s: %v", order.ID.Hex(), err)
		c.JSON(http.StatusBadGateway, global.ErrorResponse("Order was created but the payment session could not be opened", nil))
		return
	}

	if err := mongo.SetCheckoutSession(ctx, order.ID, session.ID); err != nil {
		log.Printf("Warning: failed to record checkout session on order %s: %v", order.ID.Hex(), err)
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]interface{}{
		"order":      order,
		"paymentUrl": session.URL,
	}))
}

// GetOrderByID returns one of the caller's orders.
func GetOrderByID(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := mongo.UserByExternalID(ctx, c.GetString("userId"))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", nil))
		return
	}

	order, err := mongo.OrderByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}
	if order == nil || order.User != user.ID {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", []global.ValidationError{
			{Field: "id", Message: "No order exists with this ID", Code: "not_found"},
		}))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// GetMyOrders lists the caller's order history, newest first.
func GetMyOrders(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := mongo.UserByExternalID(ctx, c.GetString("userId"))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", nil))
		return
	}

	orders, err := mongo.OrdersByUser(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch orders", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}
