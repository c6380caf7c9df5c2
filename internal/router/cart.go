package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/velora-shop/storefront-api/pkg/cart"
	"github.com/velora-shop/storefront-api/pkg/catalog"
	"github.com/velora-shop/storefront-api/pkg/global"
	"github.com/velora-shop/storefront-api/pkg/models"
)

// SaveCart reprices the submitted lines and replaces the user's saved
// cart. The whole operation fails if any line cannot be resolved; the
// response message names the offending product/style/size.
func SaveCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lines []models.CartLine
		if err := c.ShouldBindJSON(&lines); err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Cart must be an array of cart lines", []global.ValidationError{
				{Field: "cart", Message: err.Error(), Code: "validation_error"},
			}))
			return
		}

		if err := svc.Save(c.Request.Context(), c.GetString("userId"), lines); err != nil {
			log.Printf("saveCartForUser error: %v", err)
			c.JSON(cartErrorStatus(err), global.ErrorResponse(err.Error(), nil))
			return
		}

		c.JSON(http.StatusOK, global.SuccessResponse(nil))
	}
}

// RefreshCart recomputes live pricing for a client-held cart without
// writing anything.
func RefreshCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lines []models.CartLine
		if err := c.ShouldBindJSON(&lines); err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Cart must be an array of cart lines", []global.ValidationError{
				{Field: "cart", Message: err.Error(), Code: "validation_error"},
			}))
			return
		}

		refreshed, err := svc.Refresh(c.Request.Context(), lines)
		if err != nil {
			log.Printf("updateCartForUser error: %v", err)
			c.JSON(cartErrorStatus(err), global.ErrorResponse(err.Error(), nil))
			return
		}

		c.JSON(http.StatusOK, global.APIResponse{
			Success: true,
			Message: "Successfully updated the cart.",
			Data:    refreshed,
		})
	}
}

// FetchCart returns the user's saved cart, profile and active address. An
// absent cart is a valid state and comes back as null.
func FetchCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.Fetch(c.Request.Context(), c.GetString("userId"))
		if err != nil {
			log.Printf("getSavedCartForUser error: %v", err)
			c.JSON(cartErrorStatus(err), global.ErrorResponse(err.Error(), nil))
			return
		}

		c.JSON(http.StatusOK, global.SuccessResponse(result))
	}
}

func cartErrorStatus(err error) int {
	switch {
	case errors.Is(err, cart.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrInvalidStyle),
		errors.Is(err, catalog.ErrInvalidSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
