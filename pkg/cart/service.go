package cart

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/velora-shop/storefront-api/pkg/catalog"
	"github.com/velora-shop/storefront-api/pkg/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserStore resolves external identity-provider ids to user records.
// UserByExternalID returns (nil, nil) when no user exists for the id.
type UserStore interface {
	UserByExternalID(ctx context.Context, externalID string) (*models.User, error)
}

// CartStore persists the single durable cart per user. ReplaceCart must
// atomically replace-or-insert the document keyed by cart.User.
// CartByUser returns (nil, nil) when the user has no saved cart.
type CartStore interface {
	ReplaceCart(ctx context.Context, cart *models.Cart) error
	CartByUser(ctx context.Context, userID bson.ObjectID) (*models.Cart, error)
}

// Service wires the cart operations to their stores.
type Service struct {
	Catalog catalog.Store
	Users   UserStore
	Carts   CartStore
}

// FetchResult is the response shape of Fetch: the user, their persisted
// cart (nil when none exists, a valid state), and their active address.
type FetchResult struct {
	User    *models.User    `json:"user"`
	Cart    *models.Cart    `json:"cart"`
	Address *models.Address `json:"address"`
}

// Save reprices the client's lines and replaces the user's durable cart.
// Fail-fast: any catalog error aborts before anything is written, so a
// failed save never leaves a half-updated cart behind.
func (s *Service) Save(ctx context.Context, externalID string, lines []models.CartLine) error {
	if externalID == "" {
		return errors.New("invalid or missing user identifier")
	}

	user, err := s.Users.UserByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user with id %s", ErrUserNotFound, externalID)
	}

	priced, total, err := PriceLines(ctx, s.Catalog, lines)
	if err != nil {
		return err
	}

	cart := &models.Cart{
		User:      user.ID,
		Products:  priced,
		CartTotal: total,
	}
	cart.SetTimestamps()

	return s.Carts.ReplaceCart(ctx, cart)
}

// Refresh recomputes live price, discount, stock and shipping for each
// client-held line without touching storage. Same fail-fast semantics as
// Save; failures name the product that could not be resolved.
func (s *Service) Refresh(ctx context.Context, lines []models.CartLine) ([]models.RefreshedLine, error) {
	refreshed := make([]models.RefreshedLine, 0, len(lines))

	for _, line := range lines {
		info, err := catalog.Resolve(ctx, s.Catalog, line.ProductID, line.Style, line.Size)
		if err != nil {
			return nil, err
		}

		refreshed = append(refreshed, models.RefreshedLine{
			CartLine:    line,
			PriceBefore: info.UnitPrice,
			Price:       info.EffectivePrice,
			Discount:    info.DiscountPercent,
			Quantity:    info.AvailableQty,
			ShippingFee: info.ShippingFee,
		})
	}

	return refreshed, nil
}

// Fetch returns the user's saved cart along with their profile and active
// address. A missing cart is not an error.
func (s *Service) Fetch(ctx context.Context, externalID string) (*FetchResult, error) {
	user, err := s.Users.UserByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with id %s", ErrUserNotFound, externalID)
	}

	saved, err := s.Carts.CartByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &FetchResult{
		User:    user,
		Cart:    saved,
		Address: user.ActiveAddress(),
	}, nil
}
