package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/velora-shop/storefront-api/pkg/models"
)

// ReplaceCart atomically replaces the user's cart document, inserting it
// if none exists. One ReplaceOne keyed by user means a concurrent reader
// never observes a transient empty state between delete and insert, and
// the unique index on "user" keeps the one-cart-per-user invariant even
// under concurrent saves.
func ReplaceCart(ctx context.Context, cart *models.Cart) error {
	_, err := GetCollection("carts").ReplaceOne(ctx,
		bson.M{"user": cart.User},
		cart,
		options.Replace().SetUpsert(true),
	)
	return err
}

// CartByUser returns the user's saved cart, (nil, nil) when none exists.
func CartByUser(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := GetCollection("carts").FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteCartForUser removes the user's cart, typically once an order has
// been placed from it. Deleting an absent cart is a no-op.
func DeleteCartForUser(ctx context.Context, userID bson.ObjectID) error {
	_, err := GetCollection("carts").DeleteOne(ctx, bson.M{"user": userID})
	return err
}

// CartStore adapts the package functions to the cart.CartStore interface.
type CartStore struct{}

func (CartStore) ReplaceCart(ctx context.Context, cart *models.Cart) error {
	return ReplaceCart(ctx, cart)
}

func (CartStore) CartByUser(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	return CartByUser(ctx, userID)
}
