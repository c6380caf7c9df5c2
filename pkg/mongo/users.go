package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/velora-shop/storefront-api/pkg/models"
)

// UserByExternalID resolves the identity provider's stable id to our user
// record. Returns (nil, nil) when no such user exists.
func UserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	err := GetCollection("users").FindOne(ctx, bson.M{"externalId": externalID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserStore adapts the package functions to the cart.UserStore interface.
type UserStore struct{}

func (UserStore) UserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return UserByExternalID(ctx, externalID)
}
