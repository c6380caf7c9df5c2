package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/velora-shop/storefront-api/pkg/models"
)

// InsertOrder persists a newly finalized order and returns it with its
// assigned id.
func InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	result, err := GetCollection("orders").InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		order.ID = oid
	}
	return order, nil
}

// OrderByID fetches one order, (nil, nil) when the id is malformed or no
// order exists for it.
func OrderByID(ctx context.Context, id string) (*models.Order, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var order models.Order
	err = GetCollection("orders").FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrdersByUser lists a user's orders, most recent first.
func OrdersByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := GetCollection("orders").Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkOrderPaid flips the payment flag with a single-document $set. The
// update targets one order by id, so concurrent webhook deliveries for
// different orders cannot race each other, and replays for the same
// order simply overwrite paidAt.
func MarkOrderPaid(ctx context.Context, id string, paidAt time.Time) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = GetCollection("orders").UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"isPaid":               true,
			"paidAt":               paidAt,
			"paymentResult.status": "paid",
			"updatedAt":            time.Now(),
		}},
	)
	return err
}

// SetCheckoutSession records the gateway correlation ids on the order
// after a checkout session is opened for it.
func SetCheckoutSession(ctx context.Context, id bson.ObjectID, sessionID string) error {
	_, err := GetCollection("orders").UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"checkoutSessionId": sessionID,
			"updatedAt":         time.Now(),
		}},
	)
	return err
}

// OrderStore adapts the package functions to the checkout.OrderStore and
// payment.OrderStore interfaces.
type OrderStore struct{}

func (OrderStore) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	return InsertOrder(ctx, order)
}

func (OrderStore) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	return OrderByID(ctx, id)
}

func (OrderStore) MarkOrderPaid(ctx context.Context, id string, paidAt time.Time) error {
	return MarkOrderPaid(ctx, id, paidAt)
}
