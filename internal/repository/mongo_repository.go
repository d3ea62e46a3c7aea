package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) CartRepository {
	return &mongoRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoRepository) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: get cart: %v", ErrStorageUnavailable, err)
	}

	now := time.Now()
	fresh := domain.Cart{
		UserID:      userID,
		Items:       []domain.CartItem{},
		TotalAmount: 0,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := m.collection.InsertOne(ctx, fresh)
	if err != nil {
		// A concurrent first touch for the same user hits the unique
		// user_id index; the loser reads the winner's document.
		if mongo.IsDuplicateKeyError(err) {
			if e2 := m.collection.FindOne(ctx, filter).Decode(&cart); e2 != nil {
				return nil, fmt.Errorf("%w: get cart after insert race: %v", ErrStorageUnavailable, e2)
			}
			return &cart, nil
		}
		return nil, fmt.Errorf("%w: create cart: %v", ErrStorageUnavailable, err)
	}

	if oid, ok := res.InsertedID.(interface{ Hex() string }); ok {
		fresh.ID = oid.Hex()
	}
	return &fresh, nil
}

// Replace commits the reconciler's output with a compare-and-swap on the
// version field. MatchedCount == 0 means either the cart vanished or someone
// else committed first; both surface as ErrVersionConflict so the caller
// re-reads.
func (m *mongoRepository) Replace(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	now := time.Now()

	filter := bson.M{
		"user_id": cart.UserID,
		"version": cart.Version,
	}
	update := bson.M{
		"$set": bson.M{
			"items":        cart.Items,
			"total_amount": cart.TotalAmount,
			"updated_at":   now,
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("%w: replace cart: %v", ErrStorageUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrVersionConflict
	}

	persisted := *cart
	persisted.Version = cart.Version + 1
	persisted.UpdatedAt = now
	return &persisted, nil
}

// CreateIndexes sets up the unique ownership key and a 90 day TTL on idle
// carts.
func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60),
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}
