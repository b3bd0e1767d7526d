package mongodb

import (
	"context"
	"fmt"
	"time"

	"deadyet/internal/models"
	"deadyet/internal/repositories/interfaces"
	"deadyet/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type profileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) interfaces.ProfileRepository {
	return &profileRepository{
		collection: db.Collection("profiles"),
	}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("profile %s: %w", userID.Hex(), utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) Ensure(ctx context.Context, userID primitive.ObjectID, username string) (*models.UserProfile, error) {
	now := time.Now()

	update := bson.M{
		"$setOnInsert": bson.M{
			"user_id":           userID,
			"last_check_in":     nil,
			"notification_sent": false,
			"created_at":        now,
		},
		"$set": bson.M{
			"username":   username,
			"updated_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile models.UserProfile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&profile)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) RecordCheckIn(ctx context.Context, userID primitive.ObjectID, at time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"last_check_in":     at,
			"notification_sent": false,
			"updated_at":        time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to record check-in on profile: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("profile %s: %w", userID.Hex(), utils.ErrNotFound)
	}

	return nil
}

func (r *profileRepository) MarkNotified(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"notification_sent": true,
			"updated_at":        time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark profile notified: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("profile %s: %w", userID.Hex(), utils.ErrNotFound)
	}

	return nil
}

func (r *profileRepository) ListOverdue(ctx context.Context, cutoff time.Time) ([]*models.UserProfile, error) {
	filter := bson.M{
		"last_check_in":     bson.M{"$ne": nil, "$lt": cutoff},
		"notification_sent": false,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.UserProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode overdue profiles: %w", err)
	}

	return profiles, nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]*models.UserProfile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.UserProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	return profiles, nil
}
