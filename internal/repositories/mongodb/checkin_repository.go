package mongodb

import (
	"context"
	"fmt"
	"time"

	"deadyet/internal/models"
	"deadyet/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type checkInRepository struct {
	collection *mongo.Collection
}

func NewCheckInRepository(db *mongo.Database) interfaces.CheckInRepository {
	return &checkInRepository{
		collection: db.Collection("checkins"),
	}
}

func (r *checkInRepository) UpsertForDay(ctx context.Context, record *models.CheckInRecord) (bool, error) {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	record.CreatedAt = time.Now()

	filter := bson.M{
		"user_id": record.UserID,
		"date":    record.Date,
	}

	// Last write wins for the day: the replacement keeps the existing _id so
	// the unique (user_id, date) index is never violated.
	update := bson.M{
		"$set": bson.M{
			"timestamp":  record.Timestamp,
			"created_at": record.CreatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":     record.ID,
			"user_id": record.UserID,
			"date":    record.Date,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to upsert check-in record: %w", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *checkInRepository) GetRecent(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.CheckInRecord, error) {
	if limit <= 0 || limit > models.HistoryLimit {
		limit = models.HistoryLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in history: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*models.CheckInRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode check-in history: %w", err)
	}

	return records, nil
}

func (r *checkInRepository) PruneHistory(ctx context.Context, userID primitive.ObjectID, keep int) (int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(keep)).
		SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to find stale check-in records: %w", err)
	}
	defer cursor.Close(ctx)

	var stale []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &stale); err != nil {
		return 0, fmt.Errorf("failed to decode stale check-in records: %w", err)
	}

	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]primitive.ObjectID, len(stale))
	for i, doc := range stale {
		ids[i] = doc.ID
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to prune check-in history: %w", err)
	}

	return result.DeletedCount, nil
}
