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

type contactRepository struct {
	collection *mongo.Collection
}

func NewContactRepository(db *mongo.Database) interfaces.ContactRepository {
	return &contactRepository{
		collection: db.Collection("emergency_contacts"),
	}
}

func (r *contactRepository) Create(ctx context.Context, contact *models.EmergencyContact) error {
	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, contact)
	if err != nil {
		return fmt.Errorf("failed to create emergency contact: %w", err)
	}

	return nil
}

func (r *contactRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.EmergencyContact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergency contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var contacts []*models.EmergencyContact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode emergency contacts: %w", err)
	}

	return contacts, nil
}

func (r *contactRepository) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count emergency contacts: %w", err)
	}

	return count, nil
}

func (r *contactRepository) Delete(ctx context.Context, userID, contactID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":     contactID,
		"user_id": userID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete emergency contact: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("contact %s: %w", contactID.Hex(), utils.ErrNotFound)
	}

	return nil
}
