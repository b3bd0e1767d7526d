package interfaces

import (
	"context"

	"deadyet/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *models.EmergencyContact) error
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.EmergencyContact, error)
	CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)

	// Delete removes a contact owned by the user; wraps utils.ErrNotFound
	// when the contact does not exist or belongs to someone else.
	Delete(ctx context.Context, userID, contactID primitive.ObjectID) error
}
