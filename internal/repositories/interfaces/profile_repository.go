package interfaces

import (
	"context"
	"time"

	"deadyet/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileRepository interface {
	// GetByUserID returns the profile, or an error wrapping utils.ErrNotFound.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error)

	// Ensure creates the profile on first use and returns it either way.
	Ensure(ctx context.Context, userID primitive.ObjectID, username string) (*models.UserProfile, error)

	// RecordCheckIn sets last_check_in and clears the notification flag.
	RecordCheckIn(ctx context.Context, userID primitive.ObjectID, at time.Time) error

	// MarkNotified sets the notification flag after a dispatch attempt.
	MarkNotified(ctx context.Context, userID primitive.ObjectID) error

	// ListOverdue returns profiles with last_check_in before the cutoff and
	// the notification flag still clear. Never-checked-in users are excluded.
	ListOverdue(ctx context.Context, cutoff time.Time) ([]*models.UserProfile, error)

	ListAll(ctx context.Context) ([]*models.UserProfile, error)
}
