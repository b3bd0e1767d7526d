package interfaces

import (
	"context"

	"deadyet/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CheckInRepository interface {
	// UpsertForDay writes the day's record, replacing any prior record for
	// the same (user, date). Reports whether an existing record was replaced.
	UpsertForDay(ctx context.Context, record *models.CheckInRecord) (bool, error)

	// GetRecent returns up to limit records, descending by timestamp.
	GetRecent(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.CheckInRecord, error)

	// PruneHistory drops records beyond the keep most recent for the user.
	PruneHistory(ctx context.Context, userID primitive.ObjectID, keep int) (int64, error)
}
