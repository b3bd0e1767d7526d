package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserProfile struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID           primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Username         string             `json:"username" bson:"username"`
	LastCheckIn      *time.Time         `json:"last_check_in" bson:"last_check_in"`
	NotificationSent bool               `json:"notification_sent" bson:"notification_sent"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProfileView is the read model returned to clients: the stored profile plus
// the status derived from it at read time.
type ProfileView struct {
	UserID           primitive.ObjectID `json:"user_id"`
	Username         string             `json:"username"`
	LastCheckIn      *time.Time         `json:"last_check_in"`
	HoursSince       *float64           `json:"hours_since_last_check_in"`
	Status           Status             `json:"status"`
	NotificationSent bool               `json:"notification_sent"`
	CheckedAt        time.Time          `json:"checked_at"`
}
