package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmergencyContact struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Name      string             `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Phone     string             `json:"phone" bson:"phone"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type AddContactRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}
