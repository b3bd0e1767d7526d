package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusNever   Status = "never"
	StatusSafe    Status = "safe"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

const (
	// WarningAfter is the elapsed time after which a user stops being "safe".
	WarningAfter = 24 * time.Hour
	// DangerAfter is the threshold window after which the sweep notifies
	// emergency contacts.
	DangerAfter = 48 * time.Hour

	// HistoryLimit caps the number of retained check-in records per user.
	HistoryLimit = 30
)

type CheckInRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Date      string             `json:"date" bson:"date" validate:"required"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp" validate:"required"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// StatusFor classifies how overdue a user is. Boundaries are strict: exactly
// 24h elapsed is warning, exactly 48h elapsed is danger.
func StatusFor(lastCheckIn *time.Time, now time.Time) Status {
	if lastCheckIn == nil {
		return StatusNever
	}

	elapsed := now.Sub(*lastCheckIn)
	switch {
	case elapsed < WarningAfter:
		return StatusSafe
	case elapsed < DangerAfter:
		return StatusWarning
	default:
		return StatusDanger
	}
}

// HoursSince returns the elapsed hours since the last check-in, or nil when
// the user has never checked in.
func HoursSince(lastCheckIn *time.Time, now time.Time) *float64 {
	if lastCheckIn == nil {
		return nil
	}

	hours := now.Sub(*lastCheckIn).Hours()
	return &hours
}

// DayKey computes the calendar-day bucket for same-day de-duplication.
// Days are bucketed in UTC so the key is stable regardless of where the
// request was served.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
