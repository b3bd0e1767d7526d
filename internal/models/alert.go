package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlertContact is a destination for a single alert, independent of whether it
// came from the contact registry or an ad-hoc request.
type AlertContact struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

type ManualAlertRequest struct {
	Contacts    []AlertContact `json:"contacts"`
	UserName    string         `json:"user_name"`
	LastCheckIn string         `json:"last_check_in"`
}

// ContactResult records the outcome of one per-contact send attempt.
type ContactResult struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Sent      bool   `json:"sent"`
	ReceiptID string `json:"receipt_id,omitempty"`
	Error     string `json:"error,omitempty"`
	SMSSent   bool   `json:"sms_sent,omitempty"`
	SMSError  string `json:"sms_error,omitempty"`
}

// DispatchReport is the joined outcome of one fan-out dispatch batch. Mixed
// outcomes are data, not an error: Failed > 0 with Sent > 0 is the partial
// failure case.
type DispatchReport struct {
	Sent     int             `json:"sent"`
	Failed   int             `json:"failed"`
	Contacts []ContactResult `json:"contacts"`
}

type UserSweepResult struct {
	UserID      primitive.ObjectID `json:"user_id"`
	Username    string             `json:"username"`
	LastCheckIn *time.Time         `json:"last_check_in"`
	Notified    bool               `json:"notified"`
	Skipped     bool               `json:"skipped"`
	Reason      string             `json:"reason,omitempty"`
	Dispatch    *DispatchReport    `json:"dispatch,omitempty"`
}

type SweepReport struct {
	UsersScanned   int               `json:"users_scanned"`
	UsersNotified  int               `json:"users_notified"`
	UsersSkipped   int               `json:"users_skipped"`
	PerUser        []UserSweepResult `json:"per_user"`
	StartedAt      time.Time         `json:"started_at"`
	FinishedAt     time.Time         `json:"finished_at"`
	AlreadyRunning bool              `json:"already_running,omitempty"`
}

// UserStatusInfo is one row of the admin status overview.
type UserStatusInfo struct {
	UserID           primitive.ObjectID `json:"user_id"`
	Username         string             `json:"username"`
	LastCheckIn      *time.Time         `json:"last_check_in"`
	HoursSince       *float64           `json:"hours_since_last_check_in"`
	Status           Status             `json:"status"`
	ContactCount     int64              `json:"emergency_contacts_count"`
	NotificationSent bool               `json:"notification_sent"`
}

type OverviewSummary struct {
	Total   int `json:"total"`
	Safe    int `json:"safe"`
	Warning int `json:"warning"`
	Danger  int `json:"danger"`
	Never   int `json:"never"`
}

type OverviewReport struct {
	Summary   OverviewSummary  `json:"summary"`
	Users     []UserStatusInfo `json:"users"`
	CheckedAt time.Time        `json:"checked_at"`
}
