package models

import (
	"time"
)

// NotificationPreference is the global default on/off switch and message
// template for one workflow node, based on the 'notification_preferences' table.
type NotificationPreference struct {
	ID                  int64      `json:"id" db:"id"`
	NodeNumber          int        `json:"nodeNumber" db:"node_number" example:"3"`
	NodeName            string     `json:"nodeName" db:"node_name" example:"Release Form"`
	NotificationMessage string     `json:"notificationMessage" db:"notification_message"`
	Enabled             bool       `json:"enabled" db:"enabled"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// ProgramNotificationPreference is a per-program override of the global
// preference for one node. A nil Enabled means "inherit the global setting".
type ProgramNotificationPreference struct {
	ID         int64      `json:"id" db:"id"`
	ProgramID  int64      `json:"programId" db:"program_id"`
	NodeNumber int        `json:"nodeNumber" db:"node_number"`
	Enabled    *bool      `json:"enabled" db:"enabled"` // nil = use global, true/false = override
	Message    *string    `json:"message,omitempty" db:"message"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// Notification types
const (
	NotificationTypeRefillRequired = "REFILL_REQUIRED"
)

// Notification is an alert raised for an incharge, currently only used when
// an approved sewadar drops out and the position needs refilling.
type Notification struct {
	ID               int64     `json:"id" db:"id"`
	ProgramID        int64     `json:"programId" db:"program_id"`
	DroppedZonalID   string    `json:"droppedSewadarId" db:"dropped_zonal_id"`
	InchargeZonalID  string    `json:"inchargeId" db:"incharge_zonal_id"`
	NotificationType string    `json:"notificationType" db:"notification_type" example:"REFILL_REQUIRED"`
	Message          string    `json:"message" db:"message"`
	Resolved         bool      `json:"resolved" db:"resolved"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}
