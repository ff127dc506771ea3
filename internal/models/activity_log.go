package models

import (
	"time"
)

// ActivityLog is one append-only audit entry. Rows are never updated or
// deleted; no such operation exists for this entity.
type ActivityLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       *uint     `gorm:"index" json:"user_id"`
	Action       string    `gorm:"size:50;not null" json:"action"`
	ResourceType string    `gorm:"size:50;not null" json:"resource_type"`
	ResourceID   *uint     `json:"resource_id"`
	Details      string    `gorm:"type:text" json:"details"`
	Timestamp    time.Time `gorm:"autoCreateTime" json:"timestamp"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Action constants
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionLoggedIn  = "logged_in"
	ActionGenerated = "generated"
)

// Resource type constants
const (
	ResourceUser     = "user"
	ResourceItem     = "item"
	ResourceSupplier = "supplier"
	ResourceReport   = "report"
)

// ActivityLogResponse is the JSON response format for audit entries
type ActivityLogResponse struct {
	ID           uint      `json:"id"`
	User         string    `json:"user"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	Details      string    `json:"details"`
	Timestamp    time.Time `json:"timestamp"`
}

// ToResponse converts ActivityLog to ActivityLogResponse. Entries whose user
// row no longer resolves render as "System".
func (l *ActivityLog) ToResponse() ActivityLogResponse {
	username := "System"
	if l.User != nil {
		username = l.User.Username
	}
	return ActivityLogResponse{
		ID:           l.ID,
		User:         username,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		Details:      l.Details,
		Timestamp:    l.Timestamp,
	}
}
