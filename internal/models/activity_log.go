package models

import (
	"time"
)

// ActivityLog records one lifecycle event on a goal or campaign; the dashboard
// consumes these both as a history listing and as a live SSE stream.
type ActivityLog struct {
	ID string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`

	// Entity identification
	EntityType string `json:"entity_type" gorm:"type:varchar(50);not null;index" example:"goal"` // "goal", "campaign"
	EntityID   string `json:"entity_id" gorm:"type:uuid;not null;index"`

	// Who triggered the transition
	ActorID string `json:"actor_id" gorm:"type:uuid;index"`

	// What happened
	Action  string `json:"action" gorm:"type:varchar(50);not null;index" example:"published"` // "created", "cloned", "draft_updated", "published", "archived", "status_changed"
	Message string `json:"message" gorm:"type:text;not null"`

	// Additional metadata
	Metadata JSON `json:"metadata,omitempty" gorm:"type:jsonb"` // {version_no, source_goal_id, previous_status, etc.}

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ActivityLogResponse represents the response for activity log reads
type ActivityLogResponse struct {
	ID         string `json:"id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	ActorID    string `json:"actor_id,omitempty"`
	Action     string `json:"action"`
	Message    string `json:"message"`
	Metadata   JSON   `json:"metadata,omitempty"`
	CreatedAt  string `json:"created_at"`
}
