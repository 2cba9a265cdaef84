package models

import (
	"time"
)

// Conversation is one scored contact-center interaction attributed to a
// campaign. Rows are written by the external conversation pipeline through the
// API-key ingest endpoint and are read-only afterwards.
type Conversation struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CampaignID      string    `json:"campaign_id" gorm:"not null;index;type:uuid"`
	TeamID          *string   `json:"team_id" gorm:"type:uuid;index"`
	AgentID         *string   `json:"agent_id" gorm:"type:uuid;index"`
	ExternalRef     string    `json:"external_ref" gorm:"type:varchar(255);index"`
	Score           *float64  `json:"score"`
	DurationSeconds int       `json:"duration_seconds" gorm:"default:0"`
	Disposition     string    `json:"disposition" gorm:"type:varchar(100);index"`
	IsCompleted     bool      `json:"is_completed" gorm:"default:false;index"`
	OccurredAt      time.Time `json:"occurred_at" gorm:"not null;index"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Campaign Campaign `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Conversation model
func (Conversation) TableName() string {
	return "conversations"
}

// IngestConversationRequest represents a conversation record pushed by the
// external pipeline
type IngestConversationRequest struct {
	CampaignID      string   `json:"campaign_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	TeamID          *string  `json:"team_id,omitempty"`
	AgentID         *string  `json:"agent_id,omitempty"`
	ExternalRef     string   `json:"external_ref,omitempty" example:"call-20250109-00042"`
	Score           *float64 `json:"score,omitempty" example:"82.5"`
	DurationSeconds int      `json:"duration_seconds,omitempty" example:"340"`
	Disposition     string   `json:"disposition,omitempty" example:"RESOLVED"`
	IsCompleted     bool     `json:"is_completed"`
	OccurredAt      string   `json:"occurred_at" binding:"required" example:"2025-01-09T10:30:00Z"`
}

// ConversationResponse represents the response for conversation reads
type ConversationResponse struct {
	ID              string   `json:"id"`
	CampaignID      string   `json:"campaign_id"`
	TeamID          *string  `json:"team_id,omitempty"`
	AgentID         *string  `json:"agent_id,omitempty"`
	ExternalRef     string   `json:"external_ref,omitempty"`
	Score           *float64 `json:"score,omitempty"`
	DurationSeconds int      `json:"duration_seconds"`
	Disposition     string   `json:"disposition,omitempty"`
	IsCompleted     bool     `json:"is_completed"`
	OccurredAt      string   `json:"occurred_at"`
}

// ConversationListResponse wraps a skip/limit page of conversations
type ConversationListResponse struct {
	Conversations []*ConversationResponse `json:"conversations"`
	Total         int64                   `json:"total"`
	Skip          int                     `json:"skip"`
	Limit         int                     `json:"limit"`
}
