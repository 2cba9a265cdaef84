package models

import (
	"time"
)

// CampaignStatus enumerates the lifecycle states of a campaign
type CampaignStatus string

const (
	CampaignStatusUpcoming  CampaignStatus = "UPCOMING"
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"
	CampaignStatusCanceled  CampaignStatus = "CANCELED"
	CampaignStatusArchived  CampaignStatus = "ARCHIVED"
)

// IsTerminal reports whether the campaign no longer blocks edits to its goal.
// Upcoming and active campaigns keep the goal "live" and lock its draft.
func (s CampaignStatus) IsTerminal() bool {
	switch s {
	case CampaignStatusCompleted, CampaignStatusCanceled, CampaignStatusArchived:
		return true
	}
	return false
}

// IsValid reports whether s is a known campaign status
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusUpcoming, CampaignStatusActive, CampaignStatusCompleted,
		CampaignStatusCanceled, CampaignStatusArchived:
		return true
	}
	return false
}

// Campaign is a time-bounded assignment of a goal (at its published version at
// creation time) to a team.
type Campaign struct {
	ID            string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name          string         `json:"name" gorm:"type:varchar(255);not null"`
	Status        CampaignStatus `json:"status" gorm:"type:varchar(20);not null;default:'UPCOMING';index"`
	GoalID        string         `json:"goal_id" gorm:"not null;index;type:uuid"`
	GoalVersionNo int            `json:"goal_version_no" gorm:"not null"`
	TeamID        *string        `json:"team_id" gorm:"type:uuid;index"`
	StartsAt      *time.Time     `json:"starts_at" gorm:"index"`
	EndsAt        *time.Time     `json:"ends_at" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Goal Goal  `json:"goal,omitempty" gorm:"foreignKey:GoalID;references:ID"`
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// CreateCampaignRequest represents the request to create a new campaign.
// Dates arrive date-only and are normalized to midnight UTC before storage.
type CreateCampaignRequest struct {
	Name      string  `json:"name" binding:"required" example:"Q1 renewal push"`
	GoalID    string  `json:"goal_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	TeamID    *string `json:"team_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440001"`
	StartDate string  `json:"start_date,omitempty" example:"2025-02-01"`
	EndDate   string  `json:"end_date,omitempty" example:"2025-03-01"`
}

// UpdateCampaignRequest represents the request to update a campaign
type UpdateCampaignRequest struct {
	Name      string  `json:"name" binding:"required" example:"Q1 renewal push"`
	Status    string  `json:"status,omitempty" example:"ACTIVE"`
	TeamID    *string `json:"team_id,omitempty"`
	StartDate string  `json:"start_date,omitempty" example:"2025-02-01"`
	EndDate   string  `json:"end_date,omitempty" example:"2025-03-01"`
}

// CampaignMetrics holds metrics derived from the campaign's conversations
type CampaignMetrics struct {
	Conversations  int      `json:"conversations" example:"120"`
	AvgScore       *float64 `json:"avg_score,omitempty" example:"82.5"`
	CompletionRate float64  `json:"completion_rate" example:"0.85"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID            string           `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name          string           `json:"name" example:"Q1 renewal push"`
	Status        CampaignStatus   `json:"status" example:"ACTIVE"`
	GoalID        string           `json:"goal_id"`
	GoalVersionNo int              `json:"goal_version_no" example:"1"`
	TeamID        *string          `json:"team_id,omitempty"`
	StartsAt      *time.Time       `json:"starts_at,omitempty" example:"2025-02-01T00:00:00Z"`
	EndsAt        *time.Time       `json:"ends_at,omitempty" example:"2025-03-01T00:00:00Z"`
	Metrics       *CampaignMetrics `json:"metrics,omitempty"`
	CreatedAt     string           `json:"created_at" example:"2025-01-09T10:30:00Z"`
	UpdatedAt     string           `json:"updated_at" example:"2025-01-09T10:30:00Z"`
}

// CampaignListResponse wraps a filtered campaign listing. Total counts the
// unfiltered collection, Count the filtered result set.
type CampaignListResponse struct {
	Campaigns []*CampaignResponse `json:"campaigns"`
	Count     int                 `json:"count"`
	Total     int                 `json:"total"`
}
