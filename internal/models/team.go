package models

import (
	"time"
)

// Team represents a group of agents working under a team leader
type Team struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;unique;index"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Members []User `json:"members,omitempty" gorm:"many2many:team_members;"`
}

// TableName specifies the table name for the Team model
func (Team) TableName() string {
	return "accounts_teams"
}

// CreateTeamRequest represents the request to create a new team
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required" example:"Renewals East"`
	Description string `json:"description" example:"East-coast renewal agents"`
}

// UpdateTeamRequest represents the request to update a team
type UpdateTeamRequest struct {
	Name        string `json:"name" binding:"required" example:"Renewals East"`
	Description string `json:"description"`
}

// TeamMemberRequest represents a membership add/remove request
type TeamMemberRequest struct {
	UserID string `json:"user_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// TeamResponse represents the response for team operations
type TeamResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"member_count"`
	CreatedAt   string `json:"created_at"`
}
