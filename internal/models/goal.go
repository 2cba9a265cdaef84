package models

import (
	"time"
)

// Goal represents a conversation-quality goal. A goal owns at most one draft
// version and at most one published version at any time; the version rows
// themselves live in goal_versions.
type Goal struct {
	ID                 string  `json:"goal_id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name               string  `json:"goal_name" gorm:"type:varchar(255);not null"`
	Description        string  `json:"description" gorm:"type:text"`
	TeamID             *string `json:"team_id" gorm:"type:uuid;index"` // default assigned team
	PublishedVersionNo *int    `json:"published_version_no" gorm:"index"`
	DraftVersionNo     *int    `json:"draft_version_no"`
	IsArchived         bool    `json:"is_archived" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Team      *Team         `json:"team,omitempty" gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:SET NULL"`
	Versions  []GoalVersion `json:"versions,omitempty" gorm:"foreignKey:GoalID;references:ID;constraint:OnDelete:CASCADE"`
	Campaigns []Campaign    `json:"campaigns,omitempty" gorm:"foreignKey:GoalID;references:ID"`
}

// TableName specifies the table name for the Goal model
func (Goal) TableName() string {
	return "goals"
}

// GoalVersionPayload carries the editable content of a goal version. It is
// embedded in create/clone/edit requests and copied verbatim into version rows.
type GoalVersionPayload struct {
	OwnerID             string                 `json:"owner_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440001"`
	Tags                StringList             `json:"tags,omitempty"`
	PromptText          string                 `json:"prompt_text,omitempty"`
	OutcomeFields       OutcomeFieldList       `json:"outcome_fields,omitempty"`
	Insights            InsightList            `json:"insights,omitempty"`
	Dispositions        DispositionList        `json:"dispositions,omitempty"`
	ScorecardParameters ScorecardParameterList `json:"scorecard_parameters,omitempty"`
}

// CreateGoalRequest represents the request to create a new goal with its
// initial draft version
type CreateGoalRequest struct {
	Name        string  `json:"goal_name" binding:"required" example:"Mortgage renewal QA"`
	Description string  `json:"description" example:"Quality bar for renewal conversations"`
	TeamID      *string `json:"team_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	GoalVersionPayload
}

// UpdateDraftRequest represents the request to edit a goal's draft version
type UpdateDraftRequest struct {
	Name        string `json:"goal_name" binding:"required" example:"Mortgage renewal QA"`
	Description string `json:"description"`
	GoalVersionPayload
}

// CloneGoalRequest represents the request to clone a goal from its published
// version. An empty name defaults to "Copy of <source name>".
type CloneGoalRequest struct {
	Name string `json:"goal_name,omitempty" example:"Mortgage renewal QA (pilot)"`
}

// GoalResponse represents the response for goal operations
type GoalResponse struct {
	ID                 string  `json:"goal_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name               string  `json:"goal_name" example:"Mortgage renewal QA"`
	Description        string  `json:"description"`
	TeamID             *string `json:"team_id,omitempty"`
	PublishedVersionNo *int    `json:"published_version_no" example:"1"`
	DraftVersionNo     *int    `json:"draft_version_no" example:"2"`
	Editable           *bool   `json:"editable,omitempty"` // advisory; re-checked on edit submit
	UpdatedAt          string  `json:"updated_at" example:"2025-01-09T10:30:00Z"`
}

// GoalSummaryResponse represents one entry of the active-summary listing:
// a published goal with its dependent-campaign counts.
type GoalSummaryResponse struct {
	ID                 string `json:"goal_id"`
	Name               string `json:"goal_name"`
	PublishedVersionNo int    `json:"published_version_no"`
	CampaignCount      int    `json:"campaign_count"`
	ActiveCampaigns    int    `json:"active_campaigns"`
}

// GoalListResponse wraps a filtered goal listing. Total always counts the full
// unfiltered collection; Count counts the filtered result set.
type GoalListResponse struct {
	Goals []*GoalResponse `json:"goals"`
	Count int             `json:"count"`
	Total int             `json:"total"`
}

// EditabilityResponse reports whether a goal's draft may currently be edited
type EditabilityResponse struct {
	GoalID   string `json:"goal_id"`
	Editable bool   `json:"editable"`
}

// OwnerResponse is a reference entity for dropdown population
type OwnerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
