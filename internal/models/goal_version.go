package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// VersionState tracks the lifecycle of a single goal version row
type VersionState string

const (
	VersionStateDraft     VersionState = "draft"
	VersionStatePublished VersionState = "published"
	VersionStateRetired   VersionState = "retired"
)

// FailureType classifies a scorecard parameter failure
const (
	FailureTypeFatal    = "FATAL"
	FailureTypeNonFatal = "NON_FATAL"
)

// StringList is a jsonb-backed list of strings (tags)
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSONB(value, l)
}

// OutcomeField is one attribute the goal elicits from a conversation
type OutcomeField struct {
	AttributeName     string  `json:"attribute_name"`
	DataType          string  `json:"data_type"`
	ElicitationPrompt string  `json:"elicitation_prompt"`
	IsRequired        bool    `json:"is_required"`
	IsPII             bool    `json:"is_pii"`
	Weight            float64 `json:"weight"`
}

// OutcomeFieldList is a jsonb-backed ordered list of outcome fields
type OutcomeFieldList []OutcomeField

func (l OutcomeFieldList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *OutcomeFieldList) Scan(value interface{}) error {
	return scanJSONB(value, l)
}

// Insight is a named analytic toggle on a goal version
type Insight struct {
	Name      string `json:"name"`
	IsEnabled bool   `json:"is_enabled"`
}

type InsightList []Insight

func (l InsightList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *InsightList) Scan(value interface{}) error {
	return scanJSONB(value, l)
}

// Disposition is a categorized conversation outcome label
type Disposition struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type DispositionList []Disposition

func (l DispositionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *DispositionList) Scan(value interface{}) error {
	return scanJSONB(value, l)
}

// ScorecardParameter is one scored dimension of a goal's scorecard
type ScorecardParameter struct {
	Name                string `json:"name"`
	ScoringType         string `json:"scoring_type"`
	FailureType         string `json:"failure_type"` // FATAL or NON_FATAL
	MaxScore            int    `json:"max_score"`
	RulesAndExplanation string `json:"rules_and_explanation"`
}

type ScorecardParameterList []ScorecardParameter

func (l ScorecardParameterList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ScorecardParameterList) Scan(value interface{}) error {
	return scanJSONB(value, l)
}

// GoalVersion is one immutable-once-published version of a goal's
// configuration. Identity is (goal_id, version_no).
type GoalVersion struct {
	ID        string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	GoalID    string       `json:"goal_id" gorm:"not null;type:uuid;uniqueIndex:idx_goal_versions_goal_version"`
	VersionNo int          `json:"version_no" gorm:"not null;uniqueIndex:idx_goal_versions_goal_version"`
	State     VersionState `json:"state" gorm:"type:varchar(20);not null;default:'draft';index"`

	Name                string                 `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID             string                 `json:"owner_id" gorm:"type:uuid;index"`
	Tags                StringList             `json:"tags" gorm:"type:jsonb"`
	PromptText          string                 `json:"prompt_text" gorm:"type:text"`
	OutcomeFields       OutcomeFieldList       `json:"outcome_fields" gorm:"type:jsonb"`
	Insights            InsightList            `json:"insights" gorm:"type:jsonb"`
	Dispositions        DispositionList        `json:"dispositions" gorm:"type:jsonb"`
	ScorecardParameters ScorecardParameterList `json:"scorecard_parameters" gorm:"type:jsonb"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Goal Goal `json:"-" gorm:"foreignKey:GoalID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the GoalVersion model
func (GoalVersion) TableName() string {
	return "goal_versions"
}

// GoalVersionResponse represents the response for goal version reads
type GoalVersionResponse struct {
	GoalID              string                 `json:"goal_id"`
	VersionNo           int                    `json:"version_no"`
	State               string                 `json:"state"`
	Name                string                 `json:"name"`
	OwnerID             string                 `json:"owner_id,omitempty"`
	Tags                StringList             `json:"tags,omitempty"`
	PromptText          string                 `json:"prompt_text,omitempty"`
	OutcomeFields       OutcomeFieldList       `json:"outcome_fields,omitempty"`
	Insights            InsightList            `json:"insights,omitempty"`
	Dispositions        DispositionList        `json:"dispositions,omitempty"`
	ScorecardParameters ScorecardParameterList `json:"scorecard_parameters,omitempty"`
	PublishedAt         *string                `json:"published_at,omitempty"`
	UpdatedAt           string                 `json:"updated_at"`
}

// ResolvedVersionResponse carries a version together with the trace of which
// variant satisfied the active-then-draft fallback.
type ResolvedVersionResponse struct {
	Version      *GoalVersionResponse `json:"version"`
	ResolvedFrom string               `json:"resolved_from"` // "active" or "draft"
}
