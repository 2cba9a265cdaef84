package services

import (
	"github.com/converseiq/converseiq-backend/internal/models"
)

// GoalState is the derived lifecycle state of a goal, computed from its
// version pointers rather than stored.
type GoalState string

const (
	GoalStateNoVersion      GoalState = "no_version"
	GoalStateDraft          GoalState = "draft"
	GoalStatePublished      GoalState = "published"
	GoalStateDraftPublished GoalState = "draft_published"
	GoalStateArchived       GoalState = "archived"
)

// StateOf derives the lifecycle state from the goal's version pointers.
// Archived dominates every other state.
func StateOf(goal *models.Goal) GoalState {
	if goal.IsArchived {
		return GoalStateArchived
	}
	switch {
	case goal.DraftVersionNo != nil && goal.PublishedVersionNo != nil:
		return GoalStateDraftPublished
	case goal.DraftVersionNo != nil:
		return GoalStateDraft
	case goal.PublishedVersionNo != nil:
		return GoalStatePublished
	default:
		return GoalStateNoVersion
	}
}

// CanPublish reports whether the goal has a draft to promote
func CanPublish(goal *models.Goal) error {
	if goal.IsArchived {
		return ErrConflict
	}
	if goal.DraftVersionNo == nil {
		return ErrConflict
	}
	return nil
}

// ApplyPublish moves the draft pointer into the published slot. The caller
// persists the goal and retires the previously published version row.
func ApplyPublish(goal *models.Goal) {
	goal.PublishedVersionNo = goal.DraftVersionNo
	goal.DraftVersionNo = nil
}

// CanClone reports whether the goal has published content to copy from
func CanClone(goal *models.Goal) error {
	if goal.PublishedVersionNo == nil {
		return ErrPreconditionFailed
	}
	return nil
}

// CanEditDraft reports whether the goal accepts draft edits
func CanEditDraft(goal *models.Goal) error {
	if goal.IsArchived {
		return ErrConflict
	}
	return nil
}

// CanArchive reports whether the goal may be archived given its dependent
// campaign counts. Active dependents block archival.
func CanArchive(goal *models.Goal, activeCampaigns int64) error {
	if goal.IsArchived {
		return ErrConflict
	}
	if activeCampaigns > 0 {
		return ErrConflict
	}
	return nil
}

// SeedCloneDraft builds the version-1 draft row for a cloned goal from the
// source's published version. Draft-only work on the source never carries
// over; the clone sees only what the source had published.
func SeedCloneDraft(cloneGoalID, name string, published *models.GoalVersion) *models.GoalVersion {
	return &models.GoalVersion{
		GoalID:              cloneGoalID,
		VersionNo:           1,
		State:               models.VersionStateDraft,
		Name:                name,
		OwnerID:             published.OwnerID,
		Tags:                published.Tags,
		PromptText:          published.PromptText,
		OutcomeFields:       published.OutcomeFields,
		Insights:            published.Insights,
		Dispositions:        published.Dispositions,
		ScorecardParameters: published.ScorecardParameters,
	}
}

// NextDraftVersion picks the version number for a fresh draft: one past the
// highest version the goal has ever had.
func NextDraftVersion(goal *models.Goal) int {
	next := 1
	if goal.PublishedVersionNo != nil && *goal.PublishedVersionNo >= next {
		next = *goal.PublishedVersionNo + 1
	}
	if goal.DraftVersionNo != nil && *goal.DraftVersionNo >= next {
		next = *goal.DraftVersionNo + 1
	}
	return next
}
