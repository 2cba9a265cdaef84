package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/converseiq/converseiq-backend/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		name string
		goal *models.Goal
		want GoalState
	}{
		{
			name: "no versions",
			goal: &models.Goal{},
			want: GoalStateNoVersion,
		},
		{
			name: "draft only",
			goal: &models.Goal{DraftVersionNo: intPtr(1)},
			want: GoalStateDraft,
		},
		{
			name: "published only",
			goal: &models.Goal{PublishedVersionNo: intPtr(1)},
			want: GoalStatePublished,
		},
		{
			name: "published with pending draft",
			goal: &models.Goal{PublishedVersionNo: intPtr(1), DraftVersionNo: intPtr(2)},
			want: GoalStateDraftPublished,
		},
		{
			name: "archived dominates version pointers",
			goal: &models.Goal{PublishedVersionNo: intPtr(1), DraftVersionNo: intPtr(2), IsArchived: true},
			want: GoalStateArchived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(tt.goal))
		})
	}
}

func TestCanPublish(t *testing.T) {
	tests := []struct {
		name    string
		goal    *models.Goal
		wantErr error
	}{
		{
			name:    "draft ready",
			goal:    &models.Goal{DraftVersionNo: intPtr(1)},
			wantErr: nil,
		},
		{
			name:    "archived goal",
			goal:    &models.Goal{DraftVersionNo: intPtr(1), IsArchived: true},
			wantErr: ErrConflict,
		},
		{
			name:    "no draft to promote",
			goal:    &models.Goal{PublishedVersionNo: intPtr(1)},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanPublish(tt.goal)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestApplyPublish(t *testing.T) {
	goal := &models.Goal{PublishedVersionNo: intPtr(1), DraftVersionNo: intPtr(2)}

	ApplyPublish(goal)

	require.NotNil(t, goal.PublishedVersionNo)
	assert.Equal(t, 2, *goal.PublishedVersionNo)
	assert.Nil(t, goal.DraftVersionNo)
}

func TestApplyPublishFirstVersion(t *testing.T) {
	goal := &models.Goal{DraftVersionNo: intPtr(1)}

	ApplyPublish(goal)

	require.NotNil(t, goal.PublishedVersionNo)
	assert.Equal(t, 1, *goal.PublishedVersionNo)
	assert.Nil(t, goal.DraftVersionNo)
}

func TestCanClone(t *testing.T) {
	assert.NoError(t, CanClone(&models.Goal{PublishedVersionNo: intPtr(3)}))
	assert.ErrorIs(t, CanClone(&models.Goal{DraftVersionNo: intPtr(1)}), ErrPreconditionFailed)
	assert.ErrorIs(t, CanClone(&models.Goal{}), ErrPreconditionFailed)
}

func TestSeedCloneDraft(t *testing.T) {
	published := &models.GoalVersion{
		GoalID:        "source-goal",
		VersionNo:     3,
		State:         models.VersionStatePublished,
		Name:          "Renewals",
		OwnerID:       "owner-1",
		Tags:          models.StringList{"sales"},
		PromptText:    "published prompt",
		OutcomeFields: models.OutcomeFieldList{{AttributeName: "reason", DataType: "string"}},
		Insights:      models.InsightList{{Name: "sentiment", IsEnabled: true}},
		Dispositions:  models.DispositionList{{Name: "renewed", Category: "positive"}},
		ScorecardParameters: models.ScorecardParameterList{
			{Name: "greeting", ScoringType: "binary", MaxScore: 5},
		},
	}
	// Pending edits on the source that must not leak into the clone.
	pendingDraft := &models.GoalVersion{
		GoalID:       "source-goal",
		VersionNo:    4,
		State:        models.VersionStateDraft,
		PromptText:   "unreviewed prompt rewrite",
		Dispositions: models.DispositionList{{Name: "unvetted", Category: "negative"}},
	}

	seed := SeedCloneDraft("clone-goal", "Renewals copy", published)

	assert.Equal(t, "clone-goal", seed.GoalID)
	assert.Equal(t, 1, seed.VersionNo)
	assert.Equal(t, models.VersionStateDraft, seed.State)
	assert.Equal(t, "Renewals copy", seed.Name)
	assert.Equal(t, published.OwnerID, seed.OwnerID)
	assert.Equal(t, published.PromptText, seed.PromptText)
	assert.Equal(t, published.Tags, seed.Tags)
	assert.Equal(t, published.OutcomeFields, seed.OutcomeFields)
	assert.Equal(t, published.Insights, seed.Insights)
	assert.Equal(t, published.Dispositions, seed.Dispositions)
	assert.Equal(t, published.ScorecardParameters, seed.ScorecardParameters)

	assert.NotEqual(t, pendingDraft.PromptText, seed.PromptText)
	assert.NotEqual(t, pendingDraft.Dispositions, seed.Dispositions)
}

func TestCanEditDraft(t *testing.T) {
	assert.NoError(t, CanEditDraft(&models.Goal{DraftVersionNo: intPtr(1)}))
	assert.ErrorIs(t, CanEditDraft(&models.Goal{IsArchived: true}), ErrConflict)
}

func TestCanArchive(t *testing.T) {
	tests := []struct {
		name            string
		goal            *models.Goal
		activeCampaigns int64
		wantErr         error
	}{
		{
			name:            "no active dependents",
			goal:            &models.Goal{PublishedVersionNo: intPtr(1)},
			activeCampaigns: 0,
			wantErr:         nil,
		},
		{
			name:            "active dependents block archival",
			goal:            &models.Goal{PublishedVersionNo: intPtr(1)},
			activeCampaigns: 2,
			wantErr:         ErrConflict,
		},
		{
			name:            "already archived",
			goal:            &models.Goal{IsArchived: true},
			activeCampaigns: 0,
			wantErr:         ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanArchive(tt.goal, tt.activeCampaigns)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNextDraftVersion(t *testing.T) {
	tests := []struct {
		name string
		goal *models.Goal
		want int
	}{
		{name: "fresh goal", goal: &models.Goal{}, want: 1},
		{name: "after first publish", goal: &models.Goal{PublishedVersionNo: intPtr(1)}, want: 2},
		{name: "draft ahead of published", goal: &models.Goal{PublishedVersionNo: intPtr(2), DraftVersionNo: intPtr(3)}, want: 4},
		{name: "draft only", goal: &models.Goal{DraftVersionNo: intPtr(5)}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDraftVersion(tt.goal))
		})
	}
}
