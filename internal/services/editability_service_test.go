package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/converseiq/converseiq-backend/internal/models"
)

// stubCampaignSource serves canned campaign lists keyed by goal ID
type stubCampaignSource struct {
	byGoal map[string][]*models.Campaign
	err    error
}

func (s *stubCampaignSource) GetByGoalID(goalID string) ([]*models.Campaign, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byGoal[goalID], nil
}

func campaignWithStatus(status models.CampaignStatus) *models.Campaign {
	return &models.Campaign{Status: status}
}

func TestEvaluateEditability(t *testing.T) {
	tests := []struct {
		name      string
		campaigns []*models.Campaign
		want      bool
	}{
		{
			name:      "no campaigns",
			campaigns: nil,
			want:      true,
		},
		{
			name: "all terminal",
			campaigns: []*models.Campaign{
				campaignWithStatus(models.CampaignStatusCompleted),
				campaignWithStatus(models.CampaignStatusCanceled),
				campaignWithStatus(models.CampaignStatusArchived),
			},
			want: true,
		},
		{
			name: "upcoming campaign locks the goal",
			campaigns: []*models.Campaign{
				campaignWithStatus(models.CampaignStatusCompleted),
				campaignWithStatus(models.CampaignStatusUpcoming),
			},
			want: false,
		},
		{
			name: "active campaign locks the goal",
			campaigns: []*models.Campaign{
				campaignWithStatus(models.CampaignStatusActive),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateEditability(tt.campaigns))
		})
	}
}

func TestCanEdit(t *testing.T) {
	source := &stubCampaignSource{byGoal: map[string][]*models.Campaign{
		"locked": {campaignWithStatus(models.CampaignStatusActive)},
		"open":   {campaignWithStatus(models.CampaignStatusCompleted)},
	}}
	svc := NewEditabilityService(source)

	locked, err := svc.CanEdit("locked")
	require.NoError(t, err)
	assert.False(t, locked)

	open, err := svc.CanEdit("open")
	require.NoError(t, err)
	assert.True(t, open)

	// Unknown goals have no campaigns and are editable
	unknown, err := svc.CanEdit("missing")
	require.NoError(t, err)
	assert.True(t, unknown)
}

func TestAnnotateAllPreservesOrder(t *testing.T) {
	byGoal := make(map[string][]*models.Campaign)
	goals := make([]*models.GoalResponse, 20)
	for i := range goals {
		id := fmt.Sprintf("goal-%d", i)
		goals[i] = &models.GoalResponse{ID: id}
		if i%2 == 0 {
			byGoal[id] = []*models.Campaign{campaignWithStatus(models.CampaignStatusActive)}
		} else {
			byGoal[id] = []*models.Campaign{campaignWithStatus(models.CampaignStatusCompleted)}
		}
	}

	svc := NewEditabilityService(&stubCampaignSource{byGoal: byGoal})
	require.NoError(t, svc.AnnotateAll(goals))

	for i, goal := range goals {
		assert.Equal(t, fmt.Sprintf("goal-%d", i), goal.ID)
		require.NotNil(t, goal.Editable, "goal %d missing flag", i)
		assert.Equal(t, i%2 != 0, *goal.Editable, "goal %d", i)
	}
}

func TestAnnotateAllEmpty(t *testing.T) {
	svc := NewEditabilityService(&stubCampaignSource{})
	assert.NoError(t, svc.AnnotateAll(nil))
}

func TestAnnotateAllLookupFailure(t *testing.T) {
	lookupErr := errors.New("connection reset")
	svc := NewEditabilityService(&stubCampaignSource{err: lookupErr})

	goals := []*models.GoalResponse{{ID: "a"}, {ID: "b"}}
	err := svc.AnnotateAll(goals)

	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
	for _, goal := range goals {
		assert.Nil(t, goal.Editable)
	}
}
