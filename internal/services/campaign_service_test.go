package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/converseiq/converseiq-backend/internal/listview"
)

func TestCampaignQueryFromState(t *testing.T) {
	state := listview.NewState(25).
		WithSearch("renewal").
		WithFilter("goal_id", "g1").
		WithFilter("team_id", "t1").
		WithFilter("status", "ACTIVE,COMPLETED").
		WithPage(3)

	query := CampaignQueryFromState(state)

	assert.Equal(t, "renewal", query.Search)
	assert.Equal(t, "g1", query.GoalID)
	assert.Equal(t, "t1", query.TeamID)
	assert.Equal(t, []string{"ACTIVE", "COMPLETED"}, query.Statuses)
	assert.Equal(t, 3, query.Page)
	assert.Equal(t, 25, query.PageSize)
}

func TestCampaignQueryFromStateEmpty(t *testing.T) {
	query := CampaignQueryFromState(listview.NewState(0))

	assert.Empty(t, query.Search)
	assert.Nil(t, query.Statuses)
	assert.Equal(t, 1, query.Page)
	// Zero page size keeps the listing unpaginated.
	assert.Equal(t, 0, query.PageSize)
}

func TestParseCampaignDates(t *testing.T) {
	starts, ends, err := parseCampaignDates("2025-02-01", "2025-03-01")
	require.NoError(t, err)
	require.NotNil(t, starts)
	require.NotNil(t, ends)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *starts)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *ends)
}

func TestParseCampaignDatesOptional(t *testing.T) {
	starts, ends, err := parseCampaignDates("", "")
	require.NoError(t, err)
	assert.Nil(t, starts)
	assert.Nil(t, ends)

	starts, ends, err = parseCampaignDates("2025-02-01", "")
	require.NoError(t, err)
	require.NotNil(t, starts)
	assert.Nil(t, ends)
}

func TestParseCampaignDatesValidation(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantField string
	}{
		{name: "bad start format", startDate: "01/02/2025", endDate: "", wantField: "start_date"},
		{name: "bad end format", startDate: "2025-02-01", endDate: "soon", wantField: "end_date"},
		{name: "end before start", startDate: "2025-03-01", endDate: "2025-02-01", wantField: "end_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseCampaignDates(tt.startDate, tt.endDate)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestValidateCampaignStart(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
	timePtr := func(v time.Time) *time.Time { return &v }
	yesterday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		startsAt *time.Time
		existing *time.Time
		wantErr  bool
	}{
		{name: "no start date", startsAt: nil, existing: nil, wantErr: false},
		{name: "new campaign starts today", startsAt: timePtr(today), existing: nil, wantErr: false},
		{name: "new campaign starts tomorrow", startsAt: timePtr(tomorrow), existing: nil, wantErr: false},
		{name: "new campaign backdated", startsAt: timePtr(yesterday), existing: nil, wantErr: true},
		{name: "edit keeps the stored past start", startsAt: timePtr(yesterday), existing: timePtr(yesterday), wantErr: false},
		{name: "edit moves start into the past", startsAt: timePtr(yesterday), existing: timePtr(tomorrow), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCampaignStart(tt.startsAt, tt.existing, now)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "start_date", vErr.Field)
		})
	}
}

func TestParseCampaignDatesSameDay(t *testing.T) {
	// Single-day campaigns are allowed
	starts, ends, err := parseCampaignDates("2025-02-01", "2025-02-01")
	require.NoError(t, err)
	assert.True(t, starts.Equal(*ends))
}
