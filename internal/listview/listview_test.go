package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name   string
	Status string
	Team   string
	Score  float64
	Scored bool
}

func sampleRecords() []record {
	return []record{
		{Name: "Renewal outreach", Status: "ACTIVE", Team: "t1", Score: 80, Scored: true},
		{Name: "Churn follow-up", Status: "COMPLETED", Team: "t2", Score: 60, Scored: true},
		{Name: "Renewal reminder", Status: "ACTIVE", Team: "t2", Score: 90, Scored: true},
		{Name: "Onboarding check-in", Status: "UPCOMING", Team: "t1"},
		{Name: "RENEWAL winback", Status: "CANCELED", Team: "t3", Score: 40, Scored: true},
	}
}

func nameField(r record) string   { return r.Name }
func statusField(r record) string { return r.Status }
func teamField(r record) string   { return r.Team }

func TestTextSearch(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{
			name:     "case-insensitive substring match",
			term:     "renewal",
			expected: []string{"Renewal outreach", "Renewal reminder", "RENEWAL winback"},
		},
		{
			name:     "empty term matches everything",
			term:     "",
			expected: []string{"Renewal outreach", "Churn follow-up", "Renewal reminder", "Onboarding check-in", "RENEWAL winback"},
		},
		{
			name:     "whitespace-only term matches everything",
			term:     "   ",
			expected: []string{"Renewal outreach", "Churn follow-up", "Renewal reminder", "Onboarding check-in", "RENEWAL winback"},
		},
		{
			name:     "no match",
			term:     "escalation",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, TextSearch(tt.term, nameField))
			names := make([]string, 0, len(got))
			for _, r := range got {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestTextSearch_ORsAcrossFields(t *testing.T) {
	records := []record{
		{Name: "alpha", Status: "bravo"},
		{Name: "charlie", Status: "delta"},
	}

	// Matches when ANY field contains the term.
	got := Filter(records, TextSearch("brav", nameField, statusField))
	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0].Name)
}

func TestFilter_PreservesOrderAndANDsPredicates(t *testing.T) {
	records := sampleRecords()

	got := Filter(records,
		TextSearch("renewal", nameField),
		Equals("ACTIVE", statusField),
	)

	require.Len(t, got, 2)
	assert.Equal(t, "Renewal outreach", got[0].Name)
	assert.Equal(t, "Renewal reminder", got[1].Name)
}

func TestFilter_Commutative(t *testing.T) {
	records := sampleRecords()
	search := TextSearch[record]("renewal", nameField)
	status := Equals("ACTIVE", statusField)
	team := Equals("t2", teamField)

	searchThenStatus := Filter(Filter(records, search), status)
	statusThenSearch := Filter(Filter(records, status), search)
	onePass := Filter(records, search, status)

	assert.Equal(t, searchThenStatus, statusThenSearch)
	assert.Equal(t, searchThenStatus, onePass)

	// Associativity over three independent predicates.
	grouped := Filter(Filter(records, search, status), team)
	flat := Filter(records, team, status, search)
	assert.Equal(t, grouped, flat)
}

func TestOneOf(t *testing.T) {
	records := sampleRecords()

	got := Filter(records, OneOf([]string{"COMPLETED", "CANCELED"}, statusField))
	require.Len(t, got, 2)
	assert.Equal(t, "Churn follow-up", got[0].Name)
	assert.Equal(t, "RENEWAL winback", got[1].Name)

	// Empty set is a no-op filter.
	assert.Len(t, Filter(records, OneOf(nil, statusField)), len(records))
}

func TestPage_ConcatenationReconstructsCollection(t *testing.T) {
	records := sampleRecords()

	for _, pageSize := range []int{1, 2, 3, 5, 10} {
		var reassembled []record
		for page := 1; ; page++ {
			chunk := Page(records, page, pageSize)
			if len(chunk) == 0 {
				break
			}
			reassembled = append(reassembled, chunk...)
		}
		assert.Equal(t, records, reassembled, "pageSize=%d", pageSize)
	}
}

func TestPage_OutOfRange(t *testing.T) {
	records := sampleRecords()

	assert.Empty(t, Page(records, 99, 2))
	assert.Empty(t, Page(records, 0, 2))
	assert.Empty(t, Page(records, 1, 0))
	assert.Empty(t, Page([]record{}, 1, 10))
}

func TestAggregates(t *testing.T) {
	records := sampleRecords()

	assert.Equal(t, 2, Count(records, Equals("ACTIVE", statusField)))
	assert.InDelta(t, 270.0, Sum(records, func(r record) float64 { return r.Score }), 0.001)

	avg, ok := Average(records, func(r record) (float64, bool) { return r.Score, r.Scored })
	require.True(t, ok)
	assert.InDelta(t, 67.5, avg, 0.001)

	_, ok = Average([]record{{Name: "unscored"}}, func(r record) (float64, bool) { return r.Score, r.Scored })
	assert.False(t, ok)

	assert.InDelta(t, 0.4, PercentOfTotal(records, Equals("ACTIVE", statusField)), 0.001)
	assert.Zero(t, PercentOfTotal([]record{}, Equals("ACTIVE", statusField)))
}

func TestAggregates_UnfilteredVsFilteredCounts(t *testing.T) {
	records := sampleRecords()
	filtered := Filter(records, Equals("ACTIVE", statusField))

	// Summary cards aggregate over the full collection; the results label
	// counts the filtered subset. The two must stay distinct.
	assert.Equal(t, 5, len(records))
	assert.Equal(t, 2, len(filtered))
	assert.NotEqual(t, len(records), len(filtered))
}

func TestState_FilterChangesResetPagination(t *testing.T) {
	s := NewState(20).WithPage(4)
	require.Equal(t, 4, s.Page)

	assert.Equal(t, 1, s.WithSearch("renewal").Page)
	assert.Equal(t, 1, s.WithFilter("status", "ACTIVE").Page)

	// Moving pages keeps criteria intact.
	s = s.WithFilter("status", "ACTIVE").WithPage(3)
	assert.Equal(t, "ACTIVE", s.Filter("status"))
	assert.Equal(t, 3, s.Page)
}

func TestState_TransitionsDoNotMutateOriginal(t *testing.T) {
	base := NewState(20).WithFilter("status", "ACTIVE")

	derived := base.WithFilter("status", "COMPLETED").WithSearch("renewal")

	assert.Equal(t, "ACTIVE", base.Filter("status"))
	assert.Empty(t, base.Search)
	assert.Equal(t, "COMPLETED", derived.Filter("status"))
	assert.Equal(t, "renewal", derived.Search)
}

func TestState_ClearingFilter(t *testing.T) {
	s := NewState(20).WithFilter("team", "t1")
	require.Equal(t, "t1", s.Filter("team"))

	s = s.WithFilter("team", "")
	assert.Empty(t, s.Filter("team"))
}
