package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/converseiq/converseiq-backend/internal/models"
)

func conversationsWithDispositions(dispositions ...string) []*models.Conversation {
	out := make([]*models.Conversation, len(dispositions))
	for i, d := range dispositions {
		out[i] = &models.Conversation{Disposition: d}
	}
	return out
}

func TestTopDispositions(t *testing.T) {
	conversations := conversationsWithDispositions(
		"resolved", "resolved", "resolved",
		"escalated", "escalated",
		"callback",
		"", "", // untagged conversations are skipped
	)

	got := topDispositions(conversations, 5)

	assert.Equal(t, []models.NameCount{
		{Name: "resolved", Count: 3},
		{Name: "escalated", Count: 2},
		{Name: "callback", Count: 1},
	}, got)
}

func TestTopDispositionsTiesSortByName(t *testing.T) {
	conversations := conversationsWithDispositions("voicemail", "callback", "escalated")

	got := topDispositions(conversations, 5)

	assert.Equal(t, []models.NameCount{
		{Name: "callback", Count: 1},
		{Name: "escalated", Count: 1},
		{Name: "voicemail", Count: 1},
	}, got)
}

func TestTopDispositionsTruncates(t *testing.T) {
	conversations := conversationsWithDispositions("a", "a", "b", "c", "d")

	got := topDispositions(conversations, 2)

	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
}

func TestTopDispositionsEmpty(t *testing.T) {
	assert.Empty(t, topDispositions(nil, 5))
}
