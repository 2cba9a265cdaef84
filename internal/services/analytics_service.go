package services

import (
	"fmt"
	"sort"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/listview"
	"github.com/converseiq/converseiq-backend/internal/models"
)

type AnalyticsService struct {
	goalRepo         *repository.GoalRepository
	campaignRepo     *repository.CampaignRepository
	conversationRepo *repository.ConversationRepository
}

func NewAnalyticsService(
	goalRepo *repository.GoalRepository,
	campaignRepo *repository.CampaignRepository,
	conversationRepo *repository.ConversationRepository,
) *AnalyticsService {
	return &AnalyticsService{
		goalRepo:         goalRepo,
		campaignRepo:     campaignRepo,
		conversationRepo: conversationRepo,
	}
}

// GetSummary derives the dashboard headline numbers. Aggregates always cover
// the FULL collections; only the filtered campaign count reflects the
// caller's filters, so the totals stay stable while the user narrows the list.
func (s *AnalyticsService) GetSummary(query CampaignListQuery) (*models.AnalyticsSummaryResponse, error) {
	goals, err := s.goalRepo.GetAllActive()
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	campaigns, err := s.campaignRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}
	conversations, err := s.conversationRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get conversations: %w", err)
	}

	byStatus := make(map[string]int)
	for _, campaign := range campaigns {
		byStatus[string(campaign.Status)]++
	}

	filtered := listview.Count(campaigns, func(c *models.Campaign) bool {
		return listview.TextSearch(query.Search, func(c *models.Campaign) string { return c.Name })(c) &&
			listview.Equals(query.GoalID, func(c *models.Campaign) string { return c.GoalID })(c) &&
			listview.OneOf(query.Statuses, func(c *models.Campaign) string { return string(c.Status) })(c)
	})

	summary := &models.AnalyticsSummaryResponse{
		TotalGoals: len(goals),
		PublishedGoals: listview.Count(goals, func(g *models.Goal) bool {
			return g.PublishedVersionNo != nil
		}),
		TotalCampaigns:     len(campaigns),
		FilteredCampaigns:  filtered,
		CampaignsByStatus:  byStatus,
		TotalConversations: len(conversations),
		CompletionRate: listview.PercentOfTotal(conversations, func(c *models.Conversation) bool {
			return c.IsCompleted
		}),
		TopDispositions: topDispositions(conversations, 5),
	}
	if avg, ok := listview.Average(conversations, func(c *models.Conversation) (float64, bool) {
		if c.Score == nil {
			return 0, false
		}
		return *c.Score, true
	}); ok {
		summary.AvgScore = &avg
	}

	return summary, nil
}

// topDispositions returns the n most frequent non-empty dispositions,
// descending; ties break alphabetically for a stable listing
func topDispositions(conversations []*models.Conversation, n int) []models.NameCount {
	counts := make(map[string]int)
	for _, conversation := range conversations {
		if conversation.Disposition != "" {
			counts[conversation.Disposition]++
		}
	}

	out := make([]models.NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, models.NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
