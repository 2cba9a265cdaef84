package models

// AnalyticsSummaryResponse is the dashboard's headline numbers. Aggregates
// are computed over the full collections; the filtered campaign count comes
// from whatever filters the caller passed.
type AnalyticsSummaryResponse struct {
	TotalGoals         int            `json:"total_goals"`
	PublishedGoals     int            `json:"published_goals"`
	TotalCampaigns     int            `json:"total_campaigns"`
	FilteredCampaigns  int            `json:"filtered_campaigns"`
	CampaignsByStatus  map[string]int `json:"campaigns_by_status"`
	TotalConversations int            `json:"total_conversations"`
	AvgScore           *float64       `json:"avg_score,omitempty"`
	CompletionRate     float64        `json:"completion_rate"`
	TopDispositions    []NameCount    `json:"top_dispositions,omitempty"`
}

// NameCount is a label with its occurrence count
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
