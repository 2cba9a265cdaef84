package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/listview"
	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/converseiq/converseiq-backend/internal/utils"
	"gorm.io/gorm"
)

type CampaignService struct {
	campaignRepo     *repository.CampaignRepository
	goalRepo         *repository.GoalRepository
	teamRepo         *repository.TeamRepository
	conversationRepo *repository.ConversationRepository
	activity         *ActivityService
}

func NewCampaignService(
	campaignRepo *repository.CampaignRepository,
	goalRepo *repository.GoalRepository,
	teamRepo *repository.TeamRepository,
	conversationRepo *repository.ConversationRepository,
	activity *ActivityService,
) *CampaignService {
	return &CampaignService{
		campaignRepo:     campaignRepo,
		goalRepo:         goalRepo,
		teamRepo:         teamRepo,
		conversationRepo: conversationRepo,
		activity:         activity,
	}
}

// CampaignListQuery narrows the campaign listing. Zero values mean "any".
type CampaignListQuery struct {
	Search   string
	GoalID   string
	TeamID   string
	Statuses []string
	Page     int
	PageSize int
}

// CampaignQueryFromState maps a saved list view state onto the campaign
// query. Filter names follow the dashboard's query-string parameters.
func CampaignQueryFromState(state listview.State) CampaignListQuery {
	query := CampaignListQuery{
		Search:   state.Search,
		GoalID:   state.Filter("goal_id"),
		TeamID:   state.Filter("team_id"),
		Page:     state.Page,
		PageSize: state.PageSize,
	}
	if statuses := state.Filter("status"); statuses != "" {
		query.Statuses = strings.Split(statuses, ",")
	}
	return query
}

// CreateCampaign creates a campaign pinned to the goal's currently published
// version. Goals without a published version cannot be campaigned.
func (s *CampaignService) CreateCampaign(actorID string, req *models.CreateCampaignRequest) (*models.CampaignResponse, error) {
	goal, err := s.goalRepo.GetByID(req.GoalID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if goal.IsArchived {
		return nil, ErrConflict
	}
	if goal.PublishedVersionNo == nil {
		return nil, ErrPreconditionFailed
	}

	if req.TeamID != nil {
		if _, err := s.teamRepo.GetByID(*req.TeamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newValidationError("team_id", "Team not found")
			}
			return nil, fmt.Errorf("failed to verify team: %w", err)
		}
	}

	startsAt, endsAt, err := parseCampaignDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validateCampaignStart(startsAt, nil, time.Now()); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		Name:          req.Name,
		Status:        models.CampaignStatusUpcoming,
		GoalID:        goal.ID,
		GoalVersionNo: *goal.PublishedVersionNo,
		TeamID:        req.TeamID,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.activity.Record("campaign", campaign.ID, actorID, "created",
		fmt.Sprintf("Campaign %q created on goal %q v%d", campaign.Name, goal.Name, campaign.GoalVersionNo),
		map[string]interface{}{"goal_id": goal.ID, "goal_version_no": campaign.GoalVersionNo})

	return s.toResponse(campaign, nil), nil
}

// ListCampaigns retrieves campaigns filtered in memory by the listview
// predicates. Total counts the unfiltered collection, Count the filtered one.
func (s *CampaignService) ListCampaigns(query CampaignListQuery) (*models.CampaignListResponse, error) {
	campaigns, err := s.campaignRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	filtered := listview.Filter(campaigns,
		listview.TextSearch(query.Search,
			func(c *models.Campaign) string { return c.Name },
		),
		listview.Equals(query.GoalID, func(c *models.Campaign) string { return c.GoalID }),
		listview.Equals(query.TeamID, func(c *models.Campaign) string {
			if c.TeamID == nil {
				return ""
			}
			return *c.TeamID
		}),
		listview.OneOf(query.Statuses, func(c *models.Campaign) string { return string(c.Status) }),
	)

	count := len(filtered)
	if query.PageSize > 0 {
		filtered = listview.Page(filtered, query.Page, query.PageSize)
	}

	responses := make([]*models.CampaignResponse, len(filtered))
	for i, campaign := range filtered {
		responses[i] = s.toResponse(campaign, nil)
	}

	return &models.CampaignListResponse{
		Campaigns: responses,
		Count:     count,
		Total:     len(campaigns),
	}, nil
}

// GetCampaign retrieves a campaign with metrics derived from its conversations
func (s *CampaignService) GetCampaign(campaignID string) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, asNotFound(err)
	}

	metrics, err := s.deriveMetrics(campaignID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(campaign, metrics), nil
}

// UpdateCampaign updates a campaign's name, team, dates, and status. Terminal
// campaigns only allow archival.
func (s *CampaignService) UpdateCampaign(campaignID, actorID string, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, asNotFound(err)
	}

	previousStatus := campaign.Status
	if req.Status != "" {
		next := models.CampaignStatus(req.Status)
		if !next.IsValid() {
			return nil, newValidationError("status", "Unknown campaign status")
		}
		if campaign.Status.IsTerminal() && next != models.CampaignStatusArchived && next != campaign.Status {
			return nil, ErrConflict
		}
		campaign.Status = next
	}

	startsAt, endsAt, err := parseCampaignDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validateCampaignStart(startsAt, campaign.StartsAt, time.Now()); err != nil {
		return nil, err
	}
	if startsAt != nil {
		campaign.StartsAt = startsAt
	}
	if endsAt != nil {
		campaign.EndsAt = endsAt
	}
	if campaign.StartsAt != nil && campaign.EndsAt != nil && campaign.EndsAt.Before(*campaign.StartsAt) {
		return nil, newValidationError("end_date", "End date must be on or after start date")
	}

	campaign.Name = req.Name
	if req.TeamID != nil {
		if _, err := s.teamRepo.GetByID(*req.TeamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newValidationError("team_id", "Team not found")
			}
			return nil, fmt.Errorf("failed to verify team: %w", err)
		}
		campaign.TeamID = req.TeamID
	}

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	if campaign.Status != previousStatus {
		s.activity.Record("campaign", campaign.ID, actorID, "status_changed",
			fmt.Sprintf("Campaign %q moved %s -> %s", campaign.Name, previousStatus, campaign.Status),
			map[string]interface{}{"previous_status": string(previousStatus), "status": string(campaign.Status)})
	}

	return s.toResponse(campaign, nil), nil
}

// ArchiveCampaign moves a campaign to ARCHIVED. History is kept; nothing is
// hard-deleted.
func (s *CampaignService) ArchiveCampaign(campaignID, actorID string) error {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return asNotFound(err)
	}
	if campaign.Status == models.CampaignStatusArchived {
		return ErrConflict
	}

	previousStatus := campaign.Status
	campaign.Status = models.CampaignStatusArchived
	if err := s.campaignRepo.Update(campaign); err != nil {
		return fmt.Errorf("failed to archive campaign: %w", err)
	}

	s.activity.Record("campaign", campaign.ID, actorID, "archived",
		fmt.Sprintf("Campaign %q archived", campaign.Name),
		map[string]interface{}{"previous_status": string(previousStatus)})
	return nil
}

// deriveMetrics computes conversation counts, average score, and completion
// rate for a campaign
func (s *CampaignService) deriveMetrics(campaignID string) (*models.CampaignMetrics, error) {
	conversations, err := s.conversationRepo.GetByCampaignID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversations: %w", err)
	}

	metrics := &models.CampaignMetrics{
		Conversations: len(conversations),
		CompletionRate: listview.PercentOfTotal(conversations, func(c *models.Conversation) bool {
			return c.IsCompleted
		}),
	}
	if avg, ok := listview.Average(conversations, func(c *models.Conversation) (float64, bool) {
		if c.Score == nil {
			return 0, false
		}
		return *c.Score, true
	}); ok {
		metrics.AvgScore = &avg
	}
	return metrics, nil
}

// validateCampaignStart enforces the no-backdating rule. New campaigns may
// not start before today; an edit that keeps the stored start date is
// accepted even after that date has passed.
func validateCampaignStart(startsAt, existing *time.Time, now time.Time) error {
	if startsAt == nil {
		return nil
	}
	if existing != nil && startsAt.Equal(*existing) {
		return nil
	}
	if startsAt.Before(utils.StartOfTodayUTC(now)) {
		return newValidationError("start_date", "Start date cannot be in the past")
	}
	return nil
}

// parseCampaignDates parses the date-only inputs and enforces end >= start
func parseCampaignDates(startDate, endDate string) (*time.Time, *time.Time, error) {
	startsAt, err := utils.ParseOptionalDate(startDate)
	if err != nil {
		return nil, nil, newValidationError("start_date", "Start date must be YYYY-MM-DD")
	}
	endsAt, err := utils.ParseOptionalDate(endDate)
	if err != nil {
		return nil, nil, newValidationError("end_date", "End date must be YYYY-MM-DD")
	}
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return nil, nil, newValidationError("end_date", "End date must be on or after start date")
	}
	return startsAt, endsAt, nil
}

// toResponse converts Campaign model to response DTO
func (s *CampaignService) toResponse(campaign *models.Campaign, metrics *models.CampaignMetrics) *models.CampaignResponse {
	return &models.CampaignResponse{
		ID:            campaign.ID,
		Name:          campaign.Name,
		Status:        campaign.Status,
		GoalID:        campaign.GoalID,
		GoalVersionNo: campaign.GoalVersionNo,
		TeamID:        campaign.TeamID,
		StartsAt:      campaign.StartsAt,
		EndsAt:        campaign.EndsAt,
		Metrics:       metrics,
		CreatedAt:     campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     campaign.UpdatedAt.Format(time.RFC3339),
	}
}
