package services

import (
	"fmt"
	"time"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
)

const (
	defaultConversationLimit = 50
	maxConversationLimit     = 500
)

type ConversationService struct {
	conversationRepo *repository.ConversationRepository
	campaignRepo     *repository.CampaignRepository
}

func NewConversationService(conversationRepo *repository.ConversationRepository, campaignRepo *repository.CampaignRepository) *ConversationService {
	return &ConversationService{
		conversationRepo: conversationRepo,
		campaignRepo:     campaignRepo,
	}
}

// Ingest records one conversation pushed by the external pipeline
func (s *ConversationService) Ingest(req *models.IngestConversationRequest) (*models.ConversationResponse, error) {
	campaign, err := s.campaignRepo.GetByID(req.CampaignID)
	if err != nil {
		return nil, asNotFound(err)
	}

	occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
	if err != nil {
		return nil, newValidationError("occurred_at", "Timestamp must be RFC 3339")
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		return nil, newValidationError("score", "Score must be between 0 and 100")
	}

	teamID := req.TeamID
	if teamID == nil {
		teamID = campaign.TeamID
	}

	conversation := &models.Conversation{
		CampaignID:      campaign.ID,
		TeamID:          teamID,
		AgentID:         req.AgentID,
		ExternalRef:     req.ExternalRef,
		Score:           req.Score,
		DurationSeconds: req.DurationSeconds,
		Disposition:     req.Disposition,
		IsCompleted:     req.IsCompleted,
		OccurredAt:      occurredAt,
	}
	if err := s.conversationRepo.Create(conversation); err != nil {
		return nil, fmt.Errorf("failed to ingest conversation: %w", err)
	}

	return toConversationResponse(conversation), nil
}

// List retrieves a skip/limit window of conversations, newest first
func (s *ConversationService) List(campaignID, teamID string, skip, limit int) (*models.ConversationListResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	if limit > maxConversationLimit {
		limit = maxConversationLimit
	}

	conversations, total, err := s.conversationRepo.List(repository.ConversationFilter{
		CampaignID: campaignID,
		TeamID:     teamID,
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	responses := make([]*models.ConversationResponse, len(conversations))
	for i, conversation := range conversations {
		responses[i] = toConversationResponse(conversation)
	}

	return &models.ConversationListResponse{
		Conversations: responses,
		Total:         total,
		Skip:          skip,
		Limit:         limit,
	}, nil
}

func toConversationResponse(c *models.Conversation) *models.ConversationResponse {
	return &models.ConversationResponse{
		ID:              c.ID,
		CampaignID:      c.CampaignID,
		TeamID:          c.TeamID,
		AgentID:         c.AgentID,
		ExternalRef:     c.ExternalRef,
		Score:           c.Score,
		DurationSeconds: c.DurationSeconds,
		Disposition:     c.Disposition,
		IsCompleted:     c.IsCompleted,
		OccurredAt:      c.OccurredAt.Format(time.RFC3339),
	}
}
