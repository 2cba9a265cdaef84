package repository

import (
	"github.com/converseiq/converseiq-backend/internal/models"

	"gorm.io/gorm"
)

// ConversationFilter narrows a conversation listing. Zero values mean "any".
type ConversationFilter struct {
	CampaignID string
	TeamID     string
	Skip       int
	Limit      int
}

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create creates a new conversation record
func (r *ConversationRepository) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

// List retrieves a skip/limit window of conversations plus the total count of
// the filtered set
func (r *ConversationRepository) List(filter ConversationFilter) ([]*models.Conversation, int64, error) {
	query := r.db.Model(&models.Conversation{})
	if filter.CampaignID != "" {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var conversations []*models.Conversation
	err := query.Order("occurred_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&conversations).Error
	if err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

// GetByCampaignID retrieves all conversations of a campaign for metric derivation
func (r *ConversationRepository) GetByCampaignID(campaignID string) ([]*models.Conversation, error) {
	var conversations []*models.Conversation
	err := r.db.Where("campaign_id = ?", campaignID).Find(&conversations).Error
	return conversations, err
}

// GetAll retrieves all conversations (analytics aggregation)
func (r *ConversationRepository) GetAll() ([]*models.Conversation, error) {
	var conversations []*models.Conversation
	err := r.db.Find(&conversations).Error
	return conversations, err
}
