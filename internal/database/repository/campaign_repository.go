package repository

import (
	"github.com/converseiq/converseiq-backend/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetAll retrieves all campaigns ordered by start date
func (r *CampaignRepository) GetAll() ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := r.db.Order("starts_at DESC NULLS LAST, created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

// GetByGoalID retrieves all campaigns referencing a goal
func (r *CampaignRepository) GetByGoalID(goalID string) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := r.db.Where("goal_id = ?", goalID).Find(&campaigns).Error
	return campaigns, err
}

// CountByGoalID counts campaigns referencing a goal, split by blocking state
func (r *CampaignRepository) CountByGoalID(goalID string) (total int64, active int64, err error) {
	err = r.db.Model(&models.Campaign{}).Where("goal_id = ?", goalID).Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&models.Campaign{}).
		Where("goal_id = ? AND status IN ?", goalID,
			[]models.CampaignStatus{models.CampaignStatusUpcoming, models.CampaignStatusActive}).
		Count(&active).Error
	return total, active, err
}

// Update updates a campaign
func (r *CampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}
