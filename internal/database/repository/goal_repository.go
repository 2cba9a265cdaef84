package repository

import (
	"github.com/converseiq/converseiq-backend/internal/models"

	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create creates a new goal
func (r *GoalRepository) Create(goal *models.Goal) error {
	return r.db.Create(goal).Error
}

// GetByID retrieves a goal by ID (archived goals included; callers decide)
func (r *GoalRepository) GetByID(id string) (*models.Goal, error) {
	var goal models.Goal
	err := r.db.First(&goal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetAllActive retrieves all non-archived goals ordered by last update
func (r *GoalRepository) GetAllActive() ([]*models.Goal, error) {
	var goals []*models.Goal
	err := r.db.Where("is_archived = ?", false).
		Order("updated_at DESC").
		Find(&goals).Error
	return goals, err
}

// GetPublished retrieves all non-archived goals that have a published version
func (r *GoalRepository) GetPublished() ([]*models.Goal, error) {
	var goals []*models.Goal
	err := r.db.Where("is_archived = ? AND published_version_no IS NOT NULL", false).
		Order("updated_at DESC").
		Find(&goals).Error
	return goals, err
}

// Update updates a goal
func (r *GoalRepository) Update(goal *models.Goal) error {
	return r.db.Save(goal).Error
}

// Archive soft-deletes a goal; version history stays intact
func (r *GoalRepository) Archive(id string) error {
	return r.db.Model(&models.Goal{}).Where("id = ?", id).Update("is_archived", true).Error
}
