package repository

import (
	"github.com/converseiq/converseiq-backend/internal/models"

	"gorm.io/gorm"
)

type GoalVersionRepository struct {
	db *gorm.DB
}

func NewGoalVersionRepository(db *gorm.DB) *GoalVersionRepository {
	return &GoalVersionRepository{db: db}
}

// Create creates a new goal version
func (r *GoalVersionRepository) Create(version *models.GoalVersion) error {
	return r.db.Create(version).Error
}

// GetByGoalAndVersion retrieves one version row by its (goal_id, version_no) identity
func (r *GoalVersionRepository) GetByGoalAndVersion(goalID string, versionNo int) (*models.GoalVersion, error) {
	var version models.GoalVersion
	err := r.db.Where("goal_id = ? AND version_no = ?", goalID, versionNo).First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// ListByGoal retrieves the full version history of a goal, newest first
func (r *GoalVersionRepository) ListByGoal(goalID string) ([]*models.GoalVersion, error) {
	var versions []*models.GoalVersion
	err := r.db.Where("goal_id = ?", goalID).Order("version_no DESC").Find(&versions).Error
	return versions, err
}

// Update updates a goal version (draft rows only; published rows are immutable)
func (r *GoalVersionRepository) Update(version *models.GoalVersion) error {
	return r.db.Save(version).Error
}

// SetState moves one version row to the given state
func (r *GoalVersionRepository) SetState(id string, state models.VersionState) error {
	return r.db.Model(&models.GoalVersion{}).Where("id = ?", id).Update("state", state).Error
}
