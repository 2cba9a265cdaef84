package repository

import (
	"github.com/converseiq/converseiq-backend/internal/models"

	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create creates a new activity log entry
func (r *ActivityLogRepository) Create(log *models.ActivityLog) error {
	return r.db.Create(log).Error
}

// List retrieves recent activity, optionally scoped to one entity
func (r *ActivityLogRepository) List(entityType, entityID string, limit int) ([]*models.ActivityLog, error) {
	query := r.db.Model(&models.ActivityLog{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}
	if limit <= 0 {
		limit = 100
	}

	var logs []*models.ActivityLog
	err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
