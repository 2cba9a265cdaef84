package repository

import (
	"github.com/converseiq/converseiq-backend/internal/models"

	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team
func (r *TeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// GetByID retrieves a team with its members preloaded
func (r *TeamRepository) GetByID(id string) (*models.Team, error) {
	var team models.Team
	err := r.db.Preload("Members").Where("id = ?", id).First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetAll retrieves all teams with members preloaded
func (r *TeamRepository) GetAll() ([]*models.Team, error) {
	var teams []*models.Team
	err := r.db.Preload("Members").Order("name ASC").Find(&teams).Error
	return teams, err
}

// Update updates a team
func (r *TeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete deletes a team by ID
func (r *TeamRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Team{}).Error
}

// AddMember adds a user to the team membership
func (r *TeamRepository) AddMember(team *models.Team, user *models.User) error {
	return r.db.Model(team).Association("Members").Append(user)
}

// RemoveMember removes a user from the team membership
func (r *TeamRepository) RemoveMember(team *models.Team, user *models.User) error {
	return r.db.Model(team).Association("Members").Delete(user)
}
