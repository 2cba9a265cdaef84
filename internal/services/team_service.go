package services

import (
	"fmt"
	"time"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
)

type TeamService struct {
	teamRepo *repository.TeamRepository
	userRepo *repository.UserRepository
}

func NewTeamService(teamRepo *repository.TeamRepository, userRepo *repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTeam creates a new team
func (s *TeamService) CreateTeam(req *models.CreateTeamRequest) (*models.TeamResponse, error) {
	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return s.toResponse(team), nil
}

// GetTeams retrieves all teams
func (s *TeamService) GetTeams() ([]*models.TeamResponse, error) {
	teams, err := s.teamRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	responses := make([]*models.TeamResponse, len(teams))
	for i, team := range teams {
		responses[i] = s.toResponse(team)
	}
	return responses, nil
}

// GetTeam retrieves a team by ID
func (s *TeamService) GetTeam(teamID string) (*models.TeamResponse, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return s.toResponse(team), nil
}

// UpdateTeam updates a team's name and description
func (s *TeamService) UpdateTeam(teamID string, req *models.UpdateTeamRequest) (*models.TeamResponse, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, asNotFound(err)
	}

	team.Name = req.Name
	team.Description = req.Description
	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return s.toResponse(team), nil
}

// DeleteTeam deletes a team. Goals and campaigns referencing it fall back to
// no team via the FK's SET NULL.
func (s *TeamService) DeleteTeam(teamID string) error {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		return asNotFound(err)
	}
	if err := s.teamRepo.Delete(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

// AddMember adds a user to the team
func (s *TeamService) AddMember(teamID, userID string) (*models.TeamResponse, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, asNotFound(err)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, asNotFound(err)
	}

	for _, member := range team.Members {
		if member.ID == user.ID {
			return nil, ErrConflict
		}
	}

	if err := s.teamRepo.AddMember(team, user); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	team.Members = append(team.Members, *user)
	return s.toResponse(team), nil
}

// RemoveMember removes a user from the team
func (s *TeamService) RemoveMember(teamID, userID string) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return asNotFound(err)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return asNotFound(err)
	}

	found := false
	for _, member := range team.Members {
		if member.ID == user.ID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	if err := s.teamRepo.RemoveMember(team, user); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// toResponse converts Team model to response DTO
func (s *TeamService) toResponse(team *models.Team) *models.TeamResponse {
	return &models.TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		MemberCount: len(team.Members),
		CreatedAt:   team.CreatedAt.Format(time.RFC3339),
	}
}
