package services

import (
	"fmt"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// RoleService manages the dashboard's role assignments. Roles gate the
// admin surface and decide which teams an agent's conversations roll up
// under.
type RoleService struct {
	roleRepo *repository.RoleRepository
	userRepo *repository.UserRepository
}

func NewRoleService(roleRepo *repository.RoleRepository, userRepo *repository.UserRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
	}
}

func (s *RoleService) GetAllRoles() ([]models.Role, error) {
	return s.roleRepo.GetAll()
}

// resolve loads the user and role pair every grant and revoke needs
func (s *RoleService) resolve(userID, roleID string) (*models.User, *models.Role, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("user %s not found: %w", userID, asNotFound(err))
	}
	role, err := s.roleRepo.GetByID(roleID)
	if err != nil {
		return nil, nil, fmt.Errorf("role %s not found: %w", roleID, asNotFound(err))
	}
	return user, role, nil
}

// AssignRoleToUser grants a role. Granting an already-held role is a no-op.
func (s *RoleService) AssignRoleToUser(userID, roleID string) error {
	user, role, err := s.resolve(userID, roleID)
	if err != nil {
		return err
	}

	if err := s.roleRepo.AssignRoleToUser(user.ID, role.ID); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user": user.Username,
		"role": role.Name,
	}).Info("Role assigned")
	return nil
}

// AssignRoleToUserByName grants a role by its name. Used at registration
// time where only the role name is known.
func (s *RoleService) AssignRoleToUserByName(userID, roleName string) error {
	role, err := s.roleRepo.GetByName(roleName)
	if err != nil {
		return fmt.Errorf("role %q not found: %w", roleName, asNotFound(err))
	}
	return s.AssignRoleToUser(userID, role.ID)
}

// RemoveRoleFromUser revokes a role
func (s *RoleService) RemoveRoleFromUser(userID, roleID string) error {
	user, role, err := s.resolve(userID, roleID)
	if err != nil {
		return err
	}

	if err := s.roleRepo.RemoveRoleFromUser(user.ID, role.ID); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user": user.Username,
		"role": role.Name,
	}).Info("Role removed")
	return nil
}

func (s *RoleService) GetUserRoles(userID string) ([]models.Role, error) {
	return s.roleRepo.GetUserRoles(userID)
}

// GetUserRoleResponse flattens a user's roles into the shape the admin
// screens render
func (s *RoleService) GetUserRoleResponse(userID string) (*models.UserRoleResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %s not found: %w", userID, asNotFound(err))
	}

	roles, err := s.roleRepo.GetUserRoles(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	roleNames := make([]string, len(roles))
	for i, role := range roles {
		roleNames[i] = role.Name
	}

	return &models.UserRoleResponse{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    roleNames,
	}, nil
}
