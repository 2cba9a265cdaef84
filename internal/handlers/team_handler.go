package handlers

import (
	"net/http"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/converseiq/converseiq-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(db *gorm.DB) *TeamHandler {
	teamRepo := repository.NewTeamRepository(db)
	userRepo := repository.NewUserRepository(db)

	teamService := services.NewTeamService(teamRepo, userRepo)
	return &TeamHandler{teamService: teamService}
}

// CreateTeam godoc
// @Summary Create a new team
// @Description Create a team of agents
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateTeamRequest true "Create team request"
// @Success 201 {object} models.TeamResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.teamService.CreateTeam(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to create team")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetTeams godoc
// @Summary List teams
// @Description List all teams with their member counts
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TeamResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/teams [get]
func (h *TeamHandler) GetTeams(c *gin.Context) {
	responses, err := h.teamService.GetTeams()
	if err != nil {
		respondServiceError(c, err, "Failed to list teams")
		return
	}

	c.JSON(http.StatusOK, responses)
}

// GetTeam godoc
// @Summary Get team by ID
// @Description Get a single team with its member count
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} models.TeamResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	response, err := h.teamService.GetTeam(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to get team")
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateTeam godoc
// @Summary Update a team
// @Description Update a team's name and description
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body models.UpdateTeamRequest true "Update team request"
// @Success 200 {object} models.TeamResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/teams/{id} [put]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	var req models.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.teamService.UpdateTeam(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update team")
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Description Delete a team; goals and campaigns referencing it fall back to no team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamService.DeleteTeam(c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete team")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully"})
}

// AddMember godoc
// @Summary Add a team member
// @Description Add a user to the team. Existing members return 409.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body models.TeamMemberRequest true "Member to add"
// @Success 200 {object} models.TeamResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/teams/{id}/members [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	var req models.TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.teamService.AddMember(c.Param("id"), req.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to add member")
		return
	}

	c.JSON(http.StatusOK, response)
}

// RemoveMember godoc
// @Summary Remove a team member
// @Description Remove a user from the team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/teams/{id}/members/{user_id} [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	if err := h.teamService.RemoveMember(c.Param("id"), c.Param("user_id")); err != nil {
		respondServiceError(c, err, "Failed to remove member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
