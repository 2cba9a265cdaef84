package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/converseiq/converseiq-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(db *gorm.DB, activityService *services.ActivityService) *GoalHandler {
	goalRepo := repository.NewGoalRepository(db)
	versionRepo := repository.NewGoalVersionRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	editabilityService := services.NewEditabilityService(campaignRepo)

	goalService := services.NewGoalService(
		goalRepo, versionRepo, campaignRepo, userRepo, teamRepo,
		editabilityService, activityService,
	)
	return &GoalHandler{goalService: goalService}
}

// CreateGoal godoc
// @Summary Create a new goal
// @Description Create a goal with its initial draft version (v1)
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateGoalRequest true "Create goal request"
// @Success 201 {object} models.GoalResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.goalService.CreateGoal(userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create goal")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListGoals godoc
// @Summary List goals
// @Description List non-archived goals with search, owner/team/state filters, and an editability flag per goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive search over name and description"
// @Param owner_id query string false "Filter by owner"
// @Param team_id query string false "Filter by team"
// @Param state query string false "Comma-separated lifecycle states (draft, published, draft_published, no_version)"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.GoalListResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	query := services.GoalListQuery{
		Search:   c.Query("search"),
		OwnerID:  c.Query("owner_id"),
		TeamID:   c.Query("team_id"),
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "page_size", 0),
	}
	if states := c.Query("state"); states != "" {
		query.States = strings.Split(states, ",")
	}

	response, err := h.goalService.ListGoals(query)
	if err != nil {
		respondServiceError(c, err, "Failed to list goals")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetActiveSummary godoc
// @Summary Summarize published goals
// @Description List published goals with their dependent campaign counts
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.GoalSummaryResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/active-summary [get]
func (h *GoalHandler) GetActiveSummary(c *gin.Context) {
	summaries, err := h.goalService.GetActiveSummary()
	if err != nil {
		respondServiceError(c, err, "Failed to summarize goals")
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetGoal godoc
// @Summary Get goal by ID
// @Description Get a single goal with its editability flag
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} models.GoalResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	response, err := h.goalService.GetGoal(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to get goal")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetVersion godoc
// @Summary Get a goal version by variant
// @Description Get the goal's published ("active") or working ("draft") version
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param variant path string true "Version variant" Enums(active, draft)
// @Success 200 {object} models.GoalVersionResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/{id}/versions/{variant} [get]
func (h *GoalHandler) GetVersion(c *gin.Context) {
	response, err := h.goalService.GetVersion(c.Param("id"), c.Param("variant"))
	if err != nil {
		respondServiceError(c, err, "Failed to get version")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ResolveVersion godoc
// @Summary Resolve a goal's effective version
// @Description Get the published version, falling back to the draft, with the resolution trace
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} models.ResolvedVersionResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/{id}/versions/resolved [get]
func (h *GoalHandler) ResolveVersion(c *gin.Context) {
	response, err := h.goalService.ResolveVersion(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to resolve version")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListVersions godoc
// @Summary List a goal's version history
// @Description List all versions of a goal, newest first
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {array} models.GoalVersionResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/{id}/versions [get]
func (h *GoalHandler) ListVersions(c *gin.Context) {
	responses, err := h.goalService.ListVersions(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list versions")
		return
	}

	c.JSON(http.StatusOK, responses)
}

// UpdateDraft godoc
// @Summary Update a goal's draft
// @Description Replace the draft content, creating a fresh draft when none exists. Locked and archived goals return 409.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param request body models.UpdateDraftRequest true "Draft content"
// @Success 200 {object} models.GoalVersionResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/{id}/draft [put]
func (h *GoalHandler) UpdateDraft(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.goalService.UpdateDraft(c.Param("id"), userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update draft")
		return
	}

	c.JSON(http.StatusOK, response)
}

// PublishGoal godoc
// @Summary Publish a goal's draft
// @Description Promote the draft to published; the previous published version retires. Goals without a draft return 409.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} models.GoalResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/{id}/publish [post]
func (h *GoalHandler) PublishGoal(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	response, err := h.goalService.PublishGoal(c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to publish goal")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CloneGoal godoc
// @Summary Clone a goal
// @Description Create a new goal seeded from the source's published version. Sources without a published version return 412.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Source goal ID"
// @Param request body models.CloneGoalRequest false "Clone options"
// @Success 201 {object} models.GoalResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 412 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/{id}/clone [post]
func (h *GoalHandler) CloneGoal(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CloneGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.goalService.CloneGoal(c.Param("id"), userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to clone goal")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ArchiveGoal godoc
// @Summary Archive a goal
// @Description Archive a goal. Upcoming or active dependent campaigns block the archive with 409.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) ArchiveGoal(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	if err := h.goalService.ArchiveGoal(c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to archive goal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal archived successfully"})
}

// GetEditability godoc
// @Summary Check goal editability
// @Description Report whether the goal's draft may currently be edited
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} models.EditabilityResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/{id}/editability [get]
func (h *GoalHandler) GetEditability(c *gin.Context) {
	response, err := h.goalService.GetEditability(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to evaluate editability")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListOwners godoc
// @Summary List owner references
// @Description List all users as id/name pairs for filter dropdowns
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OwnerResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/utils/owners [get]
func (h *GoalHandler) ListOwners(c *gin.Context) {
	owners, err := h.goalService.ListOwners()
	if err != nil {
		respondServiceError(c, err, "Failed to list owners")
		return
	}

	c.JSON(http.StatusOK, owners)
}

// ListTeams godoc
// @Summary List team references
// @Description List all teams as id/name pairs for filter dropdowns
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OwnerResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/goals/utils/teams [get]
func (h *GoalHandler) ListTeams(c *gin.Context) {
	teams, err := h.goalService.ListTeams()
	if err != nil {
		respondServiceError(c, err, "Failed to list teams")
		return
	}

	c.JSON(http.StatusOK, teams)
}

// parseIntQuery reads an integer query parameter with a default
func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
