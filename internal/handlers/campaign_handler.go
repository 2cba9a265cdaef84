package handlers

import (
	"net/http"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/listview"
	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/converseiq/converseiq-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(db *gorm.DB, activityService *services.ActivityService) *CampaignHandler {
	campaignRepo := repository.NewCampaignRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	conversationRepo := repository.NewConversationRepository(db)

	campaignService := services.NewCampaignService(campaignRepo, goalRepo, teamRepo, conversationRepo, activityService)
	return &CampaignHandler{campaignService: campaignService}
}

// CreateCampaign godoc
// @Summary Create a new campaign
// @Description Create a campaign pinned to the goal's currently published version. Goals without a published version return 412.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCampaignRequest true "Create campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 412 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.CreateCampaign(userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create campaign")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListCampaigns godoc
// @Summary List campaigns
// @Description List campaigns with search, goal/team/status filters
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive search over name"
// @Param goal_id query string false "Filter by goal"
// @Param team_id query string false "Filter by team"
// @Param status query string false "Comma-separated statuses (UPCOMING, ACTIVE, COMPLETED, CANCELED, ARCHIVED)"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.CampaignListResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	state := listview.NewState(parseIntQuery(c, "page_size", 0)).
		WithSearch(c.Query("search")).
		WithFilter("goal_id", c.Query("goal_id")).
		WithFilter("team_id", c.Query("team_id")).
		WithFilter("status", c.Query("status")).
		WithPage(parseIntQuery(c, "page", 1))

	response, err := h.campaignService.ListCampaigns(services.CampaignQueryFromState(state))
	if err != nil {
		respondServiceError(c, err, "Failed to list campaigns")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCampaign godoc
// @Summary Get campaign by ID
// @Description Get a campaign with metrics derived from its conversations
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	response, err := h.campaignService.GetCampaign(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to get campaign")
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateCampaign godoc
// @Summary Update a campaign
// @Description Update a campaign's name, team, dates, or status. Leaving a terminal status (other than to ARCHIVED) returns 409.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Update campaign request"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.UpdateCampaign(c.Param("id"), userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update campaign")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ArchiveCampaign godoc
// @Summary Archive a campaign
// @Description Move a campaign to ARCHIVED; nothing is hard-deleted
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [delete]
func (h *CampaignHandler) ArchiveCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	if err := h.campaignService.ArchiveCampaign(c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to archive campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign archived successfully"})
}
