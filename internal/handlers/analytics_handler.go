package handlers

import (
	"net/http"
	"strings"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/services"
	"github.com/converseiq/converseiq-backend/internal/services/excel"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	excelService     *excel.Service
}

func NewAnalyticsHandler(db *gorm.DB, exportsDir string) *AnalyticsHandler {
	goalRepo := repository.NewGoalRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	conversationRepo := repository.NewConversationRepository(db)

	return &AnalyticsHandler{
		analyticsService: services.NewAnalyticsService(goalRepo, campaignRepo, conversationRepo),
		excelService:     excel.NewExcelService(campaignRepo, goalRepo, conversationRepo, exportsDir),
	}
}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Headline numbers over goals, campaigns, and conversations. Aggregates cover the full collections; only the filtered campaign count follows the query filters.
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Campaign name filter for the filtered count"
// @Param goal_id query string false "Campaign goal filter for the filtered count"
// @Param status query string false "Comma-separated campaign statuses for the filtered count"
// @Success 200 {object} models.AnalyticsSummaryResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	query := services.CampaignListQuery{
		Search: c.Query("search"),
		GoalID: c.Query("goal_id"),
	}
	if statuses := c.Query("status"); statuses != "" {
		query.Statuses = strings.Split(statuses, ",")
	}

	summary, err := h.analyticsService.GetSummary(query)
	if err != nil {
		respondServiceError(c, err, "Failed to derive summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportCampaignReport godoc
// @Summary Export campaign report
// @Description Export every campaign with its metrics as an Excel file
// @Tags analytics
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Excel file"
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/analytics/export [get]
func (h *AnalyticsHandler) ExportCampaignReport(c *gin.Context) {
	result, err := h.excelService.ExportCampaignReport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report", "details": err.Error()})
		return
	}

	c.FileAttachment(result.FilePath, result.Filename)
}
