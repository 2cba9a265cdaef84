package handlers

import (
	"net/http"
	"time"

	"github.com/converseiq/converseiq-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ActivityHandler struct {
	activityService *services.ActivityService
	sseHub          *services.SSEHub
}

func NewActivityHandler(activityService *services.ActivityService, sseHub *services.SSEHub) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		sseHub:          sseHub,
	}
}

// GetActivity godoc
// @Summary List recent activity
// @Description List recent lifecycle events, optionally scoped to one entity
// @Tags activity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entity_type query string false "Entity type (goal, campaign)"
// @Param entity_id query string false "Entity ID"
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {array} models.ActivityLogResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/activity [get]
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	responses, err := h.activityService.List(
		c.Query("entity_type"),
		c.Query("entity_id"),
		parseIntQuery(c, "limit", 0),
	)
	if err != nil {
		respondServiceError(c, err, "Failed to list activity")
		return
	}

	c.JSON(http.StatusOK, responses)
}

// StreamActivitySSE godoc
// @Summary Stream activity via Server-Sent Events (SSE)
// @Description Stream lifecycle events in real time. Omit entity_type/entity_id for the firehose.
// @Tags activity
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param entity_type query string false "Entity type (goal, campaign)"
// @Param entity_id query string false "Entity ID"
// @Success 200 "SSE stream"
// @Router /api/v1/activity/stream [get]
func (h *ActivityHandler) StreamActivitySSE(c *gin.Context) {
	entityType := c.Query("entity_type")
	entityID := c.Query("entity_id")

	// Set headers for SSE
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable buffering for nginx

	// Register client
	clientChan := h.sseHub.RegisterClient(entityType, entityID)
	defer h.sseHub.UnregisterClient(entityType, entityID, clientChan)
	logrus.Infof("SSE client connected: %s/%s (%d active)", entityType, entityID,
		h.sseHub.GetClientCount(entityType, entityID))

	// Send initial connection message
	c.SSEvent("connected", gin.H{
		"entity_type": entityType,
		"entity_id":   entityID,
		"message":     "Connected to activity stream",
	})
	c.Writer.Flush()

	// Heartbeat keeps proxies from closing idle streams
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	// Send events as they arrive
	for {
		select {
		case <-c.Request.Context().Done():
			logrus.Infof("SSE client disconnected: %s/%s", entityType, entityID)
			return
		case <-heartbeat.C:
			h.sseHub.SendHeartbeat(entityType, entityID)
		case message, ok := <-clientChan:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(message); err != nil {
				logrus.Errorf("Failed to write SSE message: %v", err)
				return
			}
			c.Writer.Flush()
		}
	}
}
