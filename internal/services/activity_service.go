package services

import (
	"fmt"
	"time"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ActivityService records lifecycle events and fans them out to the SSE
// activity stream and the lifecycle_events queue. Broker and hub failures are
// logged, never surfaced: the triggering operation already succeeded.
type ActivityService struct {
	logRepo  *repository.ActivityLogRepository
	sseHub   *SSEHub
	rabbitMQ *RabbitMQService // nil when the broker is unavailable
}

func NewActivityService(logRepo *repository.ActivityLogRepository, sseHub *SSEHub, rabbitMQ *RabbitMQService) *ActivityService {
	return &ActivityService{
		logRepo:  logRepo,
		sseHub:   sseHub,
		rabbitMQ: rabbitMQ,
	}
}

// Record persists one lifecycle event and broadcasts it
func (s *ActivityService) Record(entityType, entityID, actorID, action, message string, metadata map[string]interface{}) {
	entry := &models.ActivityLog{
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Action:     action,
		Message:    message,
		Metadata:   models.JSON(metadata),
		CreatedAt:  time.Now(),
	}

	if err := s.logRepo.Create(entry); err != nil {
		logrus.Errorf("Failed to record %s activity for %s %s: %v", action, entityType, entityID, err)
		return
	}

	if s.sseHub != nil {
		s.sseHub.BroadcastActivity(entry)
	}

	if s.rabbitMQ != nil {
		event := map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID,
			"actor_id":    actorID,
			"action":      action,
			"message":     message,
			"metadata":    metadata,
			"occurred_at": entry.CreatedAt.Format(time.RFC3339),
		}
		if err := s.rabbitMQ.PublishMessage(LifecycleEventsQueue, event); err != nil {
			logrus.Errorf("Failed to publish lifecycle event: %v", err)
		}
	}
}

// List retrieves recent activity, optionally scoped to one entity
func (s *ActivityService) List(entityType, entityID string, limit int) ([]*models.ActivityLogResponse, error) {
	logs, err := s.logRepo.List(entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	responses := make([]*models.ActivityLogResponse, len(logs))
	for i, entry := range logs {
		responses[i] = &models.ActivityLogResponse{
			ID:         entry.ID,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			ActorID:    entry.ActorID,
			Action:     entry.Action,
			Message:    entry.Message,
			Metadata:   entry.Metadata,
			CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		}
	}
	return responses, nil
}
