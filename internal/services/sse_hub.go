package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SSEHub manages Server-Sent Events connections for the live activity stream
type SSEHub struct {
	// Map of entity keys to channels
	// Key format: "entity_type:entity_id", or "*" for the firehose
	clients map[string]map[chan []byte]bool
	mu      sync.RWMutex
}

// firehoseKey subscribes a client to every activity event
const firehoseKey = "*"

// NewSSEHub creates a new SSE hub
func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients: make(map[string]map[chan []byte]bool),
	}
}

// RegisterClient registers a new SSE client. Empty entityType/entityID
// subscribes to the firehose.
func (h *SSEHub) RegisterClient(entityType, entityID string) chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := clientKey(entityType, entityID)
	clientChan := make(chan []byte, 10) // Buffer size 10

	if h.clients[key] == nil {
		h.clients[key] = make(map[chan []byte]bool)
	}
	h.clients[key][clientChan] = true

	logrus.Infof("SSE client registered for %s (total clients: %d)", key, len(h.clients[key]))
	return clientChan
}

// UnregisterClient unregisters an SSE client
func (h *SSEHub) UnregisterClient(entityType, entityID string, clientChan chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := clientKey(entityType, entityID)
	if h.clients[key] != nil {
		delete(h.clients[key], clientChan)
		close(clientChan)

		// Clean up empty maps
		if len(h.clients[key]) == 0 {
			delete(h.clients, key)
		}
	}

	logrus.Infof("SSE client unregistered for %s (remaining clients: %d)", key, len(h.clients[key]))
}

// BroadcastActivity broadcasts an activity event to entity subscribers and the
// firehose
func (h *SSEHub) BroadcastActivity(entry *models.ActivityLog) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	entityKey := clientKey(entry.EntityType, entry.EntityID)
	h.broadcastToKeyLocked(entityKey, entry, h.clients[entityKey])
	h.broadcastToKeyLocked(firehoseKey, entry, h.clients[firehoseKey])
}

// broadcastToKeyLocked broadcasts the event to clients (assumes lock is already held)
func (h *SSEHub) broadcastToKeyLocked(key string, entry *models.ActivityLog, clients map[chan []byte]bool) {
	if len(clients) == 0 {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		logrus.Errorf("Failed to marshal activity for SSE: %v", err)
		return
	}

	message := fmt.Sprintf("event: activity\ndata: %s\n\n", string(payload))

	// Send to all clients (non-blocking)
	for clientChan := range clients {
		select {
		case clientChan <- []byte(message):
		default:
			// Channel is full, skip this client
			logrus.Warnf("SSE client channel full, skipping: %s", key)
		}
	}
}

// GetClientCount returns the number of clients for a specific entity
func (h *SSEHub) GetClientCount(entityType, entityID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, exists := h.clients[clientKey(entityType, entityID)]; exists {
		return len(clients)
	}
	return 0
}

// SendHeartbeat sends a heartbeat message to keep connection alive
func (h *SSEHub) SendHeartbeat(entityType, entityID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, exists := h.clients[clientKey(entityType, entityID)]
	if !exists {
		return
	}

	heartbeat := fmt.Sprintf(": heartbeat %s\n\n", time.Now().Format(time.RFC3339))
	for clientChan := range clients {
		select {
		case clientChan <- []byte(heartbeat):
		default:
			// Skip if channel is full
		}
	}
}

func clientKey(entityType, entityID string) string {
	if entityType == "" && entityID == "" {
		return firehoseKey
	}
	return fmt.Sprintf("%s:%s", entityType, entityID)
}
