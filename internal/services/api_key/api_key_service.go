package api_key

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// KeyPrefix identifies ingest keys at a glance in configs and logs.
const KeyPrefix = "ciq_"

var (
	// ErrNoKey means the user has no ingest key provisioned.
	ErrNoKey = errors.New("no ingest key provisioned")
	// ErrKeyRejected means the presented key is unknown, disabled, or
	// belongs to a deactivated account.
	ErrKeyRejected = errors.New("ingest key rejected")
)

// Service manages the per-user keys the conversation pipeline uses to
// push records into /ingest. A user holds at most one key; rotating
// issues a fresh key and retires the old one.
type Service struct {
	apiKeyRepo *repository.APIKeyRepository
	userRepo   *repository.UserRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		apiKeyRepo: repository.NewAPIKeyRepository(db),
		userRepo:   repository.NewUserRepository(db),
	}
}

// Rotate issues a fresh ingest key for the user. Any previous key stops
// working immediately, so pipeline configs must be updated in step.
func (s *Service) Rotate(userID string) (*models.APIKey, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	current, err := s.apiKeyRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up current key: %w", err)
	}
	if current != nil {
		if _, err := s.apiKeyRepo.Delete(current.ID); err != nil {
			return nil, fmt.Errorf("failed to retire current key: %w", err)
		}
	}

	key, err := newIngestKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	created, err := s.apiKeyRepo.Create(&models.APIKey{
		Key:      key,
		UserID:   userID,
		IsActive: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store key: %w", err)
	}

	logrus.WithField("user_id", userID).Info("Ingest key rotated")
	return created, nil
}

// Validate resolves an ingest key to its owning user. Disabled keys and
// deactivated accounts are rejected without distinguishing the cause, so
// a probing caller learns nothing from the error.
func (s *Service) Validate(key string) (*models.User, error) {
	apiKey, err := s.apiKeyRepo.GetByKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up key: %w", err)
	}
	if apiKey == nil || !apiKey.IsActive {
		return nil, ErrKeyRejected
	}

	user, err := s.userRepo.GetByID(apiKey.UserID)
	if err != nil || !user.IsActive {
		return nil, ErrKeyRejected
	}

	if err := s.apiKeyRepo.UpdateLastUsed(apiKey.ID); err != nil {
		// Staleness of last_used_at never blocks an ingest.
		logrus.WithField("key_id", apiKey.ID).Warnf("Failed to touch ingest key: %v", err)
	}

	return user, nil
}

// GetForUser returns the user's ingest key, or ErrNoKey.
func (s *Service) GetForUser(userID string) (*models.APIKey, error) {
	apiKey, err := s.apiKeyRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up key: %w", err)
	}
	if apiKey == nil {
		return nil, ErrNoKey
	}
	return apiKey, nil
}

// SetActive pauses or resumes the user's ingest key without rotating it.
func (s *Service) SetActive(userID string, isActive bool) (*models.APIKey, error) {
	apiKey, err := s.apiKeyRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up key: %w", err)
	}
	if apiKey == nil {
		return nil, ErrNoKey
	}

	updated, err := s.apiKeyRepo.Update(apiKey.ID, map[string]interface{}{"is_active": isActive})
	if err != nil {
		return nil, fmt.Errorf("failed to update key: %w", err)
	}
	return updated, nil
}

// Revoke deletes the user's ingest key outright.
func (s *Service) Revoke(userID string) error {
	apiKey, err := s.apiKeyRepo.GetByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to look up key: %w", err)
	}
	if apiKey == nil {
		return ErrNoKey
	}

	if _, err := s.apiKeyRepo.Delete(apiKey.ID); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	logrus.WithField("user_id", userID).Info("Ingest key revoked")
	return nil
}

// newIngestKey produces a prefixed 256-bit random key
func newIngestKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return KeyPrefix + hex.EncodeToString(bytes), nil
}
