package auth

import (
	"os"
	"time"

	"github.com/converseiq/converseiq-backend/internal/database/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TokenPruner periodically deletes expired and revoked refresh tokens so
// the sessions table does not grow without bound. Dashboard sessions are
// short-lived, so a few sweeps per day keep it small.
type TokenPruner struct {
	refreshTokenRepo *repository.RefreshTokenRepository
	interval         time.Duration
	stop             chan struct{}
}

func NewTokenPruner(db *gorm.DB) *TokenPruner {
	interval := 6 * time.Hour
	if raw := os.Getenv("TOKEN_PRUNE_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		} else {
			logrus.Warnf("Ignoring invalid TOKEN_PRUNE_INTERVAL %q", raw)
		}
	}

	return &TokenPruner{
		refreshTokenRepo: repository.NewRefreshTokenRepository(db),
		interval:         interval,
		stop:             make(chan struct{}),
	}
}

// Start begins the background sweep loop, pruning once immediately.
func (p *TokenPruner) Start() {
	go p.run()
	logrus.WithField("interval", p.interval).Info("Session token pruner started")
}

// Stop ends the sweep loop. Safe to call once.
func (p *TokenPruner) Stop() {
	close(p.stop)
	logrus.Info("Session token pruner stopped")
}

func (p *TokenPruner) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.prune()

	for {
		select {
		case <-ticker.C:
			p.prune()
		case <-p.stop:
			return
		}
	}
}

func (p *TokenPruner) prune() {
	if err := p.refreshTokenRepo.CleanupTokens(); err != nil {
		logrus.Errorf("Failed to prune session tokens: %v", err)
		return
	}
	logrus.Debug("Pruned expired session tokens")
}
