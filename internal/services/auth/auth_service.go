package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/converseiq/converseiq-backend/internal/services"
	"github.com/converseiq/converseiq-backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "converseiq-backend"

// AuthService owns dashboard sessions: password auth, JWT access tokens
// and rotating refresh tokens. Access tokens carry a per-user version so
// a global logout or password change invalidates everything outstanding.
type AuthService struct {
	userRepo         *repository.UserRepository
	refreshTokenRepo *repository.RefreshTokenRepository
	roleService      *services.RoleService
	jwtSecret        []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, roleService *services.RoleService) *AuthService {
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("default-secret-key-change-in-production")
	}

	accessTokenTTL := durationEnv("ACCESS_TOKEN_TTL", 15*time.Minute)
	refreshTokenTTL := durationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	logrus.WithFields(logrus.Fields{
		"access_ttl":  accessTokenTTL,
		"refresh_ttl": refreshTokenTTL,
	}).Info("Session token TTLs configured")

	return &AuthService{
		userRepo:         repository.NewUserRepository(db),
		refreshTokenRepo: repository.NewRefreshTokenRepository(db),
		roleService:      roleService,
		jwtSecret:        jwtSecret,
		accessTokenTTL:   accessTokenTTL,
		refreshTokenTTL:  refreshTokenTTL,
	}
}

func durationEnv(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		logrus.Warnf("Ignoring invalid %s %q", name, raw)
		return fallback
	}
	return parsed
}

// Register creates a user account and signs it in. The account gets the
// requested role, falling back to agent when none is given or the grant
// fails; registration itself never fails on a role problem.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.CheckUsernameExists(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, errors.New("username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
		TokenVersion: 0,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.assignInitialRole(user.ID, req.RoleID)

	return s.issueSession(user)
}

func (s *AuthService) assignInitialRole(userID, roleID string) {
	if s.roleService == nil {
		return
	}
	if roleID != "" {
		err := s.roleService.AssignRoleToUser(userID, roleID)
		if err == nil {
			return
		}
		logrus.Warnf("Failed to assign role %s to user %s: %v", roleID, userID, err)
	}
	if err := s.roleService.AssignRoleToUserByName(userID, models.RoleAgent); err != nil {
		logrus.Warnf("Failed to assign default agent role to user %s: %v", userID, err)
	}
}

// Login authenticates by username and password. The error never reveals
// which of the two was wrong.
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logrus.Warnf("Failed to update last login for %s: %v", user.ID, err)
	}

	return s.issueSession(user)
}

// RefreshToken exchanges a refresh token for a new session. Refresh
// tokens are single-use: the presented token is revoked whether or not
// the exchange succeeds past validation.
func (s *AuthService) RefreshToken(refreshTokenStr string) (*models.AuthResponse, error) {
	refreshToken, err := s.refreshTokenRepo.GetByToken(refreshTokenStr)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	if refreshToken.ExpiresAt.Before(time.Now()) {
		s.refreshTokenRepo.RevokeToken(refreshTokenStr)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.userRepo.GetByID(refreshToken.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	if err := s.refreshTokenRepo.RevokeToken(refreshTokenStr); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueSession(user)
}

// Logout ends the session behind the given refresh token. With no token
// it ends every session the user has by bumping the token version and
// revoking all refresh tokens.
func (s *AuthService) Logout(refreshTokenStr string, userID string) error {
	if refreshTokenStr != "" {
		return s.refreshTokenRepo.RevokeToken(refreshTokenStr)
	}

	if err := s.userRepo.IncrementTokenVersion(userID); err != nil {
		return fmt.Errorf("failed to increment token version: %w", err)
	}
	if err := s.refreshTokenRepo.RevokeAllUserTokens(userID); err != nil {
		return fmt.Errorf("failed to revoke all refresh tokens: %w", err)
	}
	return nil
}

// ValidateToken parses and checks an access token. A token signed before
// the user's last global logout fails the version check even if its
// expiry has not passed.
func (s *AuthService) ValidateToken(tokenString string) (*models.TokenInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, errors.New("token version mismatch")
	}

	return &models.TokenInfo{
		UserID:       claims.UserID,
		Username:     claims.Username,
		TokenVersion: claims.TokenVersion,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// issueSession builds the auth response: access token, refresh token and
// the user with roles attached
func (s *AuthService) issueSession(user *models.User) (*models.AuthResponse, error) {
	if len(user.Roles) == 0 && s.roleService != nil {
		roles, err := s.roleService.GetUserRoles(user.ID)
		if err != nil {
			logrus.Warnf("Failed to load roles for user %s: %v", user.ID, err)
			user.Roles = []models.Role{}
		} else {
			user.Roles = roles
		}
	}

	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.mintRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
		User:         *user,
	}, nil
}

func (s *AuthService) signAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// mintRefreshToken stores a random single-use token tied to the user
func (s *AuthService) mintRefreshToken(user *models.User) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)

	refreshToken := &models.RefreshToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
		IsRevoked: false,
	}
	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return token, nil
}

// CreateAdminUser seeds the bootstrap admin account on first start. The
// account also gets the admin role so role-gated screens work out of the
// box.
func (s *AuthService) CreateAdminUser() error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe@@123"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		FirstName:    "Admin",
		LastName:     "User",
		IsActive:     true,
		IsAdmin:      true,
		TokenVersion: 0,
	}
	if err := s.userRepo.Create(adminUser); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if s.roleService != nil {
		if err := s.roleService.AssignRoleToUserByName(adminUser.ID, models.RoleAdmin); err != nil {
			logrus.Warnf("Failed to assign admin role to bootstrap user: %v", err)
		}
	}

	logrus.WithField("username", username).Info("Bootstrap admin user created")
	return nil
}

// SetUserActive activates or deactivates an account. Deactivation takes
// effect on the next token validation, not mid-request.
func (s *AuthService) SetUserActive(userID string, isActive bool) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	user.IsActive = isActive
	return s.userRepo.Update(user)
}

// ChangePassword verifies the current password, sets the new one and
// invalidates every outstanding session
func (s *AuthService) ChangePassword(userID string, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}

	return s.setPassword(user, newPassword)
}

// ResetPassword sets a new password without the current one. Admin only;
// the handler enforces that.
func (s *AuthService) ResetPassword(userID string, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	return s.setPassword(user, newPassword)
}

func (s *AuthService) setPassword(user *models.User, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.TokenVersion++
	return s.userRepo.Update(user)
}

// GetAllUsers lists accounts with pagination and username search
func (s *AuthService) GetAllUsers(page, pageSize int, search string) ([]*models.User, int64, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	users, total, err := s.userRepo.GetAllUsers(page, pageSize, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get users: %w", err)
	}

	userPointers := make([]*models.User, len(users))
	for i := range users {
		userPointers[i] = &users[i]
	}
	return userPointers, total, nil
}
