package database

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/converseiq/converseiq-backend/internal/models"
)

// DB is the global database instance
var DB *gorm.DB

// InitDB initializes the database connection and performs migrations
func InitDB() (*gorm.DB, error) {
	// Get database connection parameters from environment variables
	host := getEnv("DB_HOST", "")
	port := getEnv("DB_PORT", "")
	user := getEnv("DB_USER", "")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "")
	sslmode := getEnv("DB_SSLMODE", "disable")

	// Validate required environment variables
	if host == "" || port == "" || user == "" || password == "" || dbname == "" {
		return nil, fmt.Errorf("missing required database environment variables. Please check your .env file")
	}

	// Create DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	// Configure GORM logger
	gormLogger := logger.New(
		logrus.New(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: true, // Disable FK constraints during migration to avoid order issues
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Create public schema if it doesn't exist
	err = db.Exec("CREATE SCHEMA IF NOT EXISTS public").Error
	if err != nil {
		return nil, fmt.Errorf("failed to create public schema: %w", err)
	}

	// Set search_path to public
	err = db.Exec("SET search_path TO public").Error
	if err != nil {
		return nil, fmt.Errorf("failed to set search_path: %w", err)
	}

	// Enable UUID extension
	err = db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\" SCHEMA public").Error
	if err != nil {
		return nil, fmt.Errorf("failed to enable UUID extension: %w", err)
	}

	// Auto migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Role{},
		&models.APIKey{},
		&models.Team{},
		&models.Goal{},
		&models.GoalVersion{},
		&models.Campaign{},
		&models.Conversation{},
		&models.ActivityLog{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Migration: goals created before team scoping have no team_id column value;
	// ensure the index used by the team filter exists
	err = db.Exec("CREATE INDEX IF NOT EXISTS idx_goals_team_id ON goals(team_id)").Error
	if err != nil {
		logrus.Warnf("Failed to create index on goals(team_id): %v", err)
	}

	// Migration: one draft and one published row per goal at most. Partial
	// unique indexes enforce what the version pointers assume.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_goal_versions_one_draft
		ON goal_versions(goal_id) WHERE state = 'draft'
	`).Error
	if err != nil {
		logrus.Warnf("Failed to create one-draft index: %v", err)
	}
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_goal_versions_one_published
		ON goal_versions(goal_id) WHERE state = 'published'
	`).Error
	if err != nil {
		logrus.Warnf("Failed to create one-published index: %v", err)
	}

	// Migration: conversations are queried by campaign and time window
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_conversations_campaign_occurred
		ON conversations(campaign_id, occurred_at DESC)
	`).Error
	if err != nil {
		logrus.Warnf("Failed to create conversations window index: %v", err)
	}

	// Migration: create default roles if they don't exist
	defaultRoles := []struct {
		name        string
		description string
	}{
		{models.RoleAdmin, "Full dashboard access"},
		{models.RoleTeamLeader, "Manages goals and campaigns for a team"},
		{models.RoleAgent, "Handles conversations"},
	}

	for _, roleData := range defaultRoles {
		var roleExists bool
		err = db.Raw(`
			SELECT EXISTS (
				SELECT 1
				FROM roles
				WHERE name = ?
			)
		`, roleData.name).Scan(&roleExists).Error
		if err != nil {
			logrus.Warnf("Failed to check if %s role exists: %v", roleData.name, err)
			continue
		}
		if !roleExists {
			logrus.Infof("Creating default role '%s'...", roleData.name)
			role := &models.Role{
				Name:        roleData.name,
				Description: roleData.description,
			}
			if err := db.Create(role).Error; err != nil {
				logrus.Warnf("Failed to create %s role: %v", roleData.name, err)
			} else {
				logrus.Infof("Successfully created %s role", roleData.name)
			}
		}
	}

	// Set global DB instance
	DB = db

	logrus.Info("Database connection established and migrations completed")
	return db, nil
}

// GetDB returns the global database instance
func GetDB() *gorm.DB {
	return DB
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
