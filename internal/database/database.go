package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// Manager handles database connections and schema bootstrap.
type Manager struct {
	db *gorm.DB
}

// NewManager opens a postgres connection with sane pool settings.
func NewManager(config *Config) (*Manager, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db}, nil
}

// Bootstrap creates the users and transactions tables if they are absent.
// It is idempotent and safe to run on every startup; it is not a migration
// system (see cmd/migrate for versioned SQL migrations).
func (m *Manager) Bootstrap() error {
	logger.Get().Info("Bootstrapping database schema...")

	if err := m.db.AutoMigrate(&models.User{}, &models.Transaction{}); err != nil {
		return fmt.Errorf("schema bootstrap failed: %w", err)
	}

	logger.Get().Info("Database schema ready")
	return nil
}

// DB returns the underlying GORM database instance.
func (m *Manager) DB() *gorm.DB {
	return m.db
}
