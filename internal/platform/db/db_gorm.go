// Package db provides the GORM-backed store handle.
package db

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	authadapters "whisper_backend/internal/feature/auth/adapters"
	authentity "whisper_backend/internal/feature/auth/domain/entity"
	msgentity "whisper_backend/internal/feature/messages/domain/entity"
)

// Config holds the database connection settings, read from the environment.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string

	// RunMigrations enables schema auto-migration on connect.
	RunMigrations bool
}

// ConfigFromEnv builds a Config from environment variables.
func ConfigFromEnv() Config {
	return Config{
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Host:          os.Getenv("DB_HOST"),
		Port:          os.Getenv("DB_PORT"),
		Name:          os.Getenv("DB_NAME"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
}

// Store is an explicitly constructed handle to the document-like user store.
// The connection is established lazily and reused for the process lifetime;
// Connect is idempotent and safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	cfg Config
	db  *gorm.DB
}

// NewStore creates a Store handle without connecting yet.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Connect opens the database connection if absent and returns it.
// Subsequent calls return the already-established connection.
func (s *Store) Connect() (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		s.cfg.User, s.cfg.Password, s.cfg.Host, s.cfg.Port, s.cfg.Name)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gmysql.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after 60s: %w", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if s.cfg.RunMigrations {
		// マイグレーション（User, Session, Message）
		if err := db.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&msgentity.Message{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	s.db = db
	return s.db, nil
}
