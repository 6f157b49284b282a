package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Database struct {
	db                 *gorm.DB
	userRepo           *UserRepo
	sessionRepo        *SessionRepo
	contactMessageRepo *ContactMessageRepo
	websiteProjectRepo *WebsiteProjectRepo
	videoProjectRepo   *VideoProjectRepo
	socialProjectRepo  *SocialProjectRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		userRepo:           NewUserRepo(db),
		sessionRepo:        NewSessionRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
		websiteProjectRepo: NewWebsiteProjectRepo(db),
		videoProjectRepo:   NewVideoProjectRepo(db),
		socialProjectRepo:  NewSocialProjectRepo(db),
	}
}

// Open opens (creating if needed) the SQLite file at path and migrates every table.
func Open(path string, log zerolog.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         NewGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or alters tables to match the models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) SessionRepo() *SessionRepo {
	return d.sessionRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

func (d Database) WebsiteProjectRepo() *WebsiteProjectRepo {
	return d.websiteProjectRepo
}

func (d Database) VideoProjectRepo() *VideoProjectRepo {
	return d.videoProjectRepo
}

func (d Database) SocialProjectRepo() *SocialProjectRepo {
	return d.socialProjectRepo
}

// GetDB returns the underlying database connection for maintenance tasks
func (d Database) GetDB() *gorm.DB {
	return d.db
}

// Ping checks that the database file is reachable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
