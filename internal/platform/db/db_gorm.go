// Package db provides the relational store connection used for user and
// watchlist records.
package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "bloomberg_lite/internal/feature/auth/domain/entity"
	watchlistentity "bloomberg_lite/internal/feature/watchlist/domain/entity"
)

// Config holds the connection settings for the relational store.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string

	// InstanceName, when set, selects a Cloud SQL unix socket connection
	// and takes precedence over Host/Port.
	InstanceName string
}

// BuildDSN assembles a PostgreSQL DSN from the config.
func BuildDSN(cfg Config) string {
	host := cfg.Host
	port := cfg.Port
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
		port = ""
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, cfg.User, cfg.Password, cfg.Name)
	if port != "" {
		dsn += " port=" + port
	}
	return dsn
}

// ConnectWithRetry keeps calling opener until it succeeds or timeout passes.
// The opener is injected so the retry loop can be tested without a database.
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(dsn string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects to PostgreSQL, retrying for up to a minute so the server
// can start before the database container is ready.
func OpenDB(cfg Config) *gorm.DB {
	dsn := BuildDSN(cfg)

	db, err := ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Watchlist）
		if err := db.AutoMigrate(
			&authentity.User{},
			&watchlistentity.Watchlist{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
// It covers both the raw PostgreSQL error code and gorm's dialect-translated
// error, so adapters behave the same against PostgreSQL and the in-memory
// SQLite used in tests.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
