package database

import (
	"errors"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotConfigured means DATABASE_URL is not set. Handlers map it to a
// generic error response so a misconfigured deploy degrades per request
// instead of crashing the process at startup.
var ErrNotConfigured = errors.New("DATABASE_URL environment variable is not set")

var (
	mu sync.Mutex
	db *gorm.DB
)

// Get returns the shared database handle, opening it on first use.
// Initialization after the first success is a no-op. A failed attempt leaves
// no state behind, so the next request simply retries.
func Get() (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()
	if db != nil {
		return db, nil
	}

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		return nil, ErrNotConfigured
	}

	handle, err := gorm.Open(dialectorFor(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := configurePool(handle); err != nil {
		return nil, err
	}
	if err := EnsureSchema(handle); err != nil {
		return nil, err
	}

	db = handle
	return db, nil
}

// dialectorFor picks the driver by DSN scheme. Postgres is the production
// default; mysql:// DSNs are rewritten to the driver's native form.
func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "mysql://") {
		return mysql.Open(strings.TrimPrefix(dsn, "mysql://"))
	}
	return postgres.Open(dsn)
}

func configurePool(handle *gorm.DB) error {
	sqlDB, err := handle.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return nil
}

// Ping runs a trivial query to verify connectivity.
func Ping(handle *gorm.DB) error {
	return handle.Exec("SELECT 1").Error
}

// Host reports the host portion of the configured DSN for the DB health
// diagnostics. Unrecognized formats come back as "unknown".
func Host() string {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		return "unknown"
	}
	if u, err := url.Parse(dsn); err == nil && u.Host != "" {
		return u.Hostname()
	}
	// Key-value DSN form: host=... user=... dbname=...
	for _, kv := range strings.Fields(dsn) {
		if strings.HasPrefix(kv, "host=") {
			return strings.TrimPrefix(kv, "host=")
		}
	}
	return "unknown"
}

// Use installs an already-open handle. Tests use it to point the package at
// an in-memory database; passing nil resets the lazy initializer.
func Use(handle *gorm.DB) {
	mu.Lock()
	defer mu.Unlock()
	db = handle
}
