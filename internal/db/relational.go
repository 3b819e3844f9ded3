package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ihrp/tally/migrations"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// OpenRelational opens the store holding actual entries and master plans.
// A postgres:// DSN connects through lib/pq; anything else is treated as a
// sqlite file path (the sqlite driver is registered by the document store's
// driver package). Embedded migrations run only for the sqlite flavor;
// postgres schemas are provisioned by the operator.
func OpenRelational(dsn string) (*sqlx.DB, error) {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)

	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	} else {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		dsn = fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dsn)
	}

	database, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open relational store: %w", err)
	}
	database.SetMaxOpenConns(5)
	database.SetMaxIdleConns(5)
	database.SetConnMaxLifetime(30 * time.Minute)

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping relational store: %w", err)
	}

	if driver == "sqlite" {
		if err := applyEmbeddedMigrations(database.DB, migrations.Actuals, "actuals"); err != nil {
			database.Close()
			return nil, fmt.Errorf("apply embedded migrations: %w", err)
		}
	}

	return database, nil
}
