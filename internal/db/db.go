package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type poolSettings struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// SQLite serializes writers anyway; a small pool keeps busy retries short.
var pools = map[string]poolSettings{
	"sqlite": {maxOpen: 4, maxIdle: 4, maxLifetime: 0},
	"pgx":    {maxOpen: 25, maxIdle: 5, maxLifetime: 5 * time.Minute},
}

// Init opens and pings the database. For SQLite the parent directory of the
// file is created first.
func Init(driver, connection string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		if err := ensureDataDir(connection); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	pool, ok := pools[driver]
	if !ok {
		pool = pools["pgx"]
	}
	db.SetMaxOpenConns(pool.maxOpen)
	db.SetMaxIdleConns(pool.maxIdle)
	db.SetConnMaxLifetime(pool.maxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connected", "driver", driver, "max_open_conns", pool.maxOpen)
	return db, nil
}

func ensureDataDir(connection string) error {
	path := strings.TrimPrefix(strings.SplitN(connection, "?", 2)[0], "file:")
	if path == "" || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func Close(db *sqlx.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
