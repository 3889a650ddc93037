package database

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver "oracle"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // sqlite driver "sqlite"

	"quizcraft/internal/config"
)

// DriverName maps the configured backend onto the registered database/sql driver.
func DriverName(backend string) (string, error) {
	switch backend {
	case "sqlite":
		return "sqlite", nil
	case "postgres":
		return "pgx", nil
	case "oracle":
		return "oracle", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", backend)
	}
}

// Open connects to the configured database and pings it.
func Open(cfg *config.Config, log *zap.Logger) (*sqlx.DB, error) {
	driver, err := DriverName(cfg.DB.Driver)
	if err != nil {
		return nil, err
	}

	if driver == "oracle" {
		// go-ora binds :name placeholders
		sqlx.BindDriver("oracle", sqlx.NAMED)
	}

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DB.Driver, err)
	}

	if driver == "sqlite" {
		// a single writer avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	log.Info("Connected to database", zap.String("driver", cfg.DB.Driver))
	return db, nil
}
