package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations applies every pending up migration for backend.
// sqlite and postgres go through golang-migrate; Oracle scripts are executed
// statement by statement since go-ora rejects multi-statement execs.
func RunMigrations(db *sql.DB, backend string, log *zap.Logger) error {
	if backend == "oracle" {
		return runOracleMigrations(db, log)
	}

	src, err := iofs.New(migrationsFS, "migrations/common")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	var m *migrate.Migrate
	switch backend {
	case "sqlite":
		driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("could not create sqlite migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite", driver)
		if err != nil {
			return fmt.Errorf("could not create migrator: %w", err)
		}
	case "postgres":
		driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
		if err != nil {
			return fmt.Errorf("could not create pgx migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "pgx5", driver)
		if err != nil {
			return fmt.Errorf("could not create migrator: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", backend)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	log.Info("Migrations completed", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func runOracleMigrations(db *sql.DB, log *zap.Logger) error {
	files, err := fs.Glob(migrationsFS, "migrations/oracle/*.up.sql")
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := migrationsFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", file, err)
			}
		}
		log.Info("Executed migration", zap.String("file", file))
	}
	return nil
}

// SplitStatements splits a script on semicolons that end a line and drops the
// terminators, which Oracle does not accept over the wire.
func SplitStatements(script string) []string {
	var out []string
	var cur strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			cur.WriteString(strings.TrimSuffix(trimmed, ";"))
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(trimmed)
		cur.WriteString(" ")
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}
