// Package store holds the local sqlite journal of applied snapshots and dispatched actions.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
	_ "modernc.org/sqlite"
)

// MigrationAction selects the direction of a schema migration.
type MigrationAction int

const (
	// MigrateUp applies every pending revision.
	MigrateUp MigrationAction = iota
	// MigrateDn drops the journal schema entirely.
	MigrateDn
)

var (
	//go:embed migrations
	migrations embed.FS

	ErrDBConnect = errors.New("db connect error")
	ErrMigrate   = errors.New("failed to migrate db schema")
	ErrQuery     = errors.New("failed to execute query")
)

func configureConnection(ctx context.Context, connection *sql.DB, memory bool) error {
	parallelism := min(8, max(2, runtime.GOMAXPROCS(0)))
	if memory {
		// Every connection to :memory: is its own database.
		parallelism = 1
	}

	connection.SetMaxOpenConns(parallelism)
	connection.SetMaxIdleConns(parallelism)
	connection.SetConnMaxLifetime(0)
	connection.SetConnMaxIdleTime(0)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA main.synchronous = NORMAL",
		"PRAGMA main.cache_size = -32768",
	}
	if !memory {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}

	for _, pragma := range pragmas {
		if _, errPragma := connection.ExecContext(ctx, pragma); errPragma != nil {
			return errors.Join(errPragma, ErrDBConnect)
		}
	}

	return nil
}

// Open connects to the sqlite database at path, an empty path opening a private in-memory database.
func Open(ctx context.Context, path string, autoMigrate bool) (*sql.DB, error) {
	memory := path == ""
	if memory {
		path = ":memory:"
	}

	connection, err := sql.Open("sqlite", path+"?cache=private")
	if err != nil {
		return nil, errors.Join(err, ErrDBConnect)
	}

	if errConfig := configureConnection(ctx, connection, memory); errConfig != nil {
		closeDB(connection)

		return nil, errConfig
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := connection.PingContext(pingCtx); err != nil {
		closeDB(connection)

		return nil, errors.Join(err, ErrDBConnect)
	}

	if autoMigrate {
		if errMigrate := Migrate(connection, MigrateUp); errMigrate != nil {
			closeDB(connection)

			return nil, errors.Join(errMigrate, ErrDBConnect)
		}
	}

	return connection, nil
}

func closeDB(connection *sql.DB) {
	if err := connection.Close(); err != nil {
		slog.Error("Failed to close database", slog.String("error", err.Error()))
	}
}

func Migrate(conn *sql.DB, action MigrationAction) error {
	driver, errDriver := sqlite.WithInstance(conn, &sqlite.Config{})
	if errDriver != nil {
		return errors.Join(errDriver, ErrMigrate)
	}

	source, errHTTPFS := httpfs.New(http.FS(migrations), "migrations")
	if errHTTPFS != nil {
		return errors.Join(errHTTPFS, ErrMigrate)
	}

	migrator, errMigrateInstance := migrate.NewWithInstance("httpfs", source, "sqlite", driver)
	if errMigrateInstance != nil {
		return errors.Join(errMigrateInstance, ErrMigrate)
	}

	var errMigration error

	switch action {
	case MigrateUp:
		errMigration = migrator.Up()
	case MigrateDn:
		errMigration = migrator.Down()
	}

	if errMigration != nil && !errors.Is(errMigration, migrate.ErrNoChange) {
		return errors.Join(errMigration, ErrMigrate)
	}

	return nil
}
