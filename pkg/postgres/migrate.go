package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// MigrationStatus is the schema state after a migration run.
type MigrationStatus struct {
	Version uint
	// Changed is false when the schema was already current.
	Changed bool
}

// MigrationSourceURL turns a migrations directory into a golang-migrate
// source URL. Values that already carry a scheme are returned unchanged.
func MigrationSourceURL(dir string) string {
	if strings.Contains(dir, "://") {
		return dir
	}
	return "file://" + dir
}

// MigrateUp applies every pending migration in dir.
func MigrateUp(dsn, dir string) (MigrationStatus, error) {
	var status MigrationStatus
	err := withMigrator(dsn, dir, func(m *migrate.Migrate) error {
		err := m.Up()
		switch {
		case errors.Is(err, migrate.ErrNoChange):
		case err != nil:
			return fmt.Errorf("run migrations up: %w", err)
		default:
			status.Changed = true
		}

		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty", version)
		}
		status.Version = version
		return nil
	})
	return status, err
}

// MigrateDown rolls back every applied migration.
func MigrateDown(dsn, dir string) error {
	return withMigrator(dsn, dir, func(m *migrate.Migrate) error {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("run migrations down: %w", err)
		}
		return nil
	})
}

func withMigrator(dsn, dir string, fn func(*migrate.Migrate) error) error {
	m, err := migrate.New(MigrationSourceURL(dir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := fn(m); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	return nil
}
