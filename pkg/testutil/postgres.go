package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pgpkg "github.com/Dasindu02/diapredict-main/pkg/postgres"
)

// PostgresContainer is a disposable, migrated PostgreSQL instance.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// StartPostgres starts PostgreSQL, applies the repository's migrations and
// registers teardown on t.
func StartPostgres(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	ctr, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("diapredict"),
		postgres.WithUsername("risk"),
		postgres.WithPassword("risk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	pc := &PostgresContainer{Container: ctr}
	t.Cleanup(func() { pc.terminate(t) })

	if pc.DSN, err = ctr.ConnectionString(ctx, "sslmode=disable"); err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}
	if _, err := pgpkg.MigrateUp(pc.DSN, MigrationsDir(t)); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	if pc.Pool, err = pgpkg.NewPool(ctx, pgpkg.Config{URL: pc.DSN, MaxConns: 4}); err != nil {
		t.Fatalf("open test pool: %v", err)
	}
	return pc
}

func (pc *PostgresContainer) terminate(t *testing.T) {
	if pc.Pool != nil {
		pc.Pool.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pc.Container.Terminate(ctx); err != nil {
		t.Logf("warning: terminate postgres container: %v", err)
	}
}

// MigrationsDir locates the migrations directory by walking up from the
// working directory to the module root.
func MigrationsDir(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("module root not found above working directory")
		}
		dir = parent
	}
}
