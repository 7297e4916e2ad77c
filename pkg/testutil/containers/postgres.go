//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"ftf/migrations"
	id "ftf/pkg/domain"
)

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a new Postgres container with migrations applied.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("ftf_test"),
		postgres.WithUsername("ftf"),
		postgres.WithPassword("ftf_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	pc := &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        db,
	}

	if err := pc.runMigrations(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Note: We don't register t.Cleanup here because the container is managed
	// by the singleton Manager and shared across test suites. Ryuk (testcontainers'
	// cleanup sidecar) handles container cleanup when the test process exits.

	return pc
}

// runMigrations executes all *.up.sql migrations from the embedded migrations.FS.
func (p *PostgresContainer) runMigrations(ctx context.Context) error {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		if _, err := p.DB.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute migration %s: %w", file, err)
		}
	}

	return nil
}

// TruncateTables clears all data from the specified tables.
// Use between tests to ensure isolation without restarting the container.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		_, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		if err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// TruncateModuleTables truncates all module tables for full integration test isolation.
func (p *PostgresContainer) TruncateModuleTables(ctx context.Context) error {
	// Order matters due to FK constraints; CASCADE handles dependencies
	tables := []string{
		"outbox",
		"audit_events",
		"status_history",
		"license_requests",
		"memberships",
		"persons",
		"teams",
	}
	return p.TruncateTables(ctx, tables...)
}

// Exec runs a SQL statement and returns the result.
func (p *PostgresContainer) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return p.DB.ExecContext(ctx, query, args...)
}

// QueryRow runs a SQL query expected to return a single row.
func (p *PostgresContainer) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return p.DB.QueryRowContext(ctx, query, args...)
}

// CreateTestTeam inserts a team in the given division and returns its ID.
func (p *PostgresContainer) CreateTestTeam(ctx context.Context, t testing.TB, division string) id.TeamID {
	t.Helper()
	teamID := id.TeamID(uuid.New())
	_, err := p.Exec(ctx, `
		INSERT INTO teams (id, name, division)
		VALUES ($1, $2, $3)
	`, uuid.UUID(teamID), "Test Team "+uuid.NewString(), division)
	if err != nil {
		t.Fatalf("CreateTestTeam: %v", err)
	}
	return teamID
}

// SeedPerson inserts a row in the permanent person registry.
func (p *PostgresContainer) SeedPerson(ctx context.Context, t testing.TB, document, firstName, lastName string, birthDate *time.Time) {
	t.Helper()
	_, err := p.Exec(ctx, `
		INSERT INTO persons (document, first_name, last_name, birth_date)
		VALUES (NULLIF($1, ''), $2, $3, $4)
	`, document, firstName, lastName, birthDate)
	if err != nil {
		t.Fatalf("SeedPerson: %v", err)
	}
}

// SeedMembership inserts a row in the season-indexed membership ledger.
func (p *PostgresContainer) SeedMembership(ctx context.Context, t testing.TB, teamID id.TeamID, season, licenseType, status, document string) {
	t.Helper()
	_, err := p.Exec(ctx, `
		INSERT INTO memberships (team_id, season, license_type, status, document, first_name, last_name)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), 'Test', 'Player')
	`, uuid.UUID(teamID), season, licenseType, status, document)
	if err != nil {
		t.Fatalf("SeedMembership: %v", err)
	}
}
