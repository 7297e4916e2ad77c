// Package division resolves a team's competitive division. Resolution
// failures degrade to the regional default; a missing teams table never
// blocks a license request.
package division

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ftf/internal/license/models"
	id "ftf/pkg/domain"
)

// PostgresResolver reads team divisions from the teams table.
type PostgresResolver struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresResolver {
	return &PostgresResolver{db: db}
}

func (r *PostgresResolver) TeamDivision(ctx context.Context, teamID id.TeamID) (models.Division, error) {
	var division string
	err := r.db.QueryRowContext(ctx,
		`SELECT division FROM teams WHERE id = $1`,
		teamID.String()).Scan(&division)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DivisionRegional, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve team division: %w", err)
	}
	if division == "" {
		return models.DivisionRegional, nil
	}
	return models.Division(division), nil
}
