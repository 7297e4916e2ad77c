package membership

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"ftf/internal/license/models"
	"ftf/internal/license/ports"
)

// PostgresStore reads persons and memberships from PostgreSQL. Read-only:
// both tables are populated by federation imports.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) PersonExists(ctx context.Context, identity models.Identity) (bool, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	identityConds(&conds, arg, identity)

	query := "SELECT EXISTS (SELECT 1 FROM persons WHERE " + strings.Join(conds, " AND ") + ")"
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check person registry: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) MembershipExists(ctx context.Context, query ports.MembershipQuery, identity models.Identity) (bool, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !query.TeamID.IsNil() {
		conds = append(conds, "team_id = "+arg(query.TeamID.String()))
	}
	if len(query.Seasons) > 0 {
		seasons := make([]string, len(query.Seasons))
		for i, season := range query.Seasons {
			seasons[i] = season.String()
		}
		conds = append(conds, "season = ANY("+arg(pq.Array(seasons))+")")
	}
	if len(query.IncludeTypes) > 0 {
		conds = append(conds, "license_type = ANY("+arg(pq.Array(typeStrings(query.IncludeTypes)))+")")
	}
	if len(query.ExcludeTypes) > 0 {
		conds = append(conds, "license_type <> ALL("+arg(pq.Array(typeStrings(query.ExcludeTypes)))+")")
	}
	if query.ActiveOnly {
		conds = append(conds, "status = ANY("+arg(pq.Array(statusStrings(models.ActiveStatuses())))+")")
	}
	identityConds(&conds, arg, identity)

	sqlQuery := "SELECT EXISTS (SELECT 1 FROM memberships WHERE " + strings.Join(conds, " AND ") + ")"
	var exists bool
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check membership ledger: %w", err)
	}
	return exists, nil
}

// identityConds appends the shared person-matching predicate: by document
// number when present, otherwise the case-insensitive name triple with the
// same birth date.
func identityConds(conds *[]string, arg func(any) string, identity models.Identity) {
	if identity.ByDocument() {
		*conds = append(*conds, "LOWER(document) = LOWER("+arg(identity.Document)+")")
		return
	}
	*conds = append(*conds,
		"LOWER(first_name) = LOWER("+arg(identity.FirstName)+")",
		"LOWER(last_name) = LOWER("+arg(identity.LastName)+")")
	if identity.BirthDate != nil {
		*conds = append(*conds, "birth_date = "+arg(*identity.BirthDate))
	} else {
		*conds = append(*conds, "birth_date IS NULL")
	}
}

func typeStrings(types []models.LicenseType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func statusStrings(statuses []models.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
