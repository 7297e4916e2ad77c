package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	id "ftf/pkg/domain"
	"ftf/pkg/platform/sentinel"
	txcontext "ftf/pkg/platform/tx"
)

// PostgresStore persists license requests in PostgreSQL. Writes pick up a
// transaction carried in context so status updates and history appends can
// share one boundary.
type PostgresStore struct {
	db *sql.DB

	domesticNationality string
}

func NewPostgres(db *sql.DB, domesticNationality string) *PostgresStore {
	return &PostgresStore{db: db, domesticNationality: domesticNationality}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const requestColumns = `id, first_name, last_name, birth_date, birth_place, nationality,
	cin, passport, prior_license_number, team_id, season, regime, license_type, category,
	contract_start, contract_end, loan_months, examiner_first_name, examiner_last_name,
	consultation_date, jersey_number, status, created_at, updated_at`

func (s *PostgresStore) Save(ctx context.Context, request *models.LicenseRequest) error {
	query := `
		INSERT INTO license_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	_, err := s.execer(ctx).ExecContext(ctx, query,
		request.ID.String(),
		request.FirstName,
		request.LastName,
		request.BirthDate,
		request.BirthPlace,
		request.Nationality,
		nullString(request.CIN),
		nullString(request.Passport),
		nullString(request.PriorLicenseNumber),
		request.TeamID.String(),
		request.Season.String(),
		string(request.Regime),
		string(request.Type),
		string(request.Category),
		request.ContractStart,
		request.ContractEnd,
		request.LoanMonths,
		request.ExaminerFirstName,
		request.ExaminerLastName,
		request.ConsultationDate,
		request.JerseyNumber,
		string(request.Status),
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert license request: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, requestID id.RequestID) (*models.LicenseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM license_requests WHERE id = $1`
	row := s.execer(ctx).QueryRowContext(ctx, query, requestID.String())
	return scanRequest(row)
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, requestID id.RequestID, from, to models.Status) error {
	result, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE license_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		string(to), requestID.String(), string(from))
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// The optimistic check failed: distinguish a missing row from a
	// concurrent writer.
	var exists bool
	err = s.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM license_requests WHERE id = $1)`,
		requestID.String()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check request existence: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

func (s *PostgresStore) CountActiveRequests(ctx context.Context, filter ports.RosterFilter) (int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.TeamID.IsNil() {
		conds = append(conds, "team_id = "+arg(filter.TeamID.String()))
	}
	if !filter.Season.IsNil() {
		conds = append(conds, "season = "+arg(filter.Season.String()))
	}
	if len(filter.Statuses) > 0 {
		conds = append(conds, "status = ANY("+arg(pq.Array(statusStrings(filter.Statuses)))+")")
	}
	if len(filter.Regimes) > 0 {
		conds = append(conds, "regime = ANY("+arg(pq.Array(regimeStrings(filter.Regimes)))+")")
	}
	if filter.LicenseType != "" {
		conds = append(conds, "license_type = "+arg(string(filter.LicenseType)))
	}
	if filter.ForeignOnly {
		conds = append(conds, "LOWER(nationality) <> LOWER("+arg(s.domesticNationality)+")")
	}
	if !filter.ExcludeRequest.IsNil() {
		conds = append(conds, "id <> "+arg(filter.ExcludeRequest.String()))
	}
	if filter.Identity != nil {
		ident := *filter.Identity
		if ident.ByDocument() {
			dom := arg(s.domesticNationality)
			doc := arg(ident.Document)
			conds = append(conds, fmt.Sprintf(
				"LOWER(CASE WHEN LOWER(nationality) = LOWER(%s) THEN cin ELSE passport END) = LOWER(%s)", dom, doc))
		} else {
			conds = append(conds,
				"LOWER(first_name) = LOWER("+arg(ident.FirstName)+")",
				"LOWER(last_name) = LOWER("+arg(ident.LastName)+")")
			if ident.BirthDate != nil {
				conds = append(conds, "birth_date = "+arg(*ident.BirthDate))
			} else {
				conds = append(conds, "birth_date IS NULL")
			}
		}
	}

	query := "SELECT COUNT(*) FROM license_requests"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active requests: %w", err)
	}
	return count, nil
}

func scanRequest(row *sql.Row) (*models.LicenseRequest, error) {
	var (
		req                 models.LicenseRequest
		requestID, teamID   string
		season              string
		regime, licenseType string
		category, status    string
		cin, passport       sql.NullString
		priorLicense        sql.NullString
	)
	err := row.Scan(
		&requestID, &req.FirstName, &req.LastName, &req.BirthDate, &req.BirthPlace,
		&req.Nationality, &cin, &passport, &priorLicense, &teamID, &season,
		&regime, &licenseType, &category, &req.ContractStart, &req.ContractEnd,
		&req.LoanMonths, &req.ExaminerFirstName, &req.ExaminerLastName,
		&req.ConsultationDate, &req.JerseyNumber, &status, &req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan license request: %w", err)
	}

	rid, err := id.ParseRequestID(requestID)
	if err != nil {
		return nil, fmt.Errorf("parse request id: %w", err)
	}
	tid, err := id.ParseTeamID(teamID)
	if err != nil {
		return nil, fmt.Errorf("parse team id: %w", err)
	}
	req.ID = rid
	req.TeamID = tid
	req.Season = id.Season(season)
	req.Regime = models.Regime(regime)
	req.Type = models.LicenseType(licenseType)
	req.Category = models.Category(category)
	req.Status = models.Status(status)
	req.CIN = cin.String
	req.Passport = passport.String
	req.PriorLicenseNumber = priorLicense.String
	return &req, nil
}

// TxRunner opens a database transaction and carries it through context so
// every store write inside fn shares it.
type TxRunner struct {
	db *sql.DB
}

func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func statusStrings(statuses []models.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func regimeStrings(regimes []models.Regime) []string {
	out := make([]string, len(regimes))
	for i, r := range regimes {
		out[i] = string(r)
	}
	return out
}
