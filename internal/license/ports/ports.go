// Package ports defines the collaborator interfaces the license core
// consumes. Persistence and search implementations live under store/; tests
// substitute memory stores or gomock mocks.
package ports

import (
	"context"

	"ftf/internal/license/models"
	id "ftf/pkg/domain"
	"ftf/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// RequestStore persists license requests.
type RequestStore interface {
	// Save inserts a new request. Returns sentinel.ErrConflict when the id
	// already exists.
	Save(ctx context.Context, request *models.LicenseRequest) error

	// Load returns sentinel.ErrNotFound for unknown ids.
	Load(ctx context.Context, requestID id.RequestID) (*models.LicenseRequest, error)

	// UpdateStatus moves a request from one status to another with an
	// optimistic check: the write only succeeds while the stored status
	// still equals from. A concurrent transition surfaces as
	// sentinel.ErrConflict, an unknown id as sentinel.ErrNotFound.
	UpdateStatus(ctx context.Context, requestID id.RequestID, from, to models.Status) error
}

// RosterFilter scopes an active-request count. Zero values mean "no filter".
type RosterFilter struct {
	TeamID   id.TeamID
	Season   id.Season
	Statuses []models.Status
	Regimes  []models.Regime

	// ForeignOnly counts players whose nationality differs from the
	// federation's.
	ForeignOnly bool

	// LicenseType narrows to one request type.
	LicenseType models.LicenseType

	// Identity narrows to requests matching one person.
	Identity *models.Identity

	// ExcludeRequest leaves one request out of the count, so re-validating
	// a stored request does not collide with itself.
	ExcludeRequest id.RequestID
}

// RosterCounter answers quota and duplicate queries against the season's
// active requests.
type RosterCounter interface {
	CountActiveRequests(ctx context.Context, filter RosterFilter) (int, error)
}

// PersonRegistry is the permanent registry of licensed persons.
type PersonRegistry interface {
	PersonExists(ctx context.Context, identity models.Identity) (bool, error)
}

// MembershipQuery scopes a ledger existence check. Seasons lists the exact
// seasons scanned; type filters are optional.
type MembershipQuery struct {
	TeamID       id.TeamID
	Seasons      []id.Season
	IncludeTypes []models.LicenseType
	ExcludeTypes []models.LicenseType

	// ActiveOnly restricts matches to memberships in an active status.
	ActiveOnly bool
}

// MembershipLedger reads the immutable season-indexed membership history.
type MembershipLedger interface {
	MembershipExists(ctx context.Context, query MembershipQuery, identity models.Identity) (bool, error)
}

// HistoryStore persists the append-only transition trail.
type HistoryStore interface {
	Append(ctx context.Context, entry models.StatusHistoryEntry) error
	ListByRequest(ctx context.Context, requestID id.RequestID) ([]models.StatusHistoryEntry, error)
}

// DivisionResolver maps a team to its competitive division. Implementations
// must degrade to models.DivisionRegional instead of failing.
type DivisionResolver interface {
	TeamDivision(ctx context.Context, teamID id.TeamID) (models.Division, error)
}

// TxRunner runs fn inside one transactional boundary. The postgres
// implementation opens a database transaction and carries it through context;
// the memory implementation serializes on a lock.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditPublisher emits audit events for compliance-relevant operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
