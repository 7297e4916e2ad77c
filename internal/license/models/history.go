package models

import (
	"time"

	id "ftf/pkg/domain"
)

// StatusHistoryEntry is one append-only audit record of a status transition.
// Entries are immutable once written; ordered by timestamp they reconstruct
// the request's path through the workflow.
type StatusHistoryEntry struct {
	ID         id.HistoryID
	RequestID  id.RequestID
	FromStatus Status
	ToStatus   Status
	ActorID    string
	Comment    string
	CreatedAt  time.Time
}

/// TeamMembershipRecord is one row of the season-indexed membership ledger:
// a person's affiliation with a team for a season under a license type. The
// core only ever reads these.
type TeamMembershipRecord struct {
	TeamID      id.TeamID
	Season      id.Season
	LicenseType LicenseType
	Status      Status

	// Identity of the member, mirroring the request identity fields.
	Document  string
	FirstName string
	LastName  string
	BirthDate *time.Time
}
