// Package domain holds domain primitives shared across modules. Identifiers
// are distinct types over uuid.UUID so the compiler rejects cross-type mixups;
// construct them via the Parse functions at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "ftf/pkg/domain-errors"
)

// RequestID identifies a license request.
type RequestID uuid.UUID

// TeamID identifies a club team.
type TeamID uuid.UUID

// ActorID identifies the user performing a workflow action.
type ActorID uuid.UUID

// HistoryID identifies a status history entry.
type HistoryID uuid.UUID

func (id RequestID) String() string { return uuid.UUID(id).String() }
func (id TeamID) String() string    { return uuid.UUID(id).String() }
func (id ActorID) String() string   { return uuid.UUID(id).String() }
func (id HistoryID) String() string { return uuid.UUID(id).String() }

func (id RequestID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id TeamID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ActorID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id HistoryID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewRequestID allocates a fresh request identifier.
func NewRequestID() RequestID { return RequestID(uuid.New()) }

// NewHistoryID allocates a fresh history entry identifier.
func NewHistoryID() HistoryID { return HistoryID(uuid.New()) }

// ParseRequestID validates and returns a RequestID.
func ParseRequestID(s string) (RequestID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return RequestID{}, err
	}
	return RequestID(u), nil
}

// ParseTeamID validates and returns a TeamID.
func ParseTeamID(s string) (TeamID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return TeamID{}, err
	}
	return TeamID(u), nil
}

// ParseHistoryID validates and returns a HistoryID.
func ParseHistoryID(s string) (HistoryID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return HistoryID{}, err
	}
	return HistoryID(u), nil
}

// ParseActorID validates and returns an ActorID.
func ParseActorID(s string) (ActorID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ActorID{}, err
	}
	return ActorID(u), nil
}

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}
