package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and collaborator adapters
// return these (optionally wrapped) so services can translate them into coded
// domain errors.
//
// These represent factual states about resources, not rule violations:
// - ErrNotFound: entity does not exist in the store
// - ErrConflict: unique constraint hit, or a concurrent writer won the race
// - ErrInvalidState: entity in the wrong status for the requested operation
// - ErrUnavailable: a collaborator lookup failed or timed out
//
// For business-rule failures (document format, quota, eligibility), use the
// validation result types directly; those are never Go errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
