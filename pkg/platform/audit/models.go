// Package audit defines the append-only audit event model and the interfaces
// stores and publishers implement. Events are emitted from domain logic and
// kept transport-agnostic so sinks (memory, postgres outbox, kafka) can fan
// out without touching business code.
package audit

import (
	"time"

	id "ftf/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose. Categories
// drive retention: compliance events outlive operational ones.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance for the
	// federation: status transitions, request creation, rejections.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and visibility:
	// validation runs, collaborator degradations.
	CategoryOperations EventCategory = "operations"
)

// Event captures one auditable action on a license request.
type Event struct {
	Category   EventCategory
	Timestamp  time.Time
	RequestID  id.RequestID
	ActorID    string
	Action     string
	FromStatus string
	ToStatus   string
	Reason     string
	// CorrelationID ties the event back to the HTTP request that caused it.
	CorrelationID string
	// UserAgent records the normalized client that performed the action.
	UserAgent string
}

// AuditEvent names the known actions.
type AuditEvent string

const (
	EventRequestCreated      AuditEvent = "license_request_created"
	EventRequestValidated    AuditEvent = "license_request_validated"
	EventRequestRejected     AuditEvent = "license_request_rejected"
	EventStatusTransition    AuditEvent = "license_status_transition"
	EventValidationDegraded  AuditEvent = "validation_lookup_degraded"
	EventValidationRejected  AuditEvent = "validation_rejected"
	EventQuotaCeilingReached AuditEvent = "quota_ceiling_reached"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventRequestCreated:      CategoryCompliance,
	EventRequestValidated:    CategoryCompliance,
	EventRequestRejected:     CategoryCompliance,
	EventStatusTransition:    CategoryCompliance,
	EventQuotaCeilingReached: CategoryCompliance,
	EventValidationDegraded:  CategoryOperations,
	EventValidationRejected:  CategoryOperations,
}

// Category returns the category for the event, defaulting to operations for
// unknown actions so nothing is silently dropped as compliance-grade.
func (e AuditEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}
