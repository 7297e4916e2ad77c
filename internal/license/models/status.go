package models

import dErrors "ftf/pkg/domain-errors"

// Status is the lifecycle state of a license request. Requests are created in
// StatusInitial and only move through the workflow engine afterwards.
type Status string

const (
	StatusInitial   Status = "INITIAL"
	StatusPending   Status = "PENDING"
	StatusValidated Status = "VALIDATED"
	StatusPrinted   Status = "PRINTED"
	StatusRejected  Status = "REJECTED"
)

var validStatuses = map[Status]bool{
	StatusInitial:   true,
	StatusPending:   true,
	StatusValidated: true,
	StatusPrinted:   true,
	StatusRejected:  true,
}

// ParseStatus constructs a Status from external input.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown status: "+s)
	}
	return st, nil
}

// IsValid checks membership in the status enum.
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// IsTerminal reports whether the status permits no outgoing transition.
func (s Status) IsTerminal() bool {
	return s == StatusPrinted || s == StatusRejected
}

// ActiveStatuses is the status set counted against rosters and quotas and
// matched by duplicate detection. Rejected requests never block anything.
func ActiveStatuses() []Status {
	return []Status{StatusInitial, StatusPending, StatusValidated, StatusPrinted}
}
