package models

// ValidationResult is the outcome of one validation run. It is rebuilt per
// request and never persisted. Errors block persistence; warnings ride along
// on a successful result.
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	// Facts derived once by the orchestrator, returned for the caller's
	// benefit.
	Age      int      `json:"age"`
	Category Category `json:"category"`
	Division Division `json:"division"`
	Exempt   bool     `json:"exempt"`
}

// NewValidationResult returns an empty, valid result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{}
}

// IsValid reports whether the run produced no blocking error.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError appends a blocking error message.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddWarning appends a non-blocking warning message.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
