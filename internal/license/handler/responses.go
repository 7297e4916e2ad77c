package handler

import (
	"time"

	"ftf/internal/license/models"
)

// ValidationResponse is the HTTP response for POST /licenses/validate and
// the body of a rejected POST /licenses.
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Age      int      `json:"age"`
	Category string   `json:"category"`
	Division string   `json:"division"`
	Exempt   bool     `json:"exempt"`
}

// FromResult converts a validation result to its HTTP response.
func FromResult(result *models.ValidationResult) *ValidationResponse {
	return &ValidationResponse{
		Valid:    result.IsValid(),
		Errors:   emptyIfNil(result.Errors),
		Warnings: emptyIfNil(result.Warnings),
		Age:      result.Age,
		Category: string(result.Category),
		Division: string(result.Division),
		Exempt:   result.Exempt,
	}
}

// CreateResponse is the HTTP response for a successful POST /licenses.
type CreateResponse struct {
	Request    *RequestResponse    `json:"request"`
	Validation *ValidationResponse `json:"validation"`
}

// RequestResponse is the HTTP shape of a license request.
type RequestResponse struct {
	ID                 string `json:"id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	BirthDate          string `json:"birth_date,omitempty"`
	BirthPlace         string `json:"birth_place,omitempty"`
	Nationality        string `json:"nationality"`
	CIN                string `json:"cin,omitempty"`
	Passport           string `json:"passport,omitempty"`
	PriorLicenseNumber string `json:"prior_license_number,omitempty"`

	TeamID   string `json:"team_id"`
	Season   string `json:"season"`
	Regime   string `json:"regime"`
	Type     string `json:"license_type"`
	Category string `json:"category"`

	ContractStart string `json:"contract_start,omitempty"`
	ContractEnd   string `json:"contract_end,omitempty"`
	LoanMonths    int    `json:"loan_months,omitempty"`

	ExaminerFirstName string `json:"examiner_first_name"`
	ExaminerLastName  string `json:"examiner_last_name"`
	ConsultationDate  string `json:"consultation_date,omitempty"`

	JerseyNumber *int `json:"jersey_number,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromRequest converts a domain request to its HTTP response.
func FromRequest(req *models.LicenseRequest) *RequestResponse {
	return &RequestResponse{
		ID:                 req.ID.String(),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		BirthDate:          formatDate(req.BirthDate),
		BirthPlace:         req.BirthPlace,
		Nationality:        req.Nationality,
		CIN:                req.CIN,
		Passport:           req.Passport,
		PriorLicenseNumber: req.PriorLicenseNumber,
		TeamID:             req.TeamID.String(),
		Season:             req.Season.String(),
		Regime:             string(req.Regime),
		Type:               string(req.Type),
		Category:           string(req.Category),
		ContractStart:      formatDate(req.ContractStart),
		ContractEnd:        formatDate(req.ContractEnd),
		LoanMonths:         req.LoanMonths,
		ExaminerFirstName:  req.ExaminerFirstName,
		ExaminerLastName:   req.ExaminerLastName,
		ConsultationDate:   formatDate(req.ConsultationDate),
		JerseyNumber:       req.JerseyNumber,
		Status:             string(req.Status),
		CreatedAt:          req.CreatedAt,
		UpdatedAt:          req.UpdatedAt,
	}
}

// TransitionsResponse is the HTTP response for GET /licenses/{id}/transitions.
type TransitionsResponse struct {
	Status      string   `json:"status"`
	Transitions []string `json:"transitions"`
}

// HistoryResponse is the HTTP response for GET /licenses/{id}/history.
type HistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}

// HistoryEntryResponse is one transition in the trail.
type HistoryEntryResponse struct {
	ID         string    `json:"id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromHistory converts the transition trail to its HTTP response.
func FromHistory(entries []models.StatusHistoryEntry) *HistoryResponse {
	resp := &HistoryResponse{Entries: make([]HistoryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, HistoryEntryResponse{
			ID:         e.ID.String(),
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			ActorID:    e.ActorID,
			Comment:    e.Comment,
			CreatedAt:  e.CreatedAt,
		})
	}
	return resp
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
