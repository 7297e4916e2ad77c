package handler

import (
	"strings"
	"time"

	"ftf/internal/license/models"
	id "ftf/pkg/domain"
	dErrors "ftf/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// LicenseRequestBody is the HTTP request body for POST /licenses and
// POST /licenses/validate. Dates travel as YYYY-MM-DD; business checks stay
// in the validation pipeline, this layer only parses.
type LicenseRequestBody struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	BirthDate          string `json:"birth_date"`
	BirthPlace         string `json:"birth_place"`
	Nationality        string `json:"nationality"`
	CIN                string `json:"cin"`
	Passport           string `json:"passport"`
	PriorLicenseNumber string `json:"prior_license_number"`

	TeamID string `json:"team_id"`
	Season string `json:"season"`
	Regime string `json:"regime"`
	Type   string `json:"license_type"`

	ContractStart string `json:"contract_start"`
	ContractEnd   string `json:"contract_end"`
	LoanMonths    int    `json:"loan_months"`

	ExaminerFirstName string `json:"examiner_first_name"`
	ExaminerLastName  string `json:"examiner_last_name"`
	ConsultationDate  string `json:"consultation_date"`

	JerseyNumber *int `json:"jersey_number"`

	// Parsed values (populated by Validate)
	parsed models.LicenseRequest
}

// Validate parses the body into a domain request. Missing fields pass
// through untouched so the mandatory-fields validator can report them;
// malformed values fail here.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (b *LicenseRequestBody) Validate() error {
	if b == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	b.parsed = models.LicenseRequest{
		FirstName:          strings.TrimSpace(b.FirstName),
		LastName:           strings.TrimSpace(b.LastName),
		BirthPlace:         strings.TrimSpace(b.BirthPlace),
		Nationality:        strings.TrimSpace(b.Nationality),
		CIN:                strings.TrimSpace(b.CIN),
		Passport:           strings.TrimSpace(b.Passport),
		PriorLicenseNumber: strings.TrimSpace(b.PriorLicenseNumber),
		Regime:             models.Regime(strings.TrimSpace(b.Regime)),
		Type:               models.LicenseType(strings.TrimSpace(b.Type)),
		LoanMonths:         b.LoanMonths,
		ExaminerFirstName:  strings.TrimSpace(b.ExaminerFirstName),
		ExaminerLastName:   strings.TrimSpace(b.ExaminerLastName),
		JerseyNumber:       b.JerseyNumber,
	}

	if b.TeamID != "" {
		teamID, err := id.ParseTeamID(b.TeamID)
		if err != nil {
			return dErrors.New(dErrors.CodeBadRequest, "team_id must be a UUID")
		}
		b.parsed.TeamID = teamID
	}
	if b.Season != "" {
		season, err := id.ParseSeason(b.Season)
		if err != nil {
			return err
		}
		b.parsed.Season = season
	}

	var err error
	if b.parsed.BirthDate, err = parseDate(b.BirthDate, "birth_date"); err != nil {
		return err
	}
	if b.parsed.ContractStart, err = parseDate(b.ContractStart, "contract_start"); err != nil {
		return err
	}
	if b.parsed.ContractEnd, err = parseDate(b.ContractEnd, "contract_end"); err != nil {
		return err
	}
	if b.parsed.ConsultationDate, err = parseDate(b.ConsultationDate, "consultation_date"); err != nil {
		return err
	}
	return nil
}

// ToModel returns the parsed domain request.
func (b *LicenseRequestBody) ToModel() *models.LicenseRequest {
	req := b.parsed
	return &req
}

func parseDate(s, field string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, field+" must be formatted YYYY-MM-DD")
	}
	return &t, nil
}

// TransitionRequest is the HTTP request body for POST /licenses/{id}/transition.
type TransitionRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`

	parsedStatus models.Status
}

// Validate parses the target status.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *TransitionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	status, err := models.ParseStatus(r.Status)
	if err != nil {
		return err
	}
	r.parsedStatus = status
	return nil
}

// ParsedStatus returns the validated target status.
func (r *TransitionRequest) ParsedStatus() models.Status {
	return r.parsedStatus
}
