package validation

import (
	"context"

	"ftf/internal/license/models"
	"ftf/internal/platform/config"
	"ftf/pkg/requestcontext"
)

// DatesValidator checks medical-consultation recency and contract-date
// coherence against the season-closing boundary.
type DatesValidator struct {
	rules config.Rules
}

func NewDatesValidator(rules config.Rules) *DatesValidator {
	return &DatesValidator{rules: rules}
}

func (v *DatesValidator) Check(ctx context.Context, req *models.LicenseRequest, result *models.ValidationResult) {
	now := requestcontext.Now(ctx)

	if req.ConsultationDate == nil {
		result.AddError(MsgConsultationRequired)
	} else {
		oldest := now.AddDate(0, -v.rules.MedicalConsultationMaxAgeMonths, 0)
		switch {
		case req.ConsultationDate.Before(oldest):
			result.AddError(MsgConsultationTooOld)
		case req.ConsultationDate.After(now):
			result.AddError(MsgConsultationFuture)
		}
	}

	if req.ContractStart == nil && req.ContractEnd == nil {
		return
	}

	if req.ContractStart != nil && req.ContractStart.After(now) {
		result.AddError(MsgContractStartFuture)
	}
	if req.ContractStart != nil && req.ContractEnd != nil && !req.ContractStart.Before(*req.ContractEnd) {
		result.AddError(MsgContractEndNotAfter)
	}
	if req.ContractEnd != nil && !req.Season.IsNil() {
		closing := req.Season.ClosingDate(v.rules.SeasonClosingMonth, v.rules.SeasonClosingDay)
		end := req.ContractEnd
		if end.Year() != closing.Year() || end.Month() != closing.Month() || end.Day() != closing.Day() {
			result.AddError(MsgContractEndBoundary)
		}
	}
}
