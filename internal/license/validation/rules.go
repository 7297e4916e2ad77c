package validation

import "ftf/internal/license/models"

// RulesValidator covers the residual business rules that are neither
// document, date, quota nor eligibility concerns: loan-period coherence and
// the prior-license reference required by movement requests.
type RulesValidator struct{}

func NewRulesValidator() *RulesValidator {
	return &RulesValidator{}
}

func (v *RulesValidator) Check(req *models.LicenseRequest, result *models.ValidationResult) {
	if req.Type == models.TypeLoan {
		if req.LoanMonths < 1 || req.LoanMonths > 12 {
			result.AddError(MsgLoanDuration)
		}
		if req.ContractStart == nil || req.ContractEnd == nil {
			result.AddError(MsgLoanContract)
		}
	}

	switch req.Type {
	case models.TypeTransfer, models.TypeMutation:
		if req.PriorLicenseNumber == "" {
			result.AddError(MsgPriorLicense)
		}
	}
}
