package validation

import (
	"regexp"

	"ftf/internal/license/models"
)

var (
	cinPattern      = regexp.MustCompile(`^\d{8}$`)
	passportPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,9}$`)
)

// IdentityValidator enforces the identity-document rules: below the category
// threshold no document is needed; at or above it, domestic players carry a
// CIN and foreign players a passport, with the exception window making the
// document optional but still format-checked when supplied.
type IdentityValidator struct{}

func NewIdentityValidator() *IdentityValidator {
	return &IdentityValidator{}
}

func (v *IdentityValidator) Check(req *models.LicenseRequest, facts Facts, result *models.ValidationResult) {
	if !facts.Category.RequiresIdentityDocument() {
		return
	}

	if facts.Domestic {
		v.checkDocument(req.CIN, facts.Exempt, cinPattern, MsgCINRequired, MsgCINFormat, result)
		return
	}
	v.checkDocument(req.Passport, facts.Exempt, passportPattern, MsgPassportRequired, MsgPassportFormat, result)
}

func (v *IdentityValidator) checkDocument(value string, exempt bool, pattern *regexp.Regexp, missingMsg, formatMsg string, result *models.ValidationResult) {
	if value == "" {
		if !exempt {
			result.AddError(missingMsg)
		}
		return
	}
	if !pattern.MatchString(value) {
		result.AddError(formatMsg)
	}
}
