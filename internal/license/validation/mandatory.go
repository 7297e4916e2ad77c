package validation

import "ftf/internal/license/models"

// MandatoryValidator enforces field presence. It fails fast on the first
// missing field, mirroring the intake flow where the earliest gap is the one
// the club secretary must fix first.
type MandatoryValidator struct{}

func NewMandatoryValidator() *MandatoryValidator {
	return &MandatoryValidator{}
}

func (v *MandatoryValidator) Check(req *models.LicenseRequest, facts Facts, result *models.ValidationResult) {
	checks := []struct {
		missing bool
		msg     string
	}{
		{req.FirstName == "", MsgFirstNameRequired},
		{req.LastName == "", MsgLastNameRequired},
		{req.BirthDate == nil, MsgBirthDateRequired},
		{req.Nationality == "", MsgNationalityRequired},
		{req.TeamID.IsNil(), MsgTeamRequired},
		{req.Season.IsNil(), MsgSeasonRequired},
		{!req.Regime.IsValid(), MsgRegimeRequired},
		{!req.Type.IsValid(), MsgTypeRequired},
		{req.ExaminerFirstName == "" || req.ExaminerLastName == "", MsgExaminerRequired},
	}
	for _, c := range checks {
		if c.missing {
			result.AddError(c.msg)
			return
		}
	}

	// Jersey numbers only matter for contracted players in the two top
	// divisions.
	if req.Regime != models.RegimeAmateur && facts.Division.IsTopTier() && req.JerseyNumber == nil {
		result.AddError(MsgJerseyRequired)
	}
}
