package validation

import (
	"context"
	"log/slog"

	"ftf/internal/license/category"
	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	"ftf/internal/platform/config"
	"ftf/pkg/requestcontext"
)

// Orchestrator runs the full validation pipeline in its fixed order.
//
// Identity, date and mandatory-field failures stop the run: nothing after
// them can be judged on an incoherent request. Quota and duplicate failures
// are recorded and the run continues, so the caller also learns whether the
// request would be eligible at all. The per-type eligibility check stops the
// run on its own failure, since exactly one license type applies.
type Orchestrator struct {
	calculator  *category.Calculator
	divisions   ports.DivisionResolver
	identity    *IdentityValidator
	dates       *DatesValidator
	mandatory   *MandatoryValidator
	quota       *QuotaValidator
	eligibility *EligibilityValidator
	generic     *RulesValidator
	rules       config.Rules
	logger      *slog.Logger
}

func NewOrchestrator(
	counter ports.RosterCounter,
	registry ports.PersonRegistry,
	ledger ports.MembershipLedger,
	divisions ports.DivisionResolver,
	rules config.Rules,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		calculator:  category.NewCalculator(rules),
		divisions:   divisions,
		identity:    NewIdentityValidator(),
		dates:       NewDatesValidator(rules),
		mandatory:   NewMandatoryValidator(),
		quota:       NewQuotaValidator(counter, rules, logger),
		eligibility: NewEligibilityValidator(counter, registry, ledger, rules, logger),
		generic:     NewRulesValidator(),
		rules:       rules,
		logger:      logger,
	}
}

// Validate derives the request's category, age and division, then runs every
// validator. The derived category is written back onto the request; it is
// never client-supplied. The returned result carries all errors and warnings
// collected before the first short-circuit point that fired.
func (o *Orchestrator) Validate(ctx context.Context, req *models.LicenseRequest) *models.ValidationResult {
	result := models.NewValidationResult()

	facts := o.deriveFacts(ctx, req, result)
	if facts.Exempt {
		result.AddWarning(MsgExceptionWindow)
	}

	o.identity.Check(req, facts, result)
	if !result.IsValid() {
		return result
	}

	o.dates.Check(ctx, req, result)
	if !result.IsValid() {
		return result
	}

	o.mandatory.Check(req, facts, result)
	if !result.IsValid() {
		return result
	}

	o.quota.Check(ctx, req, facts, result)

	ident := req.Identity(o.rules.DomesticNationality)
	o.eligibility.CheckDuplicate(ctx, req, ident, result)

	before := len(result.Errors)
	o.eligibility.CheckType(ctx, req, ident, result)
	if len(result.Errors) > before {
		return result
	}

	o.generic.Check(req, result)
	return result
}

// deriveFacts computes the per-run inputs shared by every validator and
// stamps the derived category and division onto the result.
func (o *Orchestrator) deriveFacts(ctx context.Context, req *models.LicenseRequest, result *models.ValidationResult) Facts {
	cat := o.calculator.Categorize(req.BirthDate)
	req.Category = cat.Category

	division := o.resolveDivision(ctx, req)

	facts := Facts{
		Age:      category.Age(req.BirthDate, requestcontext.Now(ctx)),
		Category: cat.Category,
		Exempt:   cat.Exempt,
		Division: division,
		Domestic: req.IsDomestic(o.rules.DomesticNationality),
	}

	result.Age = facts.Age
	result.Category = facts.Category
	result.Division = facts.Division
	result.Exempt = facts.Exempt
	return facts
}

// resolveDivision asks the resolver and falls back to the regional default.
// Division resolution never blocks a request.
func (o *Orchestrator) resolveDivision(ctx context.Context, req *models.LicenseRequest) models.Division {
	if req.TeamID.IsNil() {
		return models.DivisionRegional
	}
	ctx, cancel := context.WithTimeout(ctx, o.rules.LookupTimeout)
	defer cancel()

	division, err := o.divisions.TeamDivision(ctx, req.TeamID)
	if err != nil {
		o.logger.Warn("division lookup failed, defaulting to regional",
			"team_id", req.TeamID.String(),
			"error", err)
		return models.DivisionRegional
	}
	if division == "" {
		return models.DivisionRegional
	}
	return division
}
