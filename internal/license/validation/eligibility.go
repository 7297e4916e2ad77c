package validation

import (
	"context"
	"log/slog"

	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	"ftf/internal/platform/config"
	id "ftf/pkg/domain"
)

// EligibilityValidator runs the duplicate check and the per-type eligibility
// rules against the person registry and the membership ledger. Unlike the
// quota validator, every lookup failure here blocks the request: admitting a
// player whose history could not be read is the one mistake the federation
// cannot roll back.
type EligibilityValidator struct {
	counter  ports.RosterCounter
	registry ports.PersonRegistry
	ledger   ports.MembershipLedger
	rules    config.Rules
	logger   *slog.Logger

	policies map[models.LicenseType]eligibilityPolicy
}

// eligibilityPolicy is one row of the per-type policy table: the temporal
// predicate plus the guidance message shown when it fails.
type eligibilityPolicy struct {
	guidance string
	eligible func(ctx context.Context, req *models.LicenseRequest, ident models.Identity, result *models.ValidationResult) (bool, error)
}

func NewEligibilityValidator(counter ports.RosterCounter, registry ports.PersonRegistry, ledger ports.MembershipLedger, rules config.Rules, logger *slog.Logger) *EligibilityValidator {
	v := &EligibilityValidator{
		counter:  counter,
		registry: registry,
		ledger:   ledger,
		rules:    rules,
		logger:   logger,
	}
	v.policies = map[models.LicenseType]eligibilityPolicy{
		models.TypeNew:            {guidance: MsgAlreadyRegistered, eligible: v.newLicense},
		models.TypeRenewal:        {guidance: MsgRenewalIneligible, eligible: v.renewal},
		models.TypeLoanReturn:     {guidance: MsgLoanReturnIneligible, eligible: v.loanReturn},
		models.TypeMutationReturn: {guidance: MsgMutationReturnIneligible, eligible: v.mutationReturn},
		models.TypeLoan:           {guidance: MsgLoanIneligible, eligible: v.loan},
	}
	return v
}

// CheckDuplicate rejects a second active request for the same person this
// season. It only applies to new-license requests; every other type carries
// its own active-request guard inside CheckType.
func (v *EligibilityValidator) CheckDuplicate(ctx context.Context, req *models.LicenseRequest, ident models.Identity, result *models.ValidationResult) {
	if req.Type != models.TypeNew {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, v.rules.LookupTimeout)
	defer cancel()

	n, err := v.counter.CountActiveRequests(ctx, ports.RosterFilter{
		Season:         req.Season,
		Statuses:       models.ActiveStatuses(),
		Identity:       &ident,
		ExcludeRequest: req.ID,
	})
	if err != nil {
		v.failClosed(req, "duplicate", err, result, MsgDuplicateUnavailable)
		return
	}
	if n > 0 {
		result.AddError(MsgDuplicateRequest)
	}
}

// CheckType applies the policy-table row for the request's license type.
// Types without a row (transfer, mutation, free agent) have no temporal
// eligibility rule; the generic business rules cover them.
func (v *EligibilityValidator) CheckType(ctx context.Context, req *models.LicenseRequest, ident models.Identity, result *models.ValidationResult) {
	policy, ok := v.policies[req.Type]
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, v.rules.LookupTimeout)
	defer cancel()

	if blocked := v.guardOwnType(ctx, req, ident, result); blocked {
		return
	}

	eligible, err := policy.eligible(ctx, req, ident, result)
	if err != nil {
		v.failClosed(req, string(req.Type), err, result, MsgEligibilityUnavailable)
		return
	}
	if !eligible {
		result.AddError(policy.guidance)
	}
}

// guardOwnType blocks a second active request of the same type for the same
// person, season and team. Returns true when the pipeline must stop here.
func (v *EligibilityValidator) guardOwnType(ctx context.Context, req *models.LicenseRequest, ident models.Identity, result *models.ValidationResult) bool {
	n, err := v.counter.CountActiveRequests(ctx, ports.RosterFilter{
		TeamID:         req.TeamID,
		Season:         req.Season,
		Statuses:       models.ActiveStatuses(),
		LicenseType:    req.Type,
		Identity:       &ident,
		ExcludeRequest: req.ID,
	})
	if err != nil {
		v.failClosed(req, "own-type guard", err, result, MsgEligibilityUnavailable)
		return true
	}
	if n > 0 {
		result.AddError(MsgOwnTypeActive)
		return true
	}
	return false
}

// newLicense admits only persons absent from the permanent registry.
func (v *EligibilityValidator) newLicense(ctx context.Context, _ *models.LicenseRequest, ident models.Identity, _ *models.ValidationResult) (bool, error) {
	exists, err := v.registry.PersonExists(ctx, ident)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// renewal requires a registered person with either a non-loan membership in
// the same team from a past season, or a transfer/free-agent membership in
// the target season itself.
func (v *EligibilityValidator) renewal(ctx context.Context, req *models.LicenseRequest, ident models.Identity, _ *models.ValidationResult) (bool, error) {
	exists, err := v.registry.PersonExists(ctx, ident)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	past, err := v.ledger.MembershipExists(ctx, ports.MembershipQuery{
		TeamID:       req.TeamID,
		Seasons:      req.Season.Range(-v.rules.RenewalLookbackSeasons, -1),
		ExcludeTypes: []models.LicenseType{models.TypeLoan, models.TypeLoanReturn},
	}, ident)
	if err != nil {
		return false, err
	}
	if past {
		return true, nil
	}

	current, err := v.ledger.MembershipExists(ctx, ports.MembershipQuery{
		TeamID:       req.TeamID,
		Seasons:      []id.Season{req.Season},
		IncludeTypes: []models.LicenseType{models.TypeTransfer, models.TypeFreeAgent},
	}, ident)
	if err != nil {
		return false, err
	}
	return current, nil
}

// loanReturn requires a registered person with a loan-type membership in the
// same team within the lookback window.
func (v *EligibilityValidator) loanReturn(ctx context.Context, req *models.LicenseRequest, ident models.Identity, _ *models.ValidationResult) (bool, error) {
	exists, err := v.registry.PersonExists(ctx, ident)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	return v.ledger.MembershipExists(ctx, ports.MembershipQuery{
		TeamID:       req.TeamID,
		Seasons:      req.Season.Range(-v.rules.LoanReturnSeasonWindow, -1),
		IncludeTypes: []models.LicenseType{models.TypeLoan},
	}, ident)
}

// mutationReturn requires a registered person with an active mutation in the
// same team this season. A missing pre-mutation membership does not block:
// the request then stands as an ordinary mutation and a warning records the
// downgrade.
func (v *EligibilityValidator) mutationReturn(ctx context.Context, req *models.LicenseRequest, ident models.Identity, result *models.ValidationResult) (bool, error) {
	exists, err := v.registry.PersonExists(ctx, ident)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	active, err := v.ledger.MembershipExists(ctx, ports.MembershipQuery{
		TeamID:       req.TeamID,
		Seasons:      []id.Season{req.Season},
		IncludeTypes: []models.LicenseType{models.TypeMutation},
		ActiveOnly:   true,
	}, ident)
	if err != nil {
		return false, err
	}
	if !active {
		return false, nil
	}

	preMutation, err := v.ledger.MembershipExists(ctx, ports.MembershipQuery{
		TeamID:       req.TeamID,
		Seasons:      req.Season.Range(-v.rules.RenewalLookbackSeasons, -1),
		ExcludeTypes: []models.LicenseType{models.TypeMutation},
	}, ident)
	if err != nil {
		return false, err
	}
	if !preMutation {
		result.AddWarning(MsgMutationDowngrade)
	}
	return true, nil
}

// loan requires a registered person who holds no active license with the
// borrowing team this season.
func (v *EligibilityValidator) loan(ctx context.Context, req *models.LicenseRequest, ident models.Identity, _ *models.ValidationResult) (bool, error) {
	exists, err := v.registry.PersonExists(ctx, ident)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	held, err := v.ledger.MembershipExists(ctx, ports.MembershipQuery{
		TeamID:     req.TeamID,
		Seasons:    []id.Season{req.Season},
		ActiveOnly: true,
	}, ident)
	if err != nil {
		return false, err
	}
	return !held, nil
}

func (v *EligibilityValidator) failClosed(req *models.LicenseRequest, check string, err error, result *models.ValidationResult, msg string) {
	v.logger.Error("eligibility lookup failed",
		"request_id", req.ID.String(),
		"team_id", req.TeamID.String(),
		"check", check,
		"error", err)
	result.AddError(msg)
}
