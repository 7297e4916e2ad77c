package validation

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	"ftf/internal/platform/config"
	"ftf/pkg/platform/circuit"
)

// quotaCount is one counted dimension of the roster. err is kept per
// dimension because a failed count degrades only its own check.
type quotaCount struct {
	n   int
	err error
}

// QuotaValidator checks the seasonal roster ceilings: total active licenses,
// professional-tier licenses and foreign players per division. Lookups that
// fail degrade to warnings instead of blocking the request; quotas protect
// the roster, they do not gate it when the store is down.
type QuotaValidator struct {
	counter ports.RosterCounter
	rules   config.Rules
	logger  *slog.Logger
	breaker *circuit.Breaker
}

func NewQuotaValidator(counter ports.RosterCounter, rules config.Rules, logger *slog.Logger) *QuotaValidator {
	return &QuotaValidator{
		counter: counter,
		rules:   rules,
		logger:  logger,
		breaker: circuit.New("quota-counter"),
	}
}

func (v *QuotaValidator) Check(ctx context.Context, req *models.LicenseRequest, facts Facts, result *models.ValidationResult) {
	ctx, cancel := context.WithTimeout(ctx, v.rules.LookupTimeout)
	defer cancel()

	foreignLimit, foreignApplies := v.rules.MaxForeignByDivision[string(facts.Division)]
	checkForeign := foreignApplies && !facts.Domestic

	// An open breaker means the counter has been failing; skip the lookups
	// and degrade every applicable dimension straight away.
	if v.breaker.IsOpen() {
		v.degrade(req, "total", nil, result, MsgRosterUnavailable)
		if req.Regime.IsProfessionalTier() {
			v.degrade(req, "professional", nil, result, MsgProfUnavailable)
		}
		if checkForeign {
			v.degrade(req, "foreign", nil, result, MsgForeignUnavailable)
		}
		return
	}

	var total, professional, foreign quotaCount

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total.n, total.err = v.counter.CountActiveRequests(gctx, ports.RosterFilter{
			TeamID:         req.TeamID,
			Season:         req.Season,
			Statuses:       models.ActiveStatuses(),
			ExcludeRequest: req.ID,
		})
		return nil
	})
	g.Go(func() error {
		if !req.Regime.IsProfessionalTier() {
			return nil
		}
		professional.n, professional.err = v.counter.CountActiveRequests(gctx, ports.RosterFilter{
			TeamID:         req.TeamID,
			Season:         req.Season,
			Statuses:       models.ActiveStatuses(),
			Regimes:        models.ProfessionalTierRegimes(),
			ExcludeRequest: req.ID,
		})
		return nil
	})
	g.Go(func() error {
		if !checkForeign {
			return nil
		}
		foreign.n, foreign.err = v.counter.CountActiveRequests(gctx, ports.RosterFilter{
			TeamID:         req.TeamID,
			Season:         req.Season,
			Statuses:       models.ActiveStatuses(),
			ForeignOnly:    true,
			ExcludeRequest: req.ID,
		})
		return nil
	})
	_ = g.Wait()

	v.recordOutcome(total.err, professional.err, foreign.err)

	switch {
	case total.err != nil:
		v.degrade(req, "total", total.err, result, MsgRosterUnavailable)
	case total.n >= v.rules.MaxRosterSize:
		result.AddError(MsgRosterFull)
	case total.n >= v.rules.MaxRosterSize-v.rules.RosterWarningMargin:
		result.AddWarning(MsgRosterNearCeiling)
	}

	if req.Regime.IsProfessionalTier() {
		switch {
		case professional.err != nil:
			v.degrade(req, "professional", professional.err, result, MsgProfUnavailable)
		case professional.n >= v.rules.MaxProfessionals:
			result.AddError(MsgProfessionalsFull)
		}
	}

	if checkForeign {
		switch {
		case foreign.err != nil:
			v.degrade(req, "foreign", foreign.err, result, MsgForeignUnavailable)
		case foreign.n >= foreignLimit:
			result.AddError(MsgForeignFull)
		}
	}
}

func (v *QuotaValidator) recordOutcome(errs ...error) {
	for _, err := range errs {
		if err != nil {
			if _, change := v.breaker.RecordFailure(); change.Opened {
				v.logger.Warn("quota counter breaker opened", "breaker", v.breaker.Name())
			}
			return
		}
	}
	if _, change := v.breaker.RecordSuccess(); change.Closed {
		v.logger.Info("quota counter breaker closed", "breaker", v.breaker.Name())
	}
}

func (v *QuotaValidator) degrade(req *models.LicenseRequest, dimension string, err error, result *models.ValidationResult, msg string) {
	v.logger.Warn("quota lookup degraded",
		"request_id", req.ID.String(),
		"team_id", req.TeamID.String(),
		"dimension", dimension,
		"error", err)
	result.AddWarning(msg)
}
