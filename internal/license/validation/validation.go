// Package validation implements the eligibility pipeline for license
// requests: identity-document rules, date coherence, mandatory fields,
// seasonal quotas, duplicate detection and per-license-type eligibility,
// composed by the Orchestrator in a fixed order with asymmetric
// short-circuiting.
package validation

import "ftf/internal/license/models"

// Facts are derived once per run by the orchestrator and handed to every
// validator so none of them recomputes age, category or division.
type Facts struct {
	Age      int
	Category models.Category
	Exempt   bool
	Division models.Division
	Domestic bool
}

// Rule messages are exported so tests and callers can match on the exact
// failed rule. They are shown to end users as-is.
const (
	MsgExceptionWindow = "birth date falls in the exception window: identity document is optional for this request"

	MsgCINRequired      = "national identity card number is required for this category"
	MsgCINFormat        = "national identity card number must be exactly 8 digits"
	MsgPassportRequired = "passport number is required for foreign players"
	MsgPassportFormat   = "passport number must be 6 to 9 letters or digits"

	MsgConsultationRequired = "medical consultation date is required"
	MsgConsultationTooOld   = "medical consultation is older than one month"
	MsgConsultationFuture   = "medical consultation date cannot be in the future"
	MsgContractStartFuture  = "contract start date cannot be in the future"
	MsgContractEndNotAfter  = "contract end date must be after the start date"
	MsgContractEndBoundary  = "contract end date must fall on the season closing date (June 30)"

	MsgFirstNameRequired    = "first name is required"
	MsgLastNameRequired     = "last name is required"
	MsgBirthDateRequired    = "birth date is required"
	MsgNationalityRequired  = "nationality is required"
	MsgTeamRequired         = "team is required"
	MsgSeasonRequired       = "season is required"
	MsgRegimeRequired       = "a valid regime is required"
	MsgTypeRequired         = "a valid license type is required"
	MsgExaminerRequired     = "examining doctor name is required"
	MsgJerseyRequired       = "jersey number is required for professional regimes in the top divisions"

	MsgRosterFull         = "team roster is full: the active license ceiling is reached"
	MsgRosterNearCeiling  = "team roster is close to the active license ceiling"
	MsgRosterUnavailable  = "roster count unavailable: total quota check skipped"
	MsgProfessionalsFull  = "professional roster is full: the professional license ceiling is reached"
	MsgProfUnavailable    = "roster count unavailable: professional quota check skipped"
	MsgForeignFull        = "foreign player quota is reached for this division"
	MsgForeignUnavailable = "roster count unavailable: foreign player quota check skipped"

	MsgDuplicateRequest     = "an active license request already exists for this player this season"
	MsgDuplicateUnavailable = "duplicate check failed: the request registry could not be reached"

	MsgEligibilityUnavailable = "eligibility could not be verified: the federation registry could not be reached"

	MsgAlreadyRegistered        = "player is already registered with the federation: use a renewal, transfer or mutation request"
	MsgRenewalIneligible        = "no qualifying membership with this team: renewal is not possible, use a new license, transfer or mutation request"
	MsgLoanReturnIneligible     = "loan return is not possible: the player has no loan with this team in the recent seasons"
	MsgMutationReturnIneligible = "mutation return is not possible: the player has no active mutation with this team this season"
	MsgLoanIneligible           = "loan is not possible: the player must be registered and hold no active license with this team this season"
	MsgOwnTypeActive            = "an active request of this type already exists for this player with this team this season"

	MsgLoanDuration      = "loan duration must be between 1 and 12 months"
	MsgLoanContract      = "loan requests must carry a contract window"
	MsgPriorLicense      = "prior license number is required for transfer and mutation requests"
	MsgMutationDowngrade = "no pre-mutation membership with this team: request treated as an ordinary mutation"
)
