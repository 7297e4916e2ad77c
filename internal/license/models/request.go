package models

import (
	"strings"
	"time"

	id "ftf/pkg/domain"
)

// LicenseType distinguishes how a player joins a team's roster for a season.
type LicenseType string

const (
	TypeNew            LicenseType = "NEW"
	TypeRenewal        LicenseType = "RENEWAL"
	TypeTransfer       LicenseType = "TRANSFER"
	TypeLoan           LicenseType = "LOAN"
	TypeMutation       LicenseType = "MUTATION"
	TypeLoanReturn     LicenseType = "LOAN_RETURN"
	TypeMutationReturn LicenseType = "MUTATION_RETURN"
	TypeFreeAgent      LicenseType = "FREE_AGENT"
)

var validTypes = map[LicenseType]bool{
	TypeNew: true, TypeRenewal: true, TypeTransfer: true, TypeLoan: true,
	TypeMutation: true, TypeLoanReturn: true, TypeMutationReturn: true,
	TypeFreeAgent: true,
}

// IsValid checks membership in the license-type enum.
func (t LicenseType) IsValid() bool { return validTypes[t] }

// IsLoanVariant covers the loan family, which never establishes the kind of
// club membership a renewal may build on.
func (t LicenseType) IsLoanVariant() bool {
	return t == TypeLoan || t == TypeLoanReturn
}

// Regime is the contractual tier of the player.
type Regime string

const (
	RegimeAmateur      Regime = "AMATEUR"
	RegimeProfessional Regime = "PROFESSIONAL"
	RegimeSemiPro      Regime = "SEMI_PRO"
	RegimeTrainee      Regime = "TRAINEE"
	RegimeSpecial      Regime = "SPECIAL"
)

var validRegimes = map[Regime]bool{
	RegimeAmateur: true, RegimeProfessional: true, RegimeSemiPro: true,
	RegimeTrainee: true, RegimeSpecial: true,
}

// IsValid checks membership in the regime enum.
func (r Regime) IsValid() bool { return validRegimes[r] }

// IsProfessionalTier reports whether the regime counts against the
// professional roster ceiling.
func (r Regime) IsProfessionalTier() bool {
	return r == RegimeProfessional || r == RegimeSemiPro || r == RegimeTrainee
}

// ProfessionalTierRegimes is the regime set counted by the professional
// quota check.
func ProfessionalTierRegimes() []Regime {
	return []Regime{RegimeProfessional, RegimeSemiPro, RegimeTrainee}
}

// Division is a competitive division. Anything the resolver cannot place
// defaults to DivisionRegional.
type Division string

const (
	DivisionLigue1   Division = "LIGUE_1"
	DivisionLigue2   Division = "LIGUE_2"
	DivisionRegional Division = "REGIONAL"
)

// IsTopTier reports whether the division is one of the two professional
// divisions, which carry the foreign-player quota and the jersey-number
// requirement.
func (d Division) IsTopTier() bool {
	return d == DivisionLigue1 || d == DivisionLigue2
}

// Category is a derived age bracket. CategorySenior is the catch-all.
type Category string

const (
	CategorySenior  Category = "SENIORS"
	CategoryJunior  Category = "JUNIORS"
	CategoryCadet   Category = "CADETS"
	CategoryMinime  Category = "MINIMES"
	CategoryEcole   Category = "ECOLES"
)

// RequiresIdentityDocument reports whether players of this category must
// present a CIN or passport. Cadets and younger play without one.
func (c Category) RequiresIdentityDocument() bool {
	return c == CategorySenior || c == CategoryJunior
}

// LicenseRequest is the central entity: one player's request for a
// competition license with one team for one season.
type LicenseRequest struct {
	ID id.RequestID

	// Identity.
	FirstName   string
	LastName    string
	BirthDate   *time.Time
	BirthPlace  string
	Nationality string

	// Documents. Exactly one of CIN/Passport is operative, chosen by
	// nationality.
	CIN                string
	Passport           string
	PriorLicenseNumber string

	TeamID id.TeamID
	Season id.Season
	Regime Regime
	Type   LicenseType

	// Category is derived from the birth date, never client-supplied.
	Category Category

	// Contractual window. End must land on the season-closing date.
	ContractStart *time.Time
	ContractEnd   *time.Time
	LoanMonths    int

	// Medical consultation.
	ExaminerFirstName string
	ExaminerLastName  string
	ConsultationDate  *time.Time

	JerseyNumber *int

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity returns the matching key used by duplicate detection and the
// eligibility validators: the operative document number when the category
// requires one, otherwise the (first, last, birth date) triple.
func (r *LicenseRequest) Identity(domesticNationality string) Identity {
	ident := Identity{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: r.BirthDate,
	}
	if r.Category.RequiresIdentityDocument() {
		if r.IsDomestic(domesticNationality) {
			ident.Document = r.CIN
		} else {
			ident.Document = r.Passport
		}
	}
	return ident
}

// IsDomestic reports whether the player holds the federation's nationality.
func (r *LicenseRequest) IsDomestic(domesticNationality string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Nationality), domesticNationality)
}

// Identity is the person-matching key shared by the duplicate and
// eligibility validators. When Document is set, matching is by document
// number; otherwise by the case-insensitive name triple.
type Identity struct {
	Document  string
	FirstName string
	LastName  string
	BirthDate *time.Time
}

// ByDocument reports whether this identity matches on document number.
func (i Identity) ByDocument() bool { return i.Document != "" }
