// Package category derives a player's age category from the birth date. The
// bracket table is injected configuration, not compiled-in constants, so the
// federation can shift the windows each cycle without touching validators.
package category

import (
	"time"

	"ftf/internal/license/models"
	"ftf/internal/platform/config"
)

// Result is the derived categorization of one birth date.
type Result struct {
	Category models.Category

	// Exempt marks birth dates inside the federation's exception window:
	// the identity document becomes optional without changing the category.
	Exempt bool
}

// Calculator maps birth dates to categories. It is a pure lookup; the zero
// of information (nil birth date) maps to the senior catch-all so downstream
// logic stays total.
type Calculator struct {
	brackets       []config.CategoryBracket
	exceptionStart time.Time
	exceptionEnd   time.Time
}

func NewCalculator(rules config.Rules) *Calculator {
	return &Calculator{
		brackets:       rules.CategoryBrackets,
		exceptionStart: rules.ExceptionWindowStart,
		exceptionEnd:   rules.ExceptionWindowEnd,
	}
}

// Categorize is total: every input, including nil, yields a category.
func (c *Calculator) Categorize(birthDate *time.Time) Result {
	if birthDate == nil {
		return Result{Category: models.CategorySenior}
	}

	result := Result{Category: models.CategorySenior}
	year := birthDate.Year()
	for _, bracket := range c.brackets {
		if year >= bracket.FromYear && year <= bracket.ToYear {
			result.Category = models.Category(bracket.Code)
			break
		}
	}

	if !birthDate.Before(c.exceptionStart) && !birthDate.After(c.exceptionEnd) {
		result.Exempt = true
	}
	return result
}

// Age returns the completed years between the birth date and now; nil birth
// dates yield 0.
func Age(birthDate *time.Time, now time.Time) int {
	if birthDate == nil {
		return 0
	}
	years := now.Year() - birthDate.Year()
	anniversary := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
