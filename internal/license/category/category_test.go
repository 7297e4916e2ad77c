package category

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ftf/internal/license/models"
	"ftf/internal/platform/config"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCategorize_Brackets(t *testing.T) {
	calc := NewCalculator(config.DefaultRules())

	cases := []struct {
		name  string
		birth *time.Time
		want  models.Category
	}{
		{"nil birth date falls back to senior", nil, models.CategorySenior},
		{"older than every bracket is senior", date(1990, time.May, 12), models.CategorySenior},
		{"2005 is senior", date(2005, time.March, 1), models.CategorySenior},
		{"2006 opens juniors", date(2006, time.January, 1), models.CategoryJunior},
		{"2007 closes juniors", date(2007, time.December, 31), models.CategoryJunior},
		{"2008 opens cadets", date(2008, time.January, 1), models.CategoryCadet},
		{"2009 closes cadets", date(2009, time.December, 31), models.CategoryCadet},
		{"2010 opens minimes", date(2010, time.June, 15), models.CategoryMinime},
		{"2012 opens ecoles", date(2012, time.June, 15), models.CategoryEcole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, calc.Categorize(tc.birth).Category)
		})
	}
}

// The bracket order is monotonic: walking birth years backwards never jumps
// to a younger category.
func TestCategorize_Monotonic(t *testing.T) {
	calc := NewCalculator(config.DefaultRules())

	order := map[models.Category]int{
		models.CategoryEcole:  0,
		models.CategoryMinime: 1,
		models.CategoryCadet:  2,
		models.CategoryJunior: 3,
		models.CategorySenior: 4,
	}

	prev := -1
	for year := 2013; year >= 1980; year-- {
		got := calc.Categorize(date(year, time.July, 1)).Category
		rank, ok := order[got]
		if !ok {
			t.Fatalf("unknown category %q for year %d", got, year)
		}
		assert.GreaterOrEqual(t, rank, prev, "year %d regressed to %q", year, got)
		prev = rank
	}
}

func TestCategorize_ExceptionWindow(t *testing.T) {
	calc := NewCalculator(config.DefaultRules())

	t.Run("inside the window is exempt", func(t *testing.T) {
		res := calc.Categorize(date(2005, time.October, 15))
		assert.True(t, res.Exempt)
		// The window never changes the computed category.
		assert.Equal(t, models.CategorySenior, res.Category)
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		assert.True(t, calc.Categorize(date(2005, time.September, 1)).Exempt)
		assert.True(t, calc.Categorize(date(2005, time.December, 31)).Exempt)
	})

	t.Run("immediately outside either boundary is not exempt", func(t *testing.T) {
		assert.False(t, calc.Categorize(date(2005, time.August, 31)).Exempt)
		assert.False(t, calc.Categorize(date(2006, time.January, 1)).Exempt)
	})

	t.Run("nil birth date is never exempt", func(t *testing.T) {
		assert.False(t, calc.Categorize(nil).Exempt)
	})
}

func TestAge(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, Age(nil, now))
	assert.Equal(t, 19, Age(date(2006, time.January, 1), now))
	assert.Equal(t, 18, Age(date(2006, time.June, 1), now), "birthday not reached yet")
	assert.Equal(t, 0, Age(date(2030, time.January, 1), now), "future birth dates clamp to zero")
}
