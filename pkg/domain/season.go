package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	dErrors "ftf/pkg/domain-errors"
)

// Season is a sporting season label such as "2024-2025". The second year is
// the closing year: the season ends on the closing calendar date (June 30 by
// default) of that year.
type Season string

var seasonPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// ParseSeason validates a season label. The two years must be consecutive.
func ParseSeason(s string) (Season, error) {
	m := seasonPattern.FindStringSubmatch(s)
	if m == nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "season must look like 2024-2025")
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	if second != first+1 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "season years must be consecutive")
	}
	return Season(s), nil
}

// SeasonForDate returns the season a date falls in, given the closing
// month/day. A date after the closing boundary belongs to the next season.
func SeasonForDate(t time.Time, closingMonth time.Month, closingDay int) Season {
	year := t.Year()
	boundary := time.Date(year, closingMonth, closingDay, 0, 0, 0, 0, t.Location())
	if t.After(boundary) {
		return newSeason(year)
	}
	return newSeason(year - 1)
}

func newSeason(openingYear int) Season {
	return Season(fmt.Sprintf("%04d-%04d", openingYear, openingYear+1))
}

func (s Season) String() string { return string(s) }

// IsNil reports an unset season.
func (s Season) IsNil() bool { return s == "" }

// OpeningYear returns the first calendar year of the season.
func (s Season) OpeningYear() int {
	m := seasonPattern.FindStringSubmatch(string(s))
	if m == nil {
		return 0
	}
	y, _ := strconv.Atoi(m[1])
	return y
}

// ClosingYear returns the calendar year the season closes in.
func (s Season) ClosingYear() int {
	y := s.OpeningYear()
	if y == 0 {
		return 0
	}
	return y + 1
}

// ClosingDate returns the fixed season-closing date for the given month/day.
func (s Season) ClosingDate(month time.Month, day int) time.Time {
	return time.Date(s.ClosingYear(), month, day, 0, 0, 0, 0, time.UTC)
}

// Offset returns the season n steps away; negative n walks backwards.
// Offset(-1) on "2024-2025" yields "2023-2024".
func (s Season) Offset(n int) Season {
	y := s.OpeningYear()
	if y == 0 {
		return s
	}
	return newSeason(y + n)
}

// Range returns the closed range of seasons from s+from to s+to inclusive,
// oldest first. Used by eligibility checks that scan a bounded window of the
// membership ledger.
func (s Season) Range(from, to int) []Season {
	if from > to || s.OpeningYear() == 0 {
		return nil
	}
	out := make([]Season, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, s.Offset(n))
	}
	return out
}
