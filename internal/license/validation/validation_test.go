package validation

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ftf/internal/license/models"
	id "ftf/pkg/domain"
	"ftf/pkg/requestcontext"
)

// Shared fixtures. Every test pins the clock through the request context so
// the consultation-window and age checks are deterministic.

var testNow = time.Date(2024, time.October, 10, 12, 0, 0, 0, time.UTC)

func testCtx() context.Context {
	return requestcontext.WithTime(context.Background(), testNow)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// validRequest is a domestic senior amateur new-license request that passes
// every validator when the collaborators report an empty roster.
func validRequest() *models.LicenseRequest {
	birth := time.Date(1998, time.March, 21, 0, 0, 0, 0, time.UTC)
	consult := testNow.AddDate(0, 0, -10)
	return &models.LicenseRequest{
		ID:                id.NewRequestID(),
		FirstName:         "Amine",
		LastName:          "Ben Salah",
		BirthDate:         &birth,
		Nationality:       "TN",
		CIN:               "12345678",
		TeamID:            id.TeamID(uuid.New()),
		Season:            "2024-2025",
		Regime:            models.RegimeAmateur,
		Type:              models.TypeNew,
		ExaminerFirstName: "Mona",
		ExaminerLastName:  "Trabelsi",
		ConsultationDate:  &consult,
	}
}

func seniorFacts() Facts {
	return Facts{
		Age:      26,
		Category: models.CategorySenior,
		Division: models.DivisionRegional,
		Domestic: true,
	}
}
