package membership

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	id "ftf/pkg/domain"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
	team  id.TeamID
	birth time.Time
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
	s.team = id.TeamID(uuid.New())
	s.birth = time.Date(1998, time.March, 21, 0, 0, 0, 0, time.UTC)
}

func (s *MemoryStoreSuite) seedRecord(mutate func(*models.TeamMembershipRecord)) {
	r := models.TeamMembershipRecord{
		TeamID:      s.team,
		Season:      "2023-2024",
		LicenseType: models.TypeNew,
		Status:      models.StatusPrinted,
		Document:    "12345678",
		FirstName:   "Amine",
		LastName:    "Ben Salah",
		BirthDate:   &s.birth,
	}
	mutate(&r)
	s.store.SeedMembership(r)
}

func (s *MemoryStoreSuite) TestPersonExists() {
	s.store.SeedPerson(models.Identity{
		Document:  "12345678",
		FirstName: "Amine",
		LastName:  "Ben Salah",
		BirthDate: &s.birth,
	})

	s.Run("matches by document", func() {
		ok, err := s.store.PersonExists(s.ctx, models.Identity{Document: "12345678"})
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("document comparison is case-insensitive", func() {
		s.store.SeedPerson(models.Identity{Document: "xp123456"})
		ok, err := s.store.PersonExists(s.ctx, models.Identity{Document: "XP123456"})
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("falls back to name triple without a document", func() {
		ok, err := s.store.PersonExists(s.ctx, models.Identity{
			FirstName: "AMINE",
			LastName:  "ben salah",
			BirthDate: &s.birth,
		})
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("same name different birth date misses", func() {
		other := s.birth.AddDate(1, 0, 0)
		ok, err := s.store.PersonExists(s.ctx, models.Identity{
			FirstName: "Amine",
			LastName:  "Ben Salah",
			BirthDate: &other,
		})
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("unknown person misses", func() {
		ok, err := s.store.PersonExists(s.ctx, models.Identity{Document: "00000000"})
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *MemoryStoreSuite) TestMembershipExists() {
	probe := models.Identity{Document: "12345678"}

	s.Run("scoped to team and seasons", func() {
		s.store = NewMemory()
		s.seedRecord(func(r *models.TeamMembershipRecord) {})
		s.seedRecord(func(r *models.TeamMembershipRecord) { r.TeamID = id.TeamID(uuid.New()) })

		ok, err := s.store.MembershipExists(s.ctx, ports.MembershipQuery{
			TeamID:  s.team,
			Seasons: []id.Season{"2023-2024"},
		}, probe)
		s.Require().NoError(err)
		s.True(ok)

		ok, err = s.store.MembershipExists(s.ctx, ports.MembershipQuery{
			TeamID:  s.team,
			Seasons: []id.Season{"2021-2022", "2022-2023"},
		}, probe)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("include types narrows", func() {
		s.store = NewMemory()
		s.seedRecord(func(r *models.TeamMembershipRecord) { r.LicenseType = models.TypeLoan })

		ok, err := s.store.MembershipExists(s.ctx, ports.MembershipQuery{
			TeamID:       s.team,
			IncludeTypes: []models.LicenseType{models.TypeLoan},
		}, probe)
		s.Require().NoError(err)
		s.True(ok)

		ok, err = s.store.MembershipExists(s.ctx, ports.MembershipQuery{
			TeamID:       s.team,
			IncludeTypes: []models.LicenseType{models.TypeMutation},
		}, probe)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("exclude types hides matching records", func() {
		s.store = NewMemory()
		s.seedRecord(func(r *models.TeamMembershipRecord) { r.LicenseType = models.TypeLoan })

		ok, err := s.store.MembershipExists(s.ctx, ports.MembershipQuery{
			TeamID:       s.team,
			ExcludeTypes: []models.LicenseType{models.TypeLoan, models.TypeLoanReturn},
		}, probe)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("active only drops rejected memberships", func() {
		s.store = NewMemory()
		s.seedRecord(func(r *models.TeamMembershipRecord) { r.Status = models.StatusRejected })

		ok, err := s.store.MembershipExists(s.ctx, ports.MembershipQuery{
			TeamID:     s.team,
			ActiveOnly: true,
		}, probe)
		s.Require().NoError(err)
		s.False(ok)

		ok, err = s.store.MembershipExists(s.ctx, ports.MembershipQuery{TeamID: s.team}, probe)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("identity name fallback", func() {
		s.store = NewMemory()
		s.seedRecord(func(r *models.TeamMembershipRecord) { r.Document = "" })

		ok, err := s.store.MembershipExists(s.ctx, ports.MembershipQuery{TeamID: s.team}, models.Identity{
			FirstName: "amine",
			LastName:  "BEN SALAH",
			BirthDate: &s.birth,
		})
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("empty ledger misses", func() {
		s.store = NewMemory()
		ok, err := s.store.MembershipExists(s.ctx, ports.MembershipQuery{TeamID: s.team}, probe)
		s.Require().NoError(err)
		s.False(ok)
	})
}
