// Package membership reads the permanent person registry and the immutable
// season-indexed membership ledger. The core never writes either; seed data
// comes from federation imports.
package membership

import (
	"context"
	"strings"
	"sync"

	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	id "ftf/pkg/domain"
)

// MemoryStore is an in-memory PersonRegistry and MembershipLedger. Tests
// seed it with persons and membership records.
type MemoryStore struct {
	mu      sync.RWMutex
	persons []models.Identity
	records []models.TeamMembershipRecord
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

// SeedPerson registers a person in the permanent registry.
func (s *MemoryStore) SeedPerson(ident models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = append(s.persons, ident)
}

// SeedMembership appends a ledger record.
func (s *MemoryStore) SeedMembership(record models.TeamMembershipRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

func (s *MemoryStore) PersonExists(_ context.Context, identity models.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.persons {
		if identitiesMatch(p, identity) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) MembershipExists(_ context.Context, query ports.MembershipQuery, identity models.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if s.recordMatches(r, query, identity) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) recordMatches(r models.TeamMembershipRecord, query ports.MembershipQuery, identity models.Identity) bool {
	if !query.TeamID.IsNil() && r.TeamID != query.TeamID {
		return false
	}
	if len(query.Seasons) > 0 && !seasonIn(query.Seasons, r.Season) {
		return false
	}
	if len(query.IncludeTypes) > 0 && !typeIn(query.IncludeTypes, r.LicenseType) {
		return false
	}
	for _, t := range query.ExcludeTypes {
		if r.LicenseType == t {
			return false
		}
	}
	if query.ActiveOnly && !statusActive(r.Status) {
		return false
	}
	record := models.Identity{
		Document:  r.Document,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: r.BirthDate,
	}
	return identitiesMatch(record, identity)
}

// identitiesMatch applies the shared person-matching strategy: document
// number when the probe carries one, otherwise the case-insensitive name
// triple with the same birth date.
func identitiesMatch(record, probe models.Identity) bool {
	if probe.ByDocument() {
		return record.Document != "" && strings.EqualFold(record.Document, probe.Document)
	}
	if !strings.EqualFold(record.FirstName, probe.FirstName) || !strings.EqualFold(record.LastName, probe.LastName) {
		return false
	}
	if probe.BirthDate == nil || record.BirthDate == nil {
		return probe.BirthDate == nil && record.BirthDate == nil
	}
	ay, am, ad := probe.BirthDate.Date()
	by, bm, bd := record.BirthDate.Date()
	return ay == by && am == bm && ad == bd
}

func seasonIn(seasons []id.Season, s id.Season) bool {
	for _, v := range seasons {
		if v == s {
			return true
		}
	}
	return false
}

func typeIn(types []models.LicenseType, t models.LicenseType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func statusActive(s models.Status) bool {
	for _, v := range models.ActiveStatuses() {
		if v == s {
			return true
		}
	}
	return false
}
