// Package request persists license requests and answers roster-count
// queries. The memory store backs tests and local development; the postgres
// store is the production path.
package request

import (
	"context"
	"strings"
	"sync"

	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	id "ftf/pkg/domain"
	"ftf/pkg/platform/sentinel"
)

// MemoryStore is an in-memory RequestStore and RosterCounter. Safe for
// concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	requests map[id.RequestID]*models.LicenseRequest

	domesticNationality string
}

func NewMemory(domesticNationality string) *MemoryStore {
	return &MemoryStore{
		requests:            make(map[id.RequestID]*models.LicenseRequest),
		domesticNationality: domesticNationality,
	}
}

func (s *MemoryStore) Save(_ context.Context, request *models.LicenseRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[request.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *request
	s.requests[request.ID] = &cp
	return nil
}

func (s *MemoryStore) Load(_ context.Context, requestID id.RequestID) (*models.LicenseRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[requestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, requestID id.RequestID, from, to models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if req.Status != from {
		return sentinel.ErrConflict
	}
	req.Status = to
	return nil
}

func (s *MemoryStore) CountActiveRequests(_ context.Context, filter ports.RosterFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, req := range s.requests {
		if s.matches(req, filter) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) matches(req *models.LicenseRequest, filter ports.RosterFilter) bool {
	if !filter.ExcludeRequest.IsNil() && req.ID == filter.ExcludeRequest {
		return false
	}
	if !filter.TeamID.IsNil() && req.TeamID != filter.TeamID {
		return false
	}
	if !filter.Season.IsNil() && req.Season != filter.Season {
		return false
	}
	if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, req.Status) {
		return false
	}
	if len(filter.Regimes) > 0 && !containsRegime(filter.Regimes, req.Regime) {
		return false
	}
	if filter.LicenseType != "" && req.Type != filter.LicenseType {
		return false
	}
	if filter.ForeignOnly && req.IsDomestic(s.domesticNationality) {
		return false
	}
	if filter.Identity != nil && !identityMatches(*filter.Identity, req, s.domesticNationality) {
		return false
	}
	return true
}

// identityMatches applies the shared person-matching strategy: document
// number when the identity carries one, otherwise the case-insensitive name
// triple with the same birth date.
func identityMatches(ident models.Identity, req *models.LicenseRequest, domesticNationality string) bool {
	if ident.ByDocument() {
		doc := req.Passport
		if req.IsDomestic(domesticNationality) {
			doc = req.CIN
		}
		return doc != "" && strings.EqualFold(doc, ident.Document)
	}
	if !strings.EqualFold(req.FirstName, ident.FirstName) || !strings.EqualFold(req.LastName, ident.LastName) {
		return false
	}
	if ident.BirthDate == nil || req.BirthDate == nil {
		return ident.BirthDate == nil && req.BirthDate == nil
	}
	ay, am, ad := ident.BirthDate.Date()
	by, bm, bd := req.BirthDate.Date()
	return ay == by && am == bm && ad == bd
}

func containsStatus(set []models.Status, s models.Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsRegime(set []models.Regime, r models.Regime) bool {
	for _, v := range set {
		if v == r {
			return true
		}
	}
	return false
}

// MemoryTxRunner serializes closures on one lock, mirroring the isolation
// the postgres runner gets from a database transaction.
type MemoryTxRunner struct {
	mu sync.Mutex
}

func NewMemoryTxRunner() *MemoryTxRunner {
	return &MemoryTxRunner{}
}

func (r *MemoryTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(ctx)
}
