package division

import (
	"context"
	"sync"

	"ftf/internal/license/models"
	id "ftf/pkg/domain"
)

// StaticResolver is an in-memory DivisionResolver for tests and local
// development. Unknown teams resolve to the regional default.
type StaticResolver struct {
	mu        sync.RWMutex
	divisions map[id.TeamID]models.Division
}

func NewStatic() *StaticResolver {
	return &StaticResolver{divisions: make(map[id.TeamID]models.Division)}
}

// Set pins a team's division.
func (r *StaticResolver) Set(teamID id.TeamID, division models.Division) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.divisions[teamID] = division
}

func (r *StaticResolver) TeamDivision(_ context.Context, teamID id.TeamID) (models.Division, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.divisions[teamID]; ok {
		return d, nil
	}
	return models.DivisionRegional, nil
}
