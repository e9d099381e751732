package memory

import (
	"context"
	"sync"
	"time"

	"github.com/harisha-viswa/hiring-system/internal/domain"
)

// CandidateRepo is an in-memory CandidateRepository keyed by principal id.
type CandidateRepo struct {
	mu          sync.RWMutex
	byPrincipal map[string]domain.Candidate
	byID        map[string]string // candidate id → principal id
}

func NewCandidateRepository() *CandidateRepo {
	return &CandidateRepo{
		byPrincipal: make(map[string]domain.Candidate),
		byID:        make(map[string]string),
	}
}

func (r *CandidateRepo) Upsert(ctx context.Context, c *domain.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.byPrincipal[c.PrincipalID]; ok {
		// Replacement keeps the server-issued identity.
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	} else {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.byPrincipal[c.PrincipalID] = *c
	r.byID[c.ID] = c.PrincipalID
	return nil
}

func (r *CandidateRepo) GetByPrincipalID(ctx context.Context, principalID string) (*domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byPrincipal[principalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *CandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	principalID, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := r.byPrincipal[principalID]
	return &c, nil
}
