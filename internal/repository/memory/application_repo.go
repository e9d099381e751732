package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/harisha-viswa/hiring-system/internal/domain"
)

type ledgerKey struct {
	candidateID string
	jobID       int64
}

// ApplicationRepo is an in-memory ApplicationRepository. A single mutex
// covers the whole map; every state check and transition happens under it,
// so concurrent applies for one (candidate, job) pair resolve to exactly one
// winner.
type ApplicationRepo struct {
	mu      sync.Mutex
	records map[ledgerKey]domain.Application
}

func NewApplicationRepository() *ApplicationRepo {
	return &ApplicationRepo{records: make(map[ledgerKey]domain.Application)}
}

func (r *ApplicationRepo) Apply(ctx context.Context, app *domain.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ledgerKey{app.CandidateID, app.JobID}
	now := time.Now()

	existing, ok := r.records[key]
	if ok && existing.State == domain.ApplicationStateApplied {
		return domain.ErrDuplicateApplication
	}

	app.State = domain.ApplicationStateApplied
	app.UpdatedAt = now
	if ok {
		// Re-apply revives the cancelled record in place: new snapshot and
		// resume, original creation time, decision kept as history.
		app.CreatedAt = existing.CreatedAt
		app.Decision = existing.Decision
	} else {
		app.CreatedAt = now
	}
	r.records[key] = *app
	return nil
}

func (r *ApplicationRepo) Cancel(ctx context.Context, candidateID string, jobID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ledgerKey{candidateID, jobID}
	existing, ok := r.records[key]
	if !ok {
		return domain.ErrNotFound
	}
	if existing.State != domain.ApplicationStateApplied {
		return domain.ErrInvalidState
	}
	existing.State = domain.ApplicationStateCancelled
	existing.UpdatedAt = time.Now()
	r.records[key] = existing
	return nil
}

func (r *ApplicationRepo) SetDecision(ctx context.Context, candidateID string, jobID int64, decision string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ledgerKey{candidateID, jobID}
	existing, ok := r.records[key]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Decision = &decision
	existing.UpdatedAt = time.Now()
	r.records[key] = existing
	return nil
}

func (r *ApplicationRepo) FetchByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var apps []domain.Application
	for key, app := range r.records {
		if key.candidateID == candidateID {
			apps = append(apps, app)
		}
	}
	sortNewestFirst(apps)
	return apps, nil
}

func (r *ApplicationRepo) FetchByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var apps []domain.Application
	for key, app := range r.records {
		if key.jobID == jobID {
			apps = append(apps, app)
		}
	}
	sortNewestFirst(apps)
	return apps, nil
}

func sortNewestFirst(apps []domain.Application) {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}
