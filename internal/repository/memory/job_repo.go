package memory

import (
	"context"
	"sync"
	"time"

	"github.com/harisha-viswa/hiring-system/internal/domain"
)

// JobRepo is an in-memory JobRepository used in tests and dev mode.
type JobRepo struct {
	mu     sync.RWMutex
	nextID int64
	jobs   []domain.Job
	byID   map[int64]int
}

func NewJobRepository() *JobRepo {
	return &JobRepo{nextID: 1, byID: make(map[int64]int)}
}

func (r *JobRepo) Create(ctx context.Context, job *domain.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = r.nextID
	r.nextID++
	job.CreatedAt = time.Now()
	r.byID[job.ID] = len(r.jobs)
	r.jobs = append(r.jobs, *job)
	return nil
}

func (r *JobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	job := r.jobs[idx]
	return &job, nil
}

// Fetch returns jobs in creation order.
func (r *JobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Job, len(r.jobs))
	copy(out, r.jobs)
	return out, nil
}
