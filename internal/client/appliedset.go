// Package client holds the candidate-side view of the application ledger.
// The view is a best-effort projection: it may be stale, but after any
// state-conflict error it must resynchronize from the ledger instead of
// trusting itself.
package client

import (
	"context"
	"sync"

	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/pkg/apperror"
)

// FetchFunc pulls the authoritative application list for the current
// candidate, typically backed by the list-my-applications endpoint.
type FetchFunc func(ctx context.Context) ([]domain.Application, error)

// AppliedSet tracks which jobs the current candidate is applied to. It is
// optimistically updated on successful apply/cancel round trips and marked
// stale whenever the ledger reports that the client's belief was wrong.
type AppliedSet struct {
	mu    sync.Mutex
	jobs  map[int64]struct{}
	stale bool
	fetch FetchFunc
}

func NewAppliedSet(fetch FetchFunc) *AppliedSet {
	return &AppliedSet{
		jobs:  make(map[int64]struct{}),
		stale: true, // nothing loaded yet
		fetch: fetch,
	}
}

// Contains reports whether the candidate believes they are applied to the
// job, refreshing from the ledger first when the view is stale.
func (s *AppliedSet) Contains(ctx context.Context, jobID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		if err := s.refreshLocked(ctx); err != nil {
			return false, err
		}
	}
	_, ok := s.jobs[jobID]
	return ok, nil
}

// Refresh unconditionally rebuilds the set from the ledger.
func (s *AppliedSet) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *AppliedSet) refreshLocked(ctx context.Context) error {
	apps, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	jobs := make(map[int64]struct{}, len(apps))
	for _, app := range apps {
		if app.State == domain.ApplicationStateApplied {
			jobs[app.JobID] = struct{}{}
		}
	}
	s.jobs = jobs
	s.stale = false
	return nil
}

// MarkApplied records a successful apply round trip.
func (s *AppliedSet) MarkApplied(jobID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[jobID] = struct{}{}
}

// MarkCancelled records a successful cancel round trip.
func (s *AppliedSet) MarkCancelled(jobID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
}

// Observe inspects an error returned by a ledger operation. A duplicate or
// invalid-state response means the local view had drifted from the ledger;
// the set discards itself and refetches on the next read.
func (s *AppliedSet) Observe(err error) {
	if err == nil {
		return
	}
	switch apperror.KindOf(err) {
	case apperror.KindDuplicateApplication, apperror.KindInvalidState:
		s.mu.Lock()
		s.stale = true
		s.mu.Unlock()
	}
}
