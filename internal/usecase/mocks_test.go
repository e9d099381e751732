package usecase_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/pkg/blob"
)

// Mock Repositories

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Apply(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) Cancel(ctx context.Context, candidateID string, jobID int64) error {
	return m.Called(ctx, candidateID, jobID).Error(0)
}

func (m *MockApplicationRepo) SetDecision(ctx context.Context, candidateID string, jobID int64, decision string) error {
	return m.Called(ctx, candidateID, jobID, decision).Error(0)
}

func (m *MockApplicationRepo) FetchByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) FetchByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Upsert(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) GetByPrincipalID(ctx context.Context, principalID string) (*domain.Candidate, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Save(ctx context.Context, fileName string, r io.Reader) (blob.Handle, int64, error) {
	args := m.Called(ctx, fileName, r)
	return args.Get(0).(blob.Handle), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlobStore) Open(ctx context.Context, h blob.Handle) (io.ReadCloser, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, h blob.Handle) error {
	return m.Called(ctx, h).Error(0)
}

type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, jobID int64, candidateID string) (float64, error) {
	args := m.Called(ctx, jobID, candidateID)
	return args.Get(0).(float64), args.Error(1)
}
