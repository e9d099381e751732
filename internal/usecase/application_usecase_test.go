package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/internal/usecase"
	"github.com/harisha-viswa/hiring-system/pkg/apperror"
	"github.com/harisha-viswa/hiring-system/pkg/blob"
	"github.com/harisha-viswa/hiring-system/pkg/validation"
)

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func pdfBody() *strings.Reader {
	return strings.NewReader("%PDF-1.4 stub resume content")
}

func validApply() domain.ApplyInput {
	return domain.ApplyInput{
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Phone:      "+15550100",
		ResumeName: "ada.pdf",
		Resume:     pdfBody(),
	}
}

func testCandidate() *domain.Candidate {
	return &domain.Candidate{ID: "cand-1", PrincipalID: "prin-1"}
}

func testJob() *domain.Job {
	return &domain.Job{ID: 7, RecruiterID: "rec-1", Role: "Backend Engineer", Salary: 90000}
}

func TestApplyBeforeProfileFails(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candRepo := new(MockCandidateRepo)
	store := new(MockBlobStore)

	candRepo.On("GetByPrincipalID", mock.Anything, "prin-1").Return(nil, domain.ErrNotFound)

	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo, store, nil, newValidator())
	_, err := uc.Apply(context.Background(), "prin-1", 7, validApply())

	assert.Equal(t, apperror.KindProfileMissing, apperror.KindOf(err))
	// No ledger record and no blob may exist after the failure.
	appRepo.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyUnknownJobFails(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candRepo := new(MockCandidateRepo)
	store := new(MockBlobStore)

	candRepo.On("GetByPrincipalID", mock.Anything, "prin-1").Return(testCandidate(), nil)
	jobRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo, store, nil, newValidator())
	_, err := uc.Apply(context.Background(), "prin-1", 99, validApply())

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestApplyRejectsBadSnapshot(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candRepo := new(MockCandidateRepo)
	store := new(MockBlobStore)

	candRepo.On("GetByPrincipalID", mock.Anything, "prin-1").Return(testCandidate(), nil)
	jobRepo.On("GetByID", mock.Anything, int64(7)).Return(testJob(), nil)

	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo, store, nil, newValidator())

	in := validApply()
	in.Email = "not-an-email"
	_, err := uc.Apply(context.Background(), "prin-1", 7, in)

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyRejectsNonPDFResume(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candRepo := new(MockCandidateRepo)
	store := new(MockBlobStore)

	candRepo.On("GetByPrincipalID", mock.Anything, "prin-1").Return(testCandidate(), nil)
	jobRepo.On("GetByID", mock.Anything, int64(7)).Return(testJob(), nil)

	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo, store, nil, newValidator())

	in := validApply()
	in.ResumeName = "ada.exe"
	_, err := uc.Apply(context.Background(), "prin-1", 7, in)

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyDuplicateRollsBackResume(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candRepo := new(MockCandidateRepo)
	store := new(MockBlobStore)

	candRepo.On("GetByPrincipalID", mock.Anything, "prin-1").Return(testCandidate(), nil)
	jobRepo.On("GetByID", mock.Anything, int64(7)).Return(testJob(), nil)
	store.On("Save", mock.Anything, "ada.pdf", mock.Anything).Return(blob.Handle("stored.pdf"), int64(28), nil)
	appRepo.On("Apply", mock.Anything, mock.Anything).Return(domain.ErrDuplicateApplication)
	store.On("Delete", mock.Anything, blob.Handle("stored.pdf")).Return(nil)

	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo, store, nil, newValidator())
	_, err := uc.Apply(context.Background(), "prin-1", 7, validApply())

	assert.Equal(t, apperror.KindDuplicateApplication, apperror.KindOf(err))
	store.AssertCalled(t, "Delete", mock.Anything, blob.Handle("stored.pdf"))
}

func TestApplyStoresScoreWhenScorerSucceeds(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candRepo := new(MockCandidateRepo)
	store := new(MockBlobStore)
	scorer := new(MockScorer)

	candRepo.On("GetByPrincipalID", mock.Anything, "prin-1").Return(testCandidate(), nil)
	jobRepo.On("GetByID", mock.Anything, int64(7)).Return(testJob(), nil)
	store.On("Save", mock.Anything, "ada.pdf", mock.Anything).Return(blob.Handle("stored.pdf"), int64(28), nil)
	scorer.On("Score", mock.Anything, int64(7), "cand-1").Return(0.87, nil)
	appRepo.On("Apply", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)

	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo, store, scorer, newValidator())
	app, err := uc.Apply(context.Background(), "prin-1", 7, validApply())

	require.NoError(t, err)
	require.NotNil(t, app.FinalScore)
	assert.InDelta(t, 0.87, *app.FinalScore, 1e-9)
	assert.Equal(t, "cand-1", app.CandidateID)
	assert.Equal(t, blob.Handle("stored.pdf"), app.ResumeBlob)
}

func TestApplySurvivesScorerFailure(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candRepo := new(MockCandidateRepo)
	store := new(MockBlobStore)
	scorer := new(MockScorer)

	candRepo.On("GetByPrincipalID", mock.Anything, "prin-1").Return(testCandidate(), nil)
	jobRepo.On("GetByID", mock.Anything, int64(7)).Return(testJob(), nil)
	store.On("Save", mock.Anything, "ada.pdf", mock.Anything).Return(blob.Handle("stored.pdf"), int64(28), nil)
	scorer.On("Score", mock.Anything, int64(7), "cand-1").Return(0.0, assert.AnError)
	appRepo.On("Apply", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo, store, scorer, newValidator())
	app, err := uc.Apply(context.Background(), "prin-1", 7, validApply())

	require.NoError(t, err)
	assert.Nil(t, app.FinalScore)
}

func TestCancelErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantKind apperror.Kind
	}{
		{"absent record", domain.ErrNotFound, apperror.KindNotFound},
		{"already cancelled", domain.ErrInvalidState, apperror.KindInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appRepo := new(MockApplicationRepo)
			candRepo := new(MockCandidateRepo)

			candRepo.On("GetByPrincipalID", mock.Anything, "prin-1").Return(testCandidate(), nil)
			appRepo.On("Cancel", mock.Anything, "cand-1", int64(7)).Return(tt.repoErr)

			uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), candRepo, new(MockBlobStore), nil, newValidator())
			err := uc.Cancel(context.Background(), "prin-1", 7)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
		})
	}
}

func TestListApplicantsRequiresOwnership(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)

	jobRepo.On("GetByID", mock.Anything, int64(7)).Return(testJob(), nil)

	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, new(MockCandidateRepo), new(MockBlobStore), nil, newValidator())
	_, err := uc.ListApplicantsForJob(context.Background(), "someone-else", 7)

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	appRepo.AssertNotCalled(t, "FetchByJob", mock.Anything, mock.Anything)
}

func TestRecordDecision(t *testing.T) {
	t.Run("rejects unknown decision value", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo), new(MockBlobStore), nil, newValidator())
		err := uc.RecordDecision(context.Background(), "rec-1", 7, "cand-1", "maybe")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("forbidden for non-owner even when application exists", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", mock.Anything, int64(7)).Return(testJob(), nil)

		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, new(MockCandidateRepo), new(MockBlobStore), nil, newValidator())
		err := uc.RecordDecision(context.Background(), "intruder", 7, "cand-1", domain.DecisionSelected)

		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		appRepo.AssertNotCalled(t, "SetDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner records decision", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", mock.Anything, int64(7)).Return(testJob(), nil)
		appRepo.On("SetDecision", mock.Anything, "cand-1", int64(7), domain.DecisionNotSelected).Return(nil)

		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, new(MockCandidateRepo), new(MockBlobStore), nil, newValidator())
		err := uc.RecordDecision(context.Background(), "rec-1", 7, "cand-1", domain.DecisionNotSelected)

		assert.NoError(t, err)
		appRepo.AssertExpectations(t)
	})

	t.Run("missing application maps to not found", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", mock.Anything, int64(7)).Return(testJob(), nil)
		appRepo.On("SetDecision", mock.Anything, "ghost", int64(7), domain.DecisionSelected).Return(domain.ErrNotFound)

		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, new(MockCandidateRepo), new(MockBlobStore), nil, newValidator())
		err := uc.RecordDecision(context.Background(), "rec-1", 7, "ghost", domain.DecisionSelected)

		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}
