package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/pkg/apperror"
	"github.com/harisha-viswa/hiring-system/pkg/blob"
	"github.com/harisha-viswa/hiring-system/pkg/logger"
)

type applicationUsecase struct {
	appRepo       domain.ApplicationRepository
	jobRepo       domain.JobRepository
	candidateRepo domain.CandidateRepository
	blobStore     blob.Store
	scorer        domain.Scorer
	validate      *validator.Validate
}

// NewApplicationUsecase wires the ledger. scorer may be nil, in which case
// applications simply carry no score.
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	blobStore blob.Store,
	scorer domain.Scorer,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		blobStore:     blobStore,
		scorer:        scorer,
		validate:      validate,
	}
}

type contactSnapshot struct {
	FullName string `validate:"required,valid_name"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,valid_phone"`
}

// Apply runs the whole precondition chain before the ledger is touched:
// resolved profile, existing job, valid snapshot, stored resume. The ledger
// write is the commit point; when it refuses, the just-stored resume is
// rolled back so the operation leaves no trace.
func (u *applicationUsecase) Apply(ctx context.Context, principalID string, jobID int64, in domain.ApplyInput) (*domain.Application, error) {
	candidate, err := u.resolveCandidate(ctx, principalID)
	if err != nil {
		return nil, err
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.validate.Struct(contactSnapshot{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
	}); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	body, err := pdfUpload(in.ResumeName, in.Resume)
	if err != nil {
		return nil, err
	}
	handle, _, err := u.blobStore.Save(ctx, in.ResumeName, body)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	app := &domain.Application{
		CandidateID: candidate.ID,
		JobID:       job.ID,
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		ResumeBlob:  handle,
		FinalScore:  u.scoreApplication(ctx, job.ID, candidate.ID),
	}

	if err := u.appRepo.Apply(ctx, app); err != nil {
		_ = u.blobStore.Delete(ctx, handle)
		if errors.Is(err, domain.ErrDuplicateApplication) {
			return nil, apperror.Duplicate("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (u *applicationUsecase) Cancel(ctx context.Context, principalID string, jobID int64) error {
	candidate, err := u.resolveCandidate(ctx, principalID)
	if err != nil {
		return err
	}

	err = u.appRepo.Cancel(ctx, candidate.ID, jobID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("No application exists for this job")
	case errors.Is(err, domain.ErrInvalidState):
		return apperror.InvalidState("Application is already cancelled")
	case err != nil:
		return apperror.Internal(err)
	}
	return nil
}

func (u *applicationUsecase) ListMyApplications(ctx context.Context, principalID string) ([]domain.Application, error) {
	candidate, err := u.resolveCandidate(ctx, principalID)
	if err != nil {
		return nil, err
	}
	apps, err := u.appRepo.FetchByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *applicationUsecase) ListApplicantsForJob(ctx context.Context, recruiterID string, jobID int64) ([]domain.Application, error) {
	if err := u.requireJobOwner(ctx, recruiterID, jobID); err != nil {
		return nil, err
	}
	apps, err := u.appRepo.FetchByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// RecordDecision overwrites the recruiter decision; it never changes the
// applied/cancelled state, and the last decision wins.
func (u *applicationUsecase) RecordDecision(ctx context.Context, recruiterID string, jobID int64, candidateID, decision string) error {
	if decision != domain.DecisionSelected && decision != domain.DecisionNotSelected {
		return apperror.Validation("Decision must be selected or not_selected")
	}
	if err := u.requireJobOwner(ctx, recruiterID, jobID); err != nil {
		return err
	}

	err := u.appRepo.SetDecision(ctx, candidateID, jobID, decision)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Application not found")
	}
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *applicationUsecase) resolveCandidate(ctx context.Context, principalID string) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByPrincipalID(ctx, principalID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.ProfileMissing("Submit your profile before applying")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return candidate, nil
}

func (u *applicationUsecase) requireJobOwner(ctx context.Context, recruiterID string, jobID int64) error {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Job not found")
	}
	if err != nil {
		return apperror.Internal(err)
	}
	if job.RecruiterID != recruiterID {
		return apperror.Forbidden("You do not own this job posting")
	}
	return nil
}

// scoreApplication asks the external scorer for a match score. The score is
// advisory: a scoring failure leaves it null rather than failing the apply.
func (u *applicationUsecase) scoreApplication(ctx context.Context, jobID int64, candidateID string) *float64 {
	if u.scorer == nil {
		return nil
	}
	score, err := u.scorer.Score(ctx, jobID, candidateID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Warn("resume scoring failed", "job_id", jobID, "candidate_id", candidateID, "error", err)
		}
		return nil
	}
	return &score
}
