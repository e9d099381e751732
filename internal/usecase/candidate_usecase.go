package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/pkg/apperror"
	"github.com/harisha-viswa/hiring-system/pkg/blob"
)

type candidateUsecase struct {
	repo      domain.CandidateRepository
	blobStore blob.Store
	validate  *validator.Validate
}

func NewCandidateUsecase(repo domain.CandidateRepository, blobStore blob.Store, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:      repo,
		blobStore: blobStore,
		validate:  validate,
	}
}

type profileSubmission struct {
	FullName string `validate:"required,valid_name"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,valid_phone"`
}

// UpsertProfile creates the candidate on first submission and replaces every
// field afterwards. The resume is stored before the record is written; a
// failed upload aborts the whole submission.
func (u *candidateUsecase) UpsertProfile(ctx context.Context, principalID string, in domain.UpsertProfileInput) (*domain.Candidate, error) {
	if err := u.validate.Struct(profileSubmission{
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

	var previousResume blob.Handle
	if existing, err := u.repo.GetByPrincipalID(ctx, principalID); err == nil {
		previousResume = existing.ResumeBlob
	}

	candidate := &domain.Candidate{
		ID:          uuid.NewString(),
		PrincipalID: principalID,
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		ResumeBlob:  handle,
	}
	if err := u.repo.Upsert(ctx, candidate); err != nil {
		_ = u.blobStore.Delete(ctx, handle)
		return nil, apperror.Internal(err)
	}

	// The replaced resume is unreferenced by the profile now; applications
	// keep their own handles, so only the profile copy is dropped.
	if !previousResume.IsZero() && previousResume != handle {
		_ = u.blobStore.Delete(ctx, previousResume)
	}
	return candidate, nil
}

// ResolveCandidate maps the authenticated principal to their candidate
// record. A missing profile is its own error kind so clients can prompt for
// profile completion instead of showing a plain not-found.
func (u *candidateUsecase) ResolveCandidate(ctx context.Context, principalID string) (*domain.Candidate, error) {
	candidate, err := u.repo.GetByPrincipalID(ctx, principalID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.ProfileMissing("Submit your profile before continuing")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return candidate, nil
}

func (u *candidateUsecase) OpenResume(ctx context.Context, principalID string) (io.ReadCloser, error) {
	candidate, err := u.ResolveCandidate(ctx, principalID)
	if err != nil {
		return nil, err
	}
	rc, err := u.blobStore.Open(ctx, candidate.ResumeBlob)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, apperror.NotFound("Resume file not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return rc, nil
}
