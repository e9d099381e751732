package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/harisha-viswa/hiring-system/internal/domain"
	"github.com/harisha-viswa/hiring-system/pkg/apperror"
	"github.com/harisha-viswa/hiring-system/pkg/blob"
)

type jobUsecase struct {
	jobRepo   domain.JobRepository
	blobStore blob.Store
}

func NewJobUsecase(jobRepo domain.JobRepository, blobStore blob.Store) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:   jobRepo,
		blobStore: blobStore,
	}
}

// CreateJob stores the job-description PDF first and only then writes the
// posting, so no job ever references a blob that was never stored. If the
// write fails the blob is removed again.
func (u *jobUsecase) CreateJob(ctx context.Context, recruiterID string, in domain.CreateJobInput) (*domain.Job, error) {
	if strings.TrimSpace(in.Role) == "" {
		return nil, apperror.Validation("Role is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, apperror.Validation("Location is required")
	}
	if in.Salary <= 0 {
		return nil, apperror.Validation("Salary must be greater than zero")
	}
	if in.ExperienceYears < 0 {
		return nil, apperror.Validation("Experience years cannot be negative")
	}

	body, err := pdfUpload(in.DescriptionName, in.Description)
	if err != nil {
		return nil, err
	}
	handle, _, err := u.blobStore.Save(ctx, in.DescriptionName, body)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	job := &domain.Job{
		RecruiterID:     recruiterID,
		Role:            in.Role,
		Location:        in.Location,
		Salary:          in.Salary,
		ExperienceYears: in.ExperienceYears,
		DescriptionBlob: handle,
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		_ = u.blobStore.Delete(ctx, handle)
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := u.jobRepo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) OpenJobDescription(ctx context.Context, id int64) (io.ReadCloser, error) {
	job, err := u.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	rc, err := u.blobStore.Open(ctx, job.DescriptionBlob)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, apperror.NotFound("Job description file not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return rc, nil
}
