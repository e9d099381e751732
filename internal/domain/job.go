package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/harisha-viswa/hiring-system/pkg/blob"
)

// Common repository-level errors. Usecases translate these into the
// client-facing taxonomy.
var ErrNotFound = errors.New("resource not found")

// Job is a posting owned by a recruiter. Immutable once created; no edit or
// delete operation is exposed.
type Job struct {
	ID              int64       `json:"id"`
	RecruiterID     string      `json:"recruiter_id"`
	Role            string      `json:"role"`
	Location        string      `json:"location"`
	Salary          float64     `json:"salary"`
	ExperienceYears int         `json:"experience_years"`
	DescriptionBlob blob.Handle `json:"-"`
	CreatedAt       time.Time   `json:"created_at"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	// Fetch returns all jobs in creation order.
	Fetch(ctx context.Context) ([]Job, error)
}

// CreateJobInput carries the posting fields plus the job-description upload.
type CreateJobInput struct {
	Role            string
	Location        string
	Salary          float64
	ExperienceYears int
	DescriptionName string
	Description     io.Reader
}

type JobUsecase interface {
	CreateJob(ctx context.Context, recruiterID string, in CreateJobInput) (*Job, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	OpenJobDescription(ctx context.Context, id int64) (io.ReadCloser, error)
}
