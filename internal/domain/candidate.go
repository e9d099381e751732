package domain

import (
	"context"
	"io"
	"time"

	"github.com/harisha-viswa/hiring-system/pkg/blob"
)

// Candidate is the profile record behind an authenticated principal. At most
// one exists per principal; resubmitting the profile replaces every field in
// place. The resume handle is never empty once the profile has been
// submitted.
type Candidate struct {
	ID          string      `json:"id"`
	PrincipalID string      `json:"-"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	ResumeBlob  blob.Handle `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type CandidateRepository interface {
	// Upsert creates the record on first submission and replaces all fields
	// afterwards, keyed by PrincipalID. The candidate ID and creation time
	// survive replacement.
	Upsert(ctx context.Context, c *Candidate) error
	GetByPrincipalID(ctx context.Context, principalID string) (*Candidate, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
}

// UpsertProfileInput carries the profile fields plus the resume upload.
type UpsertProfileInput struct {
	FullName   string
	Email      string
	Phone      string
	ResumeName string
	Resume     io.Reader
}

type CandidateUsecase interface {
	UpsertProfile(ctx context.Context, principalID string, in UpsertProfileInput) (*Candidate, error)
	// ResolveCandidate maps a principal to their candidate record, failing
	// with a profile-missing error when no profile was ever submitted.
	ResolveCandidate(ctx context.Context, principalID string) (*Candidate, error)
	OpenResume(ctx context.Context, principalID string) (io.ReadCloser, error)
}
