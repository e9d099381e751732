package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/harisha-viswa/hiring-system/pkg/blob"
)

// Application states. Cancellation is a transition, not a delete, so
// re-apply stays an update of the same (candidate, job) record.
const (
	ApplicationStateApplied   = "applied"
	ApplicationStateCancelled = "cancelled"
)

// Recruiter decisions.
const (
	DecisionSelected    = "selected"
	DecisionNotSelected = "not_selected"
)

// Ledger errors surfaced by ApplicationRepository implementations.
var (
	ErrDuplicateApplication = errors.New("application already live for this candidate and job")
	ErrInvalidState         = errors.New("application is not in the required state")
)

// Application is the ledger record for one (candidate, job) pair — the pair
// is the identity, so a candidate holds at most one record per job. The
// contact fields are a snapshot captured at apply time and do not follow
// later profile edits.
type Application struct {
	CandidateID string      `json:"candidate_id"`
	JobID       int64       `json:"job_id"`
	State       string      `json:"state"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	ResumeBlob  blob.Handle `json:"-"`
	FinalScore  *float64    `json:"final_score,omitempty"`
	Decision    *string     `json:"decision,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Joined for list responses
	JobRole *string `json:"job_role,omitempty"`
}

// ApplicationRepository is the authoritative ledger. Implementations must
// serialize mutations per (candidate, job) key: of N concurrent Apply calls
// for the same pair exactly one succeeds.
type ApplicationRepository interface {
	// Apply creates the record in state applied, or revives a cancelled
	// record overwriting its snapshot, score and resume. Returns
	// ErrDuplicateApplication when the record is already live.
	Apply(ctx context.Context, app *Application) error
	// Cancel transitions applied → cancelled. Returns ErrNotFound when no
	// record exists and ErrInvalidState when it is already cancelled.
	Cancel(ctx context.Context, candidateID string, jobID int64) error
	// SetDecision overwrites the decision in any state. Last decision wins.
	SetDecision(ctx context.Context, candidateID string, jobID int64, decision string) error
	FetchByCandidate(ctx context.Context, candidateID string) ([]Application, error)
	FetchByJob(ctx context.Context, jobID int64) ([]Application, error)
}

// Scorer is the external resume-scoring collaborator. The ledger stores
// whatever score it yields without knowing how it is computed.
type Scorer interface {
	Score(ctx context.Context, jobID int64, candidateID string) (float64, error)
}

// ApplyInput carries the per-application contact snapshot and resume upload.
type ApplyInput struct {
	FullName   string
	Email      string
	Phone      string
	ResumeName string
	Resume     io.Reader
}

type ApplicationUsecase interface {
	// Candidate operations; the principal is resolved to a candidate id
	// server-side, never taken from the request.
	Apply(ctx context.Context, principalID string, jobID int64, in ApplyInput) (*Application, error)
	Cancel(ctx context.Context, principalID string, jobID int64) error
	ListMyApplications(ctx context.Context, principalID string) ([]Application, error)

	// Recruiter operations, restricted to the job's owner.
	ListApplicantsForJob(ctx context.Context, recruiterID string, jobID int64) ([]Application, error)
	RecordDecision(ctx context.Context, recruiterID string, jobID int64, candidateID, decision string) error
}
