package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harisha-viswa/hiring-system/internal/domain"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Apply is a compare-and-set on the (candidate_id, job_id) primary key: the
// INSERT creates a fresh record, the conflict branch revives a cancelled one
// with the new snapshot. A live record makes both branches produce no row,
// which surfaces as ErrDuplicateApplication. Concurrent applies for the same
// pair are serialized by the unique constraint, so exactly one wins.
func (r *applicationRepo) Apply(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (candidate_id, job_id, state, full_name, email, phone, resume_blob, final_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (candidate_id, job_id) DO UPDATE
		SET state = EXCLUDED.state,
		    full_name = EXCLUDED.full_name,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    resume_blob = EXCLUDED.resume_blob,
		    final_score = EXCLUDED.final_score,
		    updated_at = EXCLUDED.updated_at
		WHERE applications.state = $10
		RETURNING created_at`

	now := time.Now()
	app.State = domain.ApplicationStateApplied
	app.UpdatedAt = now

	err := r.db.QueryRow(ctx, query,
		app.CandidateID,
		app.JobID,
		app.State,
		app.FullName,
		app.Email,
		app.Phone,
		app.ResumeBlob,
		app.FinalScore,
		now,
		domain.ApplicationStateCancelled,
	).Scan(&app.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDuplicateApplication
	}
	return err
}

func (r *applicationRepo) Cancel(ctx context.Context, candidateID string, jobID int64) error {
	query := `
		UPDATE applications
		SET state = $3, updated_at = $4
		WHERE candidate_id = $1 AND job_id = $2 AND state = $5`

	tag, err := r.db.Exec(ctx, query,
		candidateID, jobID,
		domain.ApplicationStateCancelled, time.Now(),
		domain.ApplicationStateApplied,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Nothing matched: distinguish a missing record from one already
	// cancelled so the client knows how its view drifted.
	var exists bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND job_id = $2)`,
		candidateID, jobID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidState
}

func (r *applicationRepo) SetDecision(ctx context.Context, candidateID string, jobID int64, decision string) error {
	query := `
		UPDATE applications
		SET decision = $3, updated_at = $4
		WHERE candidate_id = $1 AND job_id = $2`

	tag, err := r.db.Exec(ctx, query, candidateID, jobID, decision, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) FetchByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	query := `
		SELECT a.candidate_id, a.job_id, a.state, a.full_name, a.email, a.phone,
		       a.resume_blob, a.final_score, a.decision, a.created_at, a.updated_at,
		       j.role AS job_role
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.candidate_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepo) FetchByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT a.candidate_id, a.job_id, a.state, a.full_name, a.email, a.phone,
		       a.resume_blob, a.final_score, a.decision, a.created_at, a.updated_at,
		       j.role AS job_role
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	var apps []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.CandidateID, &app.JobID, &app.State, &app.FullName, &app.Email, &app.Phone,
			&app.ResumeBlob, &app.FinalScore, &app.Decision, &app.CreatedAt, &app.UpdatedAt,
			&app.JobRole,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
