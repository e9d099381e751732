package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harisha-viswa/hiring-system/internal/domain"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

// Upsert keys on principal_id: the first submission inserts, later ones
// replace every profile field while keeping the candidate id and creation
// time.
func (r *candidateRepo) Upsert(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, principal_id, full_name, email, phone, resume_blob, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (principal_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    resume_blob = EXCLUDED.resume_blob,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	now := time.Now()
	c.UpdatedAt = now
	return r.db.QueryRow(ctx, query,
		c.ID,
		c.PrincipalID,
		c.FullName,
		c.Email,
		c.Phone,
		c.ResumeBlob,
		now,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *candidateRepo) GetByPrincipalID(ctx context.Context, principalID string) (*domain.Candidate, error) {
	return r.getBy(ctx, "principal_id", principalID)
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	return r.getBy(ctx, "id", id)
}

func (r *candidateRepo) getBy(ctx context.Context, column, value string) (*domain.Candidate, error) {
	query := `
		SELECT id, principal_id, full_name, email, phone, resume_blob, created_at, updated_at
		FROM candidates
		WHERE ` + column + ` = $1`

	var c domain.Candidate
	err := r.db.QueryRow(ctx, query, value).Scan(
		&c.ID, &c.PrincipalID, &c.FullName, &c.Email, &c.Phone,
		&c.ResumeBlob, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
