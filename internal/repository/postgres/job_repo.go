package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harisha-viswa/hiring-system/internal/domain"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (recruiter_id, role, location, salary, experience_years, description_blob, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	job.CreatedAt = time.Now()
	return r.db.QueryRow(ctx, query,
		job.RecruiterID,
		job.Role,
		job.Location,
		job.Salary,
		job.ExperienceYears,
		job.DescriptionBlob,
		job.CreatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT id, recruiter_id, role, location, salary, experience_years, description_blob, created_at
		FROM jobs
		WHERE id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.RecruiterID, &job.Role, &job.Location,
		&job.Salary, &job.ExperienceYears, &job.DescriptionBlob, &job.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Fetch returns every job in creation order (the id is serial).
func (r *jobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	query := `
		SELECT id, recruiter_id, role, location, salary, experience_years, description_blob, created_at
		FROM jobs
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.RecruiterID, &job.Role, &job.Location,
			&job.Salary, &job.ExperienceYears, &job.DescriptionBlob, &job.CreatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
