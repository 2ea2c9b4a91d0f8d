package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
)

// IJobRepository defines the interface for job board persistence
type IJobRepository interface {
	Create(ctx context.Context, job *models.Job) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	List(ctx context.Context, filter dto.JobFilter, offset, limit int) ([]models.Job, int64, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id int64) error
}

// JobRepository handles job board database operations
type JobRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

var _ IJobRepository = (*JobRepository)(nil)

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const jobColumns = `id, title, company, location, job_type, salary, description, requirements, is_featured, posted_by, posted_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	job := &models.Job{}
	err := row.Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &job.JobType,
		&job.Salary, &job.Description, &job.Requirements, &job.IsFeatured,
		&job.PostedBy, &job.PostedAt)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Create inserts a new job posting and returns its id
func (r *JobRepository) Create(ctx context.Context, job *models.Job) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO jobs (title, company, location, job_type, salary, description, requirements, is_featured, posted_by, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		job.Title, job.Company, job.Location, job.JobType, job.Salary,
		job.Description, job.Requirements, job.IsFeatured, job.PostedBy, time.Now()).Scan(&id)

	if err != nil {
		return 0, apperrors.StorageError("create job", job.Title, err)
	}

	return id, nil
}

// GetByID retrieves a job posting by id
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.StorageError("get job", fmt.Sprintf("id=%d", id), err)
	}

	return job, nil
}

func (r *JobRepository) listConditions(filter dto.JobFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer
	if filter.JobType != "" {
		conds = append(conds, squirrel.Eq{"job_type": filter.JobType})
	}
	if filter.Featured != nil {
		conds = append(conds, squirrel.Eq{"is_featured": *filter.Featured})
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"company": pattern},
			squirrel.ILike{"location": pattern},
		})
	}
	return conds
}

// List returns a page of job postings, featured first then newest first,
// along with the total count matching the filter.
func (r *JobRepository) List(ctx context.Context, filter dto.JobFilter, offset, limit int) ([]models.Job, int64, error) {
	conds := r.listConditions(filter)

	countQuery := r.sb.Select("COUNT(*)").From("jobs")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count jobs query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.StorageError("count jobs", filter.Query, err)
	}

	listQuery := r.sb.Select(jobColumns).
		From("jobs").
		OrderBy("is_featured DESC", "posted_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit))
	for _, cond := range conds {
		listQuery = listQuery.Where(cond)
	}
	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, apperrors.StorageError("list jobs", filter.Query, err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, apperrors.StorageError("scan job", filter.Query, err)
		}
		jobs = append(jobs, *job)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.StorageError("list jobs", filter.Query, err)
	}

	return jobs, total, nil
}

// Update replaces a job posting's content. Poster and posting time are
// not touched.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE jobs
		SET title = $1, company = $2, location = $3, job_type = $4, salary = $5,
		    description = $6, requirements = $7, is_featured = $8
		WHERE id = $9`,
		job.Title, job.Company, job.Location, job.JobType, job.Salary,
		job.Description, job.Requirements, job.IsFeatured, job.ID)
	if err != nil {
		return apperrors.StorageError("update job", fmt.Sprintf("id=%d", job.ID), err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}

	return nil
}

// Delete removes a job posting
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return apperrors.StorageError("delete job", fmt.Sprintf("id=%d", id), err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}

	return nil
}
