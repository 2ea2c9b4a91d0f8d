package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
)

// fakeJobRepo is an in-memory IJobRepository preserving insertion order.
type fakeJobRepo struct {
	jobs   []models.Job
	nextID int64
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{nextID: 1}
}

func (r *fakeJobRepo) Create(ctx context.Context, job *models.Job) (int64, error) {
	clone := *job
	clone.ID = r.nextID
	clone.PostedAt = time.Now()
	r.jobs = append(r.jobs, clone)
	r.nextID++
	return clone.ID, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	for _, job := range r.jobs {
		if job.ID == id {
			clone := job
			return &clone, nil
		}
	}
	return nil, apperrors.ErrJobNotFound
}

func (r *fakeJobRepo) List(ctx context.Context, filter dto.JobFilter, offset, limit int) ([]models.Job, int64, error) {
	var matched []models.Job
	for _, job := range r.jobs {
		if filter.JobType != "" && string(job.JobType) != filter.JobType {
			continue
		}
		if filter.Featured != nil && job.IsFeatured != *filter.Featured {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(job.Title), strings.ToLower(filter.Query)) {
			continue
		}
		matched = append(matched, job)
	}

	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, job *models.Job) error {
	for i, existing := range r.jobs {
		if existing.ID == job.ID {
			clone := *job
			clone.PostedBy = existing.PostedBy
			clone.PostedAt = existing.PostedAt
			r.jobs[i] = clone
			return nil
		}
	}
	return apperrors.ErrJobNotFound
}

func (r *fakeJobRepo) Delete(ctx context.Context, id int64) error {
	for i, job := range r.jobs {
		if job.ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrJobNotFound
}

func newTestJobService() (*JobService, *fakeJobRepo) {
	repo := newFakeJobRepo()
	return NewJobService(repo, zerolog.Nop()), repo
}

func postJob(t *testing.T, svc *JobService, title, jobType string) *models.Job {
	t.Helper()
	job, err := svc.Create(context.Background(), &dto.CreateJobRequest{
		Title:       title,
		Company:     "NNRG Placements",
		Location:    "Hyderabad",
		JobType:     jobType,
		Description: "Opening for " + title,
	}, 1)
	require.NoError(t, err)
	return job
}

func TestJobCreateAndGet(t *testing.T) {
	svc, _ := newTestJobService()

	job := postJob(t, svc, "Backend Engineer", "FULL_TIME")
	assert.Equal(t, models.JobFullTime, job.JobType)
	assert.Equal(t, int64(1), job.PostedBy)

	found, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", found.Title)
}

func TestJobCreateRejectsUnknownType(t *testing.T) {
	svc, _ := newTestJobService()

	_, err := svc.Create(context.Background(), &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Company:     "NNRG Placements",
		Location:    "Hyderabad",
		JobType:     "GIG",
		Description: "Opening",
	}, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestJobListFiltersByType(t *testing.T) {
	svc, _ := newTestJobService()

	postJob(t, svc, "Backend Engineer", "FULL_TIME")
	postJob(t, svc, "Summer Intern", "INTERNSHIP")

	resp, err := svc.List(context.Background(), dto.JobFilter{JobType: "INTERNSHIP"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "Summer Intern", resp.Jobs[0].Title)
	assert.Equal(t, int64(1), resp.Pagination.TotalItems)
}

func TestJobListRejectsUnknownTypeFilter(t *testing.T) {
	svc, _ := newTestJobService()

	_, err := svc.List(context.Background(), dto.JobFilter{JobType: "GIG"}, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestJobUpdateReplacesFieldsButKeepsPoster(t *testing.T) {
	svc, _ := newTestJobService()

	job := postJob(t, svc, "Backend Engineer", "FULL_TIME")

	updated, err := svc.Update(context.Background(), job.ID, &dto.CreateJobRequest{
		Title:       "Senior Backend Engineer",
		Company:     "NNRG Placements",
		Location:    "Remote",
		JobType:     "CONTRACT",
		Description: "Updated opening",
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", updated.Title)
	assert.Equal(t, models.JobContract, updated.JobType)
	assert.Equal(t, job.PostedBy, updated.PostedBy)
	assert.Equal(t, job.PostedAt, updated.PostedAt)
}

func TestJobUpdateRejectsUnknownType(t *testing.T) {
	svc, _ := newTestJobService()

	job := postJob(t, svc, "Backend Engineer", "FULL_TIME")

	_, err := svc.Update(context.Background(), job.ID, &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Company:     "NNRG Placements",
		Location:    "Hyderabad",
		JobType:     "GIG",
		Description: "Opening",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestJobUpdateUnknownID(t *testing.T) {
	svc, _ := newTestJobService()

	_, err := svc.Update(context.Background(), 42, &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Company:     "NNRG Placements",
		Location:    "Hyderabad",
		JobType:     "FULL_TIME",
		Description: "Opening",
	})
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestJobDelete(t *testing.T) {
	svc, _ := newTestJobService()

	job := postJob(t, svc, "Backend Engineer", "FULL_TIME")
	require.NoError(t, svc.Delete(context.Background(), job.ID))

	_, err := svc.Get(context.Background(), job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), job.ID), apperrors.ErrJobNotFound)
}
