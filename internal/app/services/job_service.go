package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/repositories"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/pkg/helpers"
)

// JobService handles the job board.
type JobService struct {
	jobRepo repositories.IJobRepository
	logger  zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(jobRepo repositories.IJobRepository, logger zerolog.Logger) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

func validJobType(value string) bool {
	switch models.JobType(value) {
	case models.JobFullTime, models.JobPartTime, models.JobInternship, models.JobContract:
		return true
	}
	return false
}

// Create posts a new job. Authorization is enforced at the route layer.
func (s *JobService) Create(ctx context.Context, req *dto.CreateJobRequest, postedBy int64) (*models.Job, error) {
	if !validJobType(req.JobType) {
		return nil, fmt.Errorf("%w: unknown job type %q", apperrors.ErrValidationFailed, req.JobType)
	}

	job := &models.Job{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		JobType:      models.JobType(req.JobType),
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		IsFeatured:   req.IsFeatured,
		PostedBy:     postedBy,
	}

	id, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", id).Str("title", job.Title).Msg("Job posted")

	return s.jobRepo.GetByID(ctx, id)
}

// List returns one page of job postings matching the filter.
func (s *JobService) List(ctx context.Context, filter dto.JobFilter, page, pageSize int) (*dto.JobListResponse, error) {
	if filter.JobType != "" && !validJobType(filter.JobType) {
		return nil, fmt.Errorf("%w: unknown job type %q", apperrors.ErrValidationFailed, filter.JobType)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	jobs, total, err := s.jobRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.JobListResponse{
		Jobs:       jobs,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// Get retrieves a single job posting.
func (s *JobService) Get(ctx context.Context, id int64) (*models.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// Update replaces a job posting's content, keeping its poster and
// posting time. Authorization is enforced at the route layer.
func (s *JobService) Update(ctx context.Context, id int64, req *dto.CreateJobRequest) (*models.Job, error) {
	if !validJobType(req.JobType) {
		return nil, fmt.Errorf("%w: unknown job type %q", apperrors.ErrValidationFailed, req.JobType)
	}

	job := &models.Job{
		ID:           id,
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		JobType:      models.JobType(req.JobType),
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		IsFeatured:   req.IsFeatured,
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", id).Str("title", job.Title).Msg("Job updated")

	return s.jobRepo.GetByID(ctx, id)
}

// Delete removes a job posting. Authorization is enforced at the route layer.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	return s.jobRepo.Delete(ctx, id)
}
