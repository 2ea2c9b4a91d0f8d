package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/services"
	"github.com/nnrgconnect/backend/internal/middleware"
	"github.com/nnrgconnect/backend/internal/pkg/helpers"
)

// JobController handles job board operations
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger,
	}
}

// List returns a page of job postings
// @Summary List job postings
// @Description Returns job postings, featured first then newest first
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param type query string false "Job type" Enums(FULL_TIME, PART_TIME, INTERNSHIP, CONTRACT)
// @Param featured query bool false "Only featured postings"
// @Param q query string false "Matches title, company or location"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.JobListResponse} "Job page"
// @Router /jobs [get]
func (c *JobController) List(ctx *gin.Context) {
	var filter dto.JobFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	page, pageSize := helpers.GetPaginationParams(ctx)

	listResponse, err := c.jobService.List(ctx.Request.Context(), filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(listResponse))
}

// Get returns one job posting
// @Summary Get a job posting
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=models.Job} "Job posting"
// @Failure 404 {object} dto.ErrorResponse "Job posting not found"
// @Router /jobs/{id} [get]
func (c *JobController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid job id")))
		return
	}

	job, err := c.jobService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(job))
}

// Create posts a new job (admin only)
// @Summary Create a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job posting"
// @Success 201 {object} dto.APIResponse{data=models.Job} "Created posting"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or job type"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /jobs [post]
func (c *JobController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	job, err := c.jobService.Create(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(job))
}

// Update replaces a job posting (admin only)
// @Summary Update a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.CreateJobRequest true "Job posting"
// @Success 200 {object} dto.APIResponse{data=models.Job} "Updated posting"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or job type"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Job posting not found"
// @Router /jobs/{id} [put]
func (c *JobController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid job id")))
		return
	}

	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	job, err := c.jobService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(job))
}

// Delete removes a job posting (admin only)
// @Summary Delete a job posting
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Job posting not found"
// @Router /jobs/{id} [delete]
func (c *JobController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid job id")))
		return
	}

	if err := c.jobService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Job posting deleted"}))
}
