package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/services"
	"github.com/nnrgconnect/backend/internal/middleware"
	"github.com/nnrgconnect/backend/internal/pkg/helpers"
	"github.com/nnrgconnect/backend/internal/roster"
)

// DirectoryController serves the normalized student directory
type DirectoryController struct {
	directoryService *services.DirectoryService
	logger           zerolog.Logger
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(directoryService *services.DirectoryService, logger zerolog.Logger) *DirectoryController {
	return &DirectoryController{
		directoryService: directoryService,
		logger:           logger,
	}
}

// List returns a page of the student directory
// @Summary List directory entries
// @Description Returns directory records in ingestion order, filterable by batch, department and free-text query
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param batch query string false "Batch label, e.g. 2019-23"
// @Param department query string false "Department name, e.g. CSE"
// @Param email query string false "Exact email, case-insensitive"
// @Param q query string false "Matches name, roll number or email"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.DirectoryListResponse} "Directory page"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "No record for the given email"
// @Router /directory [get]
func (c *DirectoryController) List(ctx *gin.Context) {
	var filter dto.DirectoryFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	page, pageSize := helpers.GetPaginationParams(ctx)

	if filter.Email != "" {
		record, err := c.directoryService.GetByEmail(ctx.Request.Context(), filter.Email)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(&dto.DirectoryListResponse{
			Students:   []roster.Record{*record},
			Pagination: helpers.NewPaginationInfo(1, 1, pageSize),
		}))
		return
	}

	listResponse, err := c.directoryService.List(ctx.Request.Context(), filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(listResponse))
}

// Get resolves one directory entry
// @Summary Get a directory entry
// @Description Resolves the key against roll numbers first, surrogate ids second
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param key path string true "Roll number or surrogate id"
// @Success 200 {object} dto.APIResponse{data=roster.Record} "Directory record"
// @Failure 404 {object} dto.ErrorResponse "No matching record"
// @Router /directory/{key} [get]
func (c *DirectoryController) Get(ctx *gin.Context) {
	record, err := c.directoryService.Get(ctx.Request.Context(), ctx.Param("key"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(record))
}
