package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/services"
	"github.com/nnrgconnect/backend/internal/middleware"
)

// AdminController handles the account approval queue. Routes using it
// sit behind the ADMIN role middleware; the service layer trusts that
// gate and does no authorization of its own.
type AdminController struct {
	approvalService *services.ApprovalService
	logger          zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(approvalService *services.ApprovalService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		approvalService: approvalService,
		logger:          logger,
	}
}

// PendingApprovals lists student accounts awaiting review
// @Summary List pending approvals
// @Description Returns student accounts in PENDING state, oldest first, with password hashes stripped
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PendingApprovalsResponse} "Pending accounts"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/approvals [get]
func (c *AdminController) PendingApprovals(ctx *gin.Context) {
	pending, err := c.approvalService.ListPendingApprovals(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PendingApprovalsResponse{
		Accounts: pending,
	}))
}

// SetApproval resolves a pending account
// @Summary Approve or reject an account
// @Description Sets a student account's approval status to APPROVED or REJECTED
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.SetApprovalRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated account"
// @Failure 400 {object} dto.ErrorResponse "Status is not APPROVED or REJECTED"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /admin/approvals/{id} [put]
func (c *AdminController) SetApproval(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user id")))
		return
	}

	var req dto.SetApprovalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	updated, err := c.approvalService.SetApproval(ctx.Request.Context(), userID, req.Status)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Approval update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated))
}
