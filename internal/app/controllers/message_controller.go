package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/services"
	"github.com/nnrgconnect/backend/internal/middleware"
	"github.com/nnrgconnect/backend/internal/pkg/helpers"
)

// MessageController handles the batch-group message boards
type MessageController struct {
	messageService *services.MessageService
	authService    *services.AuthService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService, authService *services.AuthService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		authService:    authService,
		logger:         logger,
	}
}

// Groups lists the fixed batch groups
// @Summary List batch groups
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.GroupListResponse} "Batch groups"
// @Router /groups [get]
func (c *MessageController) Groups(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.messageService.ListGroups(ctx.Request.Context())))
}

// Messages returns a page of a group's messages
// @Summary List group messages
// @Description Returns messages newest first; clients poll this endpoint, there is no push channel
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param group path string true "Batch group name, e.g. 2019-23"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.MessageListResponse} "Message page"
// @Failure 404 {object} dto.ErrorResponse "Batch group not found"
// @Router /groups/{group}/messages [get]
func (c *MessageController) Messages(ctx *gin.Context) {
	page, pageSize := helpers.GetPaginationParams(ctx)

	listResponse, err := c.messageService.ListMessages(ctx.Request.Context(), ctx.Param("group"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(listResponse))
}

// Post stores a new message in a batch group
// @Summary Post a group message
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param group path string true "Batch group name, e.g. 2019-23"
// @Param request body dto.PostMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=models.Message} "Stored message"
// @Failure 400 {object} dto.ErrorResponse "Blank or oversized content"
// @Failure 404 {object} dto.ErrorResponse "Batch group not found"
// @Router /groups/{group}/messages [post]
func (c *MessageController) Post(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.PostMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// Resolve the sender name so the stored message carries it.
	senderName := ""
	if profile, err := c.authService.GetProfile(ctx.Request.Context(), userID); err == nil {
		senderName = profile.Name
	}

	message, err := c.messageService.PostMessage(ctx.Request.Context(), ctx.Param("group"), userID, senderName, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(message))
}
