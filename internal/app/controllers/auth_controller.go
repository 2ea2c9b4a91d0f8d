// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/services"
	"github.com/nnrgconnect/backend/internal/middleware"
	"github.com/nnrgconnect/backend/internal/pkg/filestorage"
)

// maxIDCardSize limits ID card uploads to 5 MB.
const maxIDCardSize = 5 << 20

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	storage     filestorage.Storage
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, storage filestorage.Storage, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		storage:     storage,
		logger:      logger,
	}
}

// Register handles student registration
// @Summary Register a new student account
// @Description Creates a student account in PENDING state. No session is established; the student logs in after an admin approves the account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterResponse} "Account created, awaiting approval"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or weak password"
// @Failure 409 {object} dto.ErrorResponse "Email or roll number already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	registerResponse, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("email", req.Email).
		Int64("userID", registerResponse.UserID).
		Msg("Student registered, pending approval")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(registerResponse))
}

// UploadIDCard stores a student ID card image ahead of registration
// @Summary Upload an ID card image
// @Description Stores the image and returns the URL to put in the registration request's idCardUrl field
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param idCard formData file true "ID card image (jpg, jpeg, png or webp, max 5 MB)"
// @Success 201 {object} dto.APIResponse{data=dto.IDCardUploadResponse} "Image stored"
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or non-image file"
// @Router /auth/id-card [post]
func (c *AuthController) UploadIDCard(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("idCard")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "An idCard file is required")))
		return
	}

	if fileHeader.Size > maxIDCardSize {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "ID card image exceeds the 5 MB limit")))
		return
	}

	idCardURL, err := c.storage.SaveFile(fileHeader)
	if err != nil {
		c.logger.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("ID card upload failed")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Could not store the uploaded file").WithDetails(err.Error())))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.IDCardUploadResponse{IDCardURL: idCardURL}))
}

// Login handles user login
// @Summary User login
// @Description Authenticates credentials, enforces the approval gate and binds a session to the device slot
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account pending approval or rejected"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	loginResponse, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(loginResponse))
}

// Logout handles user logout
// @Summary User logout
// @Description Clears the device's session slot and revokes the refresh token when supplied. Logging out an empty slot succeeds.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest true "Device to log out"
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Logged out"}))
}

// Session returns the session bound to a device slot
// @Summary Current device session
// @Description Returns the session currently occupying the device slot, if any
// @Tags auth
// @Produce json
// @Param deviceId path string true "Device identifier"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Active session"
// @Failure 404 {object} dto.ErrorResponse "No active session"
// @Router /auth/session/{deviceId} [get]
func (c *AuthController) Session(ctx *gin.Context) {
	deviceID := ctx.Param("deviceId")

	sessionResponse, err := c.authService.CurrentSession(ctx.Request.Context(), deviceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sessionResponse))
}

// RefreshToken rotates a refresh token
// @Summary Refresh access token
// @Description Revokes the presented refresh token and issues a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "New token pair"
// @Failure 401 {object} dto.ErrorResponse "Token expired, revoked or unknown"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	tokenResponse, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Token refresh failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tokenResponse))
}

// Profile returns the authenticated user's account
// @Summary Own profile
// @Description Returns the authenticated account with the password hash stripped
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Account information"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	profile, err := c.authService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}
