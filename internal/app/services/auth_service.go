package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/repositories"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/pkg/auth"
	"github.com/nnrgconnect/backend/internal/pkg/validation"
	"github.com/nnrgconnect/backend/internal/session"
)

// AuthService handles registration, login and the device session slot.
type AuthService struct {
	userRepo   repositories.IUserRepository
	tokenRepo  repositories.ITokenRepository
	sessions   session.Store
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	sessions session.Store,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		sessions:   sessions,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidEmail(email) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long",
			apperrors.ErrWeakPassword, validation.PasswordMinLength)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrWeakPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrWeakPassword)
	}

	return nil
}

// Register creates a new student account in PENDING state. It never
// establishes a session: the student logs in separately once an admin
// has approved the account. Email and roll number uniqueness are
// enforced by the storage layer, so concurrent registrations cannot
// both succeed.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidationFailed)
	}
	rollNumber := strings.ToUpper(strings.TrimSpace(req.RollNumber))
	if !validation.IsValidRollNumber(rollNumber) {
		return nil, apperrors.ErrInvalidRollNumber
	}

	// Fast-path duplicate check before the bcrypt work; the unique index
	// on LOWER(email) still decides concurrent registrations.
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateAccount
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:          strings.TrimSpace(req.Email),
		Password:       hashedPassword,
		Name:           strings.TrimSpace(req.Name),
		RoleType:       models.RoleStudent,
		RollNumber:     rollNumber,
		IDCardURL:      req.IDCardURL,
		ApprovalStatus: models.ApprovalPending,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Str("rollNumber", user.RollNumber).
		Msg("Student registered, awaiting approval")

	return &dto.RegisterResponse{
		UserID:         userID,
		Email:          user.Email,
		ApprovalStatus: string(models.ApprovalPending),
	}, nil
}

// Login authenticates credentials, enforces the approval gate and binds
// the resulting session to the caller's device slot. Admin accounts are
// not subject to the approval gate.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidPassword
	}

	if user.RoleType != models.RoleAdmin && user.ApprovalStatus != models.ApprovalApproved {
		return nil, apperrors.NewNotApprovedError(string(user.ApprovalStatus))
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	sess := session.Session{
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.Name,
		RoleType:       string(user.RoleType),
		ApprovalStatus: string(user.ApprovalStatus),
		RollNumber:     user.RollNumber,
	}
	if err := s.sessions.Put(ctx, req.DeviceID, sess); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not record last login time")
	}

	return &dto.LoginResponse{
		Token:   *token,
		Session: sessionResponse(sess),
	}, nil
}

// Logout clears the device's session slot. Clearing an empty slot is
// not an error; the refresh token, when supplied, is revoked too.
func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if err := s.sessions.Clear(ctx, req.DeviceID); err != nil {
		return err
	}

	if req.RefreshToken != "" {
		if err := s.tokenRepo.RevokeToken(ctx, req.RefreshToken); err != nil &&
			!errors.Is(err, apperrors.ErrTokenNotFound) {
			s.logger.Warn().Err(err).Msg("Could not revoke refresh token on logout")
		}
	}

	return nil
}

// CurrentSession returns the session bound to the device slot, if any.
func (s *AuthService) CurrentSession(ctx context.Context, deviceID string) (*dto.SessionResponse, error) {
	sess, err := s.sessions.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	resp := sessionResponse(*sess)
	return &resp, nil
}

// RefreshToken rotates a refresh token: the old token is revoked and a
// fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// GetProfile retrieves the account behind a user id with the password
// hash stripped.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// generateTokenResponse creates a token pair and persists the refresh token
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}

func sessionResponse(sess session.Session) dto.SessionResponse {
	return dto.SessionResponse{
		UserID:         sess.UserID,
		Email:          sess.Email,
		Name:           sess.Name,
		RoleType:       sess.RoleType,
		ApprovalStatus: sess.ApprovalStatus,
		RollNumber:     sess.RollNumber,
	}
}
