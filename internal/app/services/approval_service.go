package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/repositories"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
)

// ApprovalService handles the admin review queue for student accounts.
type ApprovalService struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(userRepo repositories.IUserRepository, logger zerolog.Logger) *ApprovalService {
	return &ApprovalService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListPendingApprovals returns student accounts awaiting review, in
// stable storage order, with password hashes stripped.
func (s *ApprovalService) ListPendingApprovals(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.ListByRoleAndStatus(ctx, models.RoleStudent, models.ApprovalPending)
	if err != nil {
		return nil, err
	}

	pending := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		pending = append(pending, dto.NewUserResponse(user))
	}

	return pending, nil
}

// SetApproval resolves a pending account to APPROVED or REJECTED.
// Approval does not create a session; the student logs in afterwards.
// Rejection does not invalidate sessions the account may already hold.
func (s *ApprovalService) SetApproval(ctx context.Context, userID int64, status string) (*dto.UserResponse, error) {
	approval := models.ApprovalStatus(status)
	if approval != models.ApprovalApproved && approval != models.ApprovalRejected {
		return nil, apperrors.ErrInvalidApproval
	}

	user, err := s.userRepo.UpdateApprovalStatus(ctx, userID, approval)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Str("status", status).
		Msg("Approval status updated")

	resp := dto.NewUserResponse(user)
	return &resp, nil
}
