package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/repositories"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/pkg/helpers"
)

// MessageService handles the fixed batch-group message boards. Messages
// are fetched by polling; there is no push channel.
type MessageService struct {
	messageRepo repositories.IMessageRepository
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo repositories.IMessageRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// ListGroups returns the fixed batch groups.
func (s *MessageService) ListGroups(ctx context.Context) *dto.GroupListResponse {
	return &dto.GroupListResponse{Groups: models.BatchGroups}
}

// ListMessages returns one page of a group's messages, newest first.
func (s *MessageService) ListMessages(ctx context.Context, groupName string, page, pageSize int) (*dto.MessageListResponse, error) {
	if !models.IsBatchGroup(groupName) {
		return nil, apperrors.ErrGroupNotFound
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	messages, total, err := s.messageRepo.ListByGroup(ctx, groupName, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.MessageListResponse{
		GroupName:  groupName,
		Messages:   messages,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// PostMessage stores a new message in a batch group on behalf of the
// sender.
func (s *MessageService) PostMessage(ctx context.Context, groupName string, senderID int64, senderName string, req *dto.PostMessageRequest) (*models.Message, error) {
	if !models.IsBatchGroup(groupName) {
		return nil, apperrors.ErrGroupNotFound
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content cannot be empty", apperrors.ErrValidationFailed)
	}

	message := &models.Message{
		GroupName:  groupName,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
	}

	return s.messageRepo.Create(ctx, message)
}
