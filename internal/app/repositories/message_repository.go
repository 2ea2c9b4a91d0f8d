package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
)

// IMessageRepository defines the interface for batch-group message persistence
type IMessageRepository interface {
	Create(ctx context.Context, message *models.Message) (*models.Message, error)
	ListByGroup(ctx context.Context, groupName string, offset, limit int) ([]models.Message, int64, error)
}

// MessageRepository handles batch-group message database operations
type MessageRepository struct {
	db *pgxpool.Pool
}

var _ IMessageRepository = (*MessageRepository)(nil)

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create stores a message and returns it with the sender name joined in
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) (*models.Message, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO messages (group_name, sender_id, content, sent_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sent_at`,
		message.GroupName, message.SenderID, message.Content, time.Now()).
		Scan(&message.ID, &message.SentAt)

	if err != nil {
		return nil, apperrors.StorageError("create message", message.GroupName, err)
	}

	if message.SenderName == "" {
		var senderName string
		err = r.db.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, message.SenderID).Scan(&senderName)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.StorageError("create message", message.GroupName, err)
		}
		message.SenderName = senderName
	}

	return message, nil
}

// ListByGroup returns a page of a group's messages, newest first, along
// with the total message count for the group.
func (r *MessageRepository) ListByGroup(ctx context.Context, groupName string, offset, limit int) ([]models.Message, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages WHERE group_name = $1`, groupName).Scan(&total)
	if err != nil {
		return nil, 0, apperrors.StorageError("count messages", groupName, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.group_name, m.sender_id, u.name, m.content, m.sent_at
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.group_name = $1
		ORDER BY m.sent_at DESC, m.id DESC
		OFFSET $2 LIMIT $3`, groupName, offset, limit)
	if err != nil {
		return nil, 0, apperrors.StorageError("list messages", groupName, err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID, &message.GroupName, &message.SenderID,
			&message.SenderName, &message.Content, &message.SentAt)
		if err != nil {
			return nil, 0, apperrors.StorageError("scan message", groupName, err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.StorageError("list messages", fmt.Sprintf("group=%s", groupName), err)
	}

	return messages, total, nil
}
