package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
)

// fakeMessageRepo is an in-memory IMessageRepository returning messages
// newest first like the real one.
type fakeMessageRepo struct {
	messages []models.Message
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *models.Message) (*models.Message, error) {
	message.ID = r.nextID
	message.SentAt = time.Now()
	r.messages = append(r.messages, *message)
	r.nextID++
	return message, nil
}

func (r *fakeMessageRepo) ListByGroup(ctx context.Context, groupName string, offset, limit int) ([]models.Message, int64, error) {
	var matched []models.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].GroupName == groupName {
			matched = append(matched, r.messages[i])
		}
	}

	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func newTestMessageService() (*MessageService, *fakeMessageRepo) {
	repo := newFakeMessageRepo()
	return NewMessageService(repo, zerolog.Nop()), repo
}

func TestListGroupsReturnsFixedBatchGroups(t *testing.T) {
	svc, _ := newTestMessageService()

	resp := svc.ListGroups(context.Background())
	assert.Equal(t, []string{"2019-23", "2020-24", "2021-25"}, resp.Groups)
}

func TestPostMessageToUnknownGroup(t *testing.T) {
	svc, _ := newTestMessageService()

	_, err := svc.PostMessage(context.Background(), "2030-34", 1, "Alice", &dto.PostMessageRequest{Content: "hello"})
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)

	_, err = svc.ListMessages(context.Background(), "2030-34", 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
}

func TestPostMessageRejectsBlankContent(t *testing.T) {
	svc, _ := newTestMessageService()

	_, err := svc.PostMessage(context.Background(), "2019-23", 1, "Alice", &dto.PostMessageRequest{Content: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestPostAndListMessagesNewestFirst(t *testing.T) {
	svc, _ := newTestMessageService()

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.PostMessage(context.Background(), "2019-23", 1, "Alice", &dto.PostMessageRequest{Content: content})
		require.NoError(t, err)
	}
	_, err := svc.PostMessage(context.Background(), "2020-24", 2, "Bob", &dto.PostMessageRequest{Content: "other group"})
	require.NoError(t, err)

	resp, err := svc.ListMessages(context.Background(), "2019-23", 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "third", resp.Messages[0].Content)
	assert.Equal(t, "first", resp.Messages[2].Content)
	assert.Equal(t, int64(3), resp.Pagination.TotalItems)
}

func TestPostMessageTrimsContent(t *testing.T) {
	svc, _ := newTestMessageService()

	message, err := svc.PostMessage(context.Background(), "2019-23", 1, "Alice", &dto.PostMessageRequest{Content: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "hello", message.Content)
	assert.Equal(t, "Alice", message.SenderName)
}
