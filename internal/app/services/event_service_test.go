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

// fakeEventRepo is an in-memory IEventRepository.
type fakeEventRepo struct {
	events        []models.Event
	registrations map[int64]map[int64]bool
	nextID        int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{registrations: map[int64]map[int64]bool{}, nextID: 1}
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.Event) (int64, error) {
	clone := *event
	clone.ID = r.nextID
	clone.CreatedAt = time.Now()
	r.events = append(r.events, clone)
	r.nextID++
	return clone.ID, nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	for _, event := range r.events {
		if event.ID == id {
			clone := event
			return &clone, nil
		}
	}
	return nil, apperrors.ErrEventNotFound
}

func (r *fakeEventRepo) List(ctx context.Context, filter dto.EventFilter, offset, limit int) ([]models.Event, int64, error) {
	var matched []models.Event
	for _, event := range r.events {
		if filter.Category != "" && string(event.Category) != filter.Category {
			continue
		}
		if filter.Featured != nil && event.IsFeatured != *filter.Featured {
			continue
		}
		matched = append(matched, event)
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

func (r *fakeEventRepo) Update(ctx context.Context, event *models.Event) error {
	for i, existing := range r.events {
		if existing.ID == event.ID {
			clone := *event
			clone.CreatedBy = existing.CreatedBy
			clone.CreatedAt = existing.CreatedAt
			clone.AttendeeCount = existing.AttendeeCount
			r.events[i] = clone
			return nil
		}
	}
	return apperrors.ErrEventNotFound
}

func (r *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	for i, event := range r.events {
		if event.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			delete(r.registrations, id)
			return nil
		}
	}
	return apperrors.ErrEventNotFound
}

func (r *fakeEventRepo) Register(ctx context.Context, eventID, userID int64) error {
	found := false
	for i := range r.events {
		if r.events[i].ID == eventID {
			found = true
			if r.registrations[eventID][userID] {
				return apperrors.ErrAlreadyRegistered
			}
			if r.registrations[eventID] == nil {
				r.registrations[eventID] = map[int64]bool{}
			}
			r.registrations[eventID][userID] = true
			r.events[i].AttendeeCount++
		}
	}
	if !found {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *fakeEventRepo) Unregister(ctx context.Context, eventID, userID int64) error {
	if !r.registrations[eventID][userID] {
		return apperrors.ErrResourceNotFound
	}
	delete(r.registrations[eventID], userID)
	for i := range r.events {
		if r.events[i].ID == eventID {
			r.events[i].AttendeeCount--
		}
	}
	return nil
}

func (r *fakeEventRepo) RegisteredEventIDs(ctx context.Context, userID int64, eventIDs []int64) (map[int64]bool, error) {
	registered := map[int64]bool{}
	for _, eventID := range eventIDs {
		if r.registrations[eventID][userID] {
			registered[eventID] = true
		}
	}
	return registered, nil
}

func newTestEventService() (*EventService, *fakeEventRepo) {
	repo := newFakeEventRepo()
	return NewEventService(repo, zerolog.Nop()), repo
}

func createEvent(t *testing.T, svc *EventService, title, category string) *models.Event {
	t.Helper()
	starts := time.Now().Add(24 * time.Hour)
	event, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title:     title,
		StartsAt:  starts,
		EndsAt:    starts.Add(2 * time.Hour),
		Location:  "NNRG Campus",
		Organizer: "Student Council",
		Category:  category,
	}, 1)
	require.NoError(t, err)
	return event
}

func TestEventCreateValidatesCategoryAndTimes(t *testing.T) {
	svc, _ := newTestEventService()

	_, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title:     "Tech Talk",
		StartsAt:  time.Now(),
		EndsAt:    time.Now().Add(time.Hour),
		Location:  "NNRG Campus",
		Organizer: "Student Council",
		Category:  "PARTY",
	}, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	starts := time.Now().Add(24 * time.Hour)
	_, err = svc.Create(context.Background(), &dto.CreateEventRequest{
		Title:     "Tech Talk",
		StartsAt:  starts,
		EndsAt:    starts.Add(-time.Hour),
		Location:  "NNRG Campus",
		Organizer: "Student Council",
		Category:  "SEMINAR",
	}, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEventUpdateReplacesFieldsButKeepsCreatorAndAttendees(t *testing.T) {
	svc, _ := newTestEventService()
	event := createEvent(t, svc, "Tech Talk", "SEMINAR")
	require.NoError(t, svc.Register(context.Background(), event.ID, 7))

	starts := time.Now().Add(48 * time.Hour)
	updated, err := svc.Update(context.Background(), event.ID, &dto.CreateEventRequest{
		Title:     "Tech Talk Rescheduled",
		StartsAt:  starts,
		EndsAt:    starts.Add(3 * time.Hour),
		Location:  "Seminar Hall B",
		Organizer: "Student Council",
		Category:  "WORKSHOP",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tech Talk Rescheduled", updated.Title)
	assert.Equal(t, models.EventWorkshop, updated.Category)
	assert.Equal(t, event.CreatedBy, updated.CreatedBy)
	assert.Equal(t, 1, updated.AttendeeCount)
}

func TestEventUpdateValidatesCategoryAndTimes(t *testing.T) {
	svc, _ := newTestEventService()
	event := createEvent(t, svc, "Tech Talk", "SEMINAR")

	starts := time.Now().Add(24 * time.Hour)
	_, err := svc.Update(context.Background(), event.ID, &dto.CreateEventRequest{
		Title:     "Tech Talk",
		StartsAt:  starts,
		EndsAt:    starts.Add(time.Hour),
		Location:  "NNRG Campus",
		Organizer: "Student Council",
		Category:  "PARTY",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Update(context.Background(), event.ID, &dto.CreateEventRequest{
		Title:     "Tech Talk",
		StartsAt:  starts,
		EndsAt:    starts.Add(-time.Hour),
		Location:  "NNRG Campus",
		Organizer: "Student Council",
		Category:  "SEMINAR",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEventUpdateUnknownEvent(t *testing.T) {
	svc, _ := newTestEventService()

	starts := time.Now().Add(24 * time.Hour)
	_, err := svc.Update(context.Background(), 42, &dto.CreateEventRequest{
		Title:     "Tech Talk",
		StartsAt:  starts,
		EndsAt:    starts.Add(time.Hour),
		Location:  "NNRG Campus",
		Organizer: "Student Council",
		Category:  "SEMINAR",
	})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestEventRegisterOnceOnly(t *testing.T) {
	svc, _ := newTestEventService()
	event := createEvent(t, svc, "Tech Talk", "SEMINAR")

	require.NoError(t, svc.Register(context.Background(), event.ID, 7))
	assert.ErrorIs(t, svc.Register(context.Background(), event.ID, 7), apperrors.ErrAlreadyRegistered)

	updated, err := svc.Get(context.Background(), event.ID, 7)
	require.NoError(t, err)
	assert.True(t, updated.IsRegistered)
	assert.Equal(t, 1, updated.AttendeeCount)
}

func TestEventRegisterUnknownEvent(t *testing.T) {
	svc, _ := newTestEventService()
	assert.ErrorIs(t, svc.Register(context.Background(), 42, 7), apperrors.ErrEventNotFound)
}

func TestEventUnregister(t *testing.T) {
	svc, _ := newTestEventService()
	event := createEvent(t, svc, "Tech Talk", "SEMINAR")

	require.NoError(t, svc.Register(context.Background(), event.ID, 7))
	require.NoError(t, svc.Unregister(context.Background(), event.ID, 7))

	updated, err := svc.Get(context.Background(), event.ID, 7)
	require.NoError(t, err)
	assert.False(t, updated.IsRegistered)
	assert.Equal(t, 0, updated.AttendeeCount)

	assert.ErrorIs(t, svc.Unregister(context.Background(), event.ID, 7), apperrors.ErrResourceNotFound)
}

func TestEventListAnnotatesRegistrationPerCaller(t *testing.T) {
	svc, _ := newTestEventService()

	talk := createEvent(t, svc, "Tech Talk", "SEMINAR")
	createEvent(t, svc, "Sports Day", "SPORTS")
	require.NoError(t, svc.Register(context.Background(), talk.ID, 7))

	forRegistered, err := svc.List(context.Background(), dto.EventFilter{}, 1, 10, 7)
	require.NoError(t, err)
	require.Len(t, forRegistered.Events, 2)
	assert.True(t, forRegistered.Events[0].IsRegistered)
	assert.False(t, forRegistered.Events[1].IsRegistered)

	forOther, err := svc.List(context.Background(), dto.EventFilter{}, 1, 10, 8)
	require.NoError(t, err)
	assert.False(t, forOther.Events[0].IsRegistered)
}

func TestEventListFiltersByCategory(t *testing.T) {
	svc, _ := newTestEventService()

	createEvent(t, svc, "Tech Talk", "SEMINAR")
	createEvent(t, svc, "Sports Day", "SPORTS")

	resp, err := svc.List(context.Background(), dto.EventFilter{Category: "SPORTS"}, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Sports Day", resp.Events[0].Title)

	_, err = svc.List(context.Background(), dto.EventFilter{Category: "PARTY"}, 1, 10, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
