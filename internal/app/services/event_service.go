package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/repositories"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/pkg/helpers"
)

// EventService handles the campus event board and registrations.
type EventService struct {
	eventRepo repositories.IEventRepository
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repositories.IEventRepository, logger zerolog.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func validEventCategory(value string) bool {
	switch models.EventCategory(value) {
	case models.EventWorkshop, models.EventSeminar, models.EventConference,
		models.EventMeetup, models.EventCultural, models.EventSports:
		return true
	}
	return false
}

// Create posts a new event. Authorization is enforced at the route layer.
func (s *EventService) Create(ctx context.Context, req *dto.CreateEventRequest, createdBy int64) (*models.Event, error) {
	if !validEventCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown event category %q", apperrors.ErrValidationFailed, req.Category)
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("%w: event must end after it starts", apperrors.ErrValidationFailed)
	}

	event := &models.Event{
		Title:       req.Title,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		Organizer:   req.Organizer,
		Category:    models.EventCategory(req.Category),
		Description: req.Description,
		IsFeatured:  req.IsFeatured,
		CreatedBy:   createdBy,
	}

	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", id).Str("title", event.Title).Msg("Event created")

	return s.eventRepo.GetByID(ctx, id)
}

// List returns one page of events ordered by start time, each annotated
// with whether the calling user is registered.
func (s *EventService) List(ctx context.Context, filter dto.EventFilter, page, pageSize int, userID int64) (*dto.EventListResponse, error) {
	if filter.Category != "" && !validEventCategory(filter.Category) {
		return nil, fmt.Errorf("%w: unknown event category %q", apperrors.ErrValidationFailed, filter.Category)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	events, total, err := s.eventRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	eventIDs := make([]int64, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}

	registered, err := s.eventRepo.RegisteredEventIDs(ctx, userID, eventIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, dto.EventResponse{
			Event:        event,
			IsRegistered: registered[event.ID],
		})
	}

	return &dto.EventListResponse{
		Events:     responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// Get retrieves a single event annotated with the caller's registration
// state.
func (s *EventService) Get(ctx context.Context, id, userID int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	registered, err := s.eventRepo.RegisteredEventIDs(ctx, userID, []int64{id})
	if err != nil {
		return nil, err
	}

	return &dto.EventResponse{
		Event:        *event,
		IsRegistered: registered[id],
	}, nil
}

// Update replaces an event's content, keeping its creator, creation time
// and attendee count. Authorization is enforced at the route layer.
func (s *EventService) Update(ctx context.Context, id int64, req *dto.CreateEventRequest) (*models.Event, error) {
	if !validEventCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown event category %q", apperrors.ErrValidationFailed, req.Category)
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("%w: event must end after it starts", apperrors.ErrValidationFailed)
	}

	event := &models.Event{
		ID:          id,
		Title:       req.Title,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		Organizer:   req.Organizer,
		Category:    models.EventCategory(req.Category),
		Description: req.Description,
		IsFeatured:  req.IsFeatured,
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", id).Str("title", event.Title).Msg("Event updated")

	return s.eventRepo.GetByID(ctx, id)
}

// Register signs the user up for an event. Registering twice surfaces as
// an already-registered error.
func (s *EventService) Register(ctx context.Context, eventID, userID int64) error {
	if err := s.eventRepo.Register(ctx, eventID, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("eventID", eventID).Int64("userID", userID).Msg("Event registration recorded")
	return nil
}

// Unregister withdraws the user's event registration.
func (s *EventService) Unregister(ctx context.Context, eventID, userID int64) error {
	return s.eventRepo.Unregister(ctx, eventID, userID)
}

// Delete removes an event. Authorization is enforced at the route layer.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.eventRepo.Delete(ctx, id)
}
