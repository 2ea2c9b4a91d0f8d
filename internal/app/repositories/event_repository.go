package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/pkg/dberrors"
)

// IEventRepository defines the interface for event board persistence
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, filter dto.EventFilter, offset, limit int) ([]models.Event, int64, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
	Register(ctx context.Context, eventID, userID int64) error
	Unregister(ctx context.Context, eventID, userID int64) error
	RegisteredEventIDs(ctx context.Context, userID int64, eventIDs []int64) (map[int64]bool, error)
}

// EventRepository handles event board database operations
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

var _ IEventRepository = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const eventColumns = `id, title, starts_at, ends_at, location, organizer, category, description, attendee_count, is_featured, created_by, created_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID, &event.Title, &event.StartsAt, &event.EndsAt,
		&event.Location, &event.Organizer, &event.Category, &event.Description,
		&event.AttendeeCount, &event.IsFeatured, &event.CreatedBy, &event.CreatedAt)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create inserts a new event and returns its id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO events (title, starts_at, ends_at, location, organizer, category, description, is_featured, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		event.Title, event.StartsAt, event.EndsAt, event.Location,
		event.Organizer, event.Category, event.Description, event.IsFeatured,
		event.CreatedBy, time.Now()).Scan(&id)

	if err != nil {
		return 0, apperrors.StorageError("create event", event.Title, err)
	}

	return id, nil
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.StorageError("get event", fmt.Sprintf("id=%d", id), err)
	}

	return event, nil
}

func (r *EventRepository) listConditions(filter dto.EventFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer
	if filter.Category != "" {
		conds = append(conds, squirrel.Eq{"category": filter.Category})
	}
	if filter.Featured != nil {
		conds = append(conds, squirrel.Eq{"is_featured": *filter.Featured})
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"organizer": pattern},
			squirrel.ILike{"location": pattern},
		})
	}
	return conds
}

// List returns a page of events ordered by start time, along with the
// total count matching the filter.
func (r *EventRepository) List(ctx context.Context, filter dto.EventFilter, offset, limit int) ([]models.Event, int64, error) {
	conds := r.listConditions(filter)

	countQuery := r.sb.Select("COUNT(*)").From("events")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
	}
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count events query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.StorageError("count events", filter.Query, err)
	}

	listQuery := r.sb.Select(eventColumns).
		From("events").
		OrderBy("starts_at ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit))
	for _, cond := range conds {
		listQuery = listQuery.Where(cond)
	}
	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, apperrors.StorageError("list events", filter.Query, err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, apperrors.StorageError("scan event", filter.Query, err)
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.StorageError("list events", filter.Query, err)
	}

	return events, total, nil
}

// Update replaces an event's content. Attendee count, creator and
// creation time are not touched.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE events
		SET title = $1, starts_at = $2, ends_at = $3, location = $4,
		    organizer = $5, category = $6, description = $7, is_featured = $8
		WHERE id = $9`,
		event.Title, event.StartsAt, event.EndsAt, event.Location,
		event.Organizer, event.Category, event.Description, event.IsFeatured,
		event.ID)
	if err != nil {
		return apperrors.StorageError("update event", fmt.Sprintf("id=%d", event.ID), err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Delete removes an event and its registrations
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return apperrors.StorageError("delete event", fmt.Sprintf("id=%d", id), err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Register records a user's registration for an event and bumps the
// attendee count. The unique (event_id, user_id) index rejects repeats.
func (r *EventRepository) Register(ctx context.Context, eventID, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperrors.StorageError("register event", fmt.Sprintf("event=%d", eventID), err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO event_registrations (event_id, user_id, registered_at)
		VALUES ($1, $2, $3)`, eventID, userID, time.Now())
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "event_registrations_event_user_key") {
			return apperrors.ErrAlreadyRegistered
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEventNotFound
		}
		return apperrors.StorageError("register event", fmt.Sprintf("event=%d", eventID), err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE events SET attendee_count = attendee_count + 1 WHERE id = $1`, eventID)
	if err != nil {
		return apperrors.StorageError("register event", fmt.Sprintf("event=%d", eventID), err)
	}

	return tx.Commit(ctx)
}

// Unregister removes a user's registration and decrements the attendee
// count. Missing registrations are reported as not found.
func (r *EventRepository) Unregister(ctx context.Context, eventID, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperrors.StorageError("unregister event", fmt.Sprintf("event=%d", eventID), err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		DELETE FROM event_registrations
		WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return apperrors.StorageError("unregister event", fmt.Sprintf("event=%d", eventID), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE events SET attendee_count = GREATEST(attendee_count - 1, 0) WHERE id = $1`, eventID)
	if err != nil {
		return apperrors.StorageError("unregister event", fmt.Sprintf("event=%d", eventID), err)
	}

	return tx.Commit(ctx)
}

// RegisteredEventIDs reports which of the given events the user is
// registered for.
func (r *EventRepository) RegisteredEventIDs(ctx context.Context, userID int64, eventIDs []int64) (map[int64]bool, error) {
	registered := make(map[int64]bool, len(eventIDs))
	if len(eventIDs) == 0 {
		return registered, nil
	}

	sql, args, err := r.sb.Select("event_id").
		From("event_registrations").
		Where(squirrel.Eq{"user_id": userID, "event_id": eventIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build registrations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.StorageError("list registrations", fmt.Sprintf("user=%d", userID), err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		if err := rows.Scan(&eventID); err != nil {
			return nil, apperrors.StorageError("scan registration", fmt.Sprintf("user=%d", userID), err)
		}
		registered[eventID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.StorageError("list registrations", fmt.Sprintf("user=%d", userID), err)
	}

	return registered, nil
}
