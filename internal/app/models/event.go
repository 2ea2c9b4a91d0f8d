package models

import "time"

// EventCategory defines the category of a campus event
type EventCategory string

const (
	EventWorkshop   EventCategory = "WORKSHOP"
	EventSeminar    EventCategory = "SEMINAR"
	EventConference EventCategory = "CONFERENCE"
	EventMeetup     EventCategory = "MEETUP"
	EventCultural   EventCategory = "CULTURAL"
	EventSports     EventCategory = "SPORTS"
)

// Event defines an event-board entry based on the 'events' table
type Event struct {
	ID            int64         `json:"id" db:"id" example:"1"`
	Title         string        `json:"title" db:"title" example:"Annual Alumni Meet 2025"`
	StartsAt      time.Time     `json:"startsAt" db:"starts_at"`
	EndsAt        time.Time     `json:"endsAt" db:"ends_at"`
	Location      string        `json:"location" db:"location" example:"NNRG Campus, Hyderabad"`
	Organizer     string        `json:"organizer" db:"organizer" example:"NNRG Alumni Association"`
	Category      EventCategory `json:"category" db:"category" example:"MEETUP"`
	Description   string        `json:"description" db:"description"`
	AttendeeCount int           `json:"attendeeCount" db:"attendee_count"`
	IsFeatured    bool          `json:"isFeatured" db:"is_featured"`
	CreatedBy     int64         `json:"createdBy" db:"created_by"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
}

// EventRegistration records one user's registration for an event.
// (event_id, user_id) is unique at the storage layer.
type EventRegistration struct {
	ID           int64     `json:"id" db:"id"`
	EventID      int64     `json:"eventId" db:"event_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
}
