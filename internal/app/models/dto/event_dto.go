package dto

import (
	"time"

	"github.com/nnrgconnect/backend/internal/app/models"
)

// CreateEventRequest creates or replaces an event (admin only)
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Organizer   string    `json:"organizer" binding:"required"`
	Category    string    `json:"category" binding:"required" enums:"WORKSHOP,SEMINAR,CONFERENCE,MEETUP,CULTURAL,SPORTS"`
	Description string    `json:"description"`
	IsFeatured  bool      `json:"isFeatured"`
}

// EventResponse is an event together with the caller's registration state
type EventResponse struct {
	models.Event
	IsRegistered bool `json:"isRegistered"`
}

// EventListResponse is a page of events
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// EventFilter captures the supported event-board query parameters
type EventFilter struct {
	Category string `form:"category"`
	Featured *bool  `form:"featured"`
	Query    string `form:"q"`
}
