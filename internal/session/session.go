// Package session implements the device-session store: one active
// session slot per device. A session is the public profile of the
// account currently using that device, never password material.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the device has no active session.
var ErrNotFound = errors.New("no active session")

// Session records which account a device currently acts as.
type Session struct {
	UserID         int64  `json:"userId"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	RoleType       string `json:"roleType"`
	ApprovalStatus string `json:"approvalStatus"`
	RollNumber     string `json:"rollNumber,omitempty"`
}

// Store is a single-slot-per-device session store. Put overwrites any
// existing slot for the device; Clear on an empty slot is not an error.
type Store interface {
	Put(ctx context.Context, deviceID string, session Session) error
	Get(ctx context.Context, deviceID string) (*Session, error)
	Clear(ctx context.Context, deviceID string) error
}
