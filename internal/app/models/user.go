package models

import (
	"time"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAdmin   RoleType = "ADMIN"
)

// ApprovalStatus is the admin-approval state of an account. New student
// registrations start PENDING; only an admin moves them to APPROVED or
// REJECTED, and neither decision ever goes back to PENDING.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// IsTerminal reports whether the status is an admin decision.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// User defines the user model based on the 'users' table
type User struct {
	ID             int64          `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email          string         `json:"email" db:"email" example:"stu1@nnrg.edu.in"`              // User's email address, unique case-insensitively
	Password       string         `json:"-" db:"password"`                                          // Bcrypt password hash (excluded from JSON)
	Name           string         `json:"name" db:"name" example:"Arjun Rao"`                       // User's full name
	RoleType       RoleType       `json:"roleType" db:"role_type" example:"STUDENT"`                // STUDENT or ADMIN
	RollNumber     string         `json:"rollNumber,omitempty" db:"roll_number"`                    // Student roll number, empty for admins
	IDCardURL      string         `json:"idCardUrl,omitempty" db:"id_card_url"`                     // Uploaded ID card image reference
	ApprovalStatus ApprovalStatus `json:"approvalStatus" db:"approval_status" example:"PENDING"`    // Admin-approval state
	CreatedAt      time.Time      `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
	LastLoginAt    *time.Time     `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}
