package models

import "time"

// JobType defines the employment type of a job posting
type JobType string

const (
	JobFullTime   JobType = "FULL_TIME"
	JobPartTime   JobType = "PART_TIME"
	JobInternship JobType = "INTERNSHIP"
	JobContract   JobType = "CONTRACT"
)

// Job defines a job-board posting based on the 'jobs' table
type Job struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Title        string    `json:"title" db:"title" example:"Software Engineer"`
	Company      string    `json:"company" db:"company" example:"Google"`
	Location     string    `json:"location" db:"location" example:"Hyderabad, India"`
	JobType      JobType   `json:"jobType" db:"job_type" example:"FULL_TIME"`
	Salary       string    `json:"salary" db:"salary" example:"₹18-25 LPA"`
	Description  string    `json:"description" db:"description"`
	Requirements []string  `json:"requirements" db:"requirements"`
	IsFeatured   bool      `json:"isFeatured" db:"is_featured"`
	PostedBy     int64     `json:"postedBy" db:"posted_by"`
	PostedAt     time.Time `json:"postedAt" db:"posted_at"`
}
