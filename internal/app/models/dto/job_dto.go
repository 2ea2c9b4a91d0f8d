package dto

import "github.com/nnrgconnect/backend/internal/app/models"

// CreateJobRequest creates or replaces a job posting (admin only)
type CreateJobRequest struct {
	Title        string   `json:"title" binding:"required"`
	Company      string   `json:"company" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	JobType      string   `json:"jobType" binding:"required" enums:"FULL_TIME,PART_TIME,INTERNSHIP,CONTRACT"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description" binding:"required"`
	Requirements []string `json:"requirements"`
	IsFeatured   bool     `json:"isFeatured"`
}

// JobListResponse is a page of job postings
type JobListResponse struct {
	Jobs       []models.Job   `json:"jobs"`
	Pagination PaginationInfo `json:"pagination"`
}

// JobFilter captures the supported job-board query parameters
type JobFilter struct {
	JobType  string `form:"type"`
	Featured *bool  `form:"featured"`
	Query    string `form:"q"`
}
