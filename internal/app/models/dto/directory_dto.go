package dto

import "github.com/nnrgconnect/backend/internal/roster"

// DirectoryListResponse is a page of the student directory
type DirectoryListResponse struct {
	Students   []roster.Record `json:"students"`
	Pagination PaginationInfo  `json:"pagination"`
}

// DirectoryFilter captures the supported directory query parameters
type DirectoryFilter struct {
	Batch      string `form:"batch"`
	Department string `form:"department"`
	Email      string `form:"email"`
	Query      string `form:"q"`
}
