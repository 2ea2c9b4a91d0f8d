package dto

import "github.com/nnrgconnect/backend/internal/app/models"

// PostMessageRequest posts a message to a batch group
type PostMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// MessageListResponse is a page of group messages, newest first
type MessageListResponse struct {
	GroupName  string           `json:"groupName"`
	Messages   []models.Message `json:"messages"`
	Pagination PaginationInfo   `json:"pagination"`
}

// GroupListResponse lists the fixed batch groups
type GroupListResponse struct {
	Groups []string `json:"groups"`
}
