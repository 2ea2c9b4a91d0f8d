package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/pkg/helpers"
	"github.com/nnrgconnect/backend/internal/roster"
)

// DirectoryService exposes the normalized student roster over paginated,
// filterable listings and key lookups.
type DirectoryService struct {
	roster *roster.Roster
	logger zerolog.Logger
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(r *roster.Roster, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		roster: r,
		logger: logger,
	}
}

func matchesFilter(record roster.Record, filter dto.DirectoryFilter) bool {
	if filter.Batch != "" && record.Batch != filter.Batch {
		return false
	}
	if filter.Department != "" && !strings.EqualFold(record.Department, filter.Department) {
		return false
	}
	if filter.Query != "" {
		query := strings.ToLower(filter.Query)
		if !strings.Contains(strings.ToLower(record.Name), query) &&
			!strings.Contains(strings.ToLower(record.RollNumber), query) &&
			!strings.Contains(strings.ToLower(record.Email), query) {
			return false
		}
	}
	return true
}

// List returns one page of the directory. Records keep their ingestion
// order: batch order first, row order within a batch.
func (s *DirectoryService) List(ctx context.Context, filter dto.DirectoryFilter, page, pageSize int) (*dto.DirectoryListResponse, error) {
	var filtered []roster.Record
	for _, record := range s.roster.Records(ctx) {
		if matchesFilter(record, filter) {
			filtered = append(filtered, record)
		}
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	total := len(filtered)

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &dto.DirectoryListResponse{
		Students:   append([]roster.Record{}, filtered[start:end]...),
		Pagination: helpers.NewPaginationInfo(int64(total), page, pageSize),
	}, nil
}

// Get resolves a directory entry by roll number first and surrogate id
// second.
func (s *DirectoryService) Get(ctx context.Context, key string) (*roster.Record, error) {
	record := s.roster.FindByKey(ctx, key)
	if record == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return record, nil
}

// GetByEmail resolves a directory entry by email, case-insensitively.
func (s *DirectoryService) GetByEmail(ctx context.Context, email string) (*roster.Record, error) {
	record := s.roster.FindByEmail(ctx, email)
	if record == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return record, nil
}
