package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/roster"
)

func newTestDirectoryService() *DirectoryService {
	source := roster.StaticSource{
		{
			Name: "2019-23",
			Rows: []roster.Row{
				{"Roll Number": "197Z1A0501", "Name of the Student": "Alice", "Email": "alice@nnrg.edu.in"},
				{"Roll Number": "197Z1A0201", "Name of the Student": "Bob", "Email": "bob@nnrg.edu.in"},
			},
		},
		{
			Name: "2020-24",
			Rows: []roster.Row{
				{"Roll Number": "207Z1A0501", "Name of the Student": "Carol", "Email": "carol@nnrg.edu.in"},
			},
		},
	}
	return NewDirectoryService(roster.New(source, zerolog.Nop()), zerolog.Nop())
}

func TestDirectoryListReturnsAllInIngestionOrder(t *testing.T) {
	svc := newTestDirectoryService()

	resp, err := svc.List(context.Background(), dto.DirectoryFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Students, 3)
	assert.Equal(t, "Alice", resp.Students[0].Name)
	assert.Equal(t, "Bob", resp.Students[1].Name)
	assert.Equal(t, "Carol", resp.Students[2].Name)
	assert.Equal(t, int64(3), resp.Pagination.TotalItems)
}

func TestDirectoryListFiltersByBatchAndDepartment(t *testing.T) {
	svc := newTestDirectoryService()

	byBatch, err := svc.List(context.Background(), dto.DirectoryFilter{Batch: "2020-24"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, byBatch.Students, 1)
	assert.Equal(t, "Carol", byBatch.Students[0].Name)

	byDept, err := svc.List(context.Background(), dto.DirectoryFilter{Department: "ECE"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, byDept.Students, 1)
	assert.Equal(t, "Bob", byDept.Students[0].Name)
}

func TestDirectoryListSearchMatchesNameRollAndEmail(t *testing.T) {
	svc := newTestDirectoryService()

	byName, err := svc.List(context.Background(), dto.DirectoryFilter{Query: "ali"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, byName.Students, 1)
	assert.Equal(t, "Alice", byName.Students[0].Name)

	byRoll, err := svc.List(context.Background(), dto.DirectoryFilter{Query: "207z1a"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, byRoll.Students, 1)
	assert.Equal(t, "Carol", byRoll.Students[0].Name)

	byEmail, err := svc.List(context.Background(), dto.DirectoryFilter{Query: "bob@"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, byEmail.Students, 1)
	assert.Equal(t, "Bob", byEmail.Students[0].Name)
}

func TestDirectoryListPaginates(t *testing.T) {
	svc := newTestDirectoryService()

	page1, err := svc.List(context.Background(), dto.DirectoryFilter{}, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1.Students, 2)

	page2, err := svc.List(context.Background(), dto.DirectoryFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2.Students, 1)
	assert.Equal(t, "Carol", page2.Students[0].Name)
	assert.Equal(t, int64(2), page2.Pagination.TotalPages)

	beyond, err := svc.List(context.Background(), dto.DirectoryFilter{}, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond.Students)
}

func TestDirectoryGetResolvesRollNumberThenID(t *testing.T) {
	svc := newTestDirectoryService()

	byRoll, err := svc.Get(context.Background(), "197Z1A0201")
	require.NoError(t, err)
	assert.Equal(t, "Bob", byRoll.Name)

	byID, err := svc.Get(context.Background(), "student_0_2020-24")
	require.NoError(t, err)
	assert.Equal(t, "Carol", byID.Name)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDirectoryGetByEmail(t *testing.T) {
	svc := newTestDirectoryService()

	record, err := svc.GetByEmail(context.Background(), "ALICE@nnrg.edu.in")
	require.NoError(t, err)
	assert.Equal(t, "Alice", record.Name)

	_, err = svc.GetByEmail(context.Background(), "nobody@nnrg.edu.in")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
