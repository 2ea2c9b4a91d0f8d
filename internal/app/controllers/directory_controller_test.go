package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/app/services"
	"github.com/nnrgconnect/backend/internal/roster"
)

func newDirectoryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source := roster.StaticSource{
		{
			Name: "2019-23",
			Rows: []roster.Row{
				{"Roll Number": "197Z1A0501", "Name of the Student": "Alice", "Email": "alice@nnrg.edu.in"},
				{"Roll Number": "197Z1A0502", "Name of the Student": "Bob", "Email": "bob@nnrg.edu.in"},
			},
		},
	}
	svc := services.NewDirectoryService(roster.New(source, zerolog.Nop()), zerolog.Nop())
	controller := NewDirectoryController(svc, zerolog.Nop())

	router := gin.New()
	router.GET("/directory", controller.List)
	return router
}

func TestDirectoryListResolvesByEmail(t *testing.T) {
	router := newDirectoryRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/directory?email=BOB@nnrg.edu.in", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Success bool                      `json:"success"`
		Data    dto.DirectoryListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.Len(t, response.Data.Students, 1)
	assert.Equal(t, "Bob", response.Data.Students[0].Name)
	assert.Equal(t, "197Z1A0502", response.Data.Students[0].RollNumber)
}

func TestDirectoryListUnknownEmailReturnsNotFound(t *testing.T) {
	router := newDirectoryRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/directory?email=nobody@nnrg.edu.in", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
