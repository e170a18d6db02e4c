package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campushub/internal/config"
	"campushub/internal/database"
	"campushub/internal/models"
	"campushub/internal/repository"
	"campushub/internal/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := repository.NewRepositories(&database.DB{DB: db})
	services := service.NewServices(repos, nil, nil, nil, config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
		BcryptCost:  bcrypt.MinCost,
	})
	h := New(services)

	r := gin.New()
	r.GET("/api/events", h.ListEvents)
	r.GET("/api/events/:slug", h.GetEvent)
	r.POST("/api/chat", h.Chat)
	return r, mock
}

func listRows(titles ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "slug", "description", "category", "date", "time",
		"end_date", "end_time", "venue", "venue_capacity", "organizer_id",
		"status", "registration_status", "total_registrations", "created_at", "updated_at",
	})
	for i, title := range titles {
		rows.AddRow(int64(i+1), title, "slug-"+title, nil, "technical", time.Now(), nil,
			nil, nil, nil, 100, int64(1), "upcoming", "open", 0, time.Now(), time.Now())
	}
	return rows
}

func TestListEvents(t *testing.T) {
	t.Run("paginated envelope", func(t *testing.T) {
		r, mock := newTestRouter(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
		mock.ExpectQuery(`SELECT .+ FROM events`).
			WillReturnRows(listRows("a", "b"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/events?page=2&limit=10", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp models.PaginatedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.Equal(t, 2, resp.Pagination.Page)
		require.Equal(t, 23, resp.Pagination.Total)
		require.Equal(t, 3, resp.Pagination.Pages)
	})

	t.Run("empty result is a list, not null", func(t *testing.T) {
		r, mock := newTestRouter(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT .+ FROM events`).
			WillReturnRows(listRows())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"data":[]`)
	})
}

func TestGetEvent_NotFound(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM events WHERE slug = \$1`).
		WithArgs("nope").
		WillReturnRows(listRows())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/nope", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), `"success":false`)
}

func TestChat(t *testing.T) {
	t.Run("matched answer", func(t *testing.T) {
		r, mock := newTestRouter(t)

		mock.ExpectQuery(`FROM faq_entries`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "question", "answer", "keywords", "category"}).
				AddRow(int64(1), "How do I register for an event?",
					"Press Register on the event page.", "register,registration", "events"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat",
			strings.NewReader(`{"message":"how do I register for techfest"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Press Register on the event page.")
		require.Contains(t, w.Body.String(), `"matched":true`)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		r, _ := newTestRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
