package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"campushub/internal/database"
	apperrors "campushub/internal/errors"
	"campushub/internal/models"
)

func newMockEventRepo(t *testing.T) (*EventRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEventRepository(&database.DB{DB: db}), mock
}

func eventRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "slug", "description", "category", "date", "time",
		"end_date", "end_time", "venue", "venue_capacity", "organizer_id",
		"status", "registration_status", "total_registrations", "created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(id, "TechFest", "techfest", nil, "technical", time.Now(), nil,
			nil, nil, nil, 100, int64(1), "upcoming", "open", 0, time.Now(), time.Now())
	}
	return rows
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("category filter with pagination", func(t *testing.T) {
		repo, mock := newMockEventRepo(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE 1=1 AND category = \$1`).
			WithArgs("technical").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
		mock.ExpectQuery(`SELECT .+ FROM events WHERE 1=1 AND category = \$1 ORDER BY date ASC, id ASC LIMIT \$2 OFFSET \$3`).
			WithArgs("technical", 10, 10).
			WillReturnRows(eventRows(11, 12))

		events, total, err := repo.List(ctx, models.EventFilter{
			Category: "technical",
			Page:     2,
			Limit:    10,
		})
		require.NoError(t, err)
		require.Equal(t, 23, total)
		require.Len(t, events, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("popularity sort", func(t *testing.T) {
		repo, mock := newMockEventRepo(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE 1=1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`ORDER BY total_registrations DESC, id ASC`).
			WithArgs(10, 0).
			WillReturnRows(eventRows(1))

		_, _, err := repo.List(ctx, models.EventFilter{SortBy: "popularity", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search matches title and description", func(t *testing.T) {
		repo, mock := newMockEventRepo(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE 1=1 AND \(title ILIKE \$1 OR description ILIKE \$1\)`).
			WithArgs("%hack%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`title ILIKE \$1 OR description ILIKE \$1`).
			WithArgs("%hack%", 10, 0).
			WillReturnRows(eventRows(1))

		events, total, err := repo.List(ctx, models.EventFilter{Search: "hack", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Len(t, events, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockEventRepo(t)
		mock.ExpectQuery(`FROM events WHERE slug = \$1`).
			WithArgs("techfest").
			WillReturnRows(eventRows(1))

		event, err := repo.GetBySlug(ctx, "techfest")
		require.NoError(t, err)
		require.NotNil(t, event)
		require.Equal(t, "techfest", event.Slug)
	})

	t.Run("missing slug yields nil without error", func(t *testing.T) {
		repo, mock := newMockEventRepo(t)
		mock.ExpectQuery(`FROM events WHERE slug = \$1`).
			WithArgs("nope").
			WillReturnRows(eventRows())

		event, err := repo.GetBySlug(ctx, "nope")
		require.NoError(t, err)
		require.Nil(t, event)
	})
}

func TestEventRepository_Update_NotFound(t *testing.T) {
	repo, mock := newMockEventRepo(t)

	mock.ExpectExec(`UPDATE events`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Event{ID: 404, Title: "x"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEventRepository_Create(t *testing.T) {
	repo, mock := newMockEventRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO events`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total_registrations", "created_at", "updated_at"}).
			AddRow(int64(5), 0, now, now))
	mock.ExpectExec(`INSERT INTO event_details`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`INSERT INTO ticket_types`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectCommit()

	rules := "No outside food"
	event := &models.Event{Title: "TechFest", Slug: "techfest", Category: "technical", Date: now, OrganizerID: 1, Status: "upcoming", RegistrationStatus: "open"}
	details := &models.EventDetails{Rules: &rules}
	tickets := []models.TicketType{{Name: "General", Total: 100, Available: 100}}

	err := repo.Create(context.Background(), event, details, tickets)
	require.NoError(t, err)
	require.Equal(t, int64(5), event.ID)
	require.Equal(t, int64(9), tickets[0].ID)
	require.Equal(t, int64(5), tickets[0].EventID)
	require.NoError(t, mock.ExpectationsWereMet())
}
