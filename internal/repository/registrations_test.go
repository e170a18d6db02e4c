package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"campushub/internal/database"
	apperrors "campushub/internal/errors"
	"campushub/internal/models"
)

func newMockRepo(t *testing.T) (*RegistrationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRegistrationRepository(&database.DB{DB: db}), mock
}

func TestRegistrationRepository_Register(t *testing.T) {
	ctx := context.Background()
	ticketTypeID := int64(7)

	tests := []struct {
		name    string
		reg     *models.Registration
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "successful registration with ticket type",
			reg: &models.Registration{
				EventID:          1,
				UserID:           2,
				TicketTypeID:     &ticketTypeID,
				Status:           models.RegistrationConfirmed,
				RegistrationType: "individual",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT registration_status FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"registration_status"}).AddRow("open"))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(int64(1), int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(`UPDATE ticket_types`).
					WithArgs(ticketTypeID, int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`INSERT INTO registrations`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), time.Now()))
				mock.ExpectExec(`UPDATE events SET total_registrations = total_registrations \+ 1`).
					WithArgs(int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO notifications`).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "sold out when availability decrement matches no rows",
			reg: &models.Registration{
				EventID:          1,
				UserID:           2,
				TicketTypeID:     &ticketTypeID,
				Status:           models.RegistrationConfirmed,
				RegistrationType: "individual",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT registration_status FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"registration_status"}).AddRow("open"))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(int64(1), int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(`UPDATE ticket_types`).
					WithArgs(ticketTypeID, int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: apperrors.ErrSoldOut,
		},
		{
			name: "duplicate registration rejected",
			reg: &models.Registration{
				EventID:          1,
				UserID:           2,
				Status:           models.RegistrationConfirmed,
				RegistrationType: "individual",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT registration_status FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"registration_status"}).AddRow("open"))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(int64(1), int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: apperrors.ErrDuplicateRegistration,
		},
		{
			name: "closed registration window rejected",
			reg: &models.Registration{
				EventID:          1,
				UserID:           2,
				Status:           models.RegistrationConfirmed,
				RegistrationType: "individual",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT registration_status FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"registration_status"}).AddRow("closed"))
				mock.ExpectRollback()
			},
			wantErr: apperrors.ErrRegistrationClosed,
		},
		{
			name: "unknown event",
			reg: &models.Registration{
				EventID:          99,
				UserID:           2,
				Status:           models.RegistrationConfirmed,
				RegistrationType: "individual",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT registration_status FROM events WHERE id = \$1`).
					WithArgs(int64(99)).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.mock(mock)

			err := repo.Register(ctx, tt.reg, "Registration confirmed", "You are in")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, int64(10), tt.reg.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_Cancel(t *testing.T) {
	ctx := context.Background()
	ticketTypeID := int64(7)
	now := time.Now()

	regRows := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "event_id", "user_id", "ticket_type_id", "status",
			"registration_type", "team_name", "team_members", "created_at",
		}).AddRow(int64(10), int64(1), int64(2), ticketTypeID, status, "individual", nil, nil, now)
	}

	t.Run("cancel restores availability and counter", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM registrations .+ FOR UPDATE`).
			WithArgs(int64(10)).
			WillReturnRows(regRows(models.RegistrationConfirmed))
		mock.ExpectExec(`UPDATE registrations SET status = 'cancelled'`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE ticket_types SET available = available \+ 1`).
			WithArgs(ticketTypeID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE events SET total_registrations = total_registrations - 1`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		reg, err := repo.Cancel(ctx, 10)
		require.NoError(t, err)
		require.Equal(t, models.RegistrationCancelled, reg.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already cancelled reads as not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM registrations .+ FOR UPDATE`).
			WithArgs(int64(10)).
			WillReturnRows(regRows(models.RegistrationCancelled))
		mock.ExpectRollback()

		_, err := repo.Cancel(ctx, 10)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing registration", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM registrations .+ FOR UPDATE`).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.Cancel(ctx, 404)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRegistrationRepository_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("pending registration is confirmed", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE registrations SET status = 'confirmed' WHERE id = \$1 AND status = 'pending'`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Confirm(ctx, 10))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-pending registration reads as not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE registrations SET status = 'confirmed' WHERE id = \$1 AND status = 'pending'`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.Confirm(ctx, 10), apperrors.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
