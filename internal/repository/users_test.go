package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"campushub/internal/database"
	apperrors "campushub/internal/errors"
	"campushub/internal/models"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(&database.DB{DB: db}), mock
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and created_at", func(t *testing.T) {
		repo, mock := newMockUserRepo(t)

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("sam@campushub.edu", "hash", "Sam", models.RoleStudent).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

		user := &models.User{Email: "sam@campushub.edu", PasswordHash: "hash", Name: "Sam", Role: models.RoleStudent}
		require.NoError(t, repo.Create(ctx, user))
		require.Equal(t, int64(3), user.ID)
	})

	t.Run("duplicate email maps to sentinel", func(t *testing.T) {
		repo, mock := newMockUserRepo(t)

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		user := &models.User{Email: "taken@campushub.edu", PasswordHash: "hash", Name: "Sam", Role: models.RoleStudent}
		require.ErrorIs(t, repo.Create(ctx, user), apperrors.ErrEmailTaken)
	})
}

func TestUserRepository_GetByEmail_Missing(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("ghost@campushub.edu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at"}))

	user, err := repo.GetByEmail(context.Background(), "ghost@campushub.edu")
	require.NoError(t, err)
	require.Nil(t, user)
}
