package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campushub/internal/config"
	"campushub/internal/database"
	apperrors "campushub/internal/errors"
	"campushub/internal/models"
	"campushub/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
		BcryptCost:  bcrypt.MinCost,
	}
	return NewAuthService(repository.NewUserRepository(&database.DB{DB: db}), cfg), mock
}

func TestAuthService_SignupIssuesVerifiableToken(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), time.Now()))

	resp, err := svc.Signup(context.Background(), &models.SignupRequest{
		Email:    "sam@campushub.edu",
		Password: "password123",
		Name:     "Sam",
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), resp.User.ID)
	require.Equal(t, models.RoleStudent, resp.User.Role)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, models.RoleStudent, claims.Role)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at"}).
			AddRow(int64(42), "sam@campushub.edu", string(hash), "Sam", models.RoleStudent, time.Now())
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, mock := newAuthService(t)
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("sam@campushub.edu").
			WillReturnRows(userRows())

		resp, err := svc.Login(ctx, &models.LoginRequest{Email: "sam@campushub.edu", Password: "password123"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, mock := newAuthService(t)
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("sam@campushub.edu").
			WillReturnRows(userRows())

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "sam@campushub.edu", Password: "nope"})
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, mock := newAuthService(t)
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("ghost@campushub.edu").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at"}))

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "ghost@campushub.edu", Password: "password123"})
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyToken_Rejects(t *testing.T) {
	svc, _ := newAuthService(t)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-token")
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, _ := newAuthService(t)
		other.config.JWTSecret = "different-secret"
		token, err := other.issueToken(&models.User{ID: 1, Role: models.RoleStudent})
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
