package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campushub/internal/database"
	apperrors "campushub/internal/errors"
	"campushub/internal/models"
)

// TestRegister_NoOversellUnderContention hammers one 5-seat ticket type
// with 100 concurrent registrations against a real Postgres and checks
// that exactly 5 succeed. Set DATABASE_URL to run it.
func TestRegister_NoOversellUnderContention(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	db := &database.DB{DB: sqlDB}
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())

	ctx := context.Background()
	repos := NewRepositories(db)

	const seats = 5
	const contenders = 100

	suffix := time.Now().UnixNano()
	organizer := &models.User{
		Email:        fmt.Sprintf("organizer-%d@test.local", suffix),
		PasswordHash: "x",
		Name:         "Load Organizer",
		Role:         models.RoleOrganizer,
	}
	require.NoError(t, repos.Users.Create(ctx, organizer))

	event := &models.Event{
		Title:              "Contention Night",
		Slug:               fmt.Sprintf("contention-night-%d", suffix),
		Category:           "technical",
		Date:               time.Now().Add(24 * time.Hour),
		OrganizerID:        organizer.ID,
		Status:             "upcoming",
		RegistrationStatus: "open",
	}
	tickets := []models.TicketType{{Name: "General", Total: seats, Available: seats}}
	require.NoError(t, repos.Events.Create(ctx, event, nil, tickets))

	users := make([]*models.User, contenders)
	for i := range users {
		users[i] = &models.User{
			Email:        fmt.Sprintf("student-%d-%d@test.local", suffix, i),
			PasswordHash: "x",
			Name:         "Load Student",
			Role:         models.RoleStudent,
		}
		require.NoError(t, repos.Users.Create(ctx, users[i]))
	}

	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			reg := &models.Registration{
				EventID:          event.ID,
				UserID:           userID,
				TicketTypeID:     &tickets[0].ID,
				Status:           models.RegistrationConfirmed,
				RegistrationType: "individual",
			}
			results <- repos.Registrations.Register(ctx, reg, "Registration confirmed", "ok")
		}(users[i].ID)
	}

	wg.Wait()
	close(results)

	succeeded, soldOut := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrSoldOut):
			soldOut++
		default:
			t.Errorf("unexpected registration error: %v", err)
		}
	}

	require.Equal(t, seats, succeeded)
	require.Equal(t, contenders-seats, soldOut)

	var available int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT available FROM ticket_types WHERE id = $1`, tickets[0].ID).Scan(&available))
	require.Zero(t, available)

	var total int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT total_registrations FROM events WHERE id = $1`, event.ID).Scan(&total))
	require.Equal(t, seats, total)
}

// TestRegister_SlotReopensAfterCancel walks the single-seat lifecycle:
// A takes the last seat, B is rejected, A cancels, B gets the seat, and
// after B cancels A can register again for the same event. The last step
// relies on the partial unique index ignoring cancelled rows. Set
// DATABASE_URL to run it.
func TestRegister_SlotReopensAfterCancel(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	db := &database.DB{DB: sqlDB}
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())

	ctx := context.Background()
	repos := NewRepositories(db)

	suffix := time.Now().UnixNano()
	organizer := &models.User{
		Email:        fmt.Sprintf("organizer-cycle-%d@test.local", suffix),
		PasswordHash: "x",
		Name:         "Cycle Organizer",
		Role:         models.RoleOrganizer,
	}
	require.NoError(t, repos.Users.Create(ctx, organizer))

	event := &models.Event{
		Title:              "Single Seat Night",
		Slug:               fmt.Sprintf("single-seat-night-%d", suffix),
		Category:           "technical",
		Date:               time.Now().Add(24 * time.Hour),
		OrganizerID:        organizer.ID,
		Status:             "upcoming",
		RegistrationStatus: "open",
	}
	tickets := []models.TicketType{{Name: "General", Total: 1, Available: 1}}
	require.NoError(t, repos.Events.Create(ctx, event, nil, tickets))

	newUser := func(tag string) *models.User {
		u := &models.User{
			Email:        fmt.Sprintf("student-%s-%d@test.local", tag, suffix),
			PasswordHash: "x",
			Name:         "Cycle Student",
			Role:         models.RoleStudent,
		}
		require.NoError(t, repos.Users.Create(ctx, u))
		return u
	}
	userA := newUser("a")
	userB := newUser("b")

	register := func(userID int64) (*models.Registration, error) {
		reg := &models.Registration{
			EventID:          event.ID,
			UserID:           userID,
			TicketTypeID:     &tickets[0].ID,
			Status:           models.RegistrationConfirmed,
			RegistrationType: "individual",
		}
		return reg, repos.Registrations.Register(ctx, reg, "Registration confirmed", "ok")
	}

	available := func() int {
		var n int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT available FROM ticket_types WHERE id = $1`, tickets[0].ID).Scan(&n))
		return n
	}

	regA, err := register(userA.ID)
	require.NoError(t, err)
	require.Zero(t, available())

	_, err = register(userA.ID)
	require.ErrorIs(t, err, apperrors.ErrDuplicateRegistration)

	_, err = register(userB.ID)
	require.ErrorIs(t, err, apperrors.ErrSoldOut)

	_, err = repos.Registrations.Cancel(ctx, regA.ID)
	require.NoError(t, err)
	require.Equal(t, 1, available())

	regB, err := register(userB.ID)
	require.NoError(t, err)
	require.Zero(t, available())

	_, err = repos.Registrations.Cancel(ctx, regB.ID)
	require.NoError(t, err)

	// A's cancelled row still exists; the partial unique index must not
	// block this second active registration.
	_, err = register(userA.ID)
	require.NoError(t, err)

	var total int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT total_registrations FROM events WHERE id = $1`, event.ID).Scan(&total))
	require.Equal(t, 1, total)
}
