package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"campushub/internal/database"
	apperrors "campushub/internal/errors"
	"campushub/internal/models"
)

type RegistrationRepository struct {
	db *database.DB
}

func NewRegistrationRepository(db *database.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Participant is a row of the participant export
type Participant struct {
	Name             string
	Email            string
	RegistrationType string
	TeamName         *string
	RegisteredAt     time.Time
}

// Register runs the whole registration workflow in one transaction:
// duplicate check, ticket availability decrement, registration insert,
// event counter increment and confirmation notification. Either every
// step commits or none does.
func (r *RegistrationRepository) Register(ctx context.Context, reg *models.Registration, notifTitle, notifMessage string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var regStatus string
	err = tx.QueryRowContext(ctx,
		`SELECT registration_status FROM events WHERE id = $1`, reg.EventID,
	).Scan(&regStatus)
	if err == sql.ErrNoRows {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}
	if regStatus != "open" {
		return apperrors.ErrRegistrationClosed
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND user_id = $2 AND status <> 'cancelled')`,
		reg.EventID, reg.UserID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrDuplicateRegistration
	}

	if reg.TicketTypeID != nil {
		// Conditional decrement: zero rows affected means sold out.
		res, err := tx.ExecContext(ctx,
			`UPDATE ticket_types
			 SET available = available - 1
			 WHERE id = $1 AND event_id = $2 AND available > 0`,
			*reg.TicketTypeID, reg.EventID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.ErrSoldOut
		}
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO registrations (event_id, user_id, ticket_type_id, status, registration_type, team_name, team_members)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		reg.EventID,
		reg.UserID,
		reg.TicketTypeID,
		reg.Status,
		reg.RegistrationType,
		reg.TeamName,
		reg.TeamMembers,
	).Scan(&reg.ID, &reg.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		// Partial unique index backstop for a racing duplicate.
		return apperrors.ErrDuplicateRegistration
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET total_registrations = total_registrations + 1, updated_at = NOW() WHERE id = $1`,
		reg.EventID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO notifications (user_id, event_id, title, message)
		 VALUES ($1, $2, $3, $4)`,
		reg.UserID, reg.EventID, notifTitle, notifMessage)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Cancel marks a registration cancelled and restores ticket availability
// and the event counter in the same transaction.
func (r *RegistrationRepository) Cancel(ctx context.Context, id int64) (*models.Registration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	reg := &models.Registration{}
	err = tx.QueryRowContext(ctx,
		`SELECT id, event_id, user_id, ticket_type_id, status, registration_type, team_name, team_members, created_at
		 FROM registrations
		 WHERE id = $1
		 FOR UPDATE`, id).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.TicketTypeID,
		&reg.Status,
		&reg.RegistrationType,
		&reg.TeamName,
		&reg.TeamMembers,
		&reg.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if reg.Status == models.RegistrationCancelled {
		return nil, apperrors.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE registrations SET status = 'cancelled' WHERE id = $1`, reg.ID)
	if err != nil {
		return nil, err
	}

	if reg.TicketTypeID != nil {
		_, err = tx.ExecContext(ctx,
			`UPDATE ticket_types SET available = available + 1 WHERE id = $1`,
			*reg.TicketTypeID)
		if err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET total_registrations = total_registrations - 1, updated_at = NOW() WHERE id = $1`,
		reg.EventID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	reg.Status = models.RegistrationCancelled
	return reg, nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*models.Registration, error) {
	reg := &models.Registration{}
	query := `
		SELECT id, event_id, user_id, ticket_type_id, status, registration_type, team_name, team_members, created_at
		FROM registrations
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.TicketTypeID,
		&reg.Status,
		&reg.RegistrationType,
		&reg.TeamName,
		&reg.TeamMembers,
		&reg.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return reg, err
}

func (r *RegistrationRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Registration, error) {
	var regs []models.Registration
	query := `
		SELECT id, event_id, user_id, ticket_type_id, status, registration_type, team_name, team_members, created_at
		FROM registrations
		WHERE user_id = $1 AND status <> 'cancelled'
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reg models.Registration
		err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserID,
			&reg.TicketTypeID,
			&reg.Status,
			&reg.RegistrationType,
			&reg.TeamName,
			&reg.TeamMembers,
			&reg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

// ListParticipants returns active registrations joined with user identity,
// in registration order, for the CSV export.
func (r *RegistrationRepository) ListParticipants(ctx context.Context, eventID int64) ([]Participant, error) {
	var participants []Participant
	query := `
		SELECT u.name, u.email, r.registration_type, r.team_name, r.created_at
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1 AND r.status <> 'cancelled'
		ORDER BY r.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.Name, &p.Email, &p.RegistrationType, &p.TeamName, &p.RegisteredAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// CountActiveByEvent counts non-cancelled registrations for an event
func (r *RegistrationRepository) CountActiveByEvent(ctx context.Context, eventID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status <> 'cancelled'`,
		eventID).Scan(&count)
	return count, err
}

// GetExpiredPending returns pending registrations created before the cutoff
func (r *RegistrationRepository) GetExpiredPending(ctx context.Context, cutoff time.Time) ([]models.Registration, error) {
	var regs []models.Registration
	query := `
		SELECT id, event_id, user_id, ticket_type_id, status, registration_type, team_name, team_members, created_at
		FROM registrations
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reg models.Registration
		err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserID,
			&reg.TicketTypeID,
			&reg.Status,
			&reg.RegistrationType,
			&reg.TeamName,
			&reg.TeamMembers,
			&reg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

// Confirm flips a pending registration to confirmed
func (r *RegistrationRepository) Confirm(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET status = 'confirmed' WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
