package repository

import (
	"context"
	"database/sql"
	"fmt"

	"campushub/internal/database"
	apperrors "campushub/internal/errors"
	"campushub/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, slug, description, category, date, time, end_date, end_time,
	       venue, venue_capacity, organizer_id, status, registration_status,
	       total_registrations, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }, event *models.Event) error {
	return row.Scan(
		&event.ID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.Category,
		&event.Date,
		&event.Time,
		&event.EndDate,
		&event.EndTime,
		&event.Venue,
		&event.VenueCapacity,
		&event.OrganizerID,
		&event.Status,
		&event.RegistrationStatus,
		&event.TotalRegistrations,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}

// Create inserts the event plus its optional details and ticket types in
// one transaction.
func (r *EventRepository) Create(ctx context.Context, event *models.Event, details *models.EventDetails, ticketTypes []models.TicketType) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO events (title, slug, description, category, date, time, end_date, end_time,
		                     venue, venue_capacity, organizer_id, status, registration_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, total_registrations, created_at, updated_at`,
		event.Title,
		event.Slug,
		event.Description,
		event.Category,
		event.Date,
		event.Time,
		event.EndDate,
		event.EndTime,
		event.Venue,
		event.VenueCapacity,
		event.OrganizerID,
		event.Status,
		event.RegistrationStatus,
	).Scan(&event.ID, &event.TotalRegistrations, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return err
	}

	if details != nil {
		details.EventID = event.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO event_details (event_id, rules, eligibility, prizes)
			 VALUES ($1, $2, $3, $4)`,
			details.EventID, details.Rules, details.Eligibility, details.Prizes)
		if err != nil {
			return err
		}
	}

	for i := range ticketTypes {
		tt := &ticketTypes[i]
		tt.EventID = event.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO ticket_types (event_id, name, price, total, available)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			tt.EventID, tt.Name, tt.Price, tt.Total, tt.Available).Scan(&tt.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event := &models.Event{}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	err := scanEvent(r.db.QueryRowContext(ctx, query, id), event)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return event, err
}

func (r *EventRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	event := &models.Event{}
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`

	err := scanEvent(r.db.QueryRowContext(ctx, query, slug), event)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return event, err
}

// List returns one page of events matching the filter, plus the total
// match count for pagination.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	where := ` FROM events WHERE 1=1`
	var args []interface{}
	argIndex := 1

	if filter.Category != "" && filter.Category != "all" {
		where += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.Status != "" && filter.Status != "all" {
		where += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + where

	switch filter.SortBy {
	case "popularity":
		query += " ORDER BY total_registrations DESC, id ASC"
	case "name":
		query += " ORDER BY title ASC"
	default:
		query += " ORDER BY date ASC, id ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}

	return events, total, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, category = $3, date = $4, time = $5,
		    venue = $6, venue_capacity = $7, status = $8, registration_status = $9,
		    updated_at = NOW()
		WHERE id = $10`

	res, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.Category,
		event.Date,
		event.Time,
		event.Venue,
		event.VenueCapacity,
		event.Status,
		event.RegistrationStatus,
		event.ID,
	)
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

// Delete removes the event; details, ticket types, registrations, gallery
// images and notifications cascade through the schema's foreign keys.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
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

func (r *EventRepository) GetDetails(ctx context.Context, eventID int64) (*models.EventDetails, error) {
	details := &models.EventDetails{}
	query := `SELECT event_id, rules, eligibility, prizes FROM event_details WHERE event_id = $1`

	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&details.EventID,
		&details.Rules,
		&details.Eligibility,
		&details.Prizes,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return details, err
}

func (r *EventRepository) GetTicketTypes(ctx context.Context, eventID int64) ([]models.TicketType, error) {
	var ticketTypes []models.TicketType
	query := `
		SELECT id, event_id, name, price, total, available
		FROM ticket_types
		WHERE event_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tt models.TicketType
		if err := rows.Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.Total, &tt.Available); err != nil {
			return nil, err
		}
		ticketTypes = append(ticketTypes, tt)
	}

	return ticketTypes, rows.Err()
}

// ListAll streams every event, used by the search reindex tool
func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
