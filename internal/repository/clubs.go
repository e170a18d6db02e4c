package repository

import (
	"context"
	"database/sql"

	"campushub/internal/database"
	apperrors "campushub/internal/errors"
	"campushub/internal/models"
)

type ClubRepository struct {
	db *database.DB
}

func NewClubRepository(db *database.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (name, slug, category, description, coordinator_id, member_count, established)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		club.Name,
		club.Slug,
		club.Category,
		club.Description,
		club.CoordinatorID,
		club.MemberCount,
		club.Established,
	).Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
}

func (r *ClubRepository) GetBySlug(ctx context.Context, slug string) (*models.Club, error) {
	club := &models.Club{}
	query := `
		SELECT id, name, slug, category, description, coordinator_id, member_count, established, created_at, updated_at
		FROM clubs
		WHERE slug = $1`

	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&club.ID,
		&club.Name,
		&club.Slug,
		&club.Category,
		&club.Description,
		&club.CoordinatorID,
		&club.MemberCount,
		&club.Established,
		&club.CreatedAt,
		&club.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return club, err
}

func (r *ClubRepository) List(ctx context.Context, category string) ([]models.Club, error) {
	var clubs []models.Club
	query := `
		SELECT id, name, slug, category, description, coordinator_id, member_count, established, created_at, updated_at
		FROM clubs`
	var args []interface{}

	if category != "" && category != "all" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var club models.Club
		err := rows.Scan(
			&club.ID,
			&club.Name,
			&club.Slug,
			&club.Category,
			&club.Description,
			&club.CoordinatorID,
			&club.MemberCount,
			&club.Established,
			&club.CreatedAt,
			&club.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}

	return clubs, rows.Err()
}

func (r *ClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE clubs
		SET name = $1, category = $2, description = $3, coordinator_id = $4,
		    member_count = $5, established = $6, updated_at = NOW()
		WHERE id = $7`

	res, err := r.db.ExecContext(ctx, query,
		club.Name,
		club.Category,
		club.Description,
		club.CoordinatorID,
		club.MemberCount,
		club.Established,
		club.ID,
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

func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clubs WHERE id = $1`, id)
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
