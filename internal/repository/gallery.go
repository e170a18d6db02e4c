package repository

import (
	"context"

	"campushub/internal/database"
	"campushub/internal/models"
)

type GalleryRepository struct {
	db *database.DB
}

func NewGalleryRepository(db *database.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) Create(ctx context.Context, img *models.GalleryImage) error {
	query := `
		INSERT INTO gallery_images (event_id, url, caption)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		img.EventID,
		img.URL,
		img.Caption,
	).Scan(&img.ID, &img.CreatedAt)
}

func (r *GalleryRepository) GetByEventID(ctx context.Context, eventID int64) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	query := `
		SELECT id, event_id, url, caption, created_at
		FROM gallery_images
		WHERE event_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var img models.GalleryImage
		if err := rows.Scan(&img.ID, &img.EventID, &img.URL, &img.Caption, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, rows.Err()
}
