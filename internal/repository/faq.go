package repository

import (
	"context"

	"campushub/internal/database"
	"campushub/internal/models"
)

type FAQRepository struct {
	db *database.DB
}

func NewFAQRepository(db *database.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

func (r *FAQRepository) Create(ctx context.Context, entry *models.FAQEntry) error {
	query := `
		INSERT INTO faq_entries (question, answer, keywords, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		entry.Question,
		entry.Answer,
		entry.Keywords,
		entry.Category,
	).Scan(&entry.ID)
}

func (r *FAQRepository) ListAll(ctx context.Context) ([]models.FAQEntry, error) {
	var entries []models.FAQEntry
	query := `
		SELECT id, question, answer, keywords, category
		FROM faq_entries
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.FAQEntry
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.Keywords, &entry.Category); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
