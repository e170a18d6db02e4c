package repository

import (
	"context"
	"database/sql"
	"fmt"

	"campushub/internal/database"
	apperrors "campushub/internal/errors"
	"campushub/internal/models"
)

type PlacementRepository struct {
	db *database.DB
}

func NewPlacementRepository(db *database.DB) *PlacementRepository {
	return &PlacementRepository{db: db}
}

func (r *PlacementRepository) CreateCompany(ctx context.Context, c *models.PlacementCompany) error {
	query := `
		INSERT INTO placement_companies (name, sector, ctc, visit_date, eligibility, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		c.Name,
		c.Sector,
		c.CTC,
		c.VisitDate,
		c.Eligibility,
		c.Status,
	).Scan(&c.ID)
}

func (r *PlacementRepository) ListCompanies(ctx context.Context, status string) ([]models.PlacementCompany, error) {
	var companies []models.PlacementCompany
	query := `
		SELECT id, name, sector, ctc, visit_date, eligibility, status
		FROM placement_companies`
	var args []interface{}

	if status != "" && status != "all" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY visit_date ASC NULLS LAST, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.PlacementCompany
		err := rows.Scan(&c.ID, &c.Name, &c.Sector, &c.CTC, &c.VisitDate, &c.Eligibility, &c.Status)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

func (r *PlacementRepository) GetCompany(ctx context.Context, id int64) (*models.PlacementCompany, error) {
	var c models.PlacementCompany
	query := `
		SELECT id, name, sector, ctc, visit_date, eligibility, status
		FROM placement_companies
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Sector, &c.CTC, &c.VisitDate, &c.Eligibility, &c.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}

func (r *PlacementRepository) UpdateCompany(ctx context.Context, c *models.PlacementCompany) error {
	query := `
		UPDATE placement_companies
		SET name = $1, sector = $2, ctc = $3, visit_date = $4, eligibility = $5, status = $6
		WHERE id = $7`

	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Sector, c.CTC, c.VisitDate, c.Eligibility, c.Status, c.ID)
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

func (r *PlacementRepository) DeleteCompany(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM placement_companies WHERE id = $1`, id)
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

func (r *PlacementRepository) CreateStudent(ctx context.Context, s *models.PlacedStudent) error {
	query := `
		INSERT INTO placed_students (company_id, student_name, branch, package, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		s.CompanyID,
		s.StudentName,
		s.Branch,
		s.Package,
		s.Year,
	).Scan(&s.ID)
}

func (r *PlacementRepository) ListStudents(ctx context.Context, year int) ([]models.PlacedStudent, error) {
	var students []models.PlacedStudent
	query := `
		SELECT id, company_id, student_name, branch, package, year
		FROM placed_students`
	var args []interface{}

	if year > 0 {
		query += ` WHERE year = $1`
		args = append(args, year)
	}
	query += ` ORDER BY year DESC, student_name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s models.PlacedStudent
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.StudentName, &s.Branch, &s.Package, &s.Year); err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// Stats aggregates placed students and distinct companies per year.
// package is free text ("12 LPA"), so the average strips non-numeric
// characters before casting and ignores rows that do not parse.
func (r *PlacementRepository) Stats(ctx context.Context) ([]models.PlacementStats, error) {
	var stats []models.PlacementStats
	query := `
		SELECT year, COUNT(*), COUNT(DISTINCT company_id),
		       ROUND(AVG(NULLIF(regexp_replace(package, '[^0-9.]', '', 'g'), '')::numeric), 2)
		FROM placed_students
		GROUP BY year
		ORDER BY year DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate placement stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.PlacementStats
		if err := rows.Scan(&s.Year, &s.PlacedCount, &s.CompanyCount, &s.AveragePackage); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
