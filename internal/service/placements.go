package service

import (
	"context"
	"fmt"
	"time"

	apperrors "campushub/internal/errors"
	"campushub/internal/models"
	"campushub/internal/repository"
)

// PlacementService manages the placement cell listings and statistics
type PlacementService struct {
	placements *repository.PlacementRepository
}

func NewPlacementService(placements *repository.PlacementRepository) *PlacementService {
	return &PlacementService{placements: placements}
}

func (s *PlacementService) ListCompanies(ctx context.Context, status string) ([]models.PlacementCompany, error) {
	if status == "all" {
		status = ""
	}
	companies, err := s.placements.ListCompanies(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (s *PlacementService) CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.PlacementCompany, error) {
	company := &models.PlacementCompany{
		Name:        req.Name,
		Sector:      req.Sector,
		CTC:         req.CTC,
		Eligibility: req.Eligibility,
		Status:      req.Status,
	}
	if company.Status == "" {
		company.Status = "upcoming"
	}
	if req.VisitDate != nil {
		visit, err := time.Parse("2006-01-02", *req.VisitDate)
		if err != nil {
			return nil, fmt.Errorf("invalid visit date: %w", err)
		}
		company.VisitDate = &visit
	}

	if err := s.placements.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

func (s *PlacementService) UpdateCompany(ctx context.Context, id int64, req *models.UpdateCompanyRequest) (*models.PlacementCompany, error) {
	company, err := s.placements.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Sector != nil {
		company.Sector = req.Sector
	}
	if req.CTC != nil {
		company.CTC = req.CTC
	}
	if req.Eligibility != nil {
		company.Eligibility = req.Eligibility
	}
	if req.Status != nil {
		company.Status = *req.Status
	}
	if req.VisitDate != nil {
		visit, err := time.Parse("2006-01-02", *req.VisitDate)
		if err != nil {
			return nil, fmt.Errorf("invalid visit date: %w", err)
		}
		company.VisitDate = &visit
	}

	if err := s.placements.UpdateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

func (s *PlacementService) DeleteCompany(ctx context.Context, id int64) error {
	return s.placements.DeleteCompany(ctx, id)
}

func (s *PlacementService) ListStudents(ctx context.Context, year int) ([]models.PlacedStudent, error) {
	students, err := s.placements.ListStudents(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list placed students: %w", err)
	}
	return students, nil
}

func (s *PlacementService) CreateStudent(ctx context.Context, req *models.CreatePlacedStudentRequest) (*models.PlacedStudent, error) {
	student := &models.PlacedStudent{
		CompanyID:   req.CompanyID,
		StudentName: req.StudentName,
		Branch:      req.Branch,
		Package:     req.Package,
		Year:        req.Year,
	}

	if err := s.placements.CreateStudent(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to record placement: %w", err)
	}
	return student, nil
}

// Stats aggregates placement outcomes per graduation year
func (s *PlacementService) Stats(ctx context.Context) ([]models.PlacementStats, error) {
	stats, err := s.placements.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute placement stats: %w", err)
	}
	return stats, nil
}
