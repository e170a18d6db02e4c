package service

import (
	"context"
	"fmt"

	apperrors "campushub/internal/errors"
	"campushub/internal/models"
	"campushub/internal/repository"
)

// ClubService manages the club directory
type ClubService struct {
	clubs *repository.ClubRepository
}

func NewClubService(clubs *repository.ClubRepository) *ClubService {
	return &ClubService{clubs: clubs}
}

func (s *ClubService) List(ctx context.Context, category string) ([]models.Club, error) {
	if category == "all" {
		category = ""
	}
	clubs, err := s.clubs.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

func (s *ClubService) GetBySlug(ctx context.Context, slug string) (*models.Club, error) {
	club, err := s.clubs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	if club == nil {
		return nil, apperrors.ErrNotFound
	}
	return club, nil
}

func (s *ClubService) Create(ctx context.Context, req *models.CreateClubRequest) (*models.Club, error) {
	club := &models.Club{
		Name:          req.Name,
		Slug:          Slugify(req.Name),
		Category:      req.Category,
		Description:   req.Description,
		CoordinatorID: req.CoordinatorID,
		Established:   req.Established,
	}
	if club.Category == "" {
		club.Category = "general"
	}

	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return club, nil
}

// canManage allows admins and the club's own coordinator to mutate it.
func canManage(club *models.Club, actorID int64, actorRole string) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	return club.CoordinatorID != nil && *club.CoordinatorID == actorID
}

func (s *ClubService) Update(ctx context.Context, slug string, actorID int64, actorRole string, req *models.UpdateClubRequest) (*models.Club, error) {
	club, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !canManage(club, actorID, actorRole) {
		return nil, apperrors.ErrForbidden
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Category != nil {
		club.Category = *req.Category
	}
	if req.Description != nil {
		club.Description = req.Description
	}
	if req.CoordinatorID != nil {
		club.CoordinatorID = req.CoordinatorID
	}
	if req.MemberCount != nil {
		club.MemberCount = *req.MemberCount
	}
	if req.Established != nil {
		club.Established = req.Established
	}

	if err := s.clubs.Update(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to update club: %w", err)
	}
	return club, nil
}

func (s *ClubService) Delete(ctx context.Context, slug string, actorID int64, actorRole string) error {
	club, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if !canManage(club, actorID, actorRole) {
		return apperrors.ErrForbidden
	}
	if err := s.clubs.Delete(ctx, club.ID); err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}
	return nil
}
