package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"campushub/internal/cache"
	apperrors "campushub/internal/errors"
	"campushub/internal/messaging"
	"campushub/internal/models"
	"campushub/internal/repository"
)

// RegistrationService orchestrates sign-up and cancellation on top of
// the transactional repository and announces outcomes on the bus.
type RegistrationService struct {
	registrations *repository.RegistrationRepository
	events        *repository.EventRepository
	nats          *messaging.NATSClient
	cache         *cache.Client
}

func NewRegistrationService(registrations *repository.RegistrationRepository, events *repository.EventRepository, nats *messaging.NATSClient, cacheClient *cache.Client) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		nats:          nats,
		cache:         cacheClient,
	}
}

// Register signs the user up for an event. Capacity, duplicates and the
// registration window are all enforced inside one transaction.
func (s *RegistrationService) Register(ctx context.Context, userID int64, req *models.RegisterRequest) (*models.Registration, error) {
	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrNotFound
	}

	regType := req.RegistrationType
	if regType == "" {
		regType = "individual"
	}

	// Team registrations wait for the organizer to confirm the roster;
	// individual ones are confirmed immediately.
	status := models.RegistrationConfirmed
	if regType == "team" {
		status = models.RegistrationPending
	}

	reg := &models.Registration{
		EventID:          req.EventID,
		UserID:           userID,
		TicketTypeID:     req.TicketTypeID,
		Status:           status,
		RegistrationType: regType,
		TeamName:         req.TeamName,
	}
	if len(req.TeamMembers) > 0 {
		members := strings.Join(req.TeamMembers, ", ")
		reg.TeamMembers = &members
	}

	notifTitle := "Registration confirmed"
	notifMessage := fmt.Sprintf("You are registered for %s.", event.Title)
	if status == models.RegistrationPending {
		notifTitle = "Registration pending"
		notifMessage = fmt.Sprintf("Your team registration for %s is awaiting organizer confirmation.", event.Title)
	}

	if err := s.registrations.Register(ctx, reg, notifTitle, notifMessage); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.publish(models.EventRegistrationCreated, models.RegistrationCreatedEvent{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		UserID:         reg.UserID,
		TicketTypeID:   reg.TicketTypeID,
		Timestamp:      time.Now(),
	})

	return reg, nil
}

// Cancel withdraws the caller's registration. Organizers and admins may
// cancel registrations on their events.
func (s *RegistrationService) Cancel(ctx context.Context, registrationID, actorID int64, actorRole string) error {
	reg, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return fmt.Errorf("failed to get registration: %w", err)
	}
	if reg == nil {
		return apperrors.ErrNotFound
	}

	if reg.UserID != actorID && actorRole != models.RoleAdmin {
		event, err := s.events.GetByID(ctx, reg.EventID)
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		if event == nil || event.OrganizerID != actorID {
			return apperrors.ErrForbidden
		}
	}

	cancelled, err := s.registrations.Cancel(ctx, registrationID)
	if err != nil {
		return err
	}

	s.invalidateListings(ctx)
	s.publish(models.EventRegistrationCancelled, models.RegistrationCancelledEvent{
		RegistrationID: cancelled.ID,
		EventID:        cancelled.EventID,
		UserID:         cancelled.UserID,
		Reason:         "user_cancelled",
		Timestamp:      time.Now(),
	})

	return nil
}

// Confirm flips a pending team registration to confirmed. Only the
// event's organizer or an admin may confirm.
func (s *RegistrationService) Confirm(ctx context.Context, registrationID, actorID int64, actorRole string) error {
	reg, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return fmt.Errorf("failed to get registration: %w", err)
	}
	if reg == nil {
		return apperrors.ErrNotFound
	}

	if actorRole != models.RoleAdmin {
		event, err := s.events.GetByID(ctx, reg.EventID)
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		if event == nil || event.OrganizerID != actorID {
			return apperrors.ErrForbidden
		}
	}

	return s.registrations.Confirm(ctx, registrationID)
}

// ListForUser returns the caller's active registrations
func (s *RegistrationService) ListForUser(ctx context.Context, userID int64) ([]models.Registration, error) {
	regs, err := s.registrations.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// ExpirePending cancels pending registrations older than the cutoff and
// publishes an expiry event for each. Returns how many were expired.
func (s *RegistrationService) ExpirePending(ctx context.Context, cutoff time.Time) (int, error) {
	pending, err := s.registrations.GetExpiredPending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to get expired registrations: %w", err)
	}

	expired := 0
	for _, reg := range pending {
		if _, err := s.registrations.Cancel(ctx, reg.ID); err != nil {
			slog.Error("Failed to expire registration", "registration_id", reg.ID, "error", err)
			continue
		}
		expired++
		s.publish(models.EventRegistrationExpired, models.RegistrationExpiredEvent{
			RegistrationID: reg.ID,
			EventID:        reg.EventID,
			UserID:         reg.UserID,
			Reason:         "confirmation_timeout",
			Timestamp:      time.Now(),
		})
	}

	if expired > 0 {
		s.invalidateListings(ctx)
	}
	return expired, nil
}

// ExportParticipantsCSV builds the participant export for an event.
// Every field is wrapped in double quotes to match the legacy download
// format the campus office imports.
func (s *RegistrationService) ExportParticipantsCSV(ctx context.Context, slugOrID string, actorID int64, actorRole string) (string, []byte, error) {
	event, err := s.resolveEvent(ctx, slugOrID)
	if err != nil {
		return "", nil, err
	}
	if event.OrganizerID != actorID && actorRole != models.RoleAdmin {
		return "", nil, apperrors.ErrForbidden
	}

	participants, err := s.registrations.ListParticipants(ctx, event.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list participants: %w", err)
	}

	var b strings.Builder
	b.WriteString(`"Name","Email","Registration Type","Team Name","Registered Date"` + "\n")
	for _, p := range participants {
		teamName := ""
		if p.TeamName != nil {
			teamName = *p.TeamName
		}
		b.WriteString(strings.Join([]string{
			csvQuote(p.Name),
			csvQuote(p.Email),
			csvQuote(p.RegistrationType),
			csvQuote(teamName),
			csvQuote(p.RegisteredAt.Format("2006-01-02 15:04")),
		}, ",") + "\n")
	}

	filename := fmt.Sprintf("%s-participants.csv", event.Slug)
	return filename, []byte(b.String()), nil
}

// csvQuote wraps the value in double quotes unconditionally, doubling
// any embedded quotes.
func csvQuote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func (s *RegistrationService) resolveEvent(ctx context.Context, slugOrID string) (*models.Event, error) {
	event, err := s.events.GetBySlug(ctx, slugOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		if id, convErr := strconv.ParseInt(slugOrID, 10, 64); convErr == nil {
			event, err = s.events.GetByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to get event: %w", err)
			}
		}
	}
	if event == nil {
		return nil, apperrors.ErrNotFound
	}
	return event, nil
}

func (s *RegistrationService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateEventLists(ctx); err != nil {
		slog.Warn("Failed to invalidate event listing cache", "error", err)
	}
}

func (s *RegistrationService) publish(subject string, payload interface{}) {
	if s.nats == nil {
		return
	}
	if err := s.nats.Publish(subject, payload); err != nil {
		slog.Error("Failed to publish event", "subject", subject, "error", err)
	}
}
