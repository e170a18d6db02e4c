package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/stan.go"

	"campushub/internal/external"
	"campushub/internal/models"
	"campushub/internal/repository"
	"campushub/internal/search"
)

type Handlers struct {
	repos  *repository.Repositories
	mailer *external.Mailer
	search *search.ElasticsearchClient
}

func NewHandlers(repos *repository.Repositories, mailer *external.Mailer, searchClient *search.ElasticsearchClient) *Handlers {
	return &Handlers{
		repos:  repos,
		mailer: mailer,
		search: searchClient,
	}
}

// HandleRegistrationCreated sends the confirmation email. The in-app
// notification was already written inside the registration transaction.
func (h *Handlers) HandleRegistrationCreated(m *stan.Msg) {
	var event models.RegistrationCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal registration created event", "error", err)
		m.Ack()
		return
	}

	slog.Info("Processing registration created event", "registration_id", event.RegistrationID)

	ctx := context.Background()
	if err := h.sendRegistrationMail(ctx, event.UserID, event.EventID,
		"Registration confirmed",
		"You are registered for %s. See you there!"); err != nil {
		slog.Error("Failed to send confirmation email", "registration_id", event.RegistrationID, "error", err)
		// Do not ack; redelivery retries the email.
		return
	}

	m.Ack()
}

// HandleRegistrationCancelled notifies the user their spot was released
func (h *Handlers) HandleRegistrationCancelled(m *stan.Msg) {
	var event models.RegistrationCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal registration cancelled event", "error", err)
		m.Ack()
		return
	}

	slog.Info("Processing registration cancelled event", "registration_id", event.RegistrationID, "reason", event.Reason)

	ctx := context.Background()
	if err := h.writeNotification(ctx, event.UserID, event.EventID,
		"Registration cancelled",
		"Your registration for %s was cancelled."); err != nil {
		slog.Error("Failed to write cancellation notification", "registration_id", event.RegistrationID, "error", err)
		return
	}

	m.Ack()
}

// HandleRegistrationExpired notifies the user their pending registration
// timed out
func (h *Handlers) HandleRegistrationExpired(m *stan.Msg) {
	var event models.RegistrationExpiredEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal registration expired event", "error", err)
		m.Ack()
		return
	}

	slog.Info("Processing registration expired event", "registration_id", event.RegistrationID)

	ctx := context.Background()
	if err := h.writeNotification(ctx, event.UserID, event.EventID,
		"Registration expired",
		"Your pending registration for %s expired and the spot was released."); err != nil {
		slog.Error("Failed to write expiry notification", "registration_id", event.RegistrationID, "error", err)
		return
	}

	m.Ack()
}

// HandleEventChanged re-indexes the event after create or update
func (h *Handlers) HandleEventChanged(m *stan.Msg) {
	var event models.EventChangedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal event changed event", "error", err)
		m.Ack()
		return
	}

	if h.search == nil {
		m.Ack()
		return
	}

	ctx := context.Background()
	record, err := h.repos.Events.GetByID(ctx, event.EventID)
	if err != nil {
		slog.Error("Failed to load event for indexing", "event_id", event.EventID, "error", err)
		return
	}
	if record == nil {
		// Deleted between publish and consume.
		m.Ack()
		return
	}

	if err := h.search.IndexEvent(ctx, record); err != nil {
		slog.Error("Failed to index event", "event_id", event.EventID, "error", err)
		return
	}

	m.Ack()
}

// HandleEventDeleted drops the event from the search index
func (h *Handlers) HandleEventDeleted(m *stan.Msg) {
	var event models.EventChangedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal event deleted event", "error", err)
		m.Ack()
		return
	}

	if h.search != nil {
		if err := h.search.DeleteEvent(context.Background(), event.EventID); err != nil {
			slog.Error("Failed to delete event from index", "event_id", event.EventID, "error", err)
			return
		}
	}

	m.Ack()
}

func (h *Handlers) sendRegistrationMail(ctx context.Context, userID, eventID int64, subject, bodyFormat string) error {
	if !h.mailer.Enabled() {
		slog.Debug("Mail gateway disabled, skipping email", "user_id", userID)
		return nil
	}

	user, err := h.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	event, err := h.repos.Events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if user == nil || event == nil {
		return nil
	}

	return h.mailer.Send(ctx, user.Email, subject, fmt.Sprintf(bodyFormat, event.Title))
}

func (h *Handlers) writeNotification(ctx context.Context, userID, eventID int64, title, messageFormat string) error {
	event, err := h.repos.Events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}

	eventTitle := "an event"
	var eventRef *int64
	if event != nil {
		eventTitle = event.Title
		eventRef = &event.ID
	}

	return h.repos.Notifications.Create(ctx, &models.Notification{
		UserID:  userID,
		EventID: eventRef,
		Title:   title,
		Message: fmt.Sprintf(messageFormat, eventTitle),
	})
}
