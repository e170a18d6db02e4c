package models

import "time"

// NATS subjects
const (
	EventRegistrationCreated   = "registration.created"
	EventRegistrationCancelled = "registration.cancelled"
	EventRegistrationExpired   = "registration.expired"
	EventEventCreated          = "event.created"
	EventEventUpdated          = "event.updated"
	EventEventDeleted          = "event.deleted"
)

// RegistrationCreatedEvent is published after a registration commits
type RegistrationCreatedEvent struct {
	RegistrationID int64     `json:"registration_id"`
	EventID        int64     `json:"event_id"`
	UserID         int64     `json:"user_id"`
	TicketTypeID   *int64    `json:"ticket_type_id"`
	Timestamp      time.Time `json:"timestamp"`
}

// RegistrationCancelledEvent is published after a cancellation commits
type RegistrationCancelledEvent struct {
	RegistrationID int64     `json:"registration_id"`
	EventID        int64     `json:"event_id"`
	UserID         int64     `json:"user_id"`
	Reason         string    `json:"reason"`
	Timestamp      time.Time `json:"timestamp"`
}

// RegistrationExpiredEvent is published when a pending registration times out
type RegistrationExpiredEvent struct {
	RegistrationID int64     `json:"registration_id"`
	EventID        int64     `json:"event_id"`
	UserID         int64     `json:"user_id"`
	Reason         string    `json:"reason"`
	Timestamp      time.Time `json:"timestamp"`
}

// EventChangedEvent is published on event create/update/delete so the
// search index and caches can be kept in step
type EventChangedEvent struct {
	EventID   int64     `json:"event_id"`
	Slug      string    `json:"slug"`
	Timestamp time.Time `json:"timestamp"`
}
