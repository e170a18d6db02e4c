package models

import (
	"time"
)

// User roles
const (
	RoleStudent   = "student"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// User represents a portal account
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Event represents a campus event
type Event struct {
	ID                 int64      `json:"id" db:"id"`
	Title              string     `json:"title" db:"title"`
	Slug               string     `json:"slug" db:"slug"`
	Description        *string    `json:"description" db:"description"`
	Category           string     `json:"category" db:"category"`
	Date               time.Time  `json:"date" db:"date"`
	Time               *string    `json:"time" db:"time"`
	EndDate            *time.Time `json:"end_date" db:"end_date"`
	EndTime            *string    `json:"end_time" db:"end_time"`
	Venue              *string    `json:"venue" db:"venue"`
	VenueCapacity      int        `json:"venue_capacity" db:"venue_capacity"`
	OrganizerID        int64      `json:"organizer_id" db:"organizer_id"`
	Status             string     `json:"status" db:"status"`
	RegistrationStatus string     `json:"registration_status" db:"registration_status"`
	TotalRegistrations int        `json:"total_registrations" db:"total_registrations"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// EventDetails carries the free-text extension of an event
type EventDetails struct {
	EventID     int64   `json:"event_id" db:"event_id"`
	Rules       *string `json:"rules" db:"rules"`
	Eligibility *string `json:"eligibility" db:"eligibility"`
	Prizes      *string `json:"prizes" db:"prizes"`
}

// TicketType is a capacity-limited allocation within an event.
// Invariant: 0 <= available <= total.
type TicketType struct {
	ID        int64  `json:"id" db:"id"`
	EventID   int64  `json:"event_id" db:"event_id"`
	Name      string `json:"name" db:"name"`
	Price     int    `json:"price" db:"price"`
	Total     int    `json:"total" db:"total"`
	Available int    `json:"available" db:"available"`
}

// Registration statuses
const (
	RegistrationConfirmed = "confirmed"
	RegistrationPending   = "pending"
	RegistrationCancelled = "cancelled"
)

// Registration links a user to an event, optionally through a ticket type
type Registration struct {
	ID               int64     `json:"id" db:"id"`
	EventID          int64     `json:"event_id" db:"event_id"`
	UserID           int64     `json:"user_id" db:"user_id"`
	TicketTypeID     *int64    `json:"ticket_type_id" db:"ticket_type_id"`
	Status           string    `json:"status" db:"status"`
	RegistrationType string    `json:"registration_type" db:"registration_type"`
	TeamName         *string   `json:"team_name" db:"team_name"`
	TeamMembers      *string   `json:"team_members" db:"team_members"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Notification is a per-user message, optionally tied to an event
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	EventID   *int64    `json:"event_id" db:"event_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GalleryImage belongs to an event
type GalleryImage struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"event_id" db:"event_id"`
	URL       string    `json:"url" db:"url"`
	Caption   *string   `json:"caption" db:"caption"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Club is a directory entry for a campus club or society
type Club struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Slug          string    `json:"slug" db:"slug"`
	Category      string    `json:"category" db:"category"`
	Description   *string   `json:"description" db:"description"`
	CoordinatorID *int64    `json:"coordinator_id" db:"coordinator_id"`
	MemberCount   int       `json:"member_count" db:"member_count"`
	Established   *string   `json:"established" db:"established"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// PlacementCompany is a placement cell listing
type PlacementCompany struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Sector      *string    `json:"sector" db:"sector"`
	CTC         *string    `json:"ctc" db:"ctc"`
	VisitDate   *time.Time `json:"visit_date" db:"visit_date"`
	Eligibility *string    `json:"eligibility" db:"eligibility"`
	Status      string     `json:"status" db:"status"`
}

// PlacedStudent records a placement outcome
type PlacedStudent struct {
	ID          int64   `json:"id" db:"id"`
	CompanyID   int64   `json:"company_id" db:"company_id"`
	StudentName string  `json:"student_name" db:"student_name"`
	Branch      *string `json:"branch" db:"branch"`
	Package     *string `json:"package" db:"package"`
	Year        int     `json:"year" db:"year"`
}

// FAQEntry is a stored question/answer pair matched by the chatbot
type FAQEntry struct {
	ID       int64  `json:"id" db:"id"`
	Question string `json:"question" db:"question"`
	Answer   string `json:"answer" db:"answer"`
	Keywords string `json:"keywords" db:"keywords"`
	Category string `json:"category" db:"category"`
}
