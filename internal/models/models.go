package models

// APIResponse is the uniform JSON envelope for every endpoint
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Pagination describes the page window of a list response
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes pages as ceil(total/limit)
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// PaginatedResponse is the envelope for paginated listings
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// EventFilter collects the listing query parameters.
// The sentinel "all" (or an empty value) means no filter.
type EventFilter struct {
	Category string
	Status   string
	Search   string
	SortBy   string
	Page     int
	Limit    int
}

// CreateEventRequest creates an event plus optional details and ticket types
type CreateEventRequest struct {
	Title         string               `json:"title" binding:"required"`
	Description   *string              `json:"description"`
	Category      string               `json:"category"`
	Date          string               `json:"date" binding:"required"`
	Time          *string              `json:"time"`
	EndDate       *string              `json:"end_date"`
	EndTime       *string              `json:"end_time"`
	Venue         *string              `json:"venue"`
	VenueCapacity int                  `json:"venue_capacity"`
	Details       *EventDetailsRequest `json:"details"`
	TicketTypes   []TicketTypeRequest  `json:"ticket_types"`
}

// EventDetailsRequest carries the optional detail fields of an event
type EventDetailsRequest struct {
	Rules       *string `json:"rules"`
	Eligibility *string `json:"eligibility"`
	Prizes      *string `json:"prizes"`
}

// TicketTypeRequest declares a capacity-limited ticket type
type TicketTypeRequest struct {
	Name  string `json:"name" binding:"required"`
	Price int    `json:"price"`
	Total int    `json:"total" binding:"required,gt=0"`
}

// UpdateEventRequest mutates event fields; nil fields are left untouched
type UpdateEventRequest struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	Category           *string `json:"category"`
	Date               *string `json:"date"`
	Time               *string `json:"time"`
	Venue              *string `json:"venue"`
	VenueCapacity      *int    `json:"venue_capacity"`
	Status             *string `json:"status"`
	RegistrationStatus *string `json:"registration_status"`
}

// EventDetailResponse is the joined detail view of an event
type EventDetailResponse struct {
	Event
	Details           *EventDetails  `json:"details"`
	TicketTypes       []TicketType   `json:"ticket_types"`
	Gallery           []GalleryImage `json:"gallery"`
	RegistrationCount int            `json:"registration_count"`
}

// RegisterRequest registers the authenticated user for an event
type RegisterRequest struct {
	EventID          int64    `json:"eventId" binding:"required"`
	TicketTypeID     *int64   `json:"ticketTypeId"`
	RegistrationType string   `json:"registrationType"`
	TeamName         *string  `json:"teamName"`
	TeamMembers      []string `json:"teamMembers"`
}

// RegisterResponse returns the new registration identifier
type RegisterResponse struct {
	RegistrationID int64 `json:"registrationId"`
}

// SignupRequest creates a user account
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest authenticates a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns the signed token plus the profile
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateProfileRequest updates the caller's own profile
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// AddGalleryImageRequest attaches an image to an event
type AddGalleryImageRequest struct {
	URL     string  `json:"url" binding:"required"`
	Caption *string `json:"caption"`
}

// CreateClubRequest creates a club directory entry
type CreateClubRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category"`
	Description   *string `json:"description"`
	CoordinatorID *int64  `json:"coordinator_id"`
	Established   *string `json:"established"`
}

// UpdateClubRequest mutates club fields; nil fields are left untouched
type UpdateClubRequest struct {
	Name          *string `json:"name"`
	Category      *string `json:"category"`
	Description   *string `json:"description"`
	CoordinatorID *int64  `json:"coordinator_id"`
	MemberCount   *int    `json:"member_count"`
	Established   *string `json:"established"`
}

// CreateCompanyRequest creates a placement company listing
type CreateCompanyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Sector      *string `json:"sector"`
	CTC         *string `json:"ctc"`
	VisitDate   *string `json:"visit_date"`
	Eligibility *string `json:"eligibility"`
	Status      string  `json:"status"`
}

// UpdateCompanyRequest mutates company fields; nil fields are left untouched
type UpdateCompanyRequest struct {
	Name        *string `json:"name"`
	Sector      *string `json:"sector"`
	CTC         *string `json:"ctc"`
	VisitDate   *string `json:"visit_date"`
	Eligibility *string `json:"eligibility"`
	Status      *string `json:"status"`
}

// CreatePlacedStudentRequest records a placement outcome
type CreatePlacedStudentRequest struct {
	CompanyID   int64   `json:"company_id" binding:"required"`
	StudentName string  `json:"student_name" binding:"required"`
	Branch      *string `json:"branch"`
	Package     *string `json:"package"`
	Year        int     `json:"year" binding:"required"`
}

// PlacementStats aggregates placements per year. AveragePackage is nil
// for years where no recorded package parses to a number.
type PlacementStats struct {
	Year           int      `json:"year"`
	PlacedCount    int      `json:"placed_count"`
	CompanyCount   int      `json:"company_count"`
	AveragePackage *float64 `json:"average_package"`
}

// ChatRequest is a free-text question for the FAQ bot
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the best-matching FAQ answer or a fallback
type ChatResponse struct {
	Answer   string  `json:"answer"`
	Matched  bool    `json:"matched"`
	Question *string `json:"question,omitempty"`
	Category *string `json:"category,omitempty"`
}
