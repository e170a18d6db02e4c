package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"campushub/internal/cache"
	apperrors "campushub/internal/errors"
	"campushub/internal/messaging"
	"campushub/internal/models"
	"campushub/internal/repository"
	"campushub/internal/search"
)

// EventService owns the event lifecycle: listing with search and cache,
// detail assembly, create/update/delete with index and cache upkeep.
type EventService struct {
	events        *repository.EventRepository
	gallery       *repository.GalleryRepository
	registrations *repository.RegistrationRepository
	nats          *messaging.NATSClient
	cache         *cache.Client
	search        *search.ElasticsearchClient
}

func NewEventService(
	events *repository.EventRepository,
	gallery *repository.GalleryRepository,
	registrations *repository.RegistrationRepository,
	nats *messaging.NATSClient,
	cacheClient *cache.Client,
	searchClient *search.ElasticsearchClient,
) *EventService {
	return &EventService{
		events:        events,
		gallery:       gallery,
		registrations: registrations,
		nats:          nats,
		cache:         cacheClient,
		search:        searchClient,
	}
}

type listPayload struct {
	Events []models.Event `json:"events"`
	Total  int            `json:"total"`
}

// List returns one page of events plus pagination info. Free-text search
// goes through Elasticsearch when configured; only the unfiltered listing
// is cached since filter combinations would fragment the keyspace.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, models.Pagination, error) {
	normalizeFilter(&filter)

	cacheable := s.cache != nil && filter.Category == "" && filter.Status == "" && filter.Search == ""
	cacheKey := cache.EventListKey(filter.Page, filter.Limit, filter.SortBy)

	if cacheable {
		if raw, err := s.cache.Get(ctx, cacheKey); err != nil {
			slog.Warn("Event list cache read failed", "error", err)
		} else if raw != nil {
			var payload listPayload
			if err := json.Unmarshal(raw, &payload); err == nil {
				return payload.Events, models.NewPagination(filter.Page, filter.Limit, payload.Total), nil
			}
		}
	}

	var (
		events []models.Event
		total  int
		err    error
	)

	if s.search != nil && filter.Search != "" {
		events, total, err = s.search.Search(ctx, filter)
		if err != nil {
			// Degrade to the ILIKE query rather than failing the request.
			slog.Warn("Search query failed, falling back to database", "error", err)
			events, total, err = s.events.List(ctx, filter)
		}
	} else {
		events, total, err = s.events.List(ctx, filter)
	}
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list events: %w", err)
	}

	if cacheable {
		raw, err := json.Marshal(listPayload{Events: events, Total: total})
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw); err != nil {
				slog.Warn("Event list cache write failed", "error", err)
			}
		}
	}

	return events, models.NewPagination(filter.Page, filter.Limit, total), nil
}

func normalizeFilter(f *models.EventFilter) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Category == "all" {
		f.Category = ""
	}
	if f.Status == "all" {
		f.Status = ""
	}
	switch f.SortBy {
	case "popularity", "name":
	default:
		f.SortBy = "date"
	}
}

// Resolve finds an event by slug, or by numeric id when the path segment
// parses as one.
func (s *EventService) Resolve(ctx context.Context, slugOrID string) (*models.Event, error) {
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

// GetDetail assembles the joined detail view of an event
func (s *EventService) GetDetail(ctx context.Context, slugOrID string) (*models.EventDetailResponse, error) {
	event, err := s.Resolve(ctx, slugOrID)
	if err != nil {
		return nil, err
	}

	details, err := s.events.GetDetails(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event details: %w", err)
	}

	ticketTypes, err := s.events.GetTicketTypes(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket types: %w", err)
	}

	images, err := s.gallery.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}

	count, err := s.registrations.CountActiveByEvent(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	return &models.EventDetailResponse{
		Event:             *event,
		Details:           details,
		TicketTypes:       ticketTypes,
		Gallery:           images,
		RegistrationCount: count,
	}, nil
}

// Create stores a new event owned by the organizer, indexes it and
// announces it on the bus.
func (s *EventService) Create(ctx context.Context, organizerID int64, req *models.CreateEventRequest) (*models.Event, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	event := &models.Event{
		Title:              req.Title,
		Slug:               Slugify(req.Title),
		Description:        req.Description,
		Category:           req.Category,
		Date:               date,
		Time:               req.Time,
		EndTime:            req.EndTime,
		Venue:              req.Venue,
		VenueCapacity:      req.VenueCapacity,
		OrganizerID:        organizerID,
		Status:             "upcoming",
		RegistrationStatus: "open",
	}
	if event.Category == "" {
		event.Category = "general"
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
		event.EndDate = &endDate
	}

	var details *models.EventDetails
	if req.Details != nil {
		details = &models.EventDetails{
			Rules:       req.Details.Rules,
			Eligibility: req.Details.Eligibility,
			Prizes:      req.Details.Prizes,
		}
	}

	ticketTypes := make([]models.TicketType, len(req.TicketTypes))
	for i, tt := range req.TicketTypes {
		ticketTypes[i] = models.TicketType{
			Name:      tt.Name,
			Price:     tt.Price,
			Total:     tt.Total,
			Available: tt.Total,
		}
	}

	// Retry with a numeric suffix when the slug is taken.
	baseSlug := event.Slug
	for attempt := 0; ; attempt++ {
		err = s.events.Create(ctx, event, details, ticketTypes)
		if err == nil {
			break
		}
		if attempt < 5 && strings.Contains(err.Error(), "events_slug_key") {
			event.Slug = fmt.Sprintf("%s-%d", baseSlug, attempt+2)
			continue
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.syncIndex(ctx, event)
	s.invalidateListings(ctx)
	s.publish(models.EventEventCreated, models.EventChangedEvent{
		EventID:   event.ID,
		Slug:      event.Slug,
		Timestamp: time.Now(),
	})

	return event, nil
}

// Update applies non-nil fields and refreshes index, cache and bus
func (s *EventService) Update(ctx context.Context, slugOrID string, actorID int64, actorRole string, req *models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.Resolve(ctx, slugOrID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != actorID && actorRole != models.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		event.Date = date
	}
	if req.Time != nil {
		event.Time = req.Time
	}
	if req.Venue != nil {
		event.Venue = req.Venue
	}
	if req.VenueCapacity != nil {
		event.VenueCapacity = *req.VenueCapacity
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.RegistrationStatus != nil {
		event.RegistrationStatus = *req.RegistrationStatus
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.syncIndex(ctx, event)
	s.invalidateListings(ctx)
	s.publish(models.EventEventUpdated, models.EventChangedEvent{
		EventID:   event.ID,
		Slug:      event.Slug,
		Timestamp: time.Now(),
	})

	return event, nil
}

// Delete removes the event and everything hanging off it
func (s *EventService) Delete(ctx context.Context, slugOrID string, actorID int64, actorRole string) error {
	event, err := s.Resolve(ctx, slugOrID)
	if err != nil {
		return err
	}
	if event.OrganizerID != actorID && actorRole != models.RoleAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.events.Delete(ctx, event.ID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if s.search != nil {
		if err := s.search.DeleteEvent(ctx, event.ID); err != nil {
			slog.Warn("Failed to remove event from search index", "event_id", event.ID, "error", err)
		}
	}
	s.invalidateListings(ctx)
	s.publish(models.EventEventDeleted, models.EventChangedEvent{
		EventID:   event.ID,
		Slug:      event.Slug,
		Timestamp: time.Now(),
	})

	return nil
}

// AddGalleryImage attaches an image to the event; only the organizer or
// an admin may do so.
func (s *EventService) AddGalleryImage(ctx context.Context, slugOrID string, actorID int64, actorRole string, req *models.AddGalleryImageRequest) (*models.GalleryImage, error) {
	event, err := s.Resolve(ctx, slugOrID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != actorID && actorRole != models.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	img := &models.GalleryImage{
		EventID: event.ID,
		URL:     req.URL,
		Caption: req.Caption,
	}
	if err := s.gallery.Create(ctx, img); err != nil {
		return nil, fmt.Errorf("failed to add gallery image: %w", err)
	}
	return img, nil
}

// ListGallery returns the event's images in upload order
func (s *EventService) ListGallery(ctx context.Context, slugOrID string) ([]models.GalleryImage, error) {
	event, err := s.Resolve(ctx, slugOrID)
	if err != nil {
		return nil, err
	}
	images, err := s.gallery.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	return images, nil
}

func (s *EventService) syncIndex(ctx context.Context, event *models.Event) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexEvent(ctx, event); err != nil {
		slog.Warn("Failed to index event", "event_id", event.ID, "error", err)
	}
}

func (s *EventService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateEventLists(ctx); err != nil {
		slog.Warn("Failed to invalidate event listing cache", "error", err)
	}
}

func (s *EventService) publish(subject string, payload interface{}) {
	if s.nats == nil {
		return
	}
	if err := s.nats.Publish(subject, payload); err != nil {
		slog.Error("Failed to publish event", "subject", subject, "error", err)
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// Slugify lowercases the title and collapses everything that is not a
// letter or digit into single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
