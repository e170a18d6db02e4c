package service

import (
	"campushub/internal/cache"
	"campushub/internal/config"
	"campushub/internal/messaging"
	"campushub/internal/repository"
	"campushub/internal/search"
)

// Services aggregates the business-logic layer. Cache and search are
// optional; services fall through to Postgres when either is nil.
type Services struct {
	Auth          *AuthService
	Events        *EventService
	Registrations *RegistrationService
	Notifications *NotificationService
	Clubs         *ClubService
	Placements    *PlacementService
	FAQ           *FAQService
}

func NewServices(
	repos *repository.Repositories,
	nats *messaging.NATSClient,
	cacheClient *cache.Client,
	searchClient *search.ElasticsearchClient,
	authCfg config.AuthConfig,
) *Services {
	events := NewEventService(repos.Events, repos.Gallery, repos.Registrations, nats, cacheClient, searchClient)

	return &Services{
		Auth:          NewAuthService(repos.Users, authCfg),
		Events:        events,
		Registrations: NewRegistrationService(repos.Registrations, repos.Events, nats, cacheClient),
		Notifications: NewNotificationService(repos.Notifications, cacheClient),
		Clubs:         NewClubService(repos.Clubs),
		Placements:    NewPlacementService(repos.Placements),
		FAQ:           NewFAQService(repos.FAQ),
	}
}
