package repository

import (
	"campushub/internal/database"
)

type Repositories struct {
	Users         *UserRepository
	Events        *EventRepository
	Registrations *RegistrationRepository
	Notifications *NotificationRepository
	Gallery       *GalleryRepository
	Clubs         *ClubRepository
	Placements    *PlacementRepository
	FAQ           *FAQRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Events:        NewEventRepository(db),
		Registrations: NewRegistrationRepository(db),
		Notifications: NewNotificationRepository(db),
		Gallery:       NewGalleryRepository(db),
		Clubs:         NewClubRepository(db),
		Placements:    NewPlacementRepository(db),
		FAQ:           NewFAQRepository(db),
	}
}
